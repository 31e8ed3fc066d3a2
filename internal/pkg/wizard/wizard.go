package wizard

import (
	"fmt"
)

// Step is one state of the builder's linear wizard.
type Step string

const (
	StepSettings Step = "settings"
	StepProducts Step = "products"
	StepUpsells  Step = "upsells"
	StepThankYou Step = "thankyou"
)

// String returns the string representation of the step.
func (s Step) String() string {
	return string(s)
}

// Action is a user-driven wizard transition.
type Action string

const (
	ActionNext    Action = "next"
	ActionBack    Action = "back"
	ActionPublish Action = "publish"
)

// Rejection blocks a transition. Step names the wizard step the builder
// should jump to so the merchant can fix the offending field; for
// step-local failures it is the current step.
type Rejection struct {
	Step    Step
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

// forward is the Next transition table. Back transitions are the exact
// reverse and are never validated.
var forward = map[Step]Step{
	StepSettings: StepProducts,
	StepProducts: StepUpsells,
	StepUpsells:  StepThankYou,
}

var backward = map[Step]Step{
	StepProducts: StepSettings,
	StepUpsells:  StepProducts,
	StepThankYou: StepUpsells,
}

// ValidStep reports whether s names a wizard step.
func ValidStep(s Step) bool {
	switch s {
	case StepSettings, StepProducts, StepUpsells, StepThankYou:
		return true
	default:
		return false
	}
}

// NextStep resolves the forward transition from a step. Publish is the
// only way out of the final step.
func NextStep(s Step) (Step, bool) {
	next, ok := forward[s]
	return next, ok
}

// BackStep resolves the backward transition from a step.
func BackStep(s Step) (Step, bool) {
	prev, ok := backward[s]
	return prev, ok
}

// Advance applies an action to the current step. The page must already
// have been persisted by the caller (save-on-next: a step transition is
// always also a save, regardless of validation outcome). On success the
// destination step is returned; on failure a *Rejection.
func Advance(current Step, action Action, v Validator) (Step, error) {
	if !ValidStep(current) {
		return current, fmt.Errorf("unknown wizard step %q", current)
	}

	switch action {
	case ActionBack:
		if prev, ok := BackStep(current); ok {
			return prev, nil
		}
		return current, nil

	case ActionNext:
		next, ok := NextStep(current)
		if !ok {
			return current, &Rejection{Step: current, Message: "use publish to leave the final step"}
		}
		if err := v.ValidateStep(current); err != nil {
			return current, err
		}
		return next, nil

	case ActionPublish:
		if current != StepThankYou {
			return current, &Rejection{Step: current, Message: "complete all steps before publishing"}
		}
		if err := v.ValidatePublish(); err != nil {
			return current, err
		}
		return current, nil

	default:
		return current, fmt.Errorf("unknown wizard action %q", action)
	}
}

// Validator supplies the step-local and cross-cutting checks the
// transition table calls into.
type Validator interface {
	ValidateStep(s Step) error
	ValidatePublish() error
}
