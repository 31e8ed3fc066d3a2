package wizard

import (
	"fmt"
	"strings"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/pricing"
)

// PageValidator runs the publish readiness checks against a checkout
// page draft.
type PageValidator struct {
	Page *models.CheckoutPage
}

// ValidateStep checks the fields a step requires before the wizard may
// advance past it. Upsells are optional, so that step has no checks.
func (pv *PageValidator) ValidateStep(s Step) error {
	switch s {
	case StepSettings:
		if strings.TrimSpace(pv.Page.InternalName) == "" {
			return &Rejection{Step: StepSettings, Message: "give your checkout an internal name"}
		}
		if len(pv.Page.PaymentMethods) == 0 {
			return &Rejection{Step: StepSettings, Message: "enable at least one payment method"}
		}
	case StepProducts:
		if len(pv.Page.Products) == 0 {
			return &Rejection{Step: StepProducts, Message: "add at least one product"}
		}
	}
	return nil
}

// ValidatePublish runs the cross-cutting validation at the end of the
// wizard. Failures point at the step where the fix belongs so the
// builder can jump back.
func (pv *PageValidator) ValidatePublish() error {
	if len(pv.Page.Products) == 0 {
		return &Rejection{Step: StepProducts, Message: "add at least one product"}
	}
	for i := range pv.Page.Products {
		p := &pv.Page.Products[i]
		if !pricing.EffectiveProductPrice(p, pv.Page.Currency).IsPositive() {
			return &Rejection{
				Step:    StepProducts,
				Message: fmt.Sprintf("set a price for %q in %s", p.Name, strings.ToUpper(pv.Page.Currency)),
			}
		}
	}
	if len(pv.Page.PaymentMethods) == 0 {
		return &Rejection{Step: StepSettings, Message: "enable at least one payment method"}
	}
	return nil
}
