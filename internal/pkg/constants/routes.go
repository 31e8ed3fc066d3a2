package constants

// Static route constants
const (
	CheckoutsRoute = "/checkouts"
	CouponsRoute   = "/coupons"
	SettingsRoute  = "/settings"

	// HostedCheckoutPrefix is the public path prefix for share links.
	HostedCheckoutPrefix = "/c/"
)
