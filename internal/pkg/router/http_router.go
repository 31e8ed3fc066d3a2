package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zapiertracker-hub/Whopify-sub000/app/controllers"
	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/constants"
)

type HttpRouter struct {
}

// InstallRouter registers the dashboard/builder routes. Authentication
// lives upstream; these endpoints trust the injected tenant id.
func (h HttpRouter) InstallRouter(app *fiber.App) {
	checkouts := app.Group(constants.CheckoutsRoute)
	checkouts.Post("/", controllers.HandleCreateCheckout)
	checkouts.Get("/", controllers.HandleListCheckouts)
	checkouts.Get("/:publicID", controllers.HandleGetCheckout)
	checkouts.Put("/:publicID", controllers.HandleUpdateCheckout)
	checkouts.Delete("/:publicID", controllers.HandleDeleteCheckout)

	// Wizard transitions: save-on-next, step-local validation, publish.
	checkouts.Post("/:publicID/wizard", controllers.HandleWizardTransition)

	// Payment method list management
	checkouts.Post("/:publicID/payment-methods", controllers.HandleAddPaymentMethod)
	checkouts.Delete("/:publicID/payment-methods/:method", controllers.HandleRemovePaymentMethod)
	checkouts.Post("/:publicID/payment-methods/:index/move", controllers.HandleMovePaymentMethod)

	// Products
	checkouts.Post("/:publicID/products", controllers.HandleAddProduct)
	checkouts.Put("/:publicID/products/:id", controllers.HandleUpdateProduct)
	checkouts.Delete("/:publicID/products/:id", controllers.HandleDeleteProduct)

	// Order bumps (upsells)
	checkouts.Post("/:publicID/bumps", controllers.HandleAddOrderBump)
	checkouts.Put("/:publicID/bumps/:id", controllers.HandleUpdateOrderBump)
	checkouts.Delete("/:publicID/bumps/:id", controllers.HandleDeleteOrderBump)

	// Coupon catalog
	coupons := app.Group(constants.CouponsRoute)
	coupons.Get("/", controllers.HandleListCoupons)
	coupons.Post("/", controllers.HandleCreateCoupon)
	coupons.Put("/:id", controllers.HandleUpdateCoupon)
	coupons.Delete("/:id", controllers.HandleDeleteCoupon)

	// Tenant-wide store settings
	app.Get(constants.SettingsRoute, controllers.HandleGetStoreSettings)
	app.Put(constants.SettingsRoute, controllers.HandleSaveStoreSettings)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
