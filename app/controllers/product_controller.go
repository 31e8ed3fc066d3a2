package controllers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

var validate = validator.New()

// HandleAddProduct adds a product to a draft checkout.
func HandleAddProduct(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&product); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	product.ID = 0
	product.CheckoutPageID = page.ID
	product.Position = len(page.Products)
	page.Products = append(page.Products, product)

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"checkout": page})
}

// HandleUpdateProduct updates a product on a draft checkout.
func HandleUpdateProduct(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid product id")
	}

	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	found := false
	for i := range page.Products {
		if page.Products[i].ID == uint(productID) {
			page.Products[i].Name = req.Name
			page.Products[i].Description = req.Description
			page.Products[i].ImageURL = req.ImageURL
			page.Products[i].Pricing = req.Pricing
			found = true
			break
		}
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Product not found")
	}

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"checkout": page})
}

// HandleDeleteProduct removes a product from a draft checkout.
func HandleDeleteProduct(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid product id")
	}

	kept := page.Products[:0]
	for _, p := range page.Products {
		if p.ID != uint(productID) {
			kept = append(kept, p)
		}
	}
	page.Products = kept
	for i := range page.Products {
		page.Products[i].Position = i
	}

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"checkout": page})
}

// HandleAddOrderBump adds an upsell to a draft checkout. The derived
// bundle price is synced before the bump is stored.
func HandleAddOrderBump(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	var bump models.OrderBump
	if err := c.BodyParser(&bump); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&bump); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	bump.ID = 0
	bump.CheckoutPageID = page.ID
	bump.Position = len(page.OrderBumps)
	bump.SyncDerivedPrice()
	page.OrderBumps = append(page.OrderBumps, bump)

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"checkout": page})
}

// HandleUpdateOrderBump updates an upsell, re-deriving the bundle price
// whenever the monthly price or duration changed.
func HandleUpdateOrderBump(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	bumpID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid upsell id")
	}

	var req models.OrderBump
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	found := false
	for i := range page.OrderBumps {
		if page.OrderBumps[i].ID == uint(bumpID) {
			b := &page.OrderBumps[i]
			b.Title = req.Title
			b.Description = req.Description
			b.Enabled = req.Enabled
			b.OfferType = req.OfferType
			b.Price = req.Price
			b.MonthlyPrice = req.MonthlyPrice
			b.DurationMonths = req.DurationMonths
			b.SyncDerivedPrice()
			found = true
			break
		}
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Upsell not found")
	}

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"checkout": page})
}

// HandleDeleteOrderBump removes an upsell from a draft checkout.
func HandleDeleteOrderBump(c *fiber.Ctx) error {
	page, err := getDraftSyncer().LoadDraft(c.Context(), c.Params("publicID"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Checkout not found")
	}

	bumpID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid upsell id")
	}

	kept := page.OrderBumps[:0]
	for _, b := range page.OrderBumps {
		if b.ID != uint(bumpID) {
			kept = append(kept, b)
		}
	}
	page.OrderBumps = kept
	for i := range page.OrderBumps {
		page.OrderBumps[i].Position = i
	}

	if err := getDraftSyncer().SaveDraft(c.Context(), page); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save checkout")
	}
	return c.JSON(fiber.Map{"checkout": page})
}
