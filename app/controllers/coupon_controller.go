package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
	"github.com/zapiertracker-hub/Whopify-sub000/app/repository"
)

// HandleListCoupons lists the merchant's coupon catalog.
func HandleListCoupons(c *fiber.Ctx) error {
	coupons, err := repository.GetGlobalFactory().GetCouponRepository().ListByUser(currentUserID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list coupons")
	}
	return c.JSON(fiber.Map{"coupons": coupons})
}

// HandleCreateCoupon creates a coupon. Codes are stored lowercase and
// must be unique across the catalog.
func HandleCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if err := validate.Struct(&coupon); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	coupon.ID = 0
	coupon.UserID = currentUserID(c)
	coupon.UsedCount = 0
	if coupon.Status == "" {
		coupon.Status = models.CouponStatusActive
	}

	if err := repository.GetGlobalFactory().GetCouponRepository().Create(&coupon); err != nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "Coupon code already exists")
	}
	return c.Status(fiber.StatusCreated).JSON(&coupon)
}

// HandleUpdateCoupon updates a coupon's discount, status, cap or expiry.
func HandleUpdateCoupon(c *fiber.Ctx) error {
	couponID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid coupon id")
	}

	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	coupon.ID = uint(couponID)
	coupon.UserID = currentUserID(c)

	if err := repository.GetGlobalFactory().GetCouponRepository().Update(&coupon); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update coupon")
	}
	return c.JSON(&coupon)
}

// HandleDeleteCoupon removes a coupon from the catalog.
func HandleDeleteCoupon(c *fiber.Ctx) error {
	couponID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid coupon id")
	}
	if err := repository.GetGlobalFactory().GetCouponRepository().Delete(uint(couponID)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete coupon")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
