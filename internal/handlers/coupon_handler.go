package handlers

import (
	"fmt"
	"log"
	"strings"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/models"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CouponHandler handles HTTP requests for coupon verification and the admin
// coupon console.
type CouponHandler struct {
	service  *services.CouponService
	carts    *cart.Manager
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService, carts *cart.Manager) *CouponHandler {
	return &CouponHandler{
		service:  service,
		carts:    carts,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public coupon routes.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/coupons/verify", h.HandleVerifyCoupon)
}

// RegisterAdminRoutes registers the coupon management routes.
func (h *CouponHandler) RegisterAdminRoutes(router fiber.Router) {
	coupons := router.Group("/coupons")
	coupons.Get("/", h.HandleListCoupons)
	coupons.Post("/", h.HandleCreateCoupon)
	coupons.Delete("/:id", h.HandleDeleteCoupon)
}

// VerifyCouponRequest carries the code to validate against the session cart.
type VerifyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandleVerifyCoupon evaluates a coupon against the session cart's current
// item count. An invalid coupon is a 200 with valid=false; the failure is a
// user-facing validation message, not an error.
func (h *CouponHandler) HandleVerifyCoupon(c *fiber.Ctx) error {
	var req VerifyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify-coupon body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	itemCount := h.carts.Open(sessionID(c)).TotalItems()
	result := h.service.Evaluate(req.Code, itemCount)
	return c.JSON(result)
}

// HandleListCoupons lists all coupons for the admin console.
func (h *CouponHandler) HandleListCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.GetAllCoupons()
	if err != nil {
		log.Printf("Error listing coupons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve coupons",
			"error":   err.Error(),
		})
	}
	return c.JSON(coupons)
}

// HandleCreateCoupon creates a new coupon.
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var coupon models.Coupon
	if err := c.BodyParser(&coupon); err != nil {
		log.Printf("Error parsing coupon body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(coupon); err != nil {
		return validationError(c, err)
	}

	if err := h.service.CreateCoupon(&coupon); err != nil {
		log.Printf("Error creating coupon: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create coupon",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// HandleDeleteCoupon deletes a coupon by its ID.
func (h *CouponHandler) HandleDeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Params("id")
	if err := h.service.DeleteCoupon(couponID); err != nil {
		log.Printf("Error deleting coupon %s: %v", couponID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Coupon with ID %s not found", couponID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete coupon",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Coupon %s deleted successfully", couponID),
	})
}
