package handlers

import (
	"errors"
	"log"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/models"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CheckoutHandler drives the checkout flow: payment session creation,
// payment verification, and order placement from the session cart.
type CheckoutHandler struct {
	service  *services.CheckoutService
	carts    *cart.Manager
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, carts *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		carts:    carts,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkout := router.Group("/checkout")
	checkout.Post("/payment-session", h.HandleCreatePaymentSession)
	checkout.Post("/verify-payment", h.HandleVerifyPayment)
	checkout.Post("/place-order", h.HandlePlaceOrder)
}

// PaymentSessionRequest asks the gateway to collect the given rupee amount.
type PaymentSessionRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Currency string          `json:"currency"`
}

// HandleCreatePaymentSession opens a payment session with the gateway.
func (h *CheckoutHandler) HandleCreatePaymentSession(c *fiber.Ctx) error {
	var req PaymentSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment-session body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	session, err := h.service.CreatePaymentSession(req.Amount, req.Currency)
	if err != nil {
		log.Printf("Error creating payment session: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not create payment session. Please try again.",
			"error":   err.Error(),
		})
	}
	return c.JSON(session)
}

// VerifyPaymentRequest is the completed-payment callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// HandleVerifyPayment checks the authenticity of a payment callback.
func (h *CheckoutHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify-payment body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if !h.service.VerifyPayment(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "failure"})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// PlaceOrderRequest carries the checkout form plus the verified payment
// references. The order lines come from the session cart, not the client.
type PlaceOrderRequest struct {
	models.OrderContact
	CouponCode string `json:"coupon_code"`

	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// HandlePlaceOrder verifies the payment signature and places the order from
// the session cart. The cart is cleared only after the order is durably
// recorded; on any failure the cart and form state survive for a retry.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing place-order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if !h.service.VerifyPayment(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Payment verification failed",
		})
	}

	sessionCart := h.carts.Open(sessionID(c))
	order, err := h.service.PlaceOrder(services.CheckoutRequest{
		Contact:         req.OrderContact,
		Lines:           sessionCart.Lines(),
		CouponCode:      req.CouponCode,
		PaymentOrderRef: req.RazorpayOrderID,
		PaymentRef:      req.RazorpayPaymentID,
	})
	if err != nil {
		log.Printf("Error placing order: %v", err)
		if errors.Is(err, services.ErrInvalidCoupon) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order. Please try again.",
			"error":   err.Error(),
		})
	}

	sessionCart.Clear()
	return c.Status(fiber.StatusCreated).JSON(order)
}
