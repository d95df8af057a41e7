package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
	"tamaravastra/pkg/razorpay"

	"github.com/shopspring/decimal"
)

// Current business rules: free shipping, no tax line.
var (
	shippingCharge = decimal.Zero
	taxCharge      = decimal.Zero
)

// ErrInvalidCoupon is returned by PlaceOrder when the submitted coupon code
// does not validate against the order's own lines. The wrapped result message
// is user-facing.
var ErrInvalidCoupon = errors.New("invalid coupon")

// PaymentGateway is the payment collaborator consumed at checkout.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency string) (*razorpay.Session, error)
	VerifySignature(orderRef, paymentRef, signature string) bool
}

// CheckoutService turns a cart into a placed order: it computes totals,
// re-validates any coupon, assembles the order header and line items, and
// hands them to the order repository in one atomic create.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	coupons   *CouponService
	payments  PaymentGateway
	events    EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, coupons *CouponService, payments PaymentGateway, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		coupons:   coupons,
		payments:  payments,
		events:    events,
	}
}

// PayableTotal floors the discounted subtotal at zero. A discount can never
// push the payable amount negative.
func PayableTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	payable := subtotal.Sub(discount)
	if payable.IsNegative() {
		return decimal.Zero
	}
	return payable
}

// OrderTotal combines the discounted subtotal with shipping and tax.
func OrderTotal(subtotal, discount, shipping, tax decimal.Decimal) decimal.Decimal {
	return PayableTotal(subtotal, discount).Add(shipping).Add(tax)
}

// CheckoutRequest is everything needed to place an order after the payment
// collaborator has confirmed collection.
type CheckoutRequest struct {
	Contact    models.OrderContact
	Lines      []cart.Line
	CouponCode string

	PaymentOrderRef string
	PaymentRef      string
}

// CreatePaymentSession opens a payment session for the given rupee amount.
func (s *CheckoutService) CreatePaymentSession(amount decimal.Decimal, currency string) (*razorpay.Session, error) {
	if currency == "" {
		currency = "INR"
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("payment amount must not be negative")
	}
	paise := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	session, err := s.payments.CreateOrder(paise, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}
	return session, nil
}

// VerifyPayment checks the authenticity of a completed-payment callback.
func (s *CheckoutService) VerifyPayment(orderRef, paymentRef, signature string) bool {
	return s.payments.VerifySignature(orderRef, paymentRef, signature)
}

// PlaceOrder computes the order totals, assembles the header and line items
// and stores them atomically. The coupon, if any, is re-evaluated here
// against the submitted lines rather than trusted from the client, so a cart
// changed after "apply" cannot keep a discount it no longer qualifies for.
func (s *CheckoutService) PlaceOrder(req CheckoutRequest) (*models.Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	subtotal := decimal.Zero
	itemCount := 0
	items := make([]models.OrderItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", line.Quantity, line.ProductID)
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		itemCount += line.Quantity
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Color:     line.Variant,
		})
	}

	discount := decimal.Zero
	var applied *models.Coupon
	if req.CouponCode != "" {
		result := s.coupons.Evaluate(req.CouponCode, itemCount)
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCoupon, result.Message)
		}
		applied = result.Coupon
		discount = applied.DiscountAmount(subtotal)
	}

	total := OrderTotal(subtotal, discount, shippingCharge, taxCharge)

	notes := fmt.Sprintf("Razorpay Order ID: %s, Payment ID: %s", req.PaymentOrderRef, req.PaymentRef)
	if applied != nil {
		notes += fmt.Sprintf(", Coupon: %s (-₹%s)", applied.Code, discount.StringFixed(2))
	}

	contact := req.Contact
	if contact.Country == "" {
		contact.Country = "India"
	}

	order := &models.Order{
		Date:          time.Now(),
		Status:        models.StatusProcessing,
		Subtotal:      subtotal,
		Shipping:      shippingCharge,
		Tax:           taxCharge,
		Total:         total,
		PaymentMethod: "Razorpay",
		PaymentStatus: "Completed",
		Notes:         notes,
		OrderContact:  contact,
		Items:         items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping order.created publication.")
		return
	}
	message := map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
		"total":   order.Total,
		"phone":   order.CustomerPhone,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.events.Publish("order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.ID)
	}
}
