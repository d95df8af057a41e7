package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusProcessing  OrderStatus = "Processing"
	StatusShipped     OrderStatus = "Shipped"
	StatusDelivered   OrderStatus = "Delivered"
	StatusReplacement OrderStatus = "Replacement"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusReplacement:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order may move from s to next.
// The forward chain is Processing -> Shipped -> Delivered; Replacement is
// reachable from any state. Delivered and Replacement are terminal apart from
// a replacement request against a delivered order.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !ValidStatus(next) {
		return false
	}
	if next == StatusReplacement {
		return s != StatusReplacement
	}
	switch s {
	case StatusProcessing:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// OrderItem is a single purchased line belonging to exactly one order.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Color     string          `json:"color"`
}

// OrderContact holds the customer contact fields of an order header. It is
// the unit of administrative correction.
type OrderContact struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Pincode       string `json:"pincode" validate:"required"`
	Country       string `json:"country"`
}

// Order is a placed order header. Items are created atomically with the
// header and are owned exclusively by it.
type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date           time.Time       `json:"date"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20)"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	Shipping       decimal.Decimal `json:"shipping" gorm:"type:decimal(10,2)"`
	Tax            decimal.Decimal `json:"tax" gorm:"type:decimal(10,2)"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	TrackingNumber string          `json:"tracking_number"`
	DeliveryDate   *time.Time      `json:"delivery_date"`
	Notes          string          `json:"notes"`
	OrderContact `gorm:"embedded"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}
