package repositories

import (
	"tamaravastra/internal/models"
)

// OrderRepository defines the interface for order data access. Create stores
// the header and all its items atomically: an order must never half-exist.
type OrderRepository interface {
	Create(order *models.Order) error
	GetAll(limit int) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetItems(orderID string) ([]models.OrderItem, error)
	CountItems(orderID string) (int, error)
	UpdateStatus(id string, status models.OrderStatus) error
	MarkReplacement(id string) error
	UpdateContact(id string, contact models.OrderContact) error
	GetByPhoneExact(phone string) ([]models.Order, error)
	GetByPhonePrefixed(phone string) ([]models.Order, error)
	GetByPhoneSuffix(phone string) ([]models.Order, error)
	HasPurchase(email, phone, productID string) (bool, error)
}
