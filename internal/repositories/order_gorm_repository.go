package repositories

import (
	"fmt"
	"time"

	"tamaravastra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create stores the order header and all its items in a single transaction.
// If any item write fails the header is rolled back with it.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			order.Items = items
			return err
		}
		order.Items = items
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetAll retrieves up to limit orders, newest first.
func (r *GORMOrderRepository) GetAll(limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetItems retrieves the line items of an order.
func (r *GORMOrderRepository) GetItems(orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Find(&items, "order_id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for order %s: %w", orderID, err)
	}
	return items, nil
}

// CountItems returns the number of line items on an order.
func (r *GORMOrderRepository) CountItems(orderID string) (int, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items for order %s: %w", orderID, err)
	}
	return int(count), nil
}

// UpdateStatus updates the status field of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	return nil
}

// MarkReplacement moves an order into the replacement state, which also marks
// the payment for replacement handling.
func (r *GORMOrderRepository) MarkReplacement(id string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.StatusReplacement,
		"payment_status": string(models.StatusReplacement),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order for replacement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for replacement", id)
	}
	return nil
}

// UpdateContact corrects the customer contact fields on an order header.
func (r *GORMOrderRepository) UpdateContact(id string, contact models.OrderContact) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"customer_name":  contact.CustomerName,
		"customer_email": contact.CustomerEmail,
		"customer_phone": contact.CustomerPhone,
		"address":        contact.Address,
		"city":           contact.City,
		"state":          contact.State,
		"pincode":        contact.Pincode,
		"country":        contact.Country,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update order contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for contact update", id)
	}
	return nil
}

// GetByPhoneExact retrieves orders whose stored phone equals phone, newest
// first.
func (r *GORMOrderRepository) GetByPhoneExact(phone string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("customer_phone = ?", phone).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders by phone: %w", err)
	}
	return orders, nil
}

// GetByPhonePrefixed retrieves orders stored with the +91 country prefix.
func (r *GORMOrderRepository) GetByPhonePrefixed(phone string) ([]models.Order, error) {
	return r.GetByPhoneExact("+91" + phone)
}

// GetByPhoneSuffix retrieves orders whose stored phone ends with phone.
// Historical records were written in mixed formats, hence the suffix match.
func (r *GORMOrderRepository) GetByPhoneSuffix(phone string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("customer_phone LIKE ?", "%"+phone).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders by phone suffix: %w", err)
	}
	return orders, nil
}

// HasPurchase reports whether any order matching the email or phone contains
// the given product. Used to mark reviews as verified.
func (r *GORMOrderRepository) HasPurchase(email, phone, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ?", productID).
		Where("orders.customer_email = ? OR orders.customer_phone = ?", email, phone).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase history: %w", err)
	}
	return count > 0, nil
}
