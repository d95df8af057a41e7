package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tamaravastra/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex

	// FailCreate forces Create to report a collaborator failure, for
	// exercising the checkout error path in tests.
	FailCreate bool
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores the order with its items. The in-memory map write is atomic
// by construction.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		return fmt.Errorf("failed to create order: storage unavailable")
	}
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
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetAll returns up to limit orders, newest first.
func (r *MockOrderRepository) GetAll(limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].Date.After(orderList[j].Date)
	})
	if limit > 0 && len(orderList) > limit {
		orderList = orderList[:limit]
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// GetItems returns the line items of an order.
func (r *MockOrderRepository) GetItems(orderID string) ([]models.OrderItem, error) {
	order, err := r.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	return order.Items, nil
}

// CountItems returns the number of line items on an order.
func (r *MockOrderRepository) CountItems(orderID string) (int, error) {
	order, err := r.GetByID(orderID)
	if err != nil {
		return 0, err
	}
	return len(order.Items), nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// MarkReplacement moves an order into the replacement state.
func (r *MockOrderRepository) MarkReplacement(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for replacement", id)
	}
	order.Status = models.StatusReplacement
	order.PaymentStatus = string(models.StatusReplacement)
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdateContact corrects the contact fields of an order.
func (r *MockOrderRepository) UpdateContact(id string, contact models.OrderContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for contact update", id)
	}
	order.OrderContact = contact
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// GetByPhoneExact returns orders whose stored phone equals phone.
func (r *MockOrderRepository) GetByPhoneExact(phone string) ([]models.Order, error) {
	return r.filterByPhone(func(stored string) bool { return stored == phone })
}

// GetByPhonePrefixed returns orders stored with the +91 country prefix.
func (r *MockOrderRepository) GetByPhonePrefixed(phone string) ([]models.Order, error) {
	return r.GetByPhoneExact("+91" + phone)
}

// GetByPhoneSuffix returns orders whose stored phone ends with phone.
func (r *MockOrderRepository) GetByPhoneSuffix(phone string) ([]models.Order, error) {
	return r.filterByPhone(func(stored string) bool { return strings.HasSuffix(stored, phone) })
}

func (r *MockOrderRepository) filterByPhone(match func(string) bool) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if match(order.CustomerPhone) {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].Date.After(orderList[j].Date)
	})
	return orderList, nil
}

// HasPurchase reports whether any order matching the email or phone contains
// the product.
func (r *MockOrderRepository) HasPurchase(email, phone, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.CustomerEmail != email && order.CustomerPhone != phone {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
