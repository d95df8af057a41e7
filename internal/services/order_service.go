package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
)

// OrderService handles order management after placement: listing, status
// transitions, replacement requests, contact corrections and tracking
// lookups by phone number.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// OrderSummary is an order header plus its item count, as shown in the admin
// order list.
type OrderSummary struct {
	models.Order
	ItemCount int `json:"item_count"`
}

// GetAllOrders retrieves up to limit orders with their item counts. The
// per-order count lookups are issued concurrently and joined before
// returning; their relative order does not matter.
func (s *OrderService) GetAllOrders(limit int) ([]OrderSummary, error) {
	orders, err := s.orderRepo.GetAll(limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, len(orders))
	var wg sync.WaitGroup
	for i := range orders {
		summaries[i].Order = orders[i]
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			count, err := s.orderRepo.CountItems(orders[i].ID)
			if err != nil {
				log.Printf("Failed to count items for order %s: %v", orders[i].ID, err)
				return
			}
			summaries[i].ItemCount = count
		}(i)
	}
	wg.Wait()

	return summaries, nil
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus moves an order along the fulfilment state machine.
// Transitions outside Processing -> Shipped -> Delivered (plus Replacement
// from any state) are rejected.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("cannot transition order %s from %s to %s", id, order.Status, status)
	}

	if status == models.StatusReplacement {
		err = s.orderRepo.MarkReplacement(id)
	} else {
		err = s.orderRepo.UpdateStatus(id, status)
	}
	if err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishStatusUpdated(id, status)
	return nil
}

// RequestReplacement is the customer-triggered path into the replacement
// state. It also marks the payment status for replacement handling.
func (s *OrderService) RequestReplacement(id string) error {
	return s.UpdateOrderStatus(id, models.StatusReplacement)
}

// UpdateOrderContact administratively corrects the customer contact fields.
func (s *OrderService) UpdateOrderContact(id string, contact models.OrderContact) error {
	if err := s.orderRepo.UpdateContact(id, contact); err != nil {
		return fmt.Errorf("failed to update contact for order %s: %w", id, err)
	}
	return nil
}

// NormalizePhone strips all non-digit characters and, when the result starts
// with the 91 country calling code and is longer than a national number,
// keeps the last 10 digits.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > 10 && strings.HasPrefix(d, "91") {
		return d[len(d)-10:]
	}
	return d
}

// FindOrdersByPhone looks up orders by customer phone. Historical records
// were written in mixed phone formats, so the lookup walks a fallback chain:
// exact match on the normalized number, then exact match with the +91 prefix,
// then a suffix match. The first stage returning rows wins.
func (s *OrderService) FindOrdersByPhone(rawPhone string) ([]models.Order, error) {
	phone := NormalizePhone(rawPhone)
	if phone == "" {
		return nil, fmt.Errorf("phone number is required")
	}

	orders, err := s.orderRepo.GetByPhoneExact(phone)
	if err == nil && len(orders) > 0 {
		return orders, nil
	}
	if err != nil {
		log.Printf("Exact phone lookup failed for %s: %v", phone, err)
	}

	orders, err = s.orderRepo.GetByPhonePrefixed(phone)
	if err == nil && len(orders) > 0 {
		return orders, nil
	}
	if err != nil {
		log.Printf("Prefixed phone lookup failed for %s: %v", phone, err)
	}

	orders, err = s.orderRepo.GetByPhoneSuffix(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up orders by phone: %w", err)
	}
	return orders, nil
}

func (s *OrderService) publishStatusUpdated(id string, status models.OrderStatus) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": id,
		"status":  status,
	})
	if err != nil {
		log.Printf("Failed to marshal status event to JSON: %v", err)
		return
	}
	if err := s.events.Publish("order.status_updated", body); err != nil {
		log.Printf("Warning: Failed to publish status update event for order %s: %v", id, err)
	}
}
