package repositories

import (
	"fmt"
	"sync"
	"tamaravastra/internal/models"

	"github.com/google/uuid"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	coupons map[string]models.Coupon
	mu      sync.RWMutex
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[string]models.Coupon),
	}
}

// GetAll returns all coupons.
func (r *MockCouponRepository) GetAll() ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	couponList := make([]models.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		couponList = append(couponList, c)
	}
	return couponList, nil
}

// GetActiveByCode returns an active coupon matching the code exactly.
func (r *MockCouponRepository) GetActiveByCode(code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.coupons {
		if c.Code == code && c.IsActive {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, ErrCouponNotFound
}

// Create adds a new coupon.
func (r *MockCouponRepository) Create(coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Delete removes a coupon by its ID.
func (r *MockCouponRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.coupons[id]
	if !ok {
		return fmt.Errorf("coupon with ID %s not found for deletion", id)
	}
	delete(r.coupons, id)
	return nil
}
