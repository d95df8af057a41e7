package repositories

import (
	"errors"

	"tamaravastra/internal/models"
)

// ErrCouponNotFound is returned when no active coupon matches a code.
var ErrCouponNotFound = errors.New("coupon not found")

// CouponRepository defines the interface for coupon data access. The coupon
// evaluator only reads; creation and deletion belong to the admin console.
type CouponRepository interface {
	GetAll() ([]models.Coupon, error)
	GetActiveByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	Delete(id string) error
}
