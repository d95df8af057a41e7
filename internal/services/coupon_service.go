package services

import (
	"fmt"
	"log"
	"strings"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
)

// CouponService evaluates discount codes against the cart and backs the
// admin coupon console.
type CouponService struct {
	repo repositories.CouponRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repositories.CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

// CouponResult is the outcome of evaluating a code. When Valid is false,
// Message carries the user-facing reason.
type CouponResult struct {
	Valid   bool           `json:"valid"`
	Coupon  *models.Coupon `json:"coupon,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Evaluate validates a coupon code against the current cart item count.
// Codes are matched upper-case against active coupons only. Lookup failures
// of any kind collapse to the same "Invalid coupon code" answer so the
// response does not leak which codes exist.
func (s *CouponService) Evaluate(code string, cartItemCount int) CouponResult {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return CouponResult{Valid: false, Message: "Invalid coupon code"}
	}

	coupon, err := s.repo.GetActiveByCode(normalized)
	if err != nil {
		if err != repositories.ErrCouponNotFound {
			log.Printf("Coupon lookup failed for code %s: %v", normalized, err)
		}
		return CouponResult{Valid: false, Message: "Invalid coupon code"}
	}

	if cartItemCount < coupon.MinCartItems {
		return CouponResult{
			Valid:   false,
			Message: fmt.Sprintf("Minimum %d items required in cart", coupon.MinCartItems),
		}
	}

	return CouponResult{Valid: true, Coupon: coupon}
}

// GetAllCoupons retrieves all coupons for the admin console.
func (s *CouponService) GetAllCoupons() ([]models.Coupon, error) {
	return s.repo.GetAll()
}

// CreateCoupon stores a new coupon. The code is normalized upper-case before
// saving so evaluation can match exactly.
func (s *CouponService) CreateCoupon(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if coupon.DiscountValue.IsNegative() {
		return fmt.Errorf("discount value must not be negative")
	}
	return s.repo.Create(coupon)
}

// DeleteCoupon removes a coupon by its ID.
func (s *CouponService) DeleteCoupon(id string) error {
	return s.repo.Delete(id)
}
