package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType determines how a coupon's value is applied to a subtotal.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a discount code managed from the admin console. Codes are stored
// upper-case and matched exactly.
type Coupon struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code          string          `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=2,max=50"`
	DiscountType  DiscountType    `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:decimal(10,2)" validate:"required"`
	MinCartItems  int             `json:"min_cart_items" validate:"gte=0"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

var oneHundred = decimal.NewFromInt(100)

// DiscountAmount computes the rupee discount this coupon grants on the given
// subtotal. Percentage coupons take discount_value percent of the subtotal;
// fixed coupons take discount_value outright. The result is not clamped here;
// callers floor the payable total at zero.
func (c *Coupon) DiscountAmount(subtotal decimal.Decimal) decimal.Decimal {
	if c.DiscountType == DiscountPercentage {
		return subtotal.Mul(c.DiscountValue).Div(oneHundred)
	}
	return c.DiscountValue
}
