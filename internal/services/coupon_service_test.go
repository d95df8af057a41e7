package services_test

import (
	"testing"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
	"tamaravastra/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedCoupon(t *testing.T, repo *repositories.MockCouponRepository, coupon models.Coupon) models.Coupon {
	t.Helper()
	assert.NoError(t, repo.Create(&coupon))
	return coupon
}

func TestCouponService_EvaluateUnknownCode(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	result := service.Evaluate("NOSUCHCODE", 3)
	assert.False(t, result.Valid)
	assert.Nil(t, result.Coupon)
	assert.Equal(t, "Invalid coupon code", result.Message)
}

func TestCouponService_EvaluateInactiveCode(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	seedCoupon(t, repo, models.Coupon{
		Code:          "EXPIRED20",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(20),
		IsActive:      false,
	})

	// An inactive coupon is indistinguishable from an unknown one.
	result := service.Evaluate("EXPIRED20", 3)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid coupon code", result.Message)
}

func TestCouponService_EvaluateEmptyCode(t *testing.T) {
	service := services.NewCouponService(repositories.NewMockCouponRepository())

	result := service.Evaluate("   ", 3)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid coupon code", result.Message)
}

func TestCouponService_EvaluateMinimumItems(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	seedCoupon(t, repo, models.Coupon{
		Code:          "BULK3",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(15),
		MinCartItems:  3,
		IsActive:      true,
	})

	// Two items in the cart is one short.
	result := service.Evaluate("BULK3", 2)
	assert.False(t, result.Valid)
	assert.Equal(t, "Minimum 3 items required in cart", result.Message)

	// Exactly at the threshold qualifies.
	result = service.Evaluate("BULK3", 3)
	assert.True(t, result.Valid)
	assert.NotNil(t, result.Coupon)
	assert.Equal(t, "BULK3", result.Coupon.Code)
}

func TestCouponService_EvaluateNormalizesCase(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	seedCoupon(t, repo, models.Coupon{
		Code:          "FESTIVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})

	result := service.Evaluate("  festive10 ", 1)
	assert.True(t, result.Valid)
	assert.Equal(t, "FESTIVE10", result.Coupon.Code)
}

func TestCoupon_DiscountAmountPercentage(t *testing.T) {
	coupon := models.Coupon{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(25),
	}

	discount := coupon.DiscountAmount(decimal.NewFromInt(10000))
	assert.True(t, discount.Equal(decimal.NewFromInt(2500)), "got %s", discount)
}

func TestCoupon_DiscountAmountFixed(t *testing.T) {
	coupon := models.Coupon{
		DiscountType:  models.DiscountFixed,
		DiscountValue: decimal.NewFromInt(500),
	}

	// A fixed discount ignores the subtotal entirely.
	discount := coupon.DiscountAmount(decimal.NewFromInt(300))
	assert.True(t, discount.Equal(decimal.NewFromInt(500)), "got %s", discount)
}

func TestCouponService_CreateCouponNormalizesCode(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	coupon := &models.Coupon{
		Code:          " welcome5 ",
		DiscountType:  models.DiscountFixed,
		DiscountValue: decimal.NewFromInt(500),
		IsActive:      true,
	}
	assert.NoError(t, service.CreateCoupon(coupon))
	assert.Equal(t, "WELCOME5", coupon.Code)

	result := service.Evaluate("welcome5", 1)
	assert.True(t, result.Valid)
}

func TestCouponService_CreateCouponRejectsBadInput(t *testing.T) {
	service := services.NewCouponService(repositories.NewMockCouponRepository())

	err := service.CreateCoupon(&models.Coupon{Code: "  "})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")

	err = service.CreateCoupon(&models.Coupon{
		Code:          "NEG",
		DiscountType:  models.DiscountFixed,
		DiscountValue: decimal.NewFromInt(-100),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestCouponService_DeleteCoupon(t *testing.T) {
	repo := repositories.NewMockCouponRepository()
	service := services.NewCouponService(repo)

	coupon := seedCoupon(t, repo, models.Coupon{
		Code:          "GONE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: decimal.NewFromInt(100),
		IsActive:      true,
	})

	assert.NoError(t, service.DeleteCoupon(coupon.ID))

	err := service.DeleteCoupon(coupon.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
