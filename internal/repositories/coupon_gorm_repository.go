package repositories

import (
	"fmt"
	"tamaravastra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCouponRepository is a GORM implementation of CouponRepository.
type GORMCouponRepository struct {
	db *gorm.DB
}

// NewGORMCouponRepository creates a new instance of GORMCouponRepository.
func NewGORMCouponRepository(db *gorm.DB) *GORMCouponRepository {
	return &GORMCouponRepository{
		db: db,
	}
}

// GetAll retrieves all coupons, newest first.
func (r *GORMCouponRepository) GetAll() ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to get all coupons: %w", err)
	}
	return coupons, nil
}

// GetActiveByCode retrieves an active coupon by exact code match. Inactive or
// unknown codes return ErrCouponNotFound.
func (r *GORMCouponRepository) GetActiveByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, "code = ? AND is_active = ?", code, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon by code %s: %w", code, err)
	}
	return &coupon, nil
}

// Create creates a new coupon in the database.
func (r *GORMCouponRepository) Create(coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := r.db.Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// Delete deletes a coupon by its ID from the database.
func (r *GORMCouponRepository) Delete(id string) error {
	res := r.db.Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("coupon with ID %s not found for deletion", id)
	}
	return nil
}
