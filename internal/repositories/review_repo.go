package repositories

import (
	"tamaravastra/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProduct(productID string) ([]models.Review, error)
	Create(review *models.Review) error
}
