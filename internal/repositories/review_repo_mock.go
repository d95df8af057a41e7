package repositories

import (
	"sort"
	"sync"
	"time"

	"tamaravastra/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// GetByProduct returns all reviews for a product, newest first.
func (r *MockReviewRepository) GetByProduct(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviewList []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviewList = append(reviewList, review)
		}
	}
	sort.Slice(reviewList, func(i, j int) bool {
		return reviewList[i].Date.After(reviewList[j].Date)
	})
	return reviewList, nil
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}
	r.reviews[review.ID] = *review
	return nil
}
