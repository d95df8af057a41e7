package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
)

// ReviewService handles product reviews and rating aggregates.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	orderRepo  repositories.OrderRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, orderRepo repositories.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// GetProductReviews retrieves all reviews for a product.
func (s *ReviewService) GetProductReviews(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProduct(productID)
}

// AverageRating returns the mean rating for a product rounded to one decimal
// place, or 0 when the product has no reviews.
func (s *ReviewService) AverageRating(productID string) (float64, error) {
	reviews, err := s.reviewRepo.GetByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, nil
}

// RatingDistribution returns the count of reviews per star value, 1 through
// 5, for a product.
func (s *ReviewService) RatingDistribution(productID string) (map[int]int, error) {
	reviews, err := s.reviewRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			distribution[r.Rating]++
		}
	}
	return distribution, nil
}

// AddReview stores a new review. The rating must be 1 to 5; a zero rating is
// a validation failure. The review is marked verified when the reviewer's
// email or phone matches a past order containing the product.
func (s *ReviewService) AddReview(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	verified, err := s.orderRepo.HasPurchase(review.ReviewerEmail, review.ReviewerPhone, review.ProductID)
	if err != nil {
		// A failed verification lookup downgrades the review to
		// unverified rather than blocking submission.
		log.Printf("Purchase verification failed for product %s: %v", review.ProductID, err)
		verified = false
	}
	review.Verified = verified

	if err := s.reviewRepo.Create(review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}
