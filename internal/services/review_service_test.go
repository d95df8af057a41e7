package services_test

import (
	"testing"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
	"tamaravastra/internal/services"

	"github.com/stretchr/testify/assert"
)

func newReviewFixture() (*services.ReviewService, *repositories.MockReviewRepository, *repositories.MockOrderRepository) {
	reviewRepo := repositories.NewMockReviewRepository()
	orderRepo := repositories.NewMockOrderRepository()
	return services.NewReviewService(reviewRepo, orderRepo), reviewRepo, orderRepo
}

func addRating(t *testing.T, repo *repositories.MockReviewRepository, productID string, rating int) {
	t.Helper()
	assert.NoError(t, repo.Create(&models.Review{
		ProductID:     productID,
		ReviewerName:  "Asha",
		ReviewerEmail: "asha@example.com",
		Rating:        rating,
		Title:         "Review",
		Text:          "Review text",
	}))
}

func TestReviewService_AverageRating(t *testing.T) {
	service, reviewRepo, _ := newReviewFixture()

	addRating(t, reviewRepo, "saree-1", 4)
	addRating(t, reviewRepo, "saree-1", 5)

	avg, err := service.AverageRating("saree-1")
	assert.NoError(t, err)
	assert.Equal(t, 4.5, avg)
}

func TestReviewService_AverageRatingRoundsToOneDecimal(t *testing.T) {
	service, reviewRepo, _ := newReviewFixture()

	// 11/3 = 3.666... rounds to 3.7.
	addRating(t, reviewRepo, "saree-1", 3)
	addRating(t, reviewRepo, "saree-1", 4)
	addRating(t, reviewRepo, "saree-1", 4)

	avg, err := service.AverageRating("saree-1")
	assert.NoError(t, err)
	assert.Equal(t, 3.7, avg)
}

func TestReviewService_AverageRatingNoReviews(t *testing.T) {
	service, _, _ := newReviewFixture()

	avg, err := service.AverageRating("saree-1")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestReviewService_RatingDistribution(t *testing.T) {
	service, reviewRepo, _ := newReviewFixture()

	addRating(t, reviewRepo, "saree-1", 5)
	addRating(t, reviewRepo, "saree-1", 5)
	addRating(t, reviewRepo, "saree-1", 3)
	addRating(t, reviewRepo, "saree-2", 1) // other product, excluded

	distribution, err := service.RatingDistribution("saree-1")
	assert.NoError(t, err)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}, distribution)
}

func TestReviewService_AddReviewRejectsBadRating(t *testing.T) {
	service, _, _ := newReviewFixture()

	for _, rating := range []int{0, -1, 6} {
		err := service.AddReview(&models.Review{ProductID: "saree-1", Rating: rating})
		assert.Error(t, err, "rating %d", rating)
		assert.Contains(t, err.Error(), "between 1 and 5")
	}
}

func TestReviewService_AddReviewVerifiedPurchaser(t *testing.T) {
	service, _, orderRepo := newReviewFixture()

	assert.NoError(t, orderRepo.Create(&models.Order{
		OrderContact: models.OrderContact{
			CustomerEmail: "priya@example.com",
			CustomerPhone: "9876543210",
		},
		Status: models.StatusDelivered,
		Items: []models.OrderItem{
			{ProductID: "saree-1", Name: "Silk Saree", Quantity: 1},
		},
	}))

	review := &models.Review{
		ProductID:     "saree-1",
		ReviewerName:  "Priya",
		ReviewerEmail: "priya@example.com",
		Rating:        5,
		Title:         "Beautiful",
		Text:          "Exactly as pictured.",
	}
	assert.NoError(t, service.AddReview(review))
	assert.True(t, review.Verified)
	assert.False(t, review.Date.IsZero())
}

func TestReviewService_AddReviewVerifiedByPhone(t *testing.T) {
	service, _, orderRepo := newReviewFixture()

	assert.NoError(t, orderRepo.Create(&models.Order{
		OrderContact: models.OrderContact{
			CustomerEmail: "other@example.com",
			CustomerPhone: "9876543210",
		},
		Status: models.StatusDelivered,
		Items:  []models.OrderItem{{ProductID: "saree-1", Name: "Silk Saree", Quantity: 1}},
	}))

	review := &models.Review{
		ProductID:     "saree-1",
		ReviewerName:  "Priya",
		ReviewerEmail: "priya@example.com",
		ReviewerPhone: "9876543210",
		Rating:        4,
		Title:         "Nice",
		Text:          "Good fabric.",
	}
	assert.NoError(t, service.AddReview(review))
	assert.True(t, review.Verified)
}

func TestReviewService_AddReviewUnverifiedWithoutPurchase(t *testing.T) {
	service, _, orderRepo := newReviewFixture()

	// A purchase of a different product does not verify this review.
	assert.NoError(t, orderRepo.Create(&models.Order{
		OrderContact: models.OrderContact{CustomerEmail: "priya@example.com"},
		Status:       models.StatusDelivered,
		Items:        []models.OrderItem{{ProductID: "saree-2", Name: "Cotton Saree", Quantity: 1}},
	}))

	review := &models.Review{
		ProductID:     "saree-1",
		ReviewerName:  "Priya",
		ReviewerEmail: "priya@example.com",
		Rating:        3,
		Title:         "Okay",
		Text:          "Decent.",
	}
	assert.NoError(t, service.AddReview(review))
	assert.False(t, review.Verified)
}

func TestReviewService_GetProductReviews(t *testing.T) {
	service, reviewRepo, _ := newReviewFixture()

	addRating(t, reviewRepo, "saree-1", 5)
	addRating(t, reviewRepo, "saree-1", 4)
	addRating(t, reviewRepo, "saree-2", 2)

	reviews, err := service.GetProductReviews("saree-1")
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
}
