package handlers

import (
	"log"

	"tamaravastra/internal/models"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleGetReviews)
	router.Post("/products/:id/reviews", h.HandleAddReview)
}

// HandleGetReviews returns a product's reviews with the rating aggregates.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	productID := c.Params("id")

	reviews, err := h.service.GetProductReviews(productID)
	if err != nil {
		log.Printf("Error getting reviews for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}

	average, err := h.service.AverageRating(productID)
	if err != nil {
		log.Printf("Error computing average rating for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute rating",
			"error":   err.Error(),
		})
	}

	distribution, err := h.service.RatingDistribution(productID)
	if err != nil {
		log.Printf("Error computing rating distribution for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute rating distribution",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"reviews":      reviews,
		"average":      average,
		"distribution": distribution,
	})
}

// HandleAddReview stores a new review for a product. A zero or out-of-range
// rating is a validation failure surfaced inline.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	review.ProductID = c.Params("id")

	if err := h.validate.Struct(review); err != nil {
		return validationError(c, err)
	}

	if err := h.service.AddReview(&review); err != nil {
		log.Printf("Error adding review for product %s: %v", review.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
