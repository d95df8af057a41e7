package handlers

import (
	"fmt"
	"log"
	"strings"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/models"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles HTTP requests for the saree catalogue.
type CatalogHandler struct {
	service    *services.CatalogService
	storageDir string
	validate   *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler. storageDir is where
// per-session search history is kept.
func NewCatalogHandler(service *services.CatalogService, storageDir string) *CatalogHandler {
	return &CatalogHandler{
		service:    service,
		storageDir: storageDir,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the public catalogue routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/bestsellers", h.HandleBestsellers)
	products.Get("/search", h.HandleSearch)
	products.Get("/:id", h.HandleGetProduct)
}

// RegisterAdminRoutes registers the catalogue management routes.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists products, optionally filtered by category and a
// maximum price.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	var maxPrice *decimal.Decimal
	if raw := c.Query("max_price"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid max_price value",
			})
		}
		maxPrice = &parsed
	}

	products, err := h.service.FilterProducts(category, maxPrice)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleBestsellers lists the bestseller products.
func (h *CatalogHandler) HandleBestsellers(c *fiber.Ctx) error {
	products, err := h.service.GetBestsellers()
	if err != nil {
		log.Printf("Error listing bestsellers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve bestsellers",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleSearch searches the catalogue and records the query in the session's
// recent-search history.
func (h *CatalogHandler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	products, err := h.service.SearchProducts(query)
	if err != nil {
		log.Printf("Error searching products for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search products",
			"error":   err.Error(),
		})
	}

	history := cart.NewSearchHistory(h.storageDir, sessionID(c))
	history.Add(query)

	return c.JSON(fiber.Map{
		"products":        products,
		"recent_searches": history.Queries(),
	})
}

// HandleGetProduct retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		if err.Error() == fmt.Sprintf("product with ID %s not found", productID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", product.ID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}
