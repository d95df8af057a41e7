package handlers

import (
	"fmt"
	"log"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes the session cart. The aggregate lives server-side,
// keyed by the session cookie, and persists itself best-effort after every
// mutation.
type CartHandler struct {
	carts    *cart.Manager
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Manager, catalog *services.CatalogService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items", h.HandleSetQuantity)
	cartRoutes.Delete("/items", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func (h *CartHandler) cartResponse(c *fiber.Ctx, sessionCart *cart.Cart) error {
	return c.JSON(fiber.Map{
		"items":       sessionCart.Lines(),
		"total_items": sessionCart.TotalItems(),
		"total_price": sessionCart.TotalPrice(),
	})
}

// HandleGetCart returns the session's cart lines and derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return h.cartResponse(c, h.carts.Open(sessionID(c)))
}

// AddItemRequest identifies the product variant to add. Price, name, image
// and the stock ceiling are resolved from the catalogue server-side.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// HandleAddItem puts one unit of a product variant into the cart. Hitting
// the stock ceiling is reported but is not a failure of the cart itself.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	product, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		log.Printf("Error resolving product %s for cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", req.ProductID),
		})
	}

	sessionCart := h.carts.Open(sessionID(c))
	if err := sessionCart.Add(product.ID, product.Name, product.Price, product.Image, req.Color, product.Stock); err != nil {
		if err == cart.ErrMaxStock {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Maximum stock reached",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return h.cartResponse(c, sessionCart)
}

// SetQuantityRequest carries a quantity update for one cart line.
type SetQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// HandleSetQuantity stores a requested quantity, silently clamped into the
// valid range for the line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set-quantity body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	sessionCart := h.carts.Open(sessionID(c))
	sessionCart.SetQuantity(req.ProductID, req.Color, req.Quantity)
	return h.cartResponse(c, sessionCart)
}

// HandleRemoveItem deletes a cart line. Removing an absent line succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	color := c.Query("color")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	sessionCart := h.carts.Open(sessionID(c))
	sessionCart.Remove(productID, color)
	return h.cartResponse(c, sessionCart)
}

// HandleClearCart empties the session cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	sessionCart := h.carts.Open(sessionID(c))
	sessionCart.Clear()
	return h.cartResponse(c, sessionCart)
}
