package handlers

import (
	"fmt"
	"log"
	"strings"

	"tamaravastra/internal/models"
	"tamaravastra/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order tracking, replacement
// requests, and the admin order console.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/track", h.HandleTrackByPhone)
	orders.Get("/:id", h.HandleGetOrder)
	orders.Post("/:id/replacement", h.HandleRequestReplacement)
}

// RegisterAdminRoutes registers the order management routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Get("/:id", h.HandleGetOrder)
	orders.Patch("/:id/status", h.HandleUpdateStatus)
	orders.Patch("/:id/contact", h.HandleUpdateContact)
}

// HandleTrackByPhone retrieves a customer's orders by phone number.
func (h *OrderHandler) HandleTrackByPhone(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "phone query parameter is required",
		})
	}

	orders, err := h.service.FindOrdersByPhone(phone)
	if err != nil {
		log.Printf("Error tracking orders by phone: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order with its items.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if err.Error() == fmt.Sprintf("order with ID %s not found", orderID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleRequestReplacement is the customer path into the replacement state.
func (h *OrderHandler) HandleRequestReplacement(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.service.RequestReplacement(orderID); err != nil {
		log.Printf("Error requesting replacement for order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		if strings.Contains(err.Error(), "cannot transition") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not request replacement",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Replacement requested for order %s", orderID),
	})
}

// HandleListOrders lists recent orders with item counts for the admin
// console.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	orders, err := h.service.GetAllOrders(limit)
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleUpdateStatus moves an order along the fulfilment state machine.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status models.OrderStatus `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order update failed: %v", err.Error()),
			})
		}
		if strings.Contains(err.Error(), "invalid order status") ||
			strings.Contains(err.Error(), "cannot transition") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}

// HandleUpdateContact administratively corrects an order's contact fields.
func (h *OrderHandler) HandleUpdateContact(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var contact models.OrderContact
	if err := c.BodyParser(&contact); err != nil {
		log.Printf("Error parsing contact body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(contact); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateOrderContact(orderID, contact); err != nil {
		log.Printf("Error updating contact for order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order contact",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s contact updated successfully", orderID),
	})
}
