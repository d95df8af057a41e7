package services_test

import (
	"testing"
	"time"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
	"tamaravastra/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedOrder(t *testing.T, repo *repositories.MockOrderRepository, order models.Order) models.Order {
	t.Helper()
	assert.NoError(t, repo.Create(&order))
	return order
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "9876543210", want: "9876543210"},
		{raw: "+91 98765 43210", want: "9876543210"},
		{raw: "919876543210", want: "9876543210"},
		{raw: "098-765-43210", want: "09876543210"},
		{raw: "91234", want: "91234"}, // short numbers starting with 91 are untouched
		{raw: "abc", want: ""},
		{raw: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.NormalizePhone(tt.raw), "NormalizePhone(%q)", tt.raw)
	}
}

func TestOrderService_UpdateOrderStatusForwardChain(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order := seedOrder(t, repo, models.Order{Status: models.StatusProcessing})

	assert.NoError(t, service.UpdateOrderStatus(order.ID, models.StatusShipped))
	assert.NoError(t, service.UpdateOrderStatus(order.ID, models.StatusDelivered))

	stored, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestOrderService_UpdateOrderStatusRejectsSkips(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order := seedOrder(t, repo, models.Order{Status: models.StatusProcessing})

	// Processing straight to Delivered skips Shipped.
	err := service.UpdateOrderStatus(order.ID, models.StatusDelivered)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	// No moving backwards either.
	assert.NoError(t, service.UpdateOrderStatus(order.ID, models.StatusShipped))
	err = service.UpdateOrderStatus(order.ID, models.StatusProcessing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
}

func TestOrderService_UpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order := seedOrder(t, repo, models.Order{Status: models.StatusProcessing})

	err := service.UpdateOrderStatus(order.ID, models.OrderStatus("Cancelled"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestOrderService_UpdateOrderStatusUnknownOrder(t *testing.T) {
	service := services.NewOrderService(repositories.NewMockOrderRepository(), nil)

	err := service.UpdateOrderStatus("no-such-order", models.StatusShipped)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_ReplacementReachableFromAnyState(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	for _, start := range []models.OrderStatus{
		models.StatusProcessing,
		models.StatusShipped,
		models.StatusDelivered,
	} {
		order := seedOrder(t, repo, models.Order{Status: start})
		assert.NoError(t, service.RequestReplacement(order.ID), "from %s", start)

		stored, err := repo.GetByID(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusReplacement, stored.Status)
		assert.Equal(t, "Replacement", stored.PaymentStatus)
	}
}

func TestOrderService_ReplacementIsTerminal(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order := seedOrder(t, repo, models.Order{Status: models.StatusReplacement})

	err := service.RequestReplacement(order.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	err = service.UpdateOrderStatus(order.ID, models.StatusShipped)
	assert.Error(t, err)
}

func TestOrderService_StatusUpdatePublishesEvent(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	publisher := &recordingPublisher{}
	service := services.NewOrderService(repo, publisher)

	order := seedOrder(t, repo, models.Order{Status: models.StatusProcessing})
	assert.NoError(t, service.UpdateOrderStatus(order.ID, models.StatusShipped))
	assert.Equal(t, []string{"order.status_updated"}, publisher.events)
}

func TestOrderService_FindOrdersByPhoneExact(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	seedOrder(t, repo, models.Order{
		OrderContact: models.OrderContact{CustomerPhone: "9876543210"},
		Status:       models.StatusProcessing,
	})

	orders, err := service.FindOrdersByPhone("+91 98765 43210")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "9876543210", orders[0].CustomerPhone)
}

func TestOrderService_FindOrdersByPhonePrefixedFallback(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	// Stored with the +91 prefix, so the exact stage misses.
	seedOrder(t, repo, models.Order{
		OrderContact: models.OrderContact{CustomerPhone: "+919876543210"},
		Status:       models.StatusProcessing,
	})

	orders, err := service.FindOrdersByPhone("9876543210")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_FindOrdersByPhoneSuffixFallback(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	// A legacy record with a leading zero matches only by suffix.
	seedOrder(t, repo, models.Order{
		OrderContact: models.OrderContact{CustomerPhone: "09876543210"},
		Status:       models.StatusProcessing,
	})

	orders, err := service.FindOrdersByPhone("9876543210")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_FindOrdersByPhoneNoMatch(t *testing.T) {
	service := services.NewOrderService(repositories.NewMockOrderRepository(), nil)

	orders, err := service.FindOrdersByPhone("9876543210")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_FindOrdersByPhoneRequiresDigits(t *testing.T) {
	service := services.NewOrderService(repositories.NewMockOrderRepository(), nil)

	_, err := service.FindOrdersByPhone("not a number")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "phone number is required")
}

func TestOrderService_GetAllOrdersWithItemCounts(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	seedOrder(t, repo, models.Order{
		Date:   time.Now().Add(-time.Hour),
		Status: models.StatusProcessing,
		Items: []models.OrderItem{
			{ProductID: "saree-1", Name: "Silk", Quantity: 1},
			{ProductID: "saree-2", Name: "Cotton", Quantity: 2},
		},
	})
	seedOrder(t, repo, models.Order{
		Date:   time.Now(),
		Status: models.StatusShipped,
		Items: []models.OrderItem{
			{ProductID: "saree-3", Name: "Georgette", Quantity: 1},
		},
	})

	summaries, err := service.GetAllOrders(10)
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	// Newest first.
	assert.Equal(t, models.StatusShipped, summaries[0].Status)
	assert.Equal(t, 1, summaries[0].ItemCount)
	assert.Equal(t, 2, summaries[1].ItemCount)
}

func TestOrderService_GetAllOrdersHonorsLimit(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	for i := 0; i < 5; i++ {
		seedOrder(t, repo, models.Order{
			Date:   time.Now().Add(time.Duration(i) * time.Minute),
			Status: models.StatusProcessing,
		})
	}

	summaries, err := service.GetAllOrders(3)
	assert.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestOrderService_UpdateOrderContact(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order := seedOrder(t, repo, models.Order{
		OrderContact: models.OrderContact{CustomerName: "Priya Sharma", CustomerPhone: "9876543210"},
		Status:       models.StatusProcessing,
	})

	updated := models.OrderContact{
		CustomerName:  "Priya S",
		CustomerEmail: "priya@example.com",
		CustomerPhone: "9123456789",
		Address:       "14 Brigade Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560025",
		Country:       "India",
	}
	assert.NoError(t, service.UpdateOrderContact(order.ID, updated))

	stored, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, updated, stored.OrderContact)

	err = service.UpdateOrderContact("no-such-order", updated)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
