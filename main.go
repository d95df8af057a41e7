package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tamaravastra/internal/cart"
	"tamaravastra/internal/config"
	"tamaravastra/internal/handlers"
	"tamaravastra/internal/middleware"
	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"
	"tamaravastra/internal/services"
	"tamaravastra/pkg/rabbitmq"
	"tamaravastra/pkg/razorpay"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Initialize RabbitMQ Client ---
	// Note: The RabbitMQ client needs to be properly managed, especially for
	// connections. For simplicity, we initialize it here.
	mqConfig := rabbitmq.Config{URL: cfg.RabbitMQURL}
	mqClient, err := rabbitmq.NewClient(mqConfig)
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close() // Ensure the connection is closed on exit

	// --- Initialize Database ---
	db, err := openDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.User{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	couponRepo := repositories.NewGORMCouponRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Initialize Payment Gateway ---
	paymentClient := razorpay.NewClient(razorpay.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
	})

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(productRepo)
	couponService := services.NewCouponService(couponRepo)
	checkoutService := services.NewCheckoutService(orderRepo, couponService, paymentClient, mqClient)
	orderService := services.NewOrderService(orderRepo, mqClient)
	reviewService := services.NewReviewService(reviewRepo, orderRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	// Seed the initial operator account if none exists
	if err := authService.SeedAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Warning: could not seed operator account: %v", err)
	}

	// --- Initialize Cart Manager ---
	cartManager := cart.NewManager(cfg.CartStorageDir)

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.CartStorageDir)
	cartHandler := handlers.NewCartHandler(cartManager, catalogService)
	couponHandler := handlers.NewCouponHandler(couponService, cartManager)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartManager)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	// Public storefront routes under /api/v1
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	couponHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	// Operator console routes under /api/v1/admin, behind JWT auth
	adminV1 := apiV1.Group("/admin", middleware.AdminRequired(authService))
	catalogHandler.RegisterAdminRoutes(adminV1)
	couponHandler.RegisterAdminRoutes(adminV1)
	orderHandler.RegisterAdminRoutes(adminV1)
	authHandler.RegisterAdminRoutes(adminV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The consumer listens for order lifecycle events. For now it only logs
	// them; notification fan-out hangs off this hook.
	go func() {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received order event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil // Return nil to acknowledge
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
