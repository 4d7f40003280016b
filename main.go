package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/storage"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("DATABASE_DSN", "storefront.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	storageDriver := viper.GetString("STORAGE_DRIVER")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Storage ---
	store, err := openStore(storageDriver, databaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage ready (driver: %s)", storageDriver)

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Repositories ---
	userStore := repositories.NewStorageUserStore(store)
	supportLog := repositories.NewStorageSupportLog(store)
	reviewLog := repositories.NewStorageReviewLog(store)

	// --- Initialize Catalog and Services ---
	cat := catalog.New()
	authService := services.NewAuthService(userStore)
	actionService := services.NewActionService(userStore, cat, mqClient)
	viewService := services.NewViewService(userStore, reviewLog, cat)
	feedbackService := services.NewFeedbackService(supportLog, reviewLog, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(actionService, viewService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, viewService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	storeHandler.RegisterRoutes(apiV1)
	feedbackHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": storageDriver,
		})
	})

	// --- Start Event Consumer (optional) ---
	if mqClient != nil {
		go func() {
			log.Println("Starting storefront event consumer...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Storefront event %s: %s", msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeEvents(handler); consumerErr != nil {
				log.Printf("Failed to start event consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openStore builds the blob store selected by config: the in-memory store
// for demo runs, or a GORM-backed store for sqlite/postgres.
func openStore(driver, dsn string) (storage.Store, error) {
	if driver == "memory" {
		return storage.NewMemoryStore(), nil
	}
	return storage.Open(driver, dsn)
}
