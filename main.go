package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tienda/internal/handlers"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/pkg/gemini"
	"tienda/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("SQLITE_PATH", "tienda.db")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("CHAT_CONTEXT_SIZE", models.DefaultContextSize)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ChatMessage{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	chatRepo := repositories.NewGORMChatRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	if err := seedCatalog(productRepo); err != nil {
		log.Printf("Warning: failed to seed catalog: %v", err)
	}

	// --- AI provider ---
	aiClient, err := gemini.NewClient(context.Background(), gemini.Config{
		APIKey: viper.GetString("GEMINI_API_KEY"),
		Model:  viper.GetString("GEMINI_MODEL"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Println("Starting RabbitMQ consumer for chat events...")
			if err := mqClient.ConsumeChatEvents(logChatEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set, chat events will not be published")
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	chatService := services.NewChatService(productRepo, chatRepo, aiClient, publisher, viper.GetInt("CHAT_CONTEXT_SIZE"))
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, authService)
	chatHandler := handlers.NewChatHandler(chatService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	chatHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

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

// openDatabase connects to PostgreSQL when DATABASE_DSN is set, falling back
// to a local SQLite file for development.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

// seedCatalog loads the initial shoe catalog when the store is empty.
func logChatEvent(msg amqp.Delivery) error {
	log.Printf("Received chat event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
	return nil
}

func seedCatalog(repo repositories.ProductRepository) error {
	existing, err := repo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Nike Air Zoom Pegasus", Brand: "Nike", Category: "Running", Size: "42", Color: "Black", Price: 120.0, Stock: 5, Description: "Running shoes with responsive cushioning."},
		{Name: "Adidas Ultraboost", Brand: "Adidas", Category: "Running", Size: "41", Color: "White", Price: 150.0, Stock: 3, Description: "Boost technology for maximum comfort."},
		{Name: "Puma Suede Classic", Brand: "Puma", Category: "Casual", Size: "40", Color: "Blue", Price: 80.0, Stock: 10, Description: "Retro design with premium materials."},
		{Name: "New Balance 574", Brand: "New Balance", Category: "Casual", Size: "42", Color: "Grey", Price: 110.0, Stock: 8, Description: "Classic icon of the brand with extra support."},
		{Name: "Reebok Nano X", Brand: "Reebok", Category: "Training", Size: "43", Color: "Green", Price: 130.0, Stock: 6, Description: "Functional training with improved stability."},
		{Name: "Nike Air Force 1", Brand: "Nike", Category: "Casual", Size: "41", Color: "White", Price: 95.0, Stock: 12, Description: "Streetwear classic with timeless style."},
		{Name: "Adidas Stan Smith", Brand: "Adidas", Category: "Casual", Size: "40", Color: "White", Price: 85.0, Stock: 0, Description: "Minimalist tennis icon."},
	}

	for i := range products {
		if _, err := repo.Save(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
		}
	}
	return nil
}
