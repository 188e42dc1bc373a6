package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/liviin/homecare-api/internal/catalog"
	"github.com/liviin/homecare-api/internal/config"
	"github.com/liviin/homecare-api/internal/database"
	"github.com/liviin/homecare-api/internal/handlers"
	"github.com/liviin/homecare-api/internal/middleware"
	"github.com/liviin/homecare-api/internal/notify"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/types"

	_ "github.com/liviin/homecare-api/docs/api" // Swagger docs
)

// @title Homecare API
// @version 1.0.0
// @description Home maintenance catalog and reminder service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/liviin/homecare-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Load the category definition table
	defs, err := catalog.Load(cfg.CategoriesFile)
	if err != nil {
		log.Fatalf("Failed to load category definitions: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("homecare")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Services
	auth := services.NewAuthService(cfg)
	catalogSvc := services.NewCatalogService(db, defs)
	reminderSvc := services.NewReminderService(db)
	propertySvc := services.NewPropertyService(db)
	sender := notify.NewTwilioSender(notify.TwilioConfig{
		AccountSID:     cfg.TwilioAccountSID,
		AuthToken:      cfg.TwilioAuthToken,
		PhoneNumber:    cfg.TwilioPhoneNumber,
		WhatsAppNumber: cfg.TwilioWhatsAppNumber,
	})

	// Handlers
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	itemHandler := &handlers.ItemHandler{Catalog: catalogSvc}
	materialHandler := &handlers.MaterialHandler{Catalog: catalogSvc}
	reminderHandler := &handlers.ReminderHandler{Reminders: reminderSvc}
	propertyHandler := &handlers.PropertyHandler{Properties: propertySvc}
	messageHandler := &handlers.MessageHandler{Sender: sender}

	// Health endpoint, outside the authenticated API surface
	app.Get("/health", healthHandler.Get)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	authUser := middleware.AuthUser(auth)

	// Item routes
	items := api.Group("/items", authUser)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.GetAll)
	items.Get("/paginated", itemHandler.GetPaginated)
	items.Get("/groupByCategory", itemHandler.GetCategoriesWithItems)
	items.Get("/category/:category", itemHandler.GetByCategory)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Material routes
	materials := api.Group("/materials", authUser)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.GetAll)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Reminder routes
	reminders := api.Group("/reminders", authUser)
	reminders.Post("/", reminderHandler.Create)
	reminders.Get("/", reminderHandler.GetAll)
	reminders.Get("/:id", reminderHandler.GetByID)
	reminders.Put("/:id", reminderHandler.Update)
	reminders.Delete("/:id", reminderHandler.Delete)

	// Property routes
	properties := api.Group("/properties", authUser)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/", propertyHandler.GetAll)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Put("/:id", propertyHandler.Update)
	properties.Delete("/:id", propertyHandler.Delete)

	// Message routes
	messages := api.Group("/messages", authUser)
	messages.Post("/sms", messageHandler.SendSMS)
	messages.Post("/whatsapp", messageHandler.SendWhatsApp)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
