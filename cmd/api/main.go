package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/handler"
	"github.com/nihalcreates/pixagen-backend/internal/middleware"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/internal/service"
	"github.com/nihalcreates/pixagen-backend/pkg/database"
	"github.com/nihalcreates/pixagen-backend/pkg/email"
	"github.com/nihalcreates/pixagen-backend/pkg/gemini"
	"github.com/nihalcreates/pixagen-backend/pkg/logger"
	"github.com/nihalcreates/pixagen-backend/pkg/payment"
	"github.com/nihalcreates/pixagen-backend/pkg/qrcode"
	"github.com/nihalcreates/pixagen-backend/pkg/storage"
	"github.com/nihalcreates/pixagen-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// .env is optional in production
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env variables")
	}

	cfg := config.LoadConfig()

	zapLog := logger.New()
	defer zapLog.Sync()

	// Initialize database
	db := database.NewDatabase()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.CreditPackage{},
		&models.PaymentRequest{},
		&models.PaymentSettings{},
	); err != nil {
		zapLog.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := database.Seed(db); err != nil {
		zapLog.Fatal("failed to seed defaults", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	packageRepo := repository.NewCreditPackageRepository(db)
	requestRepo := repository.NewPaymentRequestRepository(db)
	settingsRepo := repository.NewSettingsRepository(db, packageRepo)
	gallery := repository.NewGalleryStore()

	// Storage
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		zapLog.Fatal("failed to initialize R2 storage", zap.Error(err))
	}

	// External services
	emailService := email.NewEmailService(zapLog)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.Timeout, zapLog)
	stripeService := payment.NewStripeService(cfg.StripeSecretKey)
	qrService := qrcode.NewQRService()

	// Services
	authService := service.NewAuthService(userRepo, gallery, emailService, cfg, zapLog)
	userService := service.NewUserService(userRepo, cfg, zapLog)
	packageService := service.NewPackageService(packageRepo)
	settingsService := service.NewSettingsService(settingsRepo, qrService, zapLog)
	paymentService := service.NewPaymentService(stripeService, userRepo, packageRepo, requestRepo, emailService, zapLog)
	imageService := service.NewImageService(geminiClient, r2Storage, userRepo, gallery, cfg, zapLog)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService)
	imageHandler := handler.NewImageHandler(imageService, validator)
	paymentHandler := handler.NewPaymentHandler(paymentService, packageService, validator)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	adminHandler := handler.NewAdminHandler(userService, paymentService, settingsService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/payments/packages", paymentHandler.GetCreditPackages)
	api.Get("/settings/payment", settingsHandler.GetPaymentSettings)
	api.Get("/settings/payment/qr", settingsHandler.GetPaymentQR)

	// Stripe webhook (public)
	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		auth.Post("/logout", authHandler.Logout)

		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)

		images := api.Group("/images")
		images.Post("/generate", imageHandler.Generate)
		images.Post("/edit", imageHandler.Edit)
		images.Get("/", imageHandler.GetGallery)

		payments := api.Group("/payments")
		payments.Post("/requests", paymentHandler.SubmitPaymentRequest)
		payments.Get("/requests", paymentHandler.GetMyPaymentRequests)
		payments.Post("/checkout/:packageId", paymentHandler.CreateCheckoutSession)

		// Admin routes
		admin := api.Group("/admin", middleware.AdminOnly())
		admin.Get("/users", adminHandler.GetUsers)
		admin.Post("/users/:id/block", adminHandler.BlockUser)
		admin.Post("/users/:id/unblock", adminHandler.UnblockUser)
		admin.Post("/users/:id/credits", adminHandler.GrantCredits)
		admin.Get("/payments", adminHandler.GetPaymentRequests)
		admin.Post("/payments/:id/approve", adminHandler.ApprovePayment)
		admin.Post("/payments/:id/reject", adminHandler.RejectPayment)
		admin.Put("/settings", adminHandler.UpdateSettings)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	zapLog.Info("starting server", zap.String("port", port))
	log.Fatal(app.Listen(":" + port))
}
