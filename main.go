package main

import (
	"log"
	"time"

	"petmatch-be/internal/cache"
	"petmatch-be/internal/config"
	"petmatch-be/internal/controllers"
	"petmatch-be/internal/database"
	"petmatch-be/internal/mailer"
	"petmatch-be/internal/middleware"
	"petmatch-be/internal/repository"
	"petmatch-be/internal/seed"
	"petmatch-be/internal/service"
	"petmatch-be/internal/storage"
	"petmatch-be/internal/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optionally insert the demo listings
	if cfg.SeedDemo {
		if err := seed.Run(db); err != nil {
			log.Printf("Warning: seed failed: %v", err)
		}
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize upload storage
	fileStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Initialize token service
	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Initialize mail transport (falls back to dev mode when unconfigured)
	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailSender)
	if !mail.Configured() {
		log.Println("Mail transport not configured: reset links will be returned in responses")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	animalRepo := repository.NewAnimalRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, mail, cacheClient, cfg.FrontendURL)
	animalService := service.NewAnimalService(animalRepo, userRepo, fileStore, cacheClient, cfg.MaxUploadMB<<20)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	animalController := controllers.NewAnimalController(animalService, cfg.BaseURL)
	qrcodeController := controllers.NewQRCodeController(animalService, cfg.FrontendURL)

	// Create a Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	{
		// Public auth routes
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)
		api.POST("/forgot-password", authController.ForgotPassword)

		// Public listing routes
		api.GET("/animals", animalController.List)
		api.GET("/animals/:id", animalController.Get)
		api.GET("/animals/:id/qrcode", qrcodeController.GenerateQRCode)
		api.Static("/uploads", cfg.UploadDir)

		// Protected routes - require a session token
		session := api.Group("")
		session.Use(middleware.RequireAuth(tokens, token.PurposeSession))
		{
			session.GET("/profile", authController.GetProfile)
			session.PUT("/profile", authController.UpdateProfile)
			session.DELETE("/profile", authController.DeleteProfile)
			session.POST("/animals", animalController.Create)
		}

		// Password reset consumes its own short-lived token class
		reset := api.Group("")
		reset.Use(middleware.RequireAuth(tokens, token.PurposeReset))
		{
			reset.POST("/reset-password", authController.ResetPassword)
		}
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
