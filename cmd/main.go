package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/config"
	"contact-analytics-service/internal/events"
	"contact-analytics-service/internal/handlers"
	"contact-analytics-service/internal/mailer"
	"contact-analytics-service/internal/middleware"
	"contact-analytics-service/internal/models"
	"contact-analytics-service/internal/repository"
	"contact-analytics-service/internal/services"
)

var startTime = time.Now()

func main() {
	// Load .env file if present
	godotenv.Load()

	cfg := config.Load()

	logger := setupLogger(cfg)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.AutoMigrate(&models.Contact{}, &models.AnalyticsEvent{}); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	logger.Info("Database migration completed")

	contactRepo := repository.NewContactRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	provider := mailer.ProviderFromConfig(
		cfg.SendGridAPIKey,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.EmailFrom, cfg.SiteName,
		logger,
	)
	dispatcher := mailer.NewDispatcher(provider, mailer.Options{
		SiteName:      cfg.SiteName,
		OperatorEmail: cfg.ContactEmail,
		From:          cfg.EmailFrom,
	}, logger)
	defer dispatcher.Close()

	// Event publishing is optional; the service runs fine without a broker
	var publisher services.ContactEventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to NATS, events disabled")
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	contactService := services.NewContactService(contactRepo, dispatcher, publisher, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, contactRepo, logger)

	contactHandler := handlers.NewContactHandler(contactService, analyticsService, logger)
	adminHandler := handlers.NewAdminHandler(contactService, analyticsService, cfg, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Health checks
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "healthy",
			"service":     "contact-analytics-service",
			"uptime":      time.Since(startTime).String(),
			"environment": cfg.Environment,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, gin.H{"status": "not ready", "reason": "database unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	api := router.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"service": "contact-analytics-service",
				"endpoints": gin.H{
					"contact":   "POST /api/contact",
					"analytics": "POST /api/analytics/track",
					"admin":     "GET /api/admin/*",
				},
			})
		})

		// Public ingestion, rate limited per IP
		limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		public := api.Group("")
		public.Use(limiter.Middleware())
		{
			public.POST("/contact", contactHandler.SubmitContact)
			public.POST("/analytics/track", contactHandler.TrackEvent)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminToken))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/contacts", adminHandler.ListContacts)
			admin.GET("/contacts/:id", adminHandler.GetContact)
			admin.PUT("/contacts/:id", adminHandler.UpdateContact)
			admin.DELETE("/contacts/:id", adminHandler.DeleteContact)
			admin.POST("/contacts/:id/respond", adminHandler.RespondToContact)
			admin.GET("/analytics", adminHandler.GetAnalytics)
			admin.GET("/export/contacts", adminHandler.ExportContacts)
			admin.GET("/settings", adminHandler.GetSettings)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	logger.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("Starting contact analytics service")

	if err := router.Run(cfg.GetServerAddress()); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
