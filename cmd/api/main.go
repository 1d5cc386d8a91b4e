package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"church-platform-backend/internal/common/cache"
	"church-platform-backend/internal/common/config"
	"church-platform-backend/internal/common/logger"
	"church-platform-backend/internal/common/middleware"
	authhttp "church-platform-backend/internal/features/auth/delivery/http"
	authrepo "church-platform-backend/internal/features/auth/repository/postgres"
	authservice "church-platform-backend/internal/features/auth/service"
	churchhttp "church-platform-backend/internal/features/church/delivery/http"
	contacthttp "church-platform-backend/internal/features/contact/delivery/http"
	contactrepo "church-platform-backend/internal/features/contact/repository/postgres"
	contactservice "church-platform-backend/internal/features/contact/service"
	donationhttp "church-platform-backend/internal/features/donation/delivery/http"
	donationrepo "church-platform-backend/internal/features/donation/repository/postgres"
	donationservice "church-platform-backend/internal/features/donation/service"
	eventhttp "church-platform-backend/internal/features/event/delivery/http"
	eventrepo "church-platform-backend/internal/features/event/repository/postgres"
	eventservice "church-platform-backend/internal/features/event/service"
	"church-platform-backend/internal/platform/postgres"
	"church-platform-backend/internal/platform/redis"
	"church-platform-backend/internal/platform/stripe"
)

// @title           Church Platform API
// @version         1.0
// @description     REST backend for the Iglesia Bautista Yaguita de Pastor website: members, donations, events, contact.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token, format "Bearer {token}"

// @tag.name auth
// @tag.description Member registration, login and profile

// @tag.name donations
// @tag.description Donation packages, checkout and payment status

// @tag.name events
// @tag.description Church events

// @tag.name contact
// @tag.description Contact form and newsletter

// @tag.name church
// @tag.description Static church information

func main() {
	cfg := config.Load()
	logger.Init("church-platform-backend", cfg.Debug)

	logger.Info().
		Bool("debug", cfg.Debug).
		Int("port", cfg.Server.Port).
		Msg("Starting church platform backend")

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer postgresClient.Close()

	if err := postgresClient.RunMigrations(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database ready")

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)
	stripeClient := stripe.NewClient(cfg.Stripe.APIKey, cfg.Stripe.BaseURL)

	userRepository := authrepo.NewPostgresRepository(postgresClient.DB())
	donationRepository := donationrepo.NewPostgresRepository(postgresClient.DB())
	eventRepository := eventrepo.NewPostgresRepository(postgresClient.DB())
	contactRepository := contactrepo.NewPostgresRepository(postgresClient.DB())

	authSvc := authservice.NewAuthService(userRepository, []byte(cfg.Auth.SecretKey), cfg.Auth.TokenTTL)
	donationSvc := donationservice.NewDonationService(donationRepository, userRepository, stripeClient, cacheService)
	eventSvc := eventservice.NewEventService(eventRepository, cacheService)
	contactSvc := contactservice.NewContactService(contactRepository)

	logger.Info().Msg("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())
	router.Use(middleware.BearerAuth([]byte(cfg.Auth.SecretKey)))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	authhttp.NewAuthHandler(authSvc).RegisterRoutes(api)
	donationhttp.NewDonationHandler(donationSvc, cfg.Stripe.WebhookSecret).RegisterRoutes(api)
	eventhttp.NewEventHandler(eventSvc).RegisterRoutes(api)
	contacthttp.NewContactHandler(contactSvc).RegisterRoutes(api)
	churchhttp.NewChurchHandler().RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "church-platform-backend",
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := postgresClient.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "cache"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}
