package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/tutor-match-api/api/swagger"
	"github.com/noah-isme/tutor-match-api/internal/handler"
	"github.com/noah-isme/tutor-match-api/internal/middleware"
	"github.com/noah-isme/tutor-match-api/internal/repository"
	"github.com/noah-isme/tutor-match-api/internal/service"
	"github.com/noah-isme/tutor-match-api/pkg/cache"
	"github.com/noah-isme/tutor-match-api/pkg/config"
	"github.com/noah-isme/tutor-match-api/pkg/database"
	"github.com/noah-isme/tutor-match-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutor-match-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutor-match-api/pkg/middleware/requestid"
)

// @title Tutor Match API
// @version 0.1.0
// @description Tutor availability matching and capacity service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The rating cache is an optimisation; matching works without it.
		logr.Sugar().Warnw("redis unavailable, continuing without rating cache", "error", err)
		redisClient = nil
	}

	contractRepo := repository.NewContractRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	slotRepo := repository.NewAvailabilitySlotRepository(db)
	centerRepo := repository.NewCenterRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	matchingSvc := service.NewMatchingService(contractRepo, tutorRepo, centerRepo, feedbackRepo, cacheRepo, cfg.Matching, nil, logr)
	availabilitySvc := service.NewAvailabilityService(slotRepo, tutorRepo, nil, logr)

	matchingHandler := handler.NewMatchingHandler(matchingSvc, metricsSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/contracts/:id/available-tutors", matchingHandler.FindAvailableTutors)
		api.POST("/matching/preview", matchingHandler.Preview)
		api.GET("/tutors/:id/availability-slots", availabilityHandler.ListSlots)

		protected := api.Group("")
		protected.Use(middleware.JWT(cfg.JWT))
		{
			protected.POST("/tutors/:id/availability-slots", availabilityHandler.CreateSlot)
			protected.PUT("/tutors/:id/availability-slots/:slotId", availabilityHandler.UpdateSlot)
			protected.POST("/availability-slots/:id/bookings", availabilityHandler.AdjustBooking)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
