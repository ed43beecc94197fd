package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gigspace/internal/api"
	"gigspace/internal/middleware"
	"gigspace/internal/repository"
	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		zapLogger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	if err := repo.Seed(context.Background()); err != nil {
		zapLogger.Fatal("Failed to seed database", zap.Error(err))
	}

	hub := service.NewNotificationHub()
	userService := service.NewUserService(repo, hub)
	dailyBonusService := service.NewDailyBonusService(repo, hub)
	taskService := service.NewTaskService(repo, hub)
	shopService := service.NewShopService(repo, hub)

	sessions := auth.NewSessionAuth()
	authz := middleware.NewAuthorization(userService)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewAuthRoutes(a, userService, sessions)
	api.NewUserRoutes(a, userService, sessions)
	api.NewDailyBonusRoutes(a, dailyBonusService, sessions)
	api.NewTaskRoutes(a, taskService, sessions)
	api.NewShopRoutes(a, shopService, sessions)
	api.NewTransactionRoutes(a, userService, sessions)
	api.NewAdminRoutes(a, userService, sessions, authz)
	api.NewWSRoutes(a, hub, sessions)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
