package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "medishare-backend/internal/api/http"
	"medishare-backend/internal/config"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository/postgres"
	"medishare-backend/internal/security"
	"medishare-backend/internal/service"
	"medishare-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting MediShare backend", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	artifacts, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize artifact storage", "error", err)
		log.Fatalf("Failed to initialize artifact storage: %v", err)
	}
	logger.Info("Artifact storage ready", "upload_dir", cfg.Storage.UploadDir)

	emailSvc := service.NewEmailService(cfg.Email)

	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	authSvc := service.NewAuthService(store.UserRepository, store.SettingsRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.EquipmentRepository)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.FavoriteRepository, artifacts)
	orderSvc := service.NewOrderService(store.OrderRepository, store.EquipmentRepository, store.UserRepository, emailSvc)
	favoriteSvc := service.NewFavoriteService(store.FavoriteRepository, store.EquipmentRepository)
	chatSvc := service.NewChatService(store.MessageRepository, store.UserRepository)
	dashboardSvc := service.NewDashboardService(store.UserRepository, store.EquipmentRepository, store.OrderRepository)
	newsletterSvc := service.NewNewsletterService(store.SubscriberRepository, emailSvc)

	router := httpapi.NewRouter(httpapi.Services{
		Auth:       authSvc,
		User:       userSvc,
		Equipment:  equipmentSvc,
		Order:      orderSvc,
		Favorite:   favoriteSvc,
		Chat:       chatSvc,
		Settings:   settingsSvc,
		Dashboard:  dashboardSvc,
		Newsletter: newsletterSvc,
	}, tokenManager, artifacts)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
