// @title Campus Events Backend API
// @version 1.0
// @description Campus Events Backend API for college event listings

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	_ "CAMPUS_EVENTS_BACK-END/docs" // This is required for swagger
	"CAMPUS_EVENTS_BACK-END/internal/config"
	"CAMPUS_EVENTS_BACK-END/internal/database"
	"CAMPUS_EVENTS_BACK-END/internal/handlers"
	"CAMPUS_EVENTS_BACK-END/internal/routes"
	"CAMPUS_EVENTS_BACK-END/internal/store"
	"CAMPUS_EVENTS_BACK-END/internal/upload"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	ctx := context.Background()
	if err := database.Migrate(ctx, cfg); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize stores and upload directory
	users := store.NewPostgresUserStore(pool)
	events := store.NewPostgresEventStore(pool)
	uploads, err := upload.NewStore(cfg.Upload.Dir, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize upload store: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(users, &cfg.JWT, cfg.Auth.BcryptCost, logger)
	eventsHandler := handlers.NewEventsHandler(events, uploads, cfg.Upload.MaxBytes, logger)
	healthHandler := handlers.NewHealthHandler(pool)

	// Setup all routes
	router := routes.Setup(authHandler, eventsHandler, healthHandler, users, cfg)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Infof("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Info("Server stopped.")
}
