// Synthra - marketing-content generation API server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/synthra/synthra-api/internal/api"
	"github.com/synthra/synthra-api/internal/config"
	"github.com/synthra/synthra-api/internal/generation"
	"github.com/synthra/synthra-api/internal/identity"
	"github.com/synthra/synthra-api/internal/middleware"
	"github.com/synthra/synthra-api/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := repo.Close(closeCtx); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()
	slog.Info("Database connected", "db", cfg.MongoDB)

	gen := generation.New(generation.Options{
		TextURL:  cfg.DashScopeAPIURL,
		TextKey:  cfg.DashScopeAPIKey,
		ImageKey: cfg.StabilityAPIKey,
		Timeout:  cfg.ProviderTimeout,
	})
	defer gen.Close()
	if cfg.StabilityAPIKey == "" {
		slog.Info("Image provider key not set, image generation will return a placeholder")
	}

	// Initialize handlers.
	base := api.NewHandler(repo)
	authHandler := api.NewAuthHandler(cfg.JWTSecret)
	profileHandler := api.NewProfileHandler(base)
	contentHandler := api.NewContentHandler(base)
	marketingHandler := api.NewMarketingHandler(base)
	mlHandler := api.NewMLHandler(base, gen)
	healthHandler := api.NewHealthHandler(repo, cfg.HealthTimeout)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{cfg.FrontendURL}))
	r.Use(identity.Middleware(cfg.JWTSecret))

	authHandler.RegisterRoutes(r)
	profileHandler.RegisterRoutes(r)
	contentHandler.RegisterRoutes(r)
	marketingHandler.RegisterRoutes(r)
	mlHandler.RegisterRoutes(r)
	healthHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
