// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package server wires configuration, persistence, services, and routes into
// a running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"codeberg.org/qrmenu/qrmenu-server/internal/config"
	"codeberg.org/qrmenu/qrmenu-server/internal/database"
	"codeberg.org/qrmenu/qrmenu-server/internal/handlers"
	"codeberg.org/qrmenu/qrmenu-server/internal/i18n"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
	authsvc "codeberg.org/qrmenu/qrmenu-server/internal/services/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/services/email"
	"codeberg.org/qrmenu/qrmenu-server/internal/services/token"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Repository
	repo := repository.New(db)

	// Mail delivery is optional: without it OTP codes are surfaced through
	// the log only.
	var sender authsvc.Sender
	if cfg.MailConfigured() {
		mailer, mailErr := email.NewService(&cfg.SMTP)
		if mailErr != nil {
			return fmt.Errorf("failed to create email service: %w", mailErr)
		}
		sender = mailer
	} else {
		slog.Warn("smtp not configured, otp codes will be logged")
	}

	// Services
	svc := authsvc.NewService(repo, sender)
	tokens, err := token.NewService(cfg.Auth.JWTSecret, cfg.CookieSecure())
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg, tokens)
	setupRoutes(e, svc, tokens, repo)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, svc *authsvc.Service, tokens *token.Service, repo *repository.Repository) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api")

	authHandler := handlers.NewAuth(svc, tokens, repo)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me, RequireAuth)

	restaurantHandler := handlers.NewRestaurant(repo)
	api.POST("/restaurants", restaurantHandler.Create, RequireAuth)
	api.GET("/restaurants", restaurantHandler.ListMine, RequireAuth)
	api.GET("/restaurants/public", restaurantHandler.ListPublic)
	api.GET("/restaurants/:id", restaurantHandler.GetByID)

	menuHandler := handlers.NewMenu(repo)
	api.POST("/menu/categories", menuHandler.CreateCategory, RequireAuth)
	api.POST("/menu/dishes", menuHandler.CreateDish, RequireAuth)
	api.GET("/menu/:restaurantId", menuHandler.GetMenu)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
