// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

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

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/database"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/handlers"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/middleware"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/auth"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

// Server is the wired application.
type Server struct {
	Echo *echo.Echo
	db   *sqlx.DB
	cfg  *config.Config
}

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"locale", cfg.Locale.Default,
		"locales", cfg.Locale.Codes(),
	)

	srv, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	return srv.startWithGracefulShutdown(ctx)
}

// New opens the database, loads translations and builds the Echo instance.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Locale.Validate(); err != nil {
		return nil, fmt.Errorf("invalid locale configuration: %w", err)
	}

	// i18n
	if err := i18n.Init(cfg.Locale.Default); err != nil {
		return nil, fmt.Errorf("failed to init i18n: %w", err)
	}

	// Database (migrations run on open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sessions, err := session.NewManager(&cfg.Session, cfg.Session.Secure)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	repo := repository.New(db)
	resolver := locale.NewResolver(cfg.Locale)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler

	// Middleware
	setupMiddleware(e, cfg, sessions, repo, resolver)

	// Routes
	setupRoutes(e, repo, resolver)

	return &Server{Echo: e, db: db, cfg: cfg}, nil
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

func setupRoutes(e *echo.Echo, repo *repository.Repository, resolver *locale.Resolver) {
	authService := auth.NewService(repo)

	h := handlers.New(repo, resolver)
	authHandlers := handlers.NewAuth(authService, resolver)
	accountHandlers := handlers.NewAccount(authService)

	e.GET("/health", h.Health)
	e.GET("/", h.Home)
	e.POST("/locale", h.SwitchLocale)

	e.GET("/login", authHandlers.LoginPage)
	e.POST("/login", authHandlers.Login)
	e.GET("/register", authHandlers.RegisterPage)
	e.POST("/register", authHandlers.Register)
	e.POST("/logout", authHandlers.Logout)

	account := e.Group("/account", middleware.RequireAuth)
	account.GET("", accountHandlers.Show)
	account.PUT("/password", accountHandlers.ChangePassword)
	account.DELETE("", accountHandlers.Delete)
}

func (s *Server) startWithGracefulShutdown(ctx context.Context) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.Echo.Server.ReadHeaderTimeout = 10 * time.Second
	go func() {
		slog.Info("Server running", "url", s.cfg.Server.BaseURL)
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
