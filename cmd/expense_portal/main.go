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

	"github.com/SscSPs/expense_portal/internal/adapters/webhook"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	"github.com/SscSPs/expense_portal/internal/core/services"
	"github.com/SscSPs/expense_portal/internal/handlers"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/platform/shellcache"
	"github.com/SscSPs/expense_portal/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_portal/internal/repositories/memory"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/SscSPs/expense_portal/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Expense Portal API
// @version 1.0
// @description Expense submission, history and director review for TechCorp employees.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		// Sessions do not survive a restart, so a per-process key is enough.
		cfg.SessionSecret, err = utils.GenerateSecureRandomString(32)
		if err != nil {
			logger.Error("Failed to generate session secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	webhooks := webhook.NewClient(webhook.Endpoints{
		SubmissionURL: cfg.SubmissionWebhookURL,
		DecisionURL:   cfg.DecisionWebhookURL,
		ChatURL:       cfg.ChatWebhookURL,
	}, nil)

	serviceContainer := services.NewServiceContainer(cfg, repos, webhooks.Gateways(), logger)
	defer serviceContainer.Session.Shutdown()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	shell := newShellCache(cfg, logger)

	// Global middleware (logging, recovery, headers, shell cache)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: middleware.DefaultContentSecurityPolicy,
		}),
		shell.Middleware(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		Posthog:    posthogClient,
		ShellCache: shell,
	}); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shell.SetOrigin(r)
	installCtx, cancelInstall := context.WithTimeout(ctx, 15*time.Second)
	if err := shell.Install(installCtx); err != nil {
		// The app still works without a warm shell; it is filled on first use.
		logger.Warn("Shell cache install incomplete", slog.String("error", err.Error()))
	}
	cancelInstall()
	shell.Activate()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("demo_store", cfg.DemoStore()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	shell.Wait()
}

// openStore connects to Postgres when PGSQL_URL is set and otherwise loads
// the demo fixture into the in-memory store.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DemoStore() {
		store, err := memory.LoadFixtureFile(cfg.DemoDataFile)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logger.Warn("Demo data file not found, starting with an empty store", slog.String("path", cfg.DemoDataFile))
			store = memory.NewStore(nil, nil)
		}
		logger.Info("Using in-memory demo store")
		return store.Provider(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

func newShellCache(cfg *config.Config, logger *slog.Logger) *shellcache.Cache {
	const faVersion = "6.4.0"
	return shellcache.New(shellcache.Config{
		Name:  cfg.ShellCacheName,
		Shell: []string{"/", "/static/css/app.css", "/static/js/app.js", "/manifest.json"},
		Vendor: map[string]string{
			"/vendor/fontawesome/" + faVersion + "/css/all.min.css": "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/" + faVersion + "/css/all.min.css",
			"/vendor/fonts/inter.css": "https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap",
		},
		VendorPrefixes: map[string]string{
			"/vendor/fontawesome/" + faVersion + "/webfonts/": "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/" + faVersion + "/webfonts/",
		},
		ShellPage:     "/",
		PrivateCookie: cfg.SessionCookieName,
	}, shellcache.NewStore(cfg.ShellCacheSize), &http.Client{Timeout: 10 * time.Second}, logger)
}
