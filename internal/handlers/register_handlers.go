package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/expense_portal/cmd/docs"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/platform/shellcache"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/SscSPs/expense_portal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteDeps are the infrastructure pieces the routes need besides services.
type RouteDeps struct {
	Posthog    *utils.PosthogClientWrapper
	ShellCache *shellcache.Cache
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) error {
	tmpl, err := LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	loginLimit, err := rateLimit(cfg.LoginRateLimit)
	if err != nil {
		return err
	}
	submitLimit, err := rateLimit(cfg.SubmitRateLimit)
	if err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupShellRoutes(r, deps.ShellCache)

	r.Use(
		middleware.LoadSession(middleware.SessionAuthConfig{
			Secret:     cfg.SessionSecret,
			CookieName: cfg.SessionCookieName,
		}, services.Session),
		middleware.PosthogMiddleware(deps.Posthog),
	)

	api := r.Group("/api/v1")
	if len(cfg.CORSAllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	registerAuthRoutes(r, api, NewAuthHandler(services.Session, cfg, deps.Posthog), loginLimit)
	registerDashboardRoutes(r, api, NewDashboardHandler(services.Session, cfg.DefaultCurrency))
	registerSubmissionRoutes(r, api, NewSubmissionHandler(services.Submission, services.Session, cfg, deps.Posthog), submitLimit)
	registerDirectorRoutes(r, api, NewDirectorHandler(services.Director, services.Chat, deps.Posthog))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// routeLimit is one rate shared by a form route and its API twin.
type routeLimit struct {
	Page gin.HandlerFunc
	API  gin.HandlerFunc
}

func rateLimit(formatted string) (routeLimit, error) {
	l, err := middleware.NewMemoryLimiter(formatted)
	if err != nil {
		return routeLimit{}, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	return routeLimit{Page: middleware.RateLimit(l), API: middleware.GinMiddlewarize(l)}, nil
}

// setupShellRoutes serves the static shell, the manifest, the vendored
// stylesheets and the service worker script.
func setupShellRoutes(r *gin.Engine, cache *shellcache.Cache) {
	static := web.Static()
	r.StaticFS("/static", http.FS(static))
	r.GET("/manifest.json", func(c *gin.Context) {
		c.FileFromFS("manifest.json", http.FS(static))
	})

	if cache == nil {
		return
	}
	r.GET("/sw.js", cache.ScriptHandler())
	r.GET("/vendor/*path", gin.WrapH(cache.VendorHandler()))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
