package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DatabaseURL   string
	EnableDBCheck bool
	// Migrations only bootstrap local/demo stores; the hosted store owns its schema.
	RunMigrations  bool
	MigrationsPath string

	// Session cookie
	SessionSecret         string
	SessionExpiryDuration time.Duration
	SessionCookieName     string
	JWTIssuer             string

	// External workflow endpoints. Empty means demo mode for that endpoint.
	SubmissionWebhookURL string `mapstructure:"SUBMISSION_WEBHOOK_URL"`
	DecisionWebhookURL   string `mapstructure:"DECISION_WEBHOOK_URL"`
	ChatWebhookURL       string `mapstructure:"CHAT_WEBHOOK_URL"`

	RefreshInterval       time.Duration
	PostSubmitReloadDelay time.Duration
	DirectorIDPrefix      string
	DefaultCurrency       string
	// HistoryFallbackAll shows every row when a user has no rows of their own.
	HistoryFallbackAll bool
	DemoDataFile       string

	PosthogAPIKey      string
	LoginRateLimit     string
	SubmitRateLimit    string
	CORSAllowedOrigins []string

	ShellCacheName string
	ShellCacheSize int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "12h")
	viper.SetDefault("SESSION_COOKIE_NAME", "expense_session")
	viper.SetDefault("JWT_ISSUER", "expense-portal")
	viper.SetDefault("SUBMISSION_WEBHOOK_URL", "")
	viper.SetDefault("DECISION_WEBHOOK_URL", "")
	viper.SetDefault("CHAT_WEBHOOK_URL", "")
	viper.SetDefault("REFRESH_INTERVAL", "30s")
	viper.SetDefault("POST_SUBMIT_RELOAD_DELAY", "2s")
	viper.SetDefault("DIRECTOR_ID_PREFIX", "FIN")
	viper.SetDefault("DEFAULT_CURRENCY", DefaultCurrency)
	viper.SetDefault("HISTORY_FALLBACK_ALL", true)
	viper.SetDefault("DEMO_DATA_FILE", "configs/demo_data.yaml")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("SUBMIT_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("SHELL_CACHE_NAME", "techcorp-expense-v1")
	viper.SetDefault("SHELL_CACHE_SIZE", 64)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory demo store.")
	}

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET environment variable not set. A random key is generated at startup.")
	}

	cfg.SessionExpiryDuration = durationOrDefault("SESSION_EXPIRY_DURATION", 12*time.Hour)
	cfg.RefreshInterval = durationOrDefault("REFRESH_INTERVAL", 30*time.Second)
	cfg.PostSubmitReloadDelay = durationOrDefault("POST_SUBMIT_RELOAD_DELAY", 2*time.Second)

	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "expense_session"
		log.Printf("Warning: SESSION_COOKIE_NAME not set. Defaulting to %s.\n", cfg.SessionCookieName)
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "expense-portal"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.SubmissionWebhookURL = viper.GetString("SUBMISSION_WEBHOOK_URL")
	cfg.DecisionWebhookURL = viper.GetString("DECISION_WEBHOOK_URL")
	cfg.ChatWebhookURL = viper.GetString("CHAT_WEBHOOK_URL")
	if cfg.SubmissionWebhookURL == "" {
		log.Println("Warning: SUBMISSION_WEBHOOK_URL not set. Expense submission runs in demo mode.")
	}
	if cfg.DecisionWebhookURL == "" {
		log.Println("Warning: DECISION_WEBHOOK_URL not set. Approve/reject runs in demo mode.")
	}
	if cfg.ChatWebhookURL == "" {
		log.Println("Warning: CHAT_WEBHOOK_URL not set. The assistant chat runs in demo mode.")
	}

	cfg.DefaultCurrency = strings.ToUpper(viper.GetString("DEFAULT_CURRENCY"))
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultCurrency
	}

	cfg.ShellCacheSize = viper.GetInt("SHELL_CACHE_SIZE")
	if cfg.ShellCacheSize <= 0 {
		cfg.ShellCacheSize = 64
		log.Printf("Warning: Invalid SHELL_CACHE_SIZE. Defaulting to %d.\n", cfg.ShellCacheSize)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DirectorIDPrefix = viper.GetString("DIRECTOR_ID_PREFIX")
	cfg.HistoryFallbackAll = viper.GetBool("HISTORY_FALLBACK_ALL")
	cfg.DemoDataFile = viper.GetString("DEMO_DATA_FILE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.SubmitRateLimit = viper.GetString("SUBMIT_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.ShellCacheName = viper.GetString("SHELL_CACHE_NAME")

	if cfg.IsProduction && cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must be set in production")
	}

	return cfg, nil
}

// DemoStore reports whether no external store is configured.
func (c *Config) DemoStore() bool {
	return c.DatabaseURL == ""
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
