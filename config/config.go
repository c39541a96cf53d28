package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL         string        `envconfig:"DATABASE_URL"          required:"true"`
	DatabaseFallbackURL string        `envconfig:"DATABASE_FALLBACK_URL" default:""`
	Port                string        `envconfig:"PORT"                  default:":8080"`
	LogLevel            string        `envconfig:"LOG_LEVEL"             default:"info"`
	JWTSecret           string        `envconfig:"JWT_SECRET"            required:"true"`
	TokenTTL            time.Duration `envconfig:"TOKEN_TTL"             default:"168h"`
	GeminiAPIKey        string        `envconfig:"GEMINI_API_KEY"        default:""`
	GeminiBaseURL       string        `envconfig:"GEMINI_BASE_URL"       default:""`
	GeminiTimeout       time.Duration `envconfig:"GEMINI_TIMEOUT"        default:"10s"`
	AdminEmail          string        `envconfig:"ADMIN_EMAIL"           default:""`
	AdminPassword       string        `envconfig:"ADMIN_PASSWORD"        default:""`
	MenuFile            string        `envconfig:"MENU_FILE"             default:"data/menu.json"`
	SchemaFile          string        `envconfig:"SCHEMA_FILE"           default:"migrations/001_init.sql"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: Port=%s, LogLevel=%s", config.Port, config.LogLevel)
		if config.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; AI endpoints will serve catalog fallbacks only")
		}
	})
	return &config
}
