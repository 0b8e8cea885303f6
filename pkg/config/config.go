package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string `validate:"required"`
	Port          string `validate:"required,numeric"`
	IsProduction  bool
	EnableDBCheck bool
	// CompensationMode controls what happens to ledger postings when a source
	// document is updated or deleted: preserve (default), compensate, cascade.
	CompensationMode domain.CompensationMode `validate:"oneof=preserve compensate cascade"`
	// RateLimit uses the ulule/limiter format, e.g. "100-M" for 100 req/min.
	RateLimit          string `validate:"required"`
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LEDGER_COMPENSATION_MODE", string(domain.CompensationPreserve))
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	modeStr := viper.GetString("LEDGER_COMPENSATION_MODE")
	cfg.CompensationMode = domain.ParseCompensationMode(modeStr)
	if string(cfg.CompensationMode) != modeStr {
		log.Printf("Warning: Unknown LEDGER_COMPENSATION_MODE (%q). Defaulting to %s.\n", modeStr, cfg.CompensationMode)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
