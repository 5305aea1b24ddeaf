package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Storage backend selectors.
const (
	BackendPgx  = "PGX"
	BackendGorm = "GORM"
)

// Config holds all configuration for the auth module.
type Config struct {
	// Database configuration. DBSelect picks the storage backend at process
	// start: PGX (raw driver) or GORM (ORM). Both talk to the same schema.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/studyhub?sslmode=disable"`
	DBSelect    string `env:"DB_SELECT" envDefault:"PGX"`

	// Cookie configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"sessionID"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"` // "Lax", "Strict", "None"
}

// LoadConfig loads configuration from environment variables and applies
// defaults. The returned object is passed explicitly to whatever needs it;
// there is no ambient global.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	cfg.DBSelect = strings.ToUpper(cfg.DBSelect)
	if cfg.DBSelect != BackendPgx && cfg.DBSelect != BackendGorm {
		return nil, fmt.Errorf("db_select must be %q or %q, got %q", BackendPgx, BackendGorm, cfg.DBSelect)
	}

	cfg.CookieSameSite = strings.Title(strings.ToLower(cfg.CookieSameSite))
	if cfg.CookieSameSite != "Lax" && cfg.CookieSameSite != "Strict" && cfg.CookieSameSite != "None" {
		return nil, fmt.Errorf("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	return cfg, nil
}
