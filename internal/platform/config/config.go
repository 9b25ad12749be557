package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	AppEnv      string
	HTTPPort    string

	DBType      string
	PostgresDSN string
	SQLitePath  string

	JWTSecret string
	TokenTTL  time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first without overriding real environment values.
func Load() (Config, error) {
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "clearfund"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dbType := strings.ToLower(strings.TrimSpace(os.Getenv("DB_TYPE")))
	if dbType == "" {
		dbType = "memory"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/clearfund.db"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	adminName := os.Getenv("ADMIN_NAME")
	if adminName == "" {
		adminName = "System Admin"
	}

	return Config{
		ServiceName: service,
		AppEnv:      strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		HTTPPort:    port,

		DBType:      dbType,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		SQLitePath:  sqlitePath,

		JWTSecret: secret,
		TokenTTL:  ttl,

		AdminName:     adminName,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}, nil
}

// IsDev reports whether the process runs with developer conveniences
// (console log formatting) enabled.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}
