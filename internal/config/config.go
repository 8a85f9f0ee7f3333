package config

import (
	"log/slog"
	"os"
	"time"
)

// DefaultJWTSecret is the insecure fallback used when no operator secret
// is configured. Real deployments must set JWT_SECRET.
const DefaultJWTSecret = "supersecretfallbackkey"

type Config struct {
	Port string
	Env  string

	// UserStore selects the credential backend: "mysql" or "sheet".
	UserStore   string
	DatabaseDSN string

	JWTSecret string
	JWTExpiry time.Duration

	// SpreadsheetID and GoogleCredentials configure the Sheets backend.
	// When either is empty the process falls back to an in-memory sheet.
	SpreadsheetID     string
	GoogleCredentials string
	UserRange         string
	LogRange          string
}

func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		UserStore:         getEnv("USER_STORE", "mysql"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/healthtrack?parseTime=true"),
		JWTSecret:         getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpiry:         24 * time.Hour,
		SpreadsheetID:     os.Getenv("GOOGLE_SHEET_ID"),
		GoogleCredentials: os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY"),
		UserRange:         getEnv("SHEET_USER_RANGE", "Users!A:C"),
		LogRange:          getEnv("SHEET_LOG_RANGE", "Logs!A:F"),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		if cfg.Env == "production" {
			slog.Error("JWT_SECRET must be set in production environment")
			os.Exit(1)
		}
		slog.Warn("JWT_SECRET not set, using insecure fallback secret")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
