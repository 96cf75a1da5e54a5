package config

import (
	"os"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DBPath is the filesystem path of the SQLite database.
	DBPath string
	// CORSOrigins lists the allowed CORS origins. Empty means allow all.
	CORSOrigins []string
	// LogMode selects the logger configuration ("dev" or "prod").
	LogMode string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	addr := os.Getenv("MEAL_PLANNER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbPath := os.Getenv("MEAL_PLANNER_DB_PATH")
	if dbPath == "" {
		dbPath = "data/meal-planner.db"
	}

	var origins []string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "dev"
	}

	return &Config{
		Addr:        addr,
		DBPath:      dbPath,
		CORSOrigins: origins,
		LogMode:     logMode,
	}, nil
}
