// Package config loads runtime configuration from the environment. A
// .env file in the working directory is honored when present. Every
// setting is optional; the zero configuration is a pure in-memory run.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the optional integrations and listen addresses.
type Config struct {
	// KafkaBrokers enables outcome event publishing when non-empty.
	KafkaBrokers []string
	KafkaTopic   string
	// PostgresDSN enables report export when non-empty.
	PostgresDSN string
	HTTPAddr    string
	MetricsAddr string
	LogLevel    slog.Level
}

// Load reads configuration from a .env file (if any) and the process
// environment.
func Load() Config {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg := Config{
		KafkaTopic:  envOr("KAFKA_TOPIC", "transaction_outcomes"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		MetricsAddr: envOr("METRICS_ADDR", ":9090"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
