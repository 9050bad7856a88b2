// Package config loads process settings from the environment, optionally
// seeded by a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the binaries read.
type Config struct {
	LogLevel         string
	LogFormat        string
	DisplayPrecision int32
	HTTPAddr         string

	// Kafka publishing is disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Postgres export is disabled when PostgresDSN is empty.
	PostgresDSN string
}

const (
	defaultLogLevel         = "info"
	defaultLogFormat        = "console"
	defaultDisplayPrecision = 5
	defaultHTTPAddr         = ":8080"
	defaultKafkaTopic       = "ledger_events"
	maxDisplayPrecision     = 28
)

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		LogLevel:    strings.ToLower(get("LEDGER_LOG_LEVEL", defaultLogLevel)),
		LogFormat:   strings.ToLower(get("LEDGER_LOG_FORMAT", defaultLogFormat)),
		HTTPAddr:    get("LEDGER_HTTP_ADDR", defaultHTTPAddr),
		KafkaTopic:  get("KAFKA_TOPIC", defaultKafkaTopic),
		PostgresDSN: get("POSTGRES_DSN", ""),
	}

	precision, err := strconv.ParseInt(get("LEDGER_DISPLAY_PRECISION", strconv.Itoa(defaultDisplayPrecision)), 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("LEDGER_DISPLAY_PRECISION: %w", err)
	}
	if precision < 0 || precision > maxDisplayPrecision {
		return Config{}, fmt.Errorf("LEDGER_DISPLAY_PRECISION: %d out of range [0, %d]", precision, maxDisplayPrecision)
	}
	cfg.DisplayPrecision = int32(precision)

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("LEDGER_LOG_FORMAT: unsupported format %q", cfg.LogFormat)
	}

	for _, b := range strings.Split(get("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	return cfg, nil
}
