package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lajutuju/go-invoiceprint/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // INVOICEPRINT_CONFIG: config file path
	Template   string        // INVOICEPRINT_TEMPLATE: lajutuju or biggor
	Timeout    time.Duration // INVOICEPRINT_TIMEOUT: browser timeout
	OutputDir  string        // INVOICEPRINT_OUTPUT_DIR: default output directory
	AssetPath  string        // INVOICEPRINT_ASSET_PATH: asset override directory
	Workers    int           // INVOICEPRINT_WORKERS: parallel browsers
	LogLevel   string        // INVOICEPRINT_LOG_LEVEL
	LogFormat  string        // INVOICEPRINT_LOG_FORMAT: console or json
	Port       int           // INVOICEPRINT_PORT: preview server port
	OrdersDir  string        // INVOICEPRINT_ORDERS_DIR: preview order directory
}

// knownEnvVars lists valid INVOICEPRINT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"INVOICEPRINT_CONFIG":     true,
	"INVOICEPRINT_TEMPLATE":   true,
	"INVOICEPRINT_TIMEOUT":    true,
	"INVOICEPRINT_OUTPUT_DIR": true,
	"INVOICEPRINT_ASSET_PATH": true,
	"INVOICEPRINT_WORKERS":    true,
	"INVOICEPRINT_LOG_LEVEL":  true,
	"INVOICEPRINT_LOG_FORMAT": true,
	"INVOICEPRINT_PORT":       true,
	"INVOICEPRINT_ORDERS_DIR": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("INVOICEPRINT_CONFIG"),
		Template:   os.Getenv("INVOICEPRINT_TEMPLATE"),
		OutputDir:  os.Getenv("INVOICEPRINT_OUTPUT_DIR"),
		AssetPath:  os.Getenv("INVOICEPRINT_ASSET_PATH"),
		LogLevel:   os.Getenv("INVOICEPRINT_LOG_LEVEL"),
		LogFormat:  os.Getenv("INVOICEPRINT_LOG_FORMAT"),
		OrdersDir:  os.Getenv("INVOICEPRINT_ORDERS_DIR"),
	}

	if timeout := os.Getenv("INVOICEPRINT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("INVOICEPRINT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if port := os.Getenv("INVOICEPRINT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 && p <= 65535 {
			cfg.Port = p
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized INVOICEPRINT_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "INVOICEPRINT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Template = env.Template
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Port > 0 {
		cfg.Serve.Port = env.Port
	}
	if env.OrdersDir != "" {
		cfg.Serve.OrdersDir = env.OrdersDir
	}
}
