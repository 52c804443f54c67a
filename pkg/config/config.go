// Package config provides unified configuration for the akzept server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (AKZEPT_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rhuss/akzept/pkg/debug"
)

// Config holds all configuration for the akzept server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Negotiation   NegotiationConfig   `yaml:"negotiation"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 60s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
	Debug           bool          `yaml:"debug"`            // expose /debug/negotiate, default: false
}

// NegotiationConfig holds the content negotiation policy for the served
// resources.
type NegotiationConfig struct {
	// SupportedTypes lists producible media types, highest priority first.
	// The first entry is the default representation.
	SupportedTypes []string `yaml:"supported_types"`
	// SupplyDefault serves the first supported type to clients that send
	// no Accept header instead of rejecting them with 406.
	SupplyDefault bool `yaml:"supply_default"` // default: true
	// AnnotateResponse forces the response Content-Type to the negotiated
	// type.
	AnnotateResponse bool `yaml:"annotate_response"` // default: true
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type    string         `yaml:"type"`     // "none", "apikey", or "jwt", default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"` // API key entries for type=apikey
	JWT     JWTConfig      `yaml:"jwt"`      // settings for type=jwt
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"` // _file variant for key
	Subject string `yaml:"subject"`
}

// JWTConfig holds settings for HMAC-signed bearer tokens.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret
	Issuer     string `yaml:"issuer"`      // expected iss claim, optional
	Audience   string `yaml:"audience"`    // expected aud claim, optional
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is "trace", "debug", "info", "warn", or "error". Default: "info".
	Level string `yaml:"level"`
	// Debug lists debug logging categories, comma separated. See the
	// debug package for the known categories.
	Debug string `yaml:"debug"`
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Negotiation: NegotiationConfig{
			SupportedTypes: []string{
				"application/json",
				"application/yaml",
				"text/plain",
				"text/html",
			},
			SupplyDefault:    true,
			AnnotateResponse: true,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ParseLevel converts a logging.level string into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return debug.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
