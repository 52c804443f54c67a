package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("default server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("default server.read_timeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("default server.write_timeout = %v, want 60s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("default server.shutdown_timeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.Negotiation.SupportedTypes) == 0 || cfg.Negotiation.SupportedTypes[0] != "application/json" {
		t.Errorf("default negotiation.supported_types = %v, want application/json first", cfg.Negotiation.SupportedTypes)
	}
	if !cfg.Negotiation.SupplyDefault {
		t.Error("default negotiation.supply_default = false, want true")
	}
	if !cfg.Negotiation.AnnotateResponse {
		t.Error("default negotiation.annotate_response = false, want true")
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("default auth.type = %q, want \"none\"", cfg.Auth.Type)
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("default observability.metrics.enabled = false, want true")
	}
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("default observability.metrics.path = %q, want \"/metrics\"", cfg.Observability.Metrics.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default logging.level = %q, want \"info\"", cfg.Logging.Level)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
server:
  port: 9090
  read_timeout: 60s
  write_timeout: 180s
  shutdown_timeout: 10s
  debug: true
negotiation:
  supported_types:
    - text/html
    - application/json
  supply_default: false
  annotate_response: false
auth:
  type: apikey
  api_keys:
    - key: sk-key-1
      subject: alice
    - key: sk-key-2
      subject: bob
observability:
  metrics:
    enabled: false
logging:
  level: debug
`

	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("server.read_timeout = %v, want 60s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 180*time.Second {
		t.Errorf("server.write_timeout = %v, want 180s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("server.shutdown_timeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if !cfg.Server.Debug {
		t.Error("server.debug = false, want true")
	}

	// Negotiation
	if len(cfg.Negotiation.SupportedTypes) != 2 {
		t.Fatalf("negotiation.supported_types length = %d, want 2", len(cfg.Negotiation.SupportedTypes))
	}
	if cfg.Negotiation.SupportedTypes[0] != "text/html" {
		t.Errorf("negotiation.supported_types[0] = %q, want \"text/html\"", cfg.Negotiation.SupportedTypes[0])
	}
	if cfg.Negotiation.SupplyDefault {
		t.Error("negotiation.supply_default = true, want false")
	}
	if cfg.Negotiation.AnnotateResponse {
		t.Error("negotiation.annotate_response = true, want false")
	}

	// Auth
	if cfg.Auth.Type != "apikey" {
		t.Errorf("auth.type = %q, want \"apikey\"", cfg.Auth.Type)
	}
	if len(cfg.Auth.APIKeys) != 2 {
		t.Fatalf("auth.api_keys length = %d, want 2", len(cfg.Auth.APIKeys))
	}
	if cfg.Auth.APIKeys[0].Key != "sk-key-1" {
		t.Errorf("auth.api_keys[0].key = %q, want \"sk-key-1\"", cfg.Auth.APIKeys[0].Key)
	}
	if cfg.Auth.APIKeys[0].Subject != "alice" {
		t.Errorf("auth.api_keys[0].subject = %q, want \"alice\"", cfg.Auth.APIKeys[0].Subject)
	}

	// Observability
	if cfg.Observability.Metrics.Enabled {
		t.Error("observability.metrics.enabled = true, want false")
	}

	// Logging
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want \"debug\"", cfg.Logging.Level)
	}
}

func TestYAMLDefaultsMerge(t *testing.T) {
	// A minimal YAML that only overrides the port. All other fields should
	// retain defaults.
	yamlContent := `
server:
  port: 9999
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("server.read_timeout = %v, want default 30s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Negotiation.SupportedTypes) != 4 {
		t.Errorf("negotiation.supported_types = %v, want the four defaults", cfg.Negotiation.SupportedTypes)
	}
	if cfg.Auth.Type != "none" {
		t.Errorf("auth.type = %q, want default \"none\"", cfg.Auth.Type)
	}
}

func TestEnvOverride(t *testing.T) {
	yamlContent := `
server:
  port: 9090
negotiation:
  supported_types:
    - text/html
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	t.Setenv("AKZEPT_PORT", "7070")
	t.Setenv("AKZEPT_SUPPORTED_TYPES", "application/json, text/plain")
	t.Setenv("AKZEPT_SUPPLY_DEFAULT", "false")
	t.Setenv("AKZEPT_ANNOTATE_RESPONSE", "false")
	t.Setenv("AKZEPT_LOG_LEVEL", "warn")
	t.Setenv("AKZEPT_DEBUG", "true")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want env override 7070", cfg.Server.Port)
	}
	if len(cfg.Negotiation.SupportedTypes) != 2 || cfg.Negotiation.SupportedTypes[1] != "text/plain" {
		t.Errorf("negotiation.supported_types = %v, want env override [application/json text/plain]", cfg.Negotiation.SupportedTypes)
	}
	if cfg.Negotiation.SupplyDefault {
		t.Error("negotiation.supply_default = true, want env override false")
	}
	if cfg.Negotiation.AnnotateResponse {
		t.Error("negotiation.annotate_response = true, want env override false")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want env override \"warn\"", cfg.Logging.Level)
	}
	if !cfg.Server.Debug {
		t.Error("server.debug = false, want env override true")
	}
}

func TestEnvOverrideAPIKeys(t *testing.T) {
	t.Setenv("AKZEPT_AUTH_TYPE", "apikey")
	t.Setenv("AKZEPT_API_KEYS", `[{"key":"sk-env","subject":"env-user"}]`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Auth.Type != "apikey" {
		t.Errorf("auth.type = %q, want \"apikey\"", cfg.Auth.Type)
	}
	if len(cfg.Auth.APIKeys) != 1 {
		t.Fatalf("auth.api_keys length = %d, want 1", len(cfg.Auth.APIKeys))
	}
	if cfg.Auth.APIKeys[0].Key != "sk-env" {
		t.Errorf("auth.api_keys[0].key = %q, want \"sk-env\"", cfg.Auth.APIKeys[0].Key)
	}
	if cfg.Auth.APIKeys[0].Subject != "env-user" {
		t.Errorf("auth.api_keys[0].subject = %q, want \"env-user\"", cfg.Auth.APIKeys[0].Subject)
	}
}

func TestFileReferenceJWTSecret(t *testing.T) {
	secretFile := writeTemp(t, "secret-*.txt", "  hmac-secret-from-file  \n")

	yamlContent := `
auth:
  type: jwt
  jwt:
    secret_file: ` + secretFile + `
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Auth.JWT.Secret != "hmac-secret-from-file" {
		t.Errorf("auth.jwt.secret = %q, want \"hmac-secret-from-file\" (from file, trimmed)", cfg.Auth.JWT.Secret)
	}
}

func TestFileReferenceForAPIKeys(t *testing.T) {
	keyFile := writeTemp(t, "apikey-*.txt", "  sk-key-from-file  \n")

	yamlContent := `
auth:
  type: apikey
  api_keys:
    - key_file: ` + keyFile + `
      subject: file-user
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Auth.APIKeys) != 1 {
		t.Fatalf("auth.api_keys length = %d, want 1", len(cfg.Auth.APIKeys))
	}
	if cfg.Auth.APIKeys[0].Key != "sk-key-from-file" {
		t.Errorf("auth.api_keys[0].key = %q, want \"sk-key-from-file\"", cfg.Auth.APIKeys[0].Key)
	}
}

func TestFileReferenceDoesNotOverrideExplicitValue(t *testing.T) {
	secretFile := writeTemp(t, "secret-*.txt", "secret-from-file")

	yamlContent := `
auth:
  type: jwt
  jwt:
    secret: secret-explicit
    secret_file: ` + secretFile + `
`
	tmpFile := writeTemp(t, "config-*.yaml", yamlContent)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// When both secret and secret_file are set, the explicit value wins.
	if cfg.Auth.JWT.Secret != "secret-explicit" {
		t.Errorf("auth.jwt.secret = %q, want \"secret-explicit\"", cfg.Auth.JWT.Secret)
	}
}

func TestFileDiscovery(t *testing.T) {
	// Explicit path.
	tmpFile := writeTemp(t, "config-*.yaml", "server:\n  port: 6001\n")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(explicit) error: %v", err)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("explicit path: server.port = %d, want 6001", cfg.Server.Port)
	}

	// AKZEPT_CONFIG env var.
	envFile := writeTemp(t, "envconfig-*.yaml", "server:\n  port: 6002\n")
	t.Setenv("AKZEPT_CONFIG", envFile)

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(AKZEPT_CONFIG) error: %v", err)
	}
	if cfg.Server.Port != 6002 {
		t.Errorf("AKZEPT_CONFIG: server.port = %d, want 6002", cfg.Server.Port)
	}

	// No file, no env config: defaults plus env overrides.
	t.Setenv("AKZEPT_CONFIG", "")
	t.Setenv("AKZEPT_PORT", "6003")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(no file) error: %v", err)
	}
	if cfg.Server.Port != 6003 {
		t.Errorf("no file: server.port = %d, want env override 6003", cfg.Server.Port)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name: "invalid port",
			modify: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: "server.port must be > 0",
		},
		{
			name: "negative read timeout",
			modify: func(c *Config) {
				c.Server.ReadTimeout = -time.Second
			},
			wantErr: "server.read_timeout must be > 0",
		},
		{
			name: "supported type without subtype",
			modify: func(c *Config) {
				c.Negotiation.SupportedTypes = []string{"json"}
			},
			wantErr: "negotiation.supported_types[0]",
		},
		{
			name: "wildcard supported type",
			modify: func(c *Config) {
				c.Negotiation.SupportedTypes = []string{"text/*"}
			},
			wantErr: "negotiation.supported_types[0]",
		},
		{
			name: "parameterized supported type",
			modify: func(c *Config) {
				c.Negotiation.SupportedTypes = []string{"application/json; charset=utf-8"}
			},
			wantErr: "negotiation.supported_types[0]",
		},
		{
			name: "supply_default with empty supported list",
			modify: func(c *Config) {
				c.Negotiation.SupportedTypes = nil
				c.Negotiation.SupplyDefault = true
			},
			wantErr: "negotiation.supply_default requires",
		},
		{
			name: "empty supported list without defaulting",
			modify: func(c *Config) {
				c.Negotiation.SupportedTypes = nil
				c.Negotiation.SupplyDefault = false
			},
			wantErr: "",
		},
		{
			name: "invalid auth type",
			modify: func(c *Config) {
				c.Auth.Type = "oauth2"
			},
			wantErr: "auth.type must be",
		},
		{
			name: "apikey without keys",
			modify: func(c *Config) {
				c.Auth.Type = "apikey"
			},
			wantErr: "auth.api_keys must not be empty",
		},
		{
			name: "apikey entry without key",
			modify: func(c *Config) {
				c.Auth.Type = "apikey"
				c.Auth.APIKeys = []APIKeyConfig{{Subject: "alice"}}
			},
			wantErr: "auth.api_keys[0]: key or key_file is required",
		},
		{
			name: "jwt without secret",
			modify: func(c *Config) {
				c.Auth.Type = "jwt"
			},
			wantErr: "auth.jwt.secret",
		},
		{
			name: "relative metrics path",
			modify: func(c *Config) {
				c.Observability.Metrics.Path = "metrics"
			},
			wantErr: "observability.metrics.path must start with",
		},
		{
			name: "unknown log level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: "logging.level",
		},
		{
			name:    "valid defaults",
			modify:  func(c *Config) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "trace", want: "DEBUG-4"},
		{in: "debug", want: "DEBUG"},
		{in: "info", want: "INFO"},
		{in: "", want: "INFO"},
		{in: "WARN", want: "WARN"},
		{in: "warning", want: "WARN"},
		{in: "Error", want: "ERROR"},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error, got %v", tt.in, level)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if level.String() != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, level, tt.want)
		}
	}
}

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		t.Fatalf("writing temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing temp file: %v", err)
	}
	return f.Name()
}
