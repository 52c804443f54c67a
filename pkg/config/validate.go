package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// Timeouts must be positive.
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be > 0, got %v", c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be > 0, got %v", c.Server.WriteTimeout))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be > 0, got %v", c.Server.ShutdownTimeout))
	}

	// Every supported type must be a type/subtype pair.
	for i, mt := range c.Negotiation.SupportedTypes {
		if !validMediaType(mt) {
			errs = append(errs, fmt.Errorf("negotiation.supported_types[%d]: %q is not a type/subtype media type", i, mt))
		}
	}

	// Defaulting needs at least one supported type to default to. Catching
	// this here keeps it from surfacing as a blanket 406 at request time.
	if c.Negotiation.SupplyDefault && len(c.Negotiation.SupportedTypes) == 0 {
		errs = append(errs, fmt.Errorf("negotiation.supply_default requires a non-empty negotiation.supported_types"))
	}

	// auth.type must be a known value.
	switch c.Auth.Type {
	case "none", "apikey", "jwt":
		// valid
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}

	// If auth.type is "apikey", at least one key entry must be configured.
	if c.Auth.Type == "apikey" {
		if len(c.Auth.APIKeys) == 0 {
			errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
		}
		for i, k := range c.Auth.APIKeys {
			if k.Key == "" && k.KeyFile == "" {
				errs = append(errs, fmt.Errorf("auth.api_keys[%d]: key or key_file is required", i))
			}
		}
	}

	// If auth.type is "jwt", a signing secret must be configured.
	if c.Auth.Type == "jwt" && c.Auth.JWT.Secret == "" && c.Auth.JWT.SecretFile == "" {
		errs = append(errs, fmt.Errorf("auth.jwt.secret or auth.jwt.secret_file is required when auth.type is \"jwt\""))
	}

	// observability.metrics.path must be an absolute URL path.
	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	// logging.level must parse.
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// validMediaType reports whether v is a bare two-part type/subtype
// value. Wildcards are not accepted here: the supported list declares
// what the server produces, and a server cannot produce "text/*".
// Parameters are not accepted either; renderers are keyed on the bare
// pair.
func validMediaType(v string) bool {
	if strings.ContainsAny(v, "; ") {
		return false
	}
	typ, sub, found := strings.Cut(v, "/")
	if !found {
		return false
	}
	return typ != "" && sub != "" && typ != "*" && sub != "*" && !strings.Contains(sub, "/")
}
