// Command server runs the akzept content negotiation server.
//
// Configuration is layered: built-in defaults, then an optional YAML
// config file, then environment variables. The config file is taken
// from AKZEPT_CONFIG, ./config.yaml, or /etc/akzept/config.yaml,
// whichever is found first.
//
// Environment overrides:
//
//	AKZEPT_CONFIG            - Path to the YAML config file
//	AKZEPT_PORT              - Listen port (default: 8080)
//	AKZEPT_SUPPORTED_TYPES   - Comma-separated media types the server produces
//	AKZEPT_SUPPLY_DEFAULT    - Default to the first supported type when Accept is absent
//	AKZEPT_ANNOTATE_RESPONSE - Stamp the negotiated type on response Content-Type
//	AKZEPT_AUTH_TYPE         - "none", "apikey", or "jwt" (default: "none")
//	AKZEPT_API_KEYS          - JSON array of {key, subject} entries for apikey auth
//	AKZEPT_JWT_SECRET        - HS256 secret for jwt auth
//	AKZEPT_DEBUG             - Expose /debug/negotiate (default: false)
//	AKZEPT_LOG_LEVEL         - "trace", "debug", "info", "warn", or "error"
//	AKZEPT_DEBUG_CATEGORIES  - Comma-separated debug logging categories
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rhuss/akzept/pkg/config"
	"github.com/rhuss/akzept/pkg/debug"
	"github.com/rhuss/akzept/pkg/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	srv, err := server.New(cfg, server.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("assembling server: %w", err)
	}

	return srv.ListenAndServe()
}
