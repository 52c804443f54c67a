// Package server assembles the akzept HTTP server from its parts:
// the negotiation middleware, the ambient middleware stack,
// authentication, metrics, and the demo endpoints. It owns the
// http.Server lifecycle including startup and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rhuss/akzept/pkg/auth"
	"github.com/rhuss/akzept/pkg/config"
)

const serviceName = "akzept"

// Server wraps an http.Server with the assembled handler and manages
// the full lifecycle including startup and graceful shutdown.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	addr       string
	handler    http.Handler
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAddr overrides the listen address derived from the configured port.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// New assembles a server from the given configuration. The
// configuration is expected to be validated already; New fails only
// when a component cannot be constructed from it, such as an
// authenticator with an unusable key set.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		addr:   fmt.Sprintf(":%d", cfg.Server.Port),
	}

	for _, opt := range opts {
		opt(s)
	}

	authn, err := buildAuthenticator(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring authentication: %w", err)
	}

	s.handler = s.buildHandler(authn)

	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

// buildAuthenticator maps the auth configuration to an Authenticator.
// Returns nil when authentication is disabled.
func buildAuthenticator(cfg *config.Config) (auth.Authenticator, error) {
	switch cfg.Auth.Type {
	case "", "none":
		return nil, nil
	case "apikey":
		entries := make([]auth.KeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			entries = append(entries, auth.KeyEntry{Key: k.Key, Subject: k.Subject})
		}
		return auth.NewAPIKeys(entries)
	case "jwt":
		return auth.NewJWT(auth.JWTOptions{
			Secret:   cfg.Auth.JWT.Secret,
			Issuer:   cfg.Auth.JWT.Issuer,
			Audience: cfg.Auth.JWT.Audience,
		})
	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}
}

// Handler returns the fully assembled handler. Use this to test with
// httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe starts the server and blocks until a shutdown signal
// (SIGINT or SIGTERM) is received. It then gracefully shuts down,
// waiting for in-flight requests to complete within the configured
// timeout.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.httpServer.Addr),
			slog.Any("supported_types", s.cfg.Negotiation.SupportedTypes),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	return s.shutdown()
}

// ServeOn starts the server on the given listener. Used for testing.
func (s *Server) ServeOn(ln net.Listener) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down gracefully", slog.Duration("timeout", s.cfg.Server.ShutdownTimeout))
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Shutdown gracefully shuts down the server with the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
