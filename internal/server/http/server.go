package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chameleon/internal/config"
)

// Server wraps the http.Server that serves the router.
type Server struct {
	httpServer    *http.Server
	shutdownGrace time.Duration
}

// NewServer creates a server for handler using cfg's address and timeouts.
func NewServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		shutdownGrace: cfg.ShutdownGrace,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not an
// error.
func (s *Server) ListenAndServe() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests, up
// to the configured grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownGrace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownGrace)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}
