// Package server exposes document analysis and claim verification over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"

	"github.com/nmalahov/clarus/internal/config"
)

// Version is the service version reported by the root endpoint.
const Version = "1.0.0"

// Server wires the HTTP surface around the two orchestrators.
type Server struct {
	httpServer      *http.Server
	logger          *log.Logger
	shutdownTimeout time.Duration
}

// New builds the server with its full middleware chain and routes.
func New(cfg config.ServerConfig, analyzer DocumentAnalyzer, verifier ClaimVerifier, logger *log.Logger) *Server {
	if logger == nil {
		logger = &log.DefaultLogger
	}

	h := newHandler(analyzer, verifier, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /analyze-legal-document", h.handleAnalyzeDocument)
	mux.HandleFunc("POST /verify-misinformation", h.handleVerifyMisinformation)

	// Middleware chain: recovery -> cors -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(logger, handler)
	handler = corsMiddleware(handler)
	handler = recoveryMiddleware(logger, handler)

	return &Server{
		httpServer: &http.Server{
			Addr:        cfg.Addr,
			Handler:     handler,
			ReadTimeout: cfg.ReadTimeout,
			// No write timeout: multi-chunk document analysis can run long.
			IdleTimeout: 120 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// Handler exposes the routed handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
