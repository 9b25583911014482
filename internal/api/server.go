// ABOUTME: HTTP server wiring routes, middleware and graceful shutdown
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultAddr is the default listen address
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout guards against slow-header clients
	ReadHeaderTimeout = 10 * time.Second
)

// Server is the HTTP server for the assistant backend
type Server struct {
	mux *http.ServeMux
}

// NewServer creates an HTTP server with all routes registered
func NewServer(rag *RAGHandler, chat *ChatHandler) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	rag.RegisterRoutes(mux)
	chat.RegisterRoutes(mux)
	return &Server{mux: mux}
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware, loggingMiddleware)
}

// Run starts the server and blocks until the context is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
