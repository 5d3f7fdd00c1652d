// Package server exposes the gateway over HTTP: a status descriptor, a
// liveness endpoint, and the JSON-RPC tool endpoint at /mcp.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/jstewartrr/gemini-mcp/internal/config"
)

// Version is set at build time via ldflags.
var Version = "1.0.0"

// Server is the HTTP front of the gateway.
type Server struct {
	service    *Service
	cfg        config.Config
	httpServer *http.Server
}

// New creates a Server around the given request service.
func New(service *Service, cfg config.Config) *Server {
	return &Server{service: service, cfg: cfg}
}

// Routes builds the HTTP handler. Split from Serve so tests can drive the
// full middleware stack through httptest.
func (srv *Server) Routes() http.Handler {
	requestLogger := httplog.NewLogger("gemini-mcp", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})

	r := chi.NewMux()
	r.Use(chimiddleware.RealIP)
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", srv.handleStatus)
	r.Get("/health", srv.handleHealth)
	r.Post("/mcp", srv.service.handleMCP)
	// Preflight returns an empty success before any request decoding.
	r.Options("/mcp", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// handleStatus reports the service descriptor, including live store
// connectivity.
func (srv *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	connected := srv.service.store.Ping(ctx) == nil

	writeStatusJSON(w, map[string]any{
		"service":          "gemini-mcp",
		"version":          Version,
		"status":           "healthy",
		"instance":         srv.cfg.Instance,
		"platform":         "Google AI (Vertex AI)",
		"role":             "General/Analysis",
		"model":            srv.cfg.Model,
		"project":          srv.cfg.ProjectID,
		"memory_connected": connected,
		"features": []string{
			"identity_profile", "shared_memory_context", "auto_logging",
			"vertex_ai", "cors_enabled",
		},
	})
}

// handleHealth is the minimal liveness descriptor.
func (srv *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeStatusJSON(w, map[string]any{"status": "healthy", "version": Version})
}

func writeStatusJSON(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to write status response", "err", err)
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (srv *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(srv.cfg.Host, strconv.Itoa(srv.cfg.Port))
	srv.httpServer = &http.Server{
		Handler:           srv.Routes(),
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server is starting", "addr", addr)
		if err := srv.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.httpServer.SetKeepAlivesEnabled(false)
	if err := srv.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server shutdown complete")
	return nil
}
