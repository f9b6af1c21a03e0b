// ABOUTME: Server orchestrator that owns the HTTP listener and the note store
// ABOUTME: Manages route registration, health endpoint, and graceful shutdown lifecycle

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/2389/notes-server/internal/assets"
	"github.com/2389/notes-server/internal/config"
	"github.com/2389/notes-server/internal/store"
)

// shutdownTimeout bounds graceful shutdown once the run context is canceled.
const shutdownTimeout = 5 * time.Second

// Server serves the notes API and static assets over HTTP.
type Server struct {
	config     *config.Config
	store      store.NoteStore
	httpServer *http.Server
	logger     *slog.Logger
}

// OpenStore creates the note store selected by config, seeded with the
// welcome note.
func OpenStore(cfg *config.Config) (store.NoteStore, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(store.WelcomeNote)
		if err != nil {
			return nil, fmt.Errorf("initializing store: %w", err)
		}
		return s, nil
	case config.BackendMemory, "":
		return store.NewMemoryStore(store.WelcomeNote), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// New creates a Server around the given store. The server owns the store
// and closes it on Shutdown.
func New(cfg *config.Config, notes store.NoteStore, logger *slog.Logger) *Server {
	s := &Server{
		config: cfg,
		store:  notes,
		logger: logger.With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the full HTTP handler: routes wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Notes API
	mux.HandleFunc("GET /api/notes", s.handleListNotes)
	mux.HandleFunc("POST /api/notes", s.handleCreateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)

	// Everything else is a static asset
	mux.Handle("/", assets.FileServer(s.config.Static.Dir))

	return withRequestID(withRequestLogging(s.logger, mux))
}

// startServer starts the HTTP server in a goroutine, returning its error channel.
func (s *Server) startServer(ln net.Listener) chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	return errCh
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown (context canceled), or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		_ = s.store.Close()
		return fmt.Errorf("listening on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := s.startServer(ln)

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() since the run context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", s.httpServer.Shutdown(ctx))
	errs = appendCloseError(errs, "store close", s.store.Close())

	return errors.Join(errs...)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
