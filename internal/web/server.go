// Package web exposes the board service over an authenticated JSON HTTP
// API behind a chi router.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/juridesk/juridesk/internal/auth"
	"github.com/juridesk/juridesk/internal/board"
)

// Server is the HTTP front of the office board.
type Server struct {
	board  board.Service
	auth   *auth.Service
	router chi.Router
	addr   string
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr string // listen address (default: "127.0.0.1:8470")
}

// NewServer wires the services into a routed server.
func NewServer(cfg ServerConfig, boardSvc board.Service, authSvc *auth.Service) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8470"
	}
	s := &Server{
		board: boardSvc,
		auth:  authSvc,
		addr:  cfg.Addr,
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Post("/logout", s.handleLogout)

		r.Route("/kanban", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)

			r.Route("/columns", func(r chi.Router) {
				r.Post("/", s.handleCreateColumn)
				r.Post("/reorder", s.handleReorderColumns)
				r.Put("/{id}", s.handleUpdateColumn)
				r.Delete("/{id}", s.handleDeleteColumn)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Post("/", s.handleCreateCard)
				r.Put("/{id}", s.handleUpdateCard)
				r.Delete("/{id}", s.handleDeleteCard)
				r.Post("/{id}/move", s.handleMoveCard)
			})
		})
	})

	return r
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
