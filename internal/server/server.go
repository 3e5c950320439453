// Package server assembles the HTTP API: routes, middleware and lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/todoserver/internal/server/handlers"
	"github.com/iudanet/todoserver/internal/server/middleware"
	"github.com/iudanet/todoserver/internal/server/session"
	"github.com/iudanet/todoserver/internal/server/storage"
)

// shutdownTimeout время на graceful shutdown
const shutdownTimeout = 10 * time.Second

// Store объединяет требования сервера к основному хранилищу
type Store interface {
	storage.UserStorage
	storage.TaskStorage
	handlers.Pinger
}

// Server представляет HTTP сервер приложения
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New собирает сервер: handlers, маршруты и middleware цепочку.
// Все зависимости передаются явно.
func New(logger *slog.Logger, addr string, store Store, sessions *session.Manager) *Server {
	authHandler := handlers.NewAuthHandler(logger, store, sessions)
	todosHandler := handlers.NewTodosHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store)

	requireAuth := middleware.Auth(logger, sessions)

	mux := http.NewServeMux()

	// Auth endpoints: register и login создают сессию, logout уничтожает
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.Handle("GET /auth/status", requireAuth(http.HandlerFunc(authHandler.Status)))

	// Task endpoints: все за auth middleware
	mux.Handle("GET /api/todos", requireAuth(http.HandlerFunc(todosHandler.List)))
	mux.Handle("POST /api/todos", requireAuth(http.HandlerFunc(todosHandler.Create)))
	mux.Handle("PUT /api/todos/{id}", requireAuth(http.HandlerFunc(todosHandler.Update)))
	mux.Handle("DELETE /api/todos/{id}", requireAuth(http.HandlerFunc(todosHandler.Delete)))

	mux.HandleFunc("GET /healthz", healthHandler.Health)

	handler := middleware.Recovery(logger)(
		middleware.LoggingWithSkip(logger, []string{"/healthz"})(mux),
	)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the root handler, wired with the full middleware chain.
// Used by tests to serve through httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
