package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger *slog.Logger
	db     Pinger
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		db:     db,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status string `json:"status"`
}

// Health обрабатывает GET /healthz
// Health check endpoint для мониторинга; проверяет доступность БД
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := HealthResponse{Status: "ok"}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", slog.Any("error", err))
		status = http.StatusServiceUnavailable
		resp.Status = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
