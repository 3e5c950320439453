package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/iudanet/todoserver/internal/server/storage"
	"github.com/iudanet/todoserver/pkg/api"
)

// TodosHandler обрабатывает CRUD запросы по задачам.
// Все маршруты за auth middleware; владелец берется только из контекста.
type TodosHandler struct {
	logger *slog.Logger
	tasks  storage.TaskStorage
}

// NewTodosHandler создает новый handler для задач
func NewTodosHandler(logger *slog.Logger, tasks storage.TaskStorage) *TodosHandler {
	return &TodosHandler{
		logger: logger,
		tasks:  tasks,
	}
}

// List обрабатывает GET /api/todos
// Возвращает все задачи пользователя, новые первыми
func (h *TodosHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.ListTasks(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks", slog.Any("error", err), slog.Int64("user_id", userID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Конвертируем в API формат; user_id наружу не отдаем
	todos := make([]api.Todo, 0, len(tasks))
	for _, task := range tasks {
		todos = append(todos, api.Todo{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
			CreatedAt: task.CreatedAt,
		})
	}

	h.sendJSON(w, todos, http.StatusOK)
}

// Create обрабатывает POST /api/todos
func (h *TodosHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req api.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create todo request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.sendError(w, "title is required", http.StatusBadRequest)
		return
	}

	todoID, err := h.tasks.CreateTask(ctx, userID, req.Title)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create task", slog.Any("error", err), slog.Int64("user_id", userID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.Int64("todo_id", todoID),
		slog.Int64("user_id", userID))

	resp := api.CreateTodoResponse{
		ID:      todoID,
		Message: "Todo created successfully",
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Update обрабатывает PUT /api/todos/{id}
// Обновляет флаг completed; задача и владелец проверяются одним запросом
func (h *TodosHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	todoID, err := h.todoIDFromPath(r)
	if err != nil {
		h.sendError(w, "invalid todo id", http.StatusBadRequest)
		return
	}

	var req api.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update todo request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Указатель отличает completed:false от отсутствующего поля
	if req.Completed == nil {
		h.sendError(w, "completed is required", http.StatusBadRequest)
		return
	}

	affected, err := h.tasks.SetTaskCompleted(ctx, todoID, userID, *req.Completed)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update task", slog.Any("error", err), slog.Int64("user_id", userID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 0 строк: задачи нет либо она принадлежит другому пользователю,
	// ответ в обоих случаях одинаковый
	if affected == 0 {
		h.sendError(w, "todo not found", http.StatusNotFound)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Todo updated successfully"}, http.StatusOK)
}

// Delete обрабатывает DELETE /api/todos/{id}
func (h *TodosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	todoID, err := h.todoIDFromPath(r)
	if err != nil {
		h.sendError(w, "invalid todo id", http.StatusBadRequest)
		return
	}

	affected, err := h.tasks.DeleteTask(ctx, todoID, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete task", slog.Any("error", err), slog.Int64("user_id", userID))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if affected == 0 {
		h.sendError(w, "todo not found", http.StatusNotFound)
		return
	}

	h.logger.InfoContext(ctx, "task deleted",
		slog.Int64("todo_id", todoID),
		slog.Int64("user_id", userID))

	h.sendJSON(w, api.MessageResponse{Message: "Todo deleted successfully"}, http.StatusOK)
}

// todoIDFromPath извлекает id задачи из path parameter (Go 1.22+)
func (h *TodosHandler) todoIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// sendJSON отправляет JSON ответ
func (h *TodosHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *TodosHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
