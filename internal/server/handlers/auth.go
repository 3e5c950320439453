package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/todoserver/internal/auth"
	"github.com/iudanet/todoserver/internal/server/session"
	"github.com/iudanet/todoserver/internal/server/storage"
	"github.com/iudanet/todoserver/internal/validation"
	"github.com/iudanet/todoserver/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и авторизации
type AuthHandler struct {
	logger   *slog.Logger
	users    storage.UserStorage
	sessions *session.Manager
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		users:    users,
		sessions: sessions,
	}
}

// Register обрабатывает POST /auth/register
// Регистрация нового пользователя; успешная регистрация сразу создает сессию
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация полей
	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Хешируем пароль; plaintext дальше этого места не живет
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Сохраняем в БД; дубликат username отлавливает UNIQUE constraint
	userID, err := h.users.CreateUser(ctx, req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			h.sendError(w, "username already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Создаем сессию, как после успешного login
	token, err := h.sessions.Create(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.setSessionCookie(w, token)

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", req.Username),
		slog.Int64("user_id", userID))

	resp := api.RegisterResponse{
		Message: "User created successfully",
		UserID:  userID,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /auth/login
// Аутентификация пользователя по username и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Проверка обязательных полей
	if req.Username == "" || req.Password == "" {
		h.sendError(w, "username and password are required", http.StatusBadRequest)
		return
	}
	// Ограничение длины bcrypt, иначе VerifyPassword вернет ошибку вместо mismatch
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Получаем пользователя из БД
	user, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Тот же ответ, что и при неверном пароле: не раскрываем,
			// какие username существуют
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			h.sendError(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Проверяем пароль против bcrypt хеша
	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
			h.sendError(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Создаем сессию
	token, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.setSessionCookie(w, token)

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", req.Username),
		slog.Int64("user_id", user.ID))

	h.sendJSON(w, api.MessageResponse{Message: "Logged in successfully"}, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Уничтожает сессию; повторный logout без сессии тоже успешен
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(ctx, cookie.Value); err != nil {
			h.logger.ErrorContext(ctx, "failed to destroy session", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookie(w)
	h.sendJSON(w, api.MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}

// Status обрабатывает GET /auth/status
// Маршрут за auth middleware: сюда попадают только валидные сессии
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		h.sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	resp := api.StatusResponse{
		Authenticated: true,
		UserID:        userID,
	}

	// Username — дополнение к статусу; пользователи не удаляются,
	// поэтому ошибка тут означает проблему хранилища
	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	resp.Username = user.Username

	h.sendJSON(w, resp, http.StatusOK)
}

// setSessionCookie устанавливает cookie с токеном сессии
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie сбрасывает cookie сессии
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
