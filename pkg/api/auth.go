// Package api defines the JSON request and response types of the HTTP API.
package api

// RegisterRequest тело запроса POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest тело запроса POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse ответ на успешную регистрацию
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// StatusResponse ответ GET /auth/status
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id"`
	Username      string `json:"username,omitempty"`
}

// MessageResponse общий ответ с человекочитаемым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse ответ с ошибкой; Message не содержит внутренних деталей
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
