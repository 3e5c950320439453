package api

import "time"

// Todo задача в ответах API
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTodoRequest тело запроса POST /api/todos
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// CreateTodoResponse ответ на успешное создание задачи
type CreateTodoResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// UpdateTodoRequest тело запроса PUT /api/todos/{id}.
// Completed это указатель, чтобы отличать false от отсутствующего поля.
type UpdateTodoRequest struct {
	Completed *bool `json:"completed"`
}
