package models

import "time"

// Task представляет задачу пользователя
type Task struct {
	ID        int64     `json:"id"`         // автоинкрементный ID задачи
	UserID    int64     `json:"user_id"`    // ID владельца
	Title     string    `json:"title"`      // текст задачи, не пустой
	Completed bool      `json:"completed"`  // выполнена или нет
	CreatedAt time.Time `json:"created_at"` // время создания
}
