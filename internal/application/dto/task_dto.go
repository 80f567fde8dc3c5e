package dto

import "time"

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	CustomerID  *int64     `json:"customer_id"`
	UserID      *int64     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest campos opcionales de la tarea.
type UpdateTaskRequest struct {
	CustomerID  *int64     `json:"customer_id"`
	UserID      *int64     `json:"user_id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

// TaskFilter query del listado.
type TaskFilter struct {
	PageRequest
	CustomerID *int64
	UserID     *int64
	Completed  *bool
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          int64      `json:"id"`
	CustomerID  *int64     `json:"customer_id,omitempty"`
	UserID      *int64     `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse lista paginada de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
