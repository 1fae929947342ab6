package entities

import "time"

// Task represents a task entity in the database
type Task struct {
	ID          string    `json:"id"` // UUID
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
