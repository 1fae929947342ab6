package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"taskman-be/internal/entities"
)

// ErrTaskNotFound is returned when no task matches the given id.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the interface for task database operations
type TaskRepository interface {
	Create(title, description string) (*entities.Task, error)
	FindAll(completed *bool) ([]*entities.Task, error)
	FindByID(id string) (*entities.Task, error)
	Update(id string, title, description *string, completed *bool) (*entities.Task, error)
	Delete(id string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create inserts a new task into the database
func (r *taskRepository) Create(title, description string) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, completed, created_at, updated_at
	`

	var task entities.Task
	err := r.db.QueryRow(query, title, description).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// FindAll returns all tasks, optionally filtered by completion status.
// Ordering is by creation time (id as tie-breaker) so a given store state
// always lists in the same order.
func (r *taskRepository) FindAll(completed *bool) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
	`
	args := []interface{}{}
	if completed != nil {
		query += " WHERE completed = $1"
		args = append(args, *completed)
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*entities.Task{}
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// FindByID finds a task by ID (UUID)
func (r *taskRepository) FindByID(id string) (*entities.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task entities.Task
	err := r.db.QueryRow(query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &task, nil
}

// Update applies a partial update: nil fields keep their current value.
// updated_at is always refreshed, so an empty partial is a valid no-op that
// only bumps the timestamp.
func (r *taskRepository) Update(id string, title, description *string, completed *bool) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    completed = COALESCE($4, completed),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, completed, created_at, updated_at
	`

	var task entities.Task
	err := r.db.QueryRow(query, id, title, description, completed).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// Delete removes a task by ID. Returns ErrTaskNotFound if nothing was deleted.
func (r *taskRepository) Delete(id string) error {
	query := "DELETE FROM tasks WHERE id = $1"

	result, err := r.db.Exec(query, id)
	if isInvalidUUID(err) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
