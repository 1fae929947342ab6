package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskman-be/internal/cache"
	"taskman-be/internal/entities"
	"taskman-be/internal/models"
	"taskman-be/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(req *models.CreateTaskRequest) (*entities.Task, error)
	ListTasks(completed *bool) ([]*entities.Task, error)
	GetTask(id string) (*entities.Task, error)
	UpdateTask(id string, req *models.UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(id string) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache cache.Cache
	ctx   context.Context
}

// NewTaskService creates a new task service. cacheClient may be nil, in which
// case every read goes to the database.
func NewTaskService(repo repository.TaskRepository, cacheClient cache.Cache) TaskService {
	svc := &taskService{
		repo: repo,
		ctx:  context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func taskCacheKey(id string) string {
	return fmt.Sprintf("task:%s", id)
}

// CreateTask validates and stores a new task
func (s *taskService) CreateTask(req *models.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	task, err := s.repo.Create(title, strings.TrimSpace(req.Description))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, taskCacheKey(task.ID), task, taskCacheTTL)
	}

	return task, nil
}

// ListTasks returns all tasks, or only those matching the completed filter
// when one is given. Listings are never cached.
func (s *taskService) ListTasks(completed *bool) ([]*entities.Task, error) {
	return s.repo.FindAll(completed)
}

// GetTask returns a single task by id, consulting the cache first
func (s *taskService) GetTask(id string) (*entities.Task, error) {
	if s.cache != nil {
		var cached entities.Task
		if err := s.cache.GetJSON(s.ctx, taskCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.repo.FindByID(id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, taskCacheKey(id), task, taskCacheTTL)
	}

	return task, nil
}

// UpdateTask applies a partial update. Only supplied fields change; a
// supplied title must be non-empty. An empty partial is allowed and only
// refreshes updated_at.
func (s *taskService) UpdateTask(id string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	title := req.Title
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, ErrEmptyTitle
		}
		title = &trimmed
	}

	task, err := s.repo.Update(id, title, req.Description, req.Completed)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, taskCacheKey(id), task, taskCacheTTL)
	}

	return task, nil
}

// DeleteTask removes a task by id
func (s *taskService) DeleteTask(id string) error {
	err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, taskCacheKey(id))
	}

	return nil
}
