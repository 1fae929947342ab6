package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskman-be/internal/entities"
	"taskman-be/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	users map[string]*entities.User // keyed by email
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(email, passwordHash string) (*entities.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, repository.ErrDuplicateEmail
	}
	f.seq++
	now := time.Now()
	user := &entities.User{
		ID:           fmt.Sprintf("user-%d", f.seq),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// fakeTaskRepo is an in-memory TaskRepository for tests. Tasks are kept in
// insertion order, matching the deterministic listing of the real store.
type fakeTaskRepo struct {
	tasks []*entities.Task
	seq   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (f *fakeTaskRepo) Create(title, description string) (*entities.Task, error) {
	f.seq++
	now := time.Now()
	task := &entities.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeTaskRepo) FindAll(completed *bool) ([]*entities.Task, error) {
	result := []*entities.Task{}
	for _, task := range f.tasks {
		if completed == nil || task.Completed == *completed {
			result = append(result, task)
		}
	}
	return result, nil
}

func (f *fakeTaskRepo) FindByID(id string) (*entities.Task, error) {
	for _, task := range f.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (f *fakeTaskRepo) Update(id string, title, description *string, completed *bool) (*entities.Task, error) {
	task, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		task.Title = *title
	}
	if description != nil {
		task.Description = *description
	}
	if completed != nil {
		task.Completed = *completed
	}
	task.UpdatedAt = time.Now()
	return task, nil
}

func (f *fakeTaskRepo) Delete(id string) error {
	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

// fakeCache is an in-memory cache.Cache. Expirations are ignored.
type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.entries[key]
	if !ok {
		return "", fmt.Errorf("key not found")
	}
	return val, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return f.Set(ctx, key, string(data), expiration)
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := f.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}
