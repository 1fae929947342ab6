package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"taskman-be/internal/entities"
	"taskman-be/internal/jwt"
	"taskman-be/internal/middleware"
	"taskman-be/internal/repository"
	"taskman-be/internal/service"
)

// In-memory repositories so the full HTTP surface can be exercised without a
// database.

type fakeUserRepo struct {
	users map[string]*entities.User
	seq   int
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

type fakeTaskRepo struct {
	tasks []*entities.Task
	seq   int
}

func (f *fakeTaskRepo) Create(title, description string) (*entities.Task, error) {
	f.seq++
	now := time.Now()
	task := &entities.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Title:       title,
		Description: description,
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

// newTestRouter wires the full application stack (minus the real stores) the
// same way main does.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	authService := service.NewAuthService(
		&fakeUserRepo{users: make(map[string]*entities.User)},
		jwtService,
		bcrypt.MinCost,
	)
	taskService := service.NewTaskService(&fakeTaskRepo{}, nil)

	authController := NewAuthController(authService)
	taskController := NewTaskController(taskService)

	router := gin.New()
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.AuthMiddleware(jwtService))
		{
			tasks.POST("", taskController.CreateTask)
			tasks.GET("", taskController.ListTasks)
			tasks.GET("/:id", taskController.GetTask)
			tasks.PUT("/:id", taskController.UpdateTask)
			tasks.DELETE("/:id", taskController.DeleteTask)
		}
	}
	return router
}

// doRequest performs a JSON request against the router and returns the recorder.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns a bearer token for it.
func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	creds := map[string]string{"email": "tester@example.com", "password": "password123"}
	if w := doRequest(t, router, http.MethodPost, "/api/auth/register", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("register status = %d (body: %s)", w.Code, w.Body.String())
	}

	w := doRequest(t, router, http.MethodPost, "/api/auth/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}
