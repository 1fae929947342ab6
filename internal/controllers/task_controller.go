package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskman-be/internal/models"
	"taskman-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// CreateTask handles POST /api/tasks
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	task, err := tc.taskService.CreateTask(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Printf("create task failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create task",
		})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks with an optional ?completed=true|false filter
func (tc *TaskController) ListTasks(c *gin.Context) {
	var completed *bool
	switch c.Query("completed") {
	case "":
		// no filter
	case "true":
		v := true
		completed = &v
	case "false":
		v := false
		completed = &v
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "completed filter must be true or false",
		})
		return
	}

	tasks, err := tc.taskService.ListTasks(completed)
	if err != nil {
		log.Printf("list tasks failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list tasks",
		})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:id
func (tc *TaskController) GetTask(c *gin.Context) {
	task, err := tc.taskService.GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Printf("get task failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get task",
		})
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
func (tc *TaskController) UpdateTask(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	task, err := tc.taskService.UpdateTask(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
		default:
			log.Printf("update task failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update task",
			})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (tc *TaskController) DeleteTask(c *gin.Context) {
	err := tc.taskService.DeleteTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Printf("delete task failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete task",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}
