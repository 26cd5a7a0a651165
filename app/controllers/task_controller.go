package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo-cli/app/models"
	"todo-cli/app/services"
)

// TaskController handles HTTP requests for tasks.
type TaskController struct {
	Service *services.TaskService
	Logger  *log.Logger
}

// NewTaskController creates a new TaskController.
func NewTaskController(service *services.TaskService, logger *log.Logger) *TaskController {
	return &TaskController{Service: service, Logger: logger}
}

type createTaskRequest struct {
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type statsResponse struct {
	services.Stats
	CompletionRate float64 `json:"completion_rate"`
}

// GetTasks handles GET /tasks?status=all|pending|completed.
func (c *TaskController) GetTasks(w http.ResponseWriter, r *http.Request) {
	var tasks []models.Task
	switch r.URL.Query().Get("status") {
	case "", "all":
		tasks = c.Service.GetAll()
	case "pending":
		tasks = c.Service.GetPending()
	case "completed":
		tasks = c.Service.GetCompleted()
	default:
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := c.Service.Add(req.Description)
	if err != nil {
		c.writeError(w, err)
		return
	}
	c.Logger.Debug("task created", "task_id", task.ID)

	writeJSON(w, http.StatusCreated, task)
}

// ClearTasks handles DELETE /tasks.
func (c *TaskController) ClearTasks(w http.ResponseWriter, r *http.Request) {
	c.Service.ClearAll()
	c.Logger.Info("all tasks cleared")
	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /tasks/stats.
func (c *TaskController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := c.Service.Stats()
	writeJSON(w, http.StatusOK, statsResponse{Stats: stats, CompletionRate: stats.CompletionRate()})
}

// GetTaskByID handles GET /tasks/{taskID}.
func (c *TaskController) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}
	task, found := c.Service.GetByID(taskID)
	if !found {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{taskID}.
// Either field may be omitted; the description is applied before the status.
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}
	var updates updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if _, found := c.Service.GetByID(taskID); !found {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	if updates.Description != nil {
		if _, err := c.Service.UpdateDescription(taskID, *updates.Description); err != nil {
			c.writeError(w, err)
			return
		}
	}
	if updates.Completed != nil {
		c.setCompleted(taskID, *updates.Completed)
	}

	c.respondWithTask(w, taskID)
}

// CompleteTask handles POST /tasks/{taskID}/complete.
func (c *TaskController) CompleteTask(w http.ResponseWriter, r *http.Request) {
	c.handleStatus(w, r, true)
}

// ReopenTask handles POST /tasks/{taskID}/incomplete.
func (c *TaskController) ReopenTask(w http.ResponseWriter, r *http.Request) {
	c.handleStatus(w, r, false)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}
	if !c.Service.Delete(taskID) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	c.Logger.Debug("task deleted", "task_id", taskID)

	w.WriteHeader(http.StatusNoContent)
}

func (c *TaskController) handleStatus(w http.ResponseWriter, r *http.Request, completed bool) {
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}
	if !c.setCompleted(taskID, completed) {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	c.respondWithTask(w, taskID)
}

func (c *TaskController) setCompleted(taskID int, completed bool) bool {
	if completed {
		return c.Service.MarkComplete(taskID)
	}
	return c.Service.MarkIncomplete(taskID)
}

// respondWithTask writes the current state of the task, which may have been
// deleted by a concurrent request in the meantime.
func (c *TaskController) respondWithTask(w http.ResponseWriter, taskID int) {
	task, found := c.Service.GetByID(taskID)
	if !found {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (c *TaskController) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrInvalidArgument) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.Logger.Error("request failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func taskIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	taskID, err := strconv.Atoi(mux.Vars(r)["taskID"])
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return 0, false
	}
	return taskID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
