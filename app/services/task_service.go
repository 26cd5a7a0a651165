package services

import (
	"strings"
	"sync"

	"todo-cli/app/models"
)

// Stats is a consistent snapshot of the collection counters.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// CompletionRate returns the completed share as a percentage, 0 when empty.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// TaskService owns the in-memory task collection.
// Tasks keep insertion order; ids come from a counter that is never reset,
// so an id is never handed out twice by the same service.
type TaskService struct {
	mu       sync.Mutex
	tasks    []models.Task
	lastID   int
	listener Listener
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithListener registers l to receive an Event for every mutation.
func WithListener(l Listener) Option {
	return func(s *TaskService) {
		s.listener = l
	}
}

// NewTaskService creates an empty TaskService.
func NewTaskService(opts ...Option) *TaskService {
	s := &TaskService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a task from the trimmed description and appends it.
// It returns models.ErrEmptyDescription when nothing is left after trimming.
func (s *TaskService) Add(description string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := models.NewTask(s.lastID+1, description)
	if err != nil {
		return models.Task{}, err
	}
	s.lastID = task.ID
	s.tasks = append(s.tasks, task)
	s.emit(EventTaskAdded, task)
	return task, nil
}

// GetAll returns a copy of every task in insertion order.
func (s *TaskService) GetAll() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(models.Task) bool { return true })
}

// GetByID returns the task with the given id.
func (s *TaskService) GetByID(id int) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// MarkComplete marks the task as completed and reports whether it exists.
func (s *TaskService) MarkComplete(id int) bool {
	return s.mutate(id, EventTaskCompleted, (*models.Task).MarkCompleted)
}

// MarkIncomplete marks the task as pending and reports whether it exists.
func (s *TaskService) MarkIncomplete(id int) bool {
	return s.mutate(id, EventTaskReopened, (*models.Task).MarkIncomplete)
}

// UpdateDescription replaces a task's description.
// Empty descriptions are rejected the same way Add rejects them; the boolean
// reports whether the task exists.
func (s *TaskService) UpdateDescription(id int, description string) (bool, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return false, models.ErrEmptyDescription
	}
	return s.mutate(id, EventTaskUpdated, func(t *models.Task) {
		t.SetDescription(description)
	}), nil
}

// Delete removes the task with the given id, keeping the order of the rest.
func (s *TaskService) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.emit(EventTaskDeleted, removed)
	return true
}

// GetCompleted returns the completed tasks in insertion order.
func (s *TaskService) GetCompleted() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(t models.Task) bool { return t.Completed })
}

// GetPending returns the pending tasks in insertion order.
func (s *TaskService) GetPending() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(t models.Task) bool { return !t.Completed })
}

// TotalCount returns the number of tasks.
func (s *TaskService) TotalCount() int {
	return s.Stats().Total
}

// CompletedCount returns the number of completed tasks.
func (s *TaskService) CompletedCount() int {
	return s.Stats().Completed
}

// PendingCount returns the number of pending tasks.
func (s *TaskService) PendingCount() int {
	return s.Stats().Pending
}

// Stats returns all counters from a single view of the collection.
func (s *TaskService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// ClearAll removes every task. The id counter is left untouched.
func (s *TaskService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.emit(EventTasksCleared, models.Task{})
}

func (s *TaskService) mutate(id int, kind EventKind, fn func(*models.Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.tasks[i])
	s.emit(kind, s.tasks[i])
	return true
}

// indexOf must be called with mu held.
func (s *TaskService) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// filter must be called with mu held. The result never aliases s.tasks.
func (s *TaskService) filter(keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskService) emit(kind EventKind, task models.Task) {
	if s.listener != nil {
		s.listener.TaskEvent(Event{Kind: kind, Task: task})
	}
}
