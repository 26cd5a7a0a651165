package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when an operation receives input it cannot accept.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyDescription is returned when a task description is empty after trimming.
	ErrEmptyDescription = fmt.Errorf("%w: task description cannot be empty", ErrInvalidArgument)
)

// Task represents a single todo item.
// Two tasks are the same task when their IDs match, see Equal.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewTask creates a pending task with the given id.
// The description is trimmed and must not be empty.
func NewTask(id int, description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, ErrEmptyDescription
	}
	return Task{ID: id, Description: description}, nil
}

// SetDescription replaces the description as given.
func (t *Task) SetDescription(description string) {
	t.Description = description
}

// MarkCompleted marks the task as done.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// MarkIncomplete marks the task as pending again.
func (t *Task) MarkIncomplete() {
	t.Completed = false
}

// Equal reports whether both values refer to the same task.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID
}

// String renders the task as "<id>. [✓] <description>".
func (t Task) String() string {
	status := "[ ]"
	if t.Completed {
		status = "[✓]"
	}
	return fmt.Sprintf("%d. %s %s", t.ID, status, t.Description)
}
