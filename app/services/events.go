package services

import "todo-cli/app/models"

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventTaskAdded     EventKind = "task_added"
	EventTaskUpdated   EventKind = "task_updated"
	EventTaskCompleted EventKind = "task_completed"
	EventTaskReopened  EventKind = "task_reopened"
	EventTaskDeleted   EventKind = "task_deleted"
	EventTasksCleared  EventKind = "tasks_cleared"
)

// Event describes a successful change to the task collection.
// Task is the state after the change; it is zero for EventTasksCleared.
type Event struct {
	Kind EventKind
	Task models.Task
}

// Listener receives collection events.
// TaskEvent is called while the collection is locked and must not block
// or call back into the collection.
type Listener interface {
	TaskEvent(Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(Event)

// TaskEvent calls f(e).
func (f ListenerFunc) TaskEvent(e Event) {
	f(e)
}
