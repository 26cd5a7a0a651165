// Package shell implements the interactive menu for managing tasks.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todo-cli/app/models"
	"todo-cli/app/services"
)

// Options tune the shell's presentation policy.
type Options struct {
	// Pause waits for Enter after every action.
	Pause bool
	// Confirm asks before deleting a task or clearing the list.
	Confirm bool
	// ProgressWidth is the number of cells in the statistics progress bar.
	ProgressWidth int
}

// Shell reads menu choices from its input and runs them against a TaskService.
type Shell struct {
	tasks   *services.TaskService
	in      *bufio.Reader
	readErr error
	out     io.Writer
	logger  *log.Logger
	opts    Options
	styles  styles
	running bool
}

// New creates a Shell. It does not take ownership of in or out.
func New(tasks *services.TaskService, in io.Reader, out io.Writer, logger *log.Logger, opts Options) *Shell {
	if opts.ProgressWidth <= 0 {
		opts.ProgressWidth = 20
	}
	return &Shell{
		tasks:  tasks,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		opts:   opts,
		styles: newStyles(out),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.welcome()
	s.running = true

	for s.running && ctx.Err() == nil {
		s.menu()
		line, ok := s.readLine()
		if !ok {
			s.println()
			break
		}
		s.println()
		s.dispatch(parseChoice(line))

		if s.running && s.opts.Pause {
			s.printf("\nPress Enter to continue...")
			if _, ok := s.readLine(); !ok {
				break
			}
		}
		s.println()
	}

	s.goodbye()
	if err := s.readErr; err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func parseChoice(line string) int {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1
	}
	return choice
}

func (s *Shell) dispatch(choice int) {
	switch choice {
	case 1:
		s.addTask()
	case 2:
		s.viewAll()
	case 3:
		s.viewPending()
	case 4:
		s.viewCompleted()
	case 5:
		s.markComplete()
	case 6:
		s.markIncomplete()
	case 7:
		s.deleteTask()
	case 8:
		s.showStatistics()
	case 9:
		s.clearAll()
	case 0:
		s.running = false
	default:
		s.failure("Invalid choice. Please enter a number between 0-9.")
	}
}

// readLine returns the next input line without its line ending.
// Lines are not length limited. ok is false once the input is exhausted.
func (s *Shell) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.readErr = err
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// prompt prints label and returns the trimmed reply. ok is false at end of input.
func (s *Shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	line, ok := s.readLine()
	return strings.TrimSpace(line), ok
}

func (s *Shell) promptTaskID(label string) (int, bool) {
	reply, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(reply)
	if err != nil {
		s.failure("Please enter a valid task ID (number).")
		return 0, false
	}
	return id, true
}

func (s *Shell) confirm(question string) bool {
	if !s.opts.Confirm {
		return true
	}
	reply, ok := s.prompt(question + " (y/N): ")
	if !ok {
		return false
	}
	reply = strings.ToLower(reply)
	return reply == "y" || reply == "yes"
}

func (s *Shell) addTask() {
	s.heading("ADD NEW TASK")
	description, ok := s.prompt("Enter task description: ")
	if !ok {
		return
	}

	task, err := s.tasks.Add(description)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			s.failure("Task description cannot be empty!")
			return
		}
		s.failure("Error: " + err.Error())
		return
	}
	s.logger.Debug("task added", "task_id", task.ID)
	s.success("Task added successfully!")
	s.println("   " + task.String())
}

func (s *Shell) viewAll() {
	s.heading("ALL TASKS")
	tasks := s.tasks.GetAll()
	if len(tasks) == 0 {
		s.println("No tasks found. Add some tasks to get started!")
		return
	}
	s.listTasks(tasks)
	s.printf("\nTotal tasks: %d\n", len(tasks))
}

func (s *Shell) viewPending() {
	s.heading("PENDING TASKS")
	tasks := s.tasks.GetPending()
	if len(tasks) == 0 {
		s.println("No pending tasks. Great job!")
		return
	}
	s.listTasks(tasks)
	s.printf("\nPending tasks: %d\n", len(tasks))
}

func (s *Shell) viewCompleted() {
	s.heading("COMPLETED TASKS")
	tasks := s.tasks.GetCompleted()
	if len(tasks) == 0 {
		s.println("No completed tasks yet. Start completing some tasks!")
		return
	}
	s.listTasks(tasks)
	s.printf("\nCompleted tasks: %d\n", len(tasks))
}

func (s *Shell) markComplete() {
	s.heading("MARK TASK AS COMPLETE")
	if s.tasks.TotalCount() == 0 {
		s.println("No tasks available to mark as complete.")
		return
	}
	pending := s.tasks.GetPending()
	if len(pending) == 0 {
		s.println("All tasks are already completed!")
		return
	}
	s.println("Pending tasks:")
	s.listTasks(pending)

	id, ok := s.promptTaskID("\nEnter task ID to mark as complete: ")
	if !ok {
		return
	}
	if !s.tasks.MarkComplete(id) {
		s.failure(fmt.Sprintf("Task with ID %d not found.", id))
		return
	}
	s.success("Task marked as complete!")
}

func (s *Shell) markIncomplete() {
	s.heading("MARK TASK AS INCOMPLETE")
	if s.tasks.TotalCount() == 0 {
		s.println("No tasks available to mark as incomplete.")
		return
	}
	completed := s.tasks.GetCompleted()
	if len(completed) == 0 {
		s.println("No completed tasks to mark as incomplete.")
		return
	}
	s.println("Completed tasks:")
	s.listTasks(completed)

	id, ok := s.promptTaskID("\nEnter task ID to mark as incomplete: ")
	if !ok {
		return
	}
	if !s.tasks.MarkIncomplete(id) {
		s.failure(fmt.Sprintf("Task with ID %d not found.", id))
		return
	}
	s.success("Task marked as incomplete!")
}

func (s *Shell) deleteTask() {
	s.heading("DELETE TASK")
	if s.tasks.TotalCount() == 0 {
		s.println("No tasks available to delete.")
		return
	}
	s.viewAll()

	id, ok := s.promptTaskID("\nEnter task ID to delete: ")
	if !ok {
		return
	}
	task, found := s.tasks.GetByID(id)
	if !found {
		s.failure(fmt.Sprintf("Task with ID %d not found.", id))
		return
	}
	if !s.confirm(fmt.Sprintf("Are you sure you want to delete \"%s\"?", task.Description)) {
		s.println("Delete operation cancelled.")
		return
	}
	if s.tasks.Delete(id) {
		s.logger.Debug("task deleted", "task_id", id)
		s.success("Task deleted successfully!")
	}
}

func (s *Shell) showStatistics() {
	s.heading("TASK STATISTICS")
	WriteStats(s.out, s.tasks.Stats(), s.opts.ProgressWidth)
}

func (s *Shell) clearAll() {
	s.heading("CLEAR ALL TASKS")
	if s.tasks.TotalCount() == 0 {
		s.println("No tasks to clear.")
		return
	}
	if !s.confirm("Are you sure you want to delete ALL tasks? This cannot be undone!") {
		s.println("Clear operation cancelled.")
		return
	}
	s.tasks.ClearAll()
	s.logger.Debug("all tasks cleared")
	s.success("All tasks have been cleared!")
}
