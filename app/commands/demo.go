package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"todo-cli/app/models"
	"todo-cli/app/services"
	"todo-cli/app/shell"
)

var demoTasks = []string{
	"Learn Go interfaces",
	"Complete Todo App project",
	"Practice with slices",
	"Write documentation",
}

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of the task collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout(), services.NewTaskService(), a.cfg.Shell.ProgressWidth)
		},
	}
}

func runDemo(w io.Writer, tasks *services.TaskService, width int) error {
	fmt.Fprintln(w, "=== Todo App Demo ===")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Adding sample tasks...")
	for _, d := range demoTasks {
		if _, err := tasks.Add(d); err != nil {
			return fmt.Errorf("failed to add demo task: %w", err)
		}
	}

	printTasks(w, "All Tasks:", tasks.GetAll())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Marking tasks as complete...")
	tasks.MarkComplete(1)
	tasks.MarkComplete(3)

	printTasks(w, "Pending Tasks:", tasks.GetPending())
	printTasks(w, "Completed Tasks:", tasks.GetCompleted())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statistics:")
	shell.WriteStats(w, tasks.Stats(), width)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Demo completed successfully! ===")
	fmt.Fprintln(w, "To run the interactive application, use: todo shell")
	return nil
}

func printTasks(w io.Writer, title string, tasks []models.Task) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, t := range tasks {
		fmt.Fprintln(w, "   "+t.String())
	}
}
