package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo-cli/app/models"
	"todo-cli/app/services"
)

const (
	filledCell = "█"
	emptyCell  = "░"
)

// ProgressBar renders completed/total as a bar of width cells.
// A cell is filled only once it is fully earned.
func ProgressBar(completed, total, width int) string {
	filled := 0
	if total > 0 {
		rate := float64(completed) / float64(total) * 100
		filled = int(float64(width) * rate / 100)
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, width-filled) + "]"
}

// styles are bound to the shell's output so that escape codes are only
// emitted when that output is a terminal.
type styles struct {
	banner  lipgloss.Style
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#04B575")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) heading(title string) {
	s.println(s.styles.heading.Render(title))
	s.println(s.styles.muted.Render(strings.Repeat("─", len([]rune(title))+2)))
}

func (s *Shell) success(msg string) {
	s.println(s.styles.success.Render(msg))
}

func (s *Shell) failure(msg string) {
	s.println(s.styles.failure.Render(msg))
}

func (s *Shell) listTasks(tasks []models.Task) {
	for _, t := range tasks {
		s.println("   " + t.String())
	}
}

func (s *Shell) welcome() {
	s.println(s.styles.banner.Render(strings.Join([]string{
		"╔══════════════════════════════════════╗",
		"║        Welcome to Todo Manager       ║",
		"║     Your Simple Task Management      ║",
		"║            Application               ║",
		"╚══════════════════════════════════════╝",
	}, "\n")))
	s.println()
}

func (s *Shell) goodbye() {
	s.println(s.styles.banner.Render(strings.Join([]string{
		"╔══════════════════════════════════════╗",
		"║         Thank you for using          ║",
		"║            Todo Manager!             ║",
		"║          Stay productive!            ║",
		"╚══════════════════════════════════════╝",
	}, "\n")))
}

func (s *Shell) menu() {
	s.println(strings.Join([]string{
		"┌─────────────────────────────────────┐",
		"│              MAIN MENU              │",
		"├─────────────────────────────────────┤",
		"│ 1. Add Task                         │",
		"│ 2. View All Tasks                   │",
		"│ 3. View Pending Tasks               │",
		"│ 4. View Completed Tasks             │",
		"│ 5. Mark Task as Complete            │",
		"│ 6. Mark Task as Incomplete          │",
		"│ 7. Delete Task                      │",
		"│ 8. Show Statistics                  │",
		"│ 9. Clear All Tasks                  │",
		"│ 0. Exit                             │",
		"└─────────────────────────────────────┘",
	}, "\n"))
	s.printf("Enter your choice (0-9): ")
}

// WriteStats prints the statistics block shared by the shell and the demo.
func WriteStats(w io.Writer, stats services.Stats, width int) {
	fmt.Fprintf(w, "Total Tasks:     %d\n", stats.Total)
	fmt.Fprintf(w, "Completed Tasks: %d\n", stats.Completed)
	fmt.Fprintf(w, "Pending Tasks:   %d\n", stats.Pending)
	if stats.Total > 0 {
		fmt.Fprintf(w, "Completion Rate: %.1f%%\n", stats.CompletionRate())
		fmt.Fprintf(w, "Progress: %s\n", ProgressBar(stats.Completed, stats.Total, width))
	}
}
