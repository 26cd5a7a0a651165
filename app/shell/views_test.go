package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-cli/app/services"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		completed, total, width int
		want                    string
	}{
		{0, 0, 5, "[░░░░░]"},
		{0, 4, 4, "[░░░░]"},
		{1, 2, 4, "[██░░]"},
		{2, 3, 20, "[█████████████░░░░░░░]"},
		{3, 3, 5, "[█████]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.completed, tt.total, tt.width),
			"%d/%d width %d", tt.completed, tt.total, tt.width)
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	WriteStats(&buf, services.Stats{}, 10)
	assert.Equal(t, "Total Tasks:     0\nCompleted Tasks: 0\nPending Tasks:   0\n", buf.String())

	buf.Reset()
	WriteStats(&buf, services.Stats{Total: 4, Completed: 1, Pending: 3}, 8)
	assert.Contains(t, buf.String(), "Completion Rate: 25.0%\n")
	assert.Contains(t, buf.String(), "Progress: [██░░░░░░]\n")
}
