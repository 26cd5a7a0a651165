package shell

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ShouldPause resolves a configured pause mode ("auto", "always", "never").
// In auto mode the shell pauses only when both ends are terminals, so
// scripted input is not swallowed by the "Press Enter" prompt.
func ShouldPause(mode string, in io.Reader, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(in) && isTerminal(out)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
