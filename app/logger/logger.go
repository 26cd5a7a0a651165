// Package logger sets up the application's structured logger.
package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo-cli/app/config"
)

// ParseLevel maps a configured level name to a log.Level.
// Unknown names fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Setup creates a logger writing to w and makes it the package default.
// The shell owns stdout, so callers normally pass os.Stderr.
func Setup(cfg config.LogConfig, w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           ParseLevel(cfg.Level),
	})
	if cfg.JSON {
		l.SetFormatter(log.JSONFormatter)
	} else {
		l.SetFormatter(log.TextFormatter)
	}
	log.SetDefault(l)
	return l
}
