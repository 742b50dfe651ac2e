// Package util provides shared logging, formatting, and socket helpers.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

func init() {
	pterm.DefaultLogger.ShowTime = true
	pterm.DefaultLogger.TimeFormat = "02 Jan 15:04:05"
	pterm.DefaultLogger.MaxWidth = 1000
}

// Leveled logging functions backed by pterm. Debug through Error go to the
// default logger on stderr; success lines use the green prefix printer so
// completed transfers stand out from plain info.

func LogDebug(format string, args ...interface{}) {
	pterm.DefaultLogger.Debug(fmt.Sprintf(format, args...))
}

func LogInfo(format string, args ...interface{}) {
	pterm.DefaultLogger.Info(fmt.Sprintf(format, args...))
}

func LogSuccess(format string, args ...interface{}) {
	pterm.Success.Println(fmt.Sprintf(format, args...))
}

func LogWarning(format string, args ...interface{}) {
	pterm.DefaultLogger.Warn(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...interface{}) {
	pterm.DefaultLogger.Error(fmt.Sprintf(format, args...))
}

// EnableDebug configures the logger to show debug messages.
func EnableDebug() {
	pterm.DefaultLogger.Level = pterm.LogLevelDebug
}

// TeeLogFile mirrors all log output into path with size-based rotation,
// in addition to stderr. Returns the writer so the caller can Close it.
func TeeLogFile(path string, maxSize int64, maxBackups int) (io.Closer, error) {
	w, err := NewRotatingWriter(path, maxSize, maxBackups)
	if err != nil {
		return nil, err
	}
	pterm.DefaultLogger.Writer = io.MultiWriter(os.Stderr, w)
	pterm.Success = *pterm.Success.WithWriter(io.MultiWriter(os.Stdout, w))
	return w, nil
}
