// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// DualLogger is a slog logger writing to stderr and, when configured,
// an append-only logfile.
type DualLogger struct {
	Logger *slog.Logger
	file   *os.File
}

// New creates the logger. A logfile is added when HEATPATH_LOGFILE is
// set. Logs go to stderr rather than stdout because the one-shot CLI
// mode reserves stdout for the assessment JSON.
func New() (*DualLogger, error) {
	writers := []io.Writer{os.Stderr}

	var file *os.File
	if logPath := os.Getenv("HEATPATH_LOGFILE"); logPath != "" {
		var err error
		file, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: slog.LevelInfo})

	return &DualLogger{Logger: slog.New(handler), file: file}, nil
}

// Close releases the logfile, when one was opened.
func (d *DualLogger) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}
