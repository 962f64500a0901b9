package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cube3d/internal/config"
)

// logToFile redirects the logger to ~/.cube3d/logs/cube3d.log while a
// TUI owns the terminal. The returned function restores the previous
// output.
func logToFile() (string, func(), error) {
	dir, err := config.Dir()
	if err != nil {
		return "", nil, err
	}
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, "cube3d.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open log file: %w", err)
	}

	prev := logger.Out
	logger.SetOutput(f)
	return path, func() {
		logger.SetOutput(prev)
		f.Close()
	}, nil
}
