// Package logging configures the structured logger shared by all packages.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Logger is the shared logger. It discards everything until Initialize
// enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger. With debug off and no file, logs are
// discarded. Otherwise JSON lines go to debugFile, or to a dated file in the
// OS log directory. It returns the path of the log file in use.
func Initialize(debug bool, debugFile string) (string, error) {
	if os.Getenv("SHORTCUTS_DEBUG") == "1" {
		debug = true
	}
	if env := os.Getenv("SHORTCUTS_DEBUG_FILE"); env != "" && debugFile == "" {
		debugFile = env
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		logDir, err := logDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		logFilePath = filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("Debug logging initialized", "log_file", logFilePath)
	return logFilePath, nil
}

// SetOutput routes debug-level JSON logs to w. Used by tests and the
// terminal host.
func SetOutput(w io.Writer) {
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func logDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "shortcut-recorder"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "shortcut-recorder"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "shortcut-recorder", "logs"), nil
	default:
		return filepath.Join(homeDir, ".shortcut-recorder", "logs"), nil
	}
}
