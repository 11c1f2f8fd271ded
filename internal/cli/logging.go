package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures the default slog logger. Stderr is always a target;
// when toFile is set a rotating log under the xdg state directory is added.
func setupLogging(levelName string, toFile bool, stderr io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelWarn
	}

	writers := []io.Writer{stderr}

	if toFile {
		logPath := logFilePath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			slog.Error("failed to create log directory", "path", filepath.Dir(logPath), "error", err)
		} else {
			writers = append(writers, &lumberjack.Logger{
				Filename:   logPath,
				MaxSize:    5, // megabytes
				MaxBackups: 2,
				MaxAge:     14, // days
			})
		}
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	slog.Debug("logging configured", "level", level.String(), "file", toFile)
}

// logFilePath returns the rotating log file location.
func logFilePath() string {
	return filepath.Join(xdg.StateHome, "chime", "chime.log")
}
