package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/csheth/calcscout/internal/config"
)

// setupLogger writes text records to a rotating file. The TUI owns stdout, so
// only the stub server also echoes to it.
func setupLogger(level, filename string, toStdout bool) (*slog.Logger, io.Closer, error) {
	slogLevel, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}

	var out io.Writer = logWriter
	if toStdout {
		out = io.MultiWriter(os.Stdout, logWriter)
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)
	return logger, logWriter, nil
}
