package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/michael-freling/file-manager/internal/config"
)

func newLogger(conf config.Config) (*slog.Logger, error) {
	if err := os.MkdirAll(conf.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	logFile := filepath.Join(conf.LogDirectory, string(conf.Environment)+".log")
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_APPEND|os.O_CREATE,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile: %w", err)
	}
	var slogHandler slog.Handler
	if conf.Environment == config.EnvironmentDevelopment {
		slogHandler = slog.NewJSONHandler(
			io.MultiWriter(os.Stderr, file),
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		)
	}
	if conf.Environment == config.EnvironmentProduction {
		// stdout is only for the output of commands
		slogHandler = slog.NewJSONHandler(
			file,
			&slog.HandlerOptions{
				Level: slog.LevelInfo,
			},
		)
	}
	logger := slog.New(slogHandler)
	slog.SetDefault(logger)
	return logger, nil
}

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		log.Printf("file-manager: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
