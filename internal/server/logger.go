// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/config"
	"github.com/lmittmann/tint"
)

// setupLogger installs the process-wide logger described by lc.
func setupLogger(lc config.LogConfig) {
	slog.SetDefault(newLogger(os.Stdout, lc))
}

// newLogger builds a JSON logger for log shippers, or a colored tint logger
// for terminals. Unrecognized levels fall back to info.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		level = slog.LevelInfo
	}

	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
}
