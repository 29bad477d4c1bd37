package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var logger = newLogger(os.Stderr, false)

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// SetupLogger replaces the package logger and the slog default.
func SetupLogger(w io.Writer, debug bool) {
	logger = newLogger(w, debug)
	slog.SetDefault(logger)
}

func Debug(format string, a ...interface{}) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(fmt.Sprintf(format, a...))
}

func Info(format string, a ...interface{}) {
	logger.Info(fmt.Sprintf(format, a...))
}

func Success(format string, a ...interface{}) {
	logger.Info(fmt.Sprintf(format, a...), "status", "ok")
}

func Warn(format string, a ...interface{}) {
	logger.Warn(fmt.Sprintf(format, a...))
}

func Error(format string, a ...interface{}) {
	logger.Error(fmt.Sprintf(format, a...))
}

func Section(title string) {
	logger.Info("══════════ " + title + " ══════════")
}
