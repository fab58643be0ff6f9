package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logDir      = "logs"
	logFileName = "lockdown.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the global logger to logs/lockdown.log when enabled
// The terminal belongs to tcell, so logs never reach stdout or stderr
// Returns nil when logging is disabled or the file cannot be opened
func setupLogging(enabled bool, level zerolog.Level) *os.File {
	if !enabled {
		log.Logger = zerolog.New(io.Discard).Level(zerolog.Disabled)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Logger = zerolog.New(io.Discard).Level(zerolog.Disabled)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("lockdown-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Logger = zerolog.New(io.Discard).Level(zerolog.Disabled)
		return nil
	}

	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f
}

// parseLevel reads LOG_LEVEL, falling back to info
func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
