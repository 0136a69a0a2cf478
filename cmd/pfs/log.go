package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type logLevel int

const (
	logOff logLevel = iota
	logDebug
)

var (
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	level  = parseLogLevel(os.Getenv("PFS_LOG_LEVEL"))
)

func parseLogLevel(s string) logLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "verbose", "2", "1":
		return logDebug
	default:
		return logOff
	}
}

// applyLogLevel applies the config-file level unless the environment
// already set one.
func applyLogLevel(s string) {
	if os.Getenv("PFS_LOG_LEVEL") != "" || s == "" {
		return
	}
	level = parseLogLevel(s)
}

func debugf(format string, args ...interface{}) {
	if level < logDebug {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}
