package config

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/tagpages/internal/foundation/normalization"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "TAGPAGES_LOG_LEVEL"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = normalization.New(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw onto a known level, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevels.Normalize(raw)
}

// SlogLevel converts l to a slog.Level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveLogLevel picks the effective level: verbose forces debug, otherwise
// TAGPAGES_LOG_LEVEL wins over fallback.
func ResolveLogLevel(verbose bool, fallback LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if raw, ok := os.LookupEnv(LogLevelEnv); ok && raw != "" {
		return NormalizeLogLevel(raw).SlogLevel()
	}
	return NormalizeLogLevel(string(fallback)).SlogLevel()
}
