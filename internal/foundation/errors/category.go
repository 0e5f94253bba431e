package errors

import "log/slog"

// ErrorCategory says what kind of failure an error is. It decides the exit
// code of the CLI.
type ErrorCategory string

const (
	// CategoryConfig covers the configuration file and flags.
	CategoryConfig ErrorCategory = "config"
	// CategoryValidation covers malformed input: front matter, paths, plugin order.
	CategoryValidation ErrorCategory = "validation"
	// CategoryNotFound covers missing collections, layouts and plugins.
	CategoryNotFound ErrorCategory = "not_found"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryBuild      ErrorCategory = "build"
	CategoryPlugin     ErrorCategory = "plugin"
	CategoryRender     ErrorCategory = "render"
	CategoryInternal   ErrorCategory = "internal"
)

// ExitCode maps the category to a process exit status.
func (c ErrorCategory) ExitCode() int {
	switch c {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7
	case CategoryInternal:
		return 10
	case CategoryBuild, CategoryPlugin, CategoryRender, CategoryFileSystem:
		return 11
	default:
		return 1
	}
}

// defaultSeverity is the severity NewError starts from. Problems the user has
// to fix before anything can run are fatal.
func (c ErrorCategory) defaultSeverity() ErrorSeverity {
	switch c {
	case CategoryConfig, CategoryValidation, CategoryBuild, CategoryInternal:
		return SeverityFatal
	default:
		return SeverityError
	}
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops the pass
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // output is degraded
	SeverityInfo    ErrorSeverity = "info"
)

// Level is the log level errors of this severity are reported at.
func (s ErrorSeverity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
