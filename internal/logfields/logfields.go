// Package logfields holds the canonical slog attribute keys used across tagpages.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPlugin     = "plugin"
	KeyCollection = "collection"
	KeyTag        = "tag"
	KeyPath       = "path"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Plugin(name string) slog.Attr     { return slog.String(KeyPlugin, name) }
func Collection(name string) slog.Attr { return slog.String(KeyCollection, name) }
func Tag(tag string) slog.Attr         { return slog.String(KeyTag, tag) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Page(num int) slog.Attr           { return slog.Int(KeyPage, num) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
