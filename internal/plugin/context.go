package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/metrics"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// PluginContext gives plugins access to the site and the services of one pass.
type PluginContext struct {
	// Logger is scoped with the build ID, and with the plugin name once
	// ForPlugin has been called.
	Logger *slog.Logger

	Site *site.Site

	// BuildID uniquely identifies this pass.
	BuildID string

	Recorder metrics.Recorder
}

// NewPluginContext creates a plugin context. A nil logger falls back to
// slog.Default and a nil recorder to metrics.NoopRecorder.
func NewPluginContext(logger *slog.Logger, s *site.Site, buildID string, recorder metrics.Recorder) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &PluginContext{
		Logger:   logger.With(logfields.BuildID(buildID)),
		Site:     s,
		BuildID:  buildID,
		Recorder: recorder,
	}
}

// ForPlugin returns a copy whose logger carries the plugin name.
func (pc *PluginContext) ForPlugin(name string) *PluginContext {
	scoped := *pc
	scoped.Logger = pc.Logger.With(logfields.Plugin(name))
	return &scoped
}
