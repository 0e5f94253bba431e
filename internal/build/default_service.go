package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/metrics"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/plugin/tags"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
	logger   *slog.Logger
	newID    func() string
}

// NewBuildService creates a service with a no-op recorder and the default
// logger.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLogger sets the logger passed on to plugins.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes one pass.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{
		StartTime: startTime,
		BuildID:   s.newID(),
	}
	logger := s.logger.With(logfields.BuildID(result.BuildID))

	if req.Config == nil {
		return s.finish(result, BuildStatusFailed, derrors.ConfigError("config required").Build())
	}
	cfg := req.Config

	destination := cfg.Destination
	if req.Options.Destination != "" {
		destination = req.Options.Destination
	}

	st := site.New(cfg.Source, destination, cfg.Site)
	if err := st.Load(); err != nil {
		return s.finish(result, BuildStatusFailed, err)
	}
	result.Site = st
	result.FilesLoaded = len(st.Files)

	registry, err := NewRegistry(cfg)
	if err != nil {
		return s.finish(result, BuildStatusFailed,
			derrors.WrapError(err, derrors.CategoryInternal, "register plugins").Build())
	}
	plugins, err := registry.Resolve(cfg.Plugins)
	if err != nil {
		return s.finish(result, BuildStatusFailed, err)
	}

	pctx := plugin.NewPluginContext(s.logger, st, result.BuildID, s.recorder)
	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return s.finish(result, BuildStatusCancelled, err)
		}
		if err := s.runPlugin(ctx, pctx, p); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.finish(result, BuildStatusCancelled, err)
			}
			return s.finish(result, BuildStatusFailed, err)
		}
	}
	result.TagPages = len(tags.GeneratedPages(st.Files))

	if !req.Options.DryRun {
		if err := st.Write(cfg.Clean); err != nil {
			return s.finish(result, BuildStatusFailed, err)
		}
		result.FilesWritten = len(st.Files)
	}

	logger.Info("Build completed",
		logfields.Count(len(st.Files)),
		slog.Int("tag_pages", result.TagPages),
		slog.Bool("dry_run", req.Options.DryRun),
		logfields.DurationMS(float64(time.Since(startTime).Microseconds())/1000))
	return s.finish(result, BuildStatusSuccess, nil)
}

// runPlugin validates and executes p, recording its duration and result.
func (s *DefaultBuildService) runPlugin(ctx context.Context, pctx *plugin.PluginContext, p plugin.Plugin) error {
	name := p.Metadata().Name
	scoped := pctx.ForPlugin(name)

	if err := p.Validate(); err != nil {
		s.recorder.IncPluginResult(name, metrics.ResultFailed)
		return wrapPluginError(name, "validate", err)
	}

	start := time.Now()
	scoped.Logger.Debug("Running plugin")
	err := p.Execute(ctx, scoped)
	elapsed := time.Since(start)
	s.recorder.ObservePluginDuration(name, elapsed)

	switch {
	case err == nil:
		s.recorder.IncPluginResult(name, metrics.ResultSuccess)
		scoped.Logger.Debug("Plugin finished", logfields.DurationMS(float64(elapsed.Microseconds())/1000))
		return nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.recorder.IncPluginResult(name, metrics.ResultCanceled)
		return err
	default:
		s.recorder.IncPluginResult(name, metrics.ResultFailed)
		scoped.Logger.Error("Plugin failed", logfields.Error(err))
		return wrapPluginError(name, "execute", err)
	}
}

// wrapPluginError keeps the category of classified errors and files
// everything else under the plugin category.
func wrapPluginError(name, operation string, err error) error {
	perr := plugin.NewPluginError(name, operation, err)
	if _, ok := derrors.AsClassified(err); ok {
		return perr
	}
	return derrors.WrapError(perr, derrors.CategoryPlugin, "plugin failed").
		WithContext("plugin", name).
		WithContext("operation", operation).
		Build()
}

func (s *DefaultBuildService) finish(result *BuildResult, status BuildStatus, err error) (*BuildResult, error) {
	result.Status = status
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	switch status {
	case BuildStatusSuccess:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	case BuildStatusCancelled:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
	default:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	s.recorder.ObserveBuildDuration(result.Duration)
	return result, err
}
