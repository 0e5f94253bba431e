package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/tagpages/internal/config"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string `short:"o" help:"Output directory (overrides destination)"`
	MetricsFile string `name:"metrics-file" help:"Rewrite Prometheus metrics to this file after every pass"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return w.watch(ctx, g, root, cfg)
}

func (w *WatchCmd) watch(ctx context.Context, g *Global, root *CLI, cfg *config.Config) error {
	logger := g.logger()
	destination := cfg.Destination
	if w.Output != "" {
		destination = w.Output
	}

	roots := []string{cfg.Source, root.Config}
	if cfg.Layouts != "" {
		roots = append(roots, cfg.Layouts)
	}
	// The textfile is rewritten after every pass and must not trigger the next.
	var written []string
	for _, f := range []string{w.MetricsFile, cfg.Metrics.Textfile} {
		if f != "" {
			written = append(written, f)
		}
	}
	watcher, err := watch.New(roots, watch.Options{
		Exclude:      []string{destination},
		ExcludeFiles: written,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Every pass builds a fresh recorder so the textfile reflects the latest
	// pass only.
	if _, err := RunBuild(ctx, g, cfg, w.Output, w.MetricsFile); err != nil {
		logger.Error("Initial build failed", logfields.Error(err))
	}

	snapshot := cfg.Snapshot()
	logger.Info("Watching for changes", logfields.Path(cfg.Source))
	return watcher.Run(ctx, func(ctx context.Context) {
		next, err := config.Load(root.Config)
		if err != nil {
			logger.Error("Configuration reload failed; keeping previous configuration", logfields.Error(err))
		} else {
			if s := next.Snapshot(); s != snapshot {
				logger.Info("Configuration changed")
				snapshot = s
			}
			cfg = next
		}
		if _, err := RunBuild(ctx, g, cfg, w.Output, w.MetricsFile); err != nil {
			logger.Warn("Rebuild failed", logfields.Error(err))
		}
	})
}
