package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/tagpages/internal/build"
	"git.home.luguber.info/inful/tagpages/internal/config"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides destination)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file (overrides metrics.textfile)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := RunBuild(ctx, g, cfg, b.Output, b.MetricsFile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Built %d files (%d tag pages) into %s in %s\n",
		result.FilesWritten, result.TagPages, result.Site.Destination, result.Duration.Round(time.Millisecond))
	return nil
}

// RunBuild runs one writing pass. When a metrics file is configured the
// Prometheus registry is written to it whatever the outcome.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, output, metricsFile string) (*build.BuildResult, error) {
	if metricsFile == "" {
		metricsFile = cfg.Metrics.Textfile
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	svc := build.NewBuildService().WithRecorder(recorder).WithLogger(g.logger())
	result, err := svc.Run(ctx, build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{Destination: output},
	})

	if prom != nil {
		if werr := prom.WriteTextfile(metricsFile); werr != nil {
			g.logger().Warn("Failed to write metrics textfile", logfields.Path(metricsFile), logfields.Error(werr))
		}
	}
	return result, err
}
