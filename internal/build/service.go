package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/tagpages/internal/config"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// BuildService executes build passes.
type BuildService interface {
	// Run executes load → plugins → write and reports the outcome. The result
	// is non-nil even when an error is returned.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest is the input of one pass.
type BuildRequest struct {
	Config  *config.Config
	Options BuildOptions
}

// BuildOptions adjust a pass without touching the configuration.
type BuildOptions struct {
	// DryRun runs every plugin but writes nothing.
	DryRun bool

	// Destination overrides Config.Destination when set.
	Destination string
}

// BuildResult reports what a pass did.
type BuildResult struct {
	Status  BuildStatus
	BuildID string

	// Site is the in-memory state after the last plugin ran. It is nil when
	// loading failed.
	Site *site.Site

	// FilesLoaded is the number of files read from the source tree.
	FilesLoaded int

	// FilesWritten is zero for dry runs.
	FilesWritten int

	// TagPages counts generated tag pages.
	TagPages int

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus is the outcome of a pass. Every status is final.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

func (s BuildStatus) IsSuccess() bool { return s == BuildStatusSuccess }
