package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tagpages/internal/config"
	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/frontmatter"
	"git.home.luguber.info/inful/tagpages/internal/metrics"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
)

type recordingRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes []metrics.BuildOutcomeLabel
	results  map[string]metrics.ResultLabel
}

func (r *recordingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingRecorder) IncPluginResult(name string, res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[string]metrics.ResultLabel{}
	}
	r.results[name] = res
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func fixtureConfig(t *testing.T, extra string) *config.Config {
	t.Helper()
	root := t.TempDir()
	writeTree(t, filepath.Join(root, "src"), map[string]string{
		"blog/a.md":  "---\ntitle: A\ntags: tag one, tag two\n---\n# A\n",
		"blog/b.md":  "---\ntitle: B\ntags: tag two\n---\n# B\n",
		"blog/c.md":  "---\ntitle: C\ntags: tag one, tag three\n---\nSee [a](a.md).\n",
		"index.html": "<p>home</p>",
	})
	writeTree(t, filepath.Join(root, "layouts"), map[string]string{
		"partials/tag.tmpl": `{{ .Pagination.Tag }}:{{ range .Pagination.Items }}[{{ .String "title" }}]{{ end }}`,
	})

	yaml := strings.NewReplacer("ROOT", root).Replace(`
source: ROOT/src
destination: ROOT/build
collections:
  blog: { pattern: "blog/*.html" }
tags:
  blog: { path: "blog/tags/:tag/index.html" }
` + extra)
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Destination, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuildStatus_IsSuccess(t *testing.T) {
	require.True(t, BuildStatusSuccess.IsSuccess())
	require.False(t, BuildStatusFailed.IsSuccess())
	require.False(t, BuildStatusCancelled.IsSuccess())
}

func TestRun_NilConfig(t *testing.T) {
	rec := &recordingRecorder{}
	result, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{})

	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	require.Equal(t, BuildStatusFailed, result.Status)
	require.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeFailed}, rec.outcomes)
}

func TestRun_WritesTagPages(t *testing.T) {
	cfg := fixtureConfig(t, "")
	rec := &recordingRecorder{}

	result, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	require.Equal(t, BuildStatusSuccess, result.Status)
	require.NotEmpty(t, result.BuildID)
	require.Equal(t, 4, result.FilesLoaded)
	require.Equal(t, 3, result.TagPages)
	require.Equal(t, 7, result.FilesWritten)
	require.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
	require.Equal(t, metrics.ResultSuccess, rec.results["tags"])

	require.Contains(t, readOutput(t, cfg, "blog/c.html"), `href="a.html"`)
	require.Equal(t, "<p>home</p>", readOutput(t, cfg, "index.html"))

	doc, err := frontmatter.Parse([]byte(readOutput(t, cfg, "blog/tags/tag-one/index.html")))
	require.NoError(t, err)
	require.Equal(t, "tag one", doc.Fields["tag"])
	require.Equal(t, "partials/tag.tmpl", doc.Fields["template"])
	require.NotEmpty(t, doc.Fields[frontmatter.FingerprintField])

	require.Equal(t, []string{"tag one", "tag two", "tag three"}, result.Site.Metadata.Tags.Keys())
}

func TestRun_RendersLayouts(t *testing.T) {
	cfg := fixtureConfig(t, "")
	cfg.Layouts = filepath.Join(filepath.Dir(cfg.Source), "layouts")
	cfg.Plugins = append(cfg.Plugins, config.PluginLayouts)

	_, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)

	require.Equal(t, "tag one:[A][C]", readOutput(t, cfg, "blog/tags/tag-one/index.html"))
	require.Equal(t, "tag two:[A][B]", readOutput(t, cfg, "blog/tags/tag-two/index.html"))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := fixtureConfig(t, "")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{DryRun: true},
	})
	require.NoError(t, err)
	require.Zero(t, result.FilesWritten)
	require.Equal(t, 3, result.TagPages)

	_, err = os.Stat(cfg.Destination)
	require.True(t, os.IsNotExist(err))
}

func TestRun_DestinationOverride(t *testing.T) {
	cfg := fixtureConfig(t, "")
	out := filepath.Join(t.TempDir(), "public")

	_, err := NewBuildService().Run(context.Background(), BuildRequest{
		Config:  cfg,
		Options: BuildOptions{Destination: out},
	})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "blog", "tags", "tag-three", "index.html"))
}

func TestRun_MissingCollectionFails(t *testing.T) {
	cfg := fixtureConfig(t, "  news: {}\n")
	rec := &recordingRecorder{}

	result, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	require.Equal(t, BuildStatusFailed, result.Status)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound), "got %v", err)

	var perr *plugin.PluginError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "tags", perr.PluginName)
	require.Equal(t, metrics.ResultFailed, rec.results["tags"])

	_, statErr := os.Stat(cfg.Destination)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_Cancelled(t *testing.T) {
	cfg := fixtureConfig(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewBuildService().Run(ctx, BuildRequest{Config: cfg})
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, BuildStatusCancelled, result.Status)
}

func TestRun_UnknownPluginDependencyOrder(t *testing.T) {
	cfg := fixtureConfig(t, "")
	cfg.Plugins = []string{config.PluginTags, config.PluginCollections}

	_, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.True(t, derrors.HasCategory(err, derrors.CategoryValidation), "got %v", err)
}

func TestRun_MissingSource(t *testing.T) {
	cfg := fixtureConfig(t, "")
	cfg.Source = filepath.Join(t.TempDir(), "nope")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg})
	require.True(t, derrors.HasCategory(err, derrors.CategoryFileSystem), "got %v", err)
	require.Nil(t, result.Site)
}

func TestWrapPluginError(t *testing.T) {
	err := wrapPluginError("x", "execute", errors.New("boom"))
	require.True(t, derrors.HasCategory(err, derrors.CategoryPlugin))

	inner := derrors.RenderError("bad").Build()
	err = wrapPluginError("x", "execute", inner)
	require.True(t, derrors.HasCategory(err, derrors.CategoryRender))
}

func TestTagOptions_KeepsOrder(t *testing.T) {
	cfg, err := config.Parse([]byte("tags:\n  b: {per_page: 2}\n  a: {handle: topics}\n"))
	require.NoError(t, err)

	opts := TagOptions(cfg)
	require.Len(t, opts, 2)
	require.Equal(t, "b", opts[0].Collection)
	require.Equal(t, 2, opts[0].PerPage)
	require.Equal(t, "topics", opts[1].Handle)
}
