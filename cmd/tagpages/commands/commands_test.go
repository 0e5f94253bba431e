package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/plugin/tags"
)

type project struct {
	root   string
	config string
	out    *bytes.Buffer
}

func newProject(t *testing.T, extra string) *project {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/blog/a.md":  "---\ntitle: A\ntags: go, yaml\n---\n# A\n",
		"src/blog/b.md":  "---\ntitle: B\ntags: go\n---\n# B\n",
		"src/notes/n.md": "---\ntags: go, draft\n---\nnote\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	cfg := strings.ReplaceAll(`source: ROOT/src
destination: ROOT/build
collections:
  blog: { pattern: "blog/*.html" }
  notes: { pattern: "notes/*.html" }
tags:
  blog: {}
  notes: { skip_metadata: true }
`, "ROOT", root) + extra
	configPath := filepath.Join(root, "tagpages.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))

	return &project{root: root, config: configPath, out: &bytes.Buffer{}}
}

func (p *project) global() *Global { return &Global{Stdout: p.out} }

func (p *project) cli() *CLI { return &CLI{Config: p.config} }

func TestBuildCmd_WritesSiteAndMetrics(t *testing.T) {
	p := newProject(t, "")
	metricsFile := filepath.Join(p.root, "tagpages.prom")

	cmd := &BuildCmd{MetricsFile: metricsFile}
	require.NoError(t, cmd.Run(p.global(), p.cli()))

	require.Contains(t, p.out.String(), "Built 7 files (4 tag pages)")
	require.FileExists(t, filepath.Join(p.root, "build", "blog", "tags", "go", "index.html"))
	require.FileExists(t, filepath.Join(p.root, "build", "notes", "tags", "draft", "index.html"))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "tagpages_build_outcomes_total")
	require.Contains(t, string(data), `tagpages_collection_tags{collection="blog"} 2`)
}

func TestBuildCmd_OutputOverride(t *testing.T) {
	p := newProject(t, "")
	out := filepath.Join(p.root, "public")

	require.NoError(t, (&BuildCmd{Output: out}).Run(p.global(), p.cli()))
	require.FileExists(t, filepath.Join(out, "blog", "a.html"))
	require.NoDirExists(t, filepath.Join(p.root, "build"))
}

func TestBuildCmd_MissingCollectionExitCode(t *testing.T) {
	p := newProject(t, "  news: {}\n")

	err := (&BuildCmd{}).Run(p.global(), p.cli())
	require.Error(t, err)

	var stderr bytes.Buffer
	code := derrors.NewCLIErrorAdapter(false, nil).Report(&stderr, err)
	require.Equal(t, 4, code)
	require.Contains(t, stderr.String(), "collection not found")
}

func TestTagsCmd_JSONGlobalIndex(t *testing.T) {
	p := newProject(t, "")

	require.NoError(t, (&TagsCmd{JSON: true}).Run(p.global(), p.cli()))

	var got []tags.Summary
	require.NoError(t, json.Unmarshal(p.out.Bytes(), &got))
	require.Equal(t, []tags.Summary{
		{Tag: "go", Count: 2, Pages: []string{"blog/tags/go/index.html", "notes/tags/go/index.html"}},
		{Tag: "yaml", Count: 1, Pages: []string{"blog/tags/yaml/index.html"}},
	}, got)

	require.NoDirExists(t, filepath.Join(p.root, "build"))
}

func TestTagsCmd_CollectionTable(t *testing.T) {
	p := newProject(t, "")

	require.NoError(t, (&TagsCmd{Collection: "notes"}).Run(p.global(), p.cli()))

	lines := strings.Split(strings.TrimSpace(p.out.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "TAG"))
	require.True(t, strings.HasPrefix(lines[1], "go "))
	require.Contains(t, lines[2], "notes/tags/draft/index.html")
}

func TestTagsCmd_UnknownCollection(t *testing.T) {
	p := newProject(t, "")

	err := (&TagsCmd{Collection: "nope"}).Run(p.global(), p.cli())
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	root := &CLI{Config: filepath.Join(dir, "tagpages.yaml")}

	require.NoError(t, (&InitCmd{}).Run(&Global{Stdout: out}, root))
	require.Contains(t, out.String(), "Wrote example configuration")

	err := (&InitCmd{}).Run(&Global{Stdout: out}, root)
	require.Equal(t, 2, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{Stdout: out}, root))
}

func TestMissingConfigExitCode(t *testing.T) {
	root := &CLI{Config: filepath.Join(t.TempDir(), "missing.yaml")}

	err := (&BuildCmd{}).Run(&Global{Stdout: &bytes.Buffer{}}, root)
	require.Equal(t, 7, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestWatchCmd_BuildsThenStopsOnCancel(t *testing.T) {
	p := newProject(t, "")
	root := p.cli()
	cfg, err := root.loadConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{}).watch(ctx, p.global(), root, cfg) }()

	built := filepath.Join(p.root, "build", "blog", "b.html")
	require.Eventually(t, func() bool {
		_, err := os.Stat(built)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestCLI_ParsesFlags(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-c", "site.yaml", "tags", "--json", "--collection", "blog"})
	require.NoError(t, err)
	require.Equal(t, "tags", ctx.Command())
	require.Equal(t, "site.yaml", cli.Config)
	require.True(t, cli.Tags.JSON)
	require.Equal(t, "blog", cli.Tags.Collection)

	ctx, err = parser.Parse([]string{"build", "-o", "out", "--metrics-file", "m.prom"})
	require.NoError(t, err)
	require.Equal(t, "build", ctx.Command())
	require.Equal(t, "out", cli.Build.Output)
	require.Equal(t, "m.prom", cli.Build.MetricsFile)
}
