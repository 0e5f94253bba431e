package collections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

func newSite(files ...*site.File) *site.Site {
	s := site.New("src", "build", nil)
	for _, f := range files {
		s.Files.Add(f)
	}
	return s
}

func run(t *testing.T, p *Plugin, s *site.Site) {
	t.Helper()
	require.NoError(t, p.Validate())
	require.NoError(t, p.Execute(context.Background(), plugin.NewPluginContext(nil, s, "test", nil)))
}

func paths(files []*site.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestExecute_PatternMatch(t *testing.T) {
	s := newSite(
		site.NewFile("blog/b.html", nil, nil),
		site.NewFile("blog/a.html", nil, nil),
		site.NewFile("blog/2024/deep.html", nil, nil),
		site.NewFile("about.html", nil, nil),
	)

	run(t, New([]Definition{
		{Name: "blog", Pattern: "blog/*.html"},
		{Name: "all", Pattern: "**/*.html"},
	}), s)

	blog, ok := s.Metadata.Collection("blog")
	require.True(t, ok)
	require.Equal(t, []string{"blog/a.html", "blog/b.html"}, paths(blog.Files))

	all, _ := s.Metadata.Collection("all")
	require.Len(t, all.Files, 4)
	require.Equal(t, []string{"blog", "all"}, s.Metadata.CollectionNames())
}

func TestExecute_FrontMatterMembership(t *testing.T) {
	s := newSite(
		site.NewFile("one.html", map[string]any{FieldCollection: "notes"}, nil),
		site.NewFile("two.html", map[string]any{FieldCollection: []any{"blog", "notes"}}, nil),
		site.NewFile("three.html", nil, nil),
	)

	run(t, New([]Definition{{Name: "notes"}}), s)

	notes, _ := s.Metadata.Collection("notes")
	require.Equal(t, []string{"one.html", "two.html"}, paths(notes.Files))
}

func TestExecute_SortAndReverse(t *testing.T) {
	s := newSite(
		site.NewFile("blog/a.html", map[string]any{"date": "2024-03-01"}, nil),
		site.NewFile("blog/b.html", map[string]any{"date": "2023-01-15"}, nil),
		site.NewFile("blog/c.html", nil, nil),
		site.NewFile("blog/d.html", map[string]any{"date": "2024-01-10"}, nil),
	)

	run(t, New([]Definition{
		{Name: "oldest", Pattern: "blog/*", SortBy: "date"},
		{Name: "newest", Pattern: "blog/*", SortBy: "date", Reverse: true},
	}), s)

	oldest, _ := s.Metadata.Collection("oldest")
	require.Equal(t, []string{"blog/b.html", "blog/d.html", "blog/a.html", "blog/c.html"}, paths(oldest.Files))

	newest, _ := s.Metadata.Collection("newest")
	require.Equal(t, []string{"blog/c.html", "blog/a.html", "blog/d.html", "blog/b.html"}, paths(newest.Files))
}

func TestExecute_SkipsGeneratedFiles(t *testing.T) {
	generated := site.NewFile("blog/tags/go/index.html", nil, nil)
	generated.Generated = true
	s := newSite(site.NewFile("blog/post.html", nil, nil), generated)

	run(t, New([]Definition{{Name: "blog", Pattern: "blog/**"}}), s)

	blog, _ := s.Metadata.Collection("blog")
	require.Equal(t, []string{"blog/post.html"}, paths(blog.Files))
}

func TestExecute_EmptyCollectionIsRegistered(t *testing.T) {
	s := newSite()
	run(t, New([]Definition{{Name: "blog", Pattern: "blog/*"}}), s)

	blog, ok := s.Metadata.Collection("blog")
	require.True(t, ok)
	require.Empty(t, blog.Files)
}

func TestExecute_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New([]Definition{{Name: "blog", Pattern: "blog/*"}})
	err := p.Execute(ctx, plugin.NewPluginContext(nil, newSite(), "test", nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"missing name", []Definition{{Pattern: "*"}}},
		{"duplicate", []Definition{{Name: "a"}, {Name: "a"}}},
		{"bad pattern", []Definition{{Name: "a", Pattern: "blog/[*"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.defs).Validate()
			require.True(t, derrors.HasCategory(err, derrors.CategoryValidation), "got %v", err)
		})
	}
}

func TestCompareField(t *testing.T) {
	require.Negative(t, compareField(1, 2))
	require.Positive(t, compareField(2.5, 1.0))
	require.Zero(t, compareField("a", "a"))
	require.Negative(t, compareField("x", nil))
	require.Positive(t, compareField(nil, 0))
	require.Zero(t, compareField(nil, nil))
}
