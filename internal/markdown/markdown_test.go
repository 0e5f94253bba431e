package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert_Basic(t *testing.T) {
	out, err := NewConverter(Options{}).Convert([]byte("# Hello\n\nSome *text*.\n"))
	require.NoError(t, err)
	require.Equal(t, "<h1 id=\"hello\">Hello</h1>\n<p>Some <em>text</em>.</p>\n", string(out))
}

func TestConvert_GFMTable(t *testing.T) {
	out, err := NewConverter(Options{}).Convert([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<table>")
}

func TestConvert_RawHTML(t *testing.T) {
	src := []byte("<div>raw</div>\n")

	safe, err := NewConverter(Options{}).Convert(src)
	require.NoError(t, err)
	require.NotContains(t, string(safe), "<div>")

	unsafe, err := NewConverter(Options{Unsafe: true}).Convert(src)
	require.NoError(t, err)
	require.Contains(t, string(unsafe), "<div>raw</div>")
}

func TestConvert_RewriteLinks(t *testing.T) {
	src := []byte("[guide](guide.md#intro) [abs](https://example.com/x.md) [img](pic.png)\n")

	out, err := NewConverter(Options{RewriteLinks: true}).Convert(src)
	require.NoError(t, err)
	require.Contains(t, string(out), `href="guide.html#intro"`)
	require.Contains(t, string(out), `href="https://example.com/x.md"`)
	require.Contains(t, string(out), `href="pic.png"`)

	out, err = NewConverter(Options{}).Convert(src)
	require.NoError(t, err)
	require.Contains(t, string(out), `href="guide.md#intro"`)
}

func TestRewriteDestination(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"post.md", "post.html", true},
		{"../docs/Guide.Markdown", "../docs/Guide.html", true},
		{"post.md?x=1", "post.html?x=1", true},
		{"/abs/post.md", "/abs/post.md", false},
		{"mailto:a@b.md", "mailto:a@b.md", false},
		{"image.png", "image.png", false},
	}
	for _, tt := range tests {
		got, changed := RewriteDestination(tt.in)
		require.Equal(t, tt.want, got, tt.in)
		require.Equal(t, tt.changed, changed, tt.in)
	}
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "blog/post.html", OutputPath("blog/post.md"))
	require.True(t, IsSource("README.MD"))
	require.False(t, IsSource("index.html"))
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain", `<h1 id="a">Hello</h1><p>x</p>`, "Hello"},
		{"nested inline", "<p>intro</p><h1>Tags <em>and</em>\n pages</h1>", "Tags and pages"},
		{"first wins", "<h1>One</h1><h1>Two</h1>", "One"},
		{"no h1", "<h2>Sub</h2>", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FirstHeading([]byte(tt.html)))
		})
	}
}
