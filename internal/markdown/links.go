package markdown

import (
	"net/url"
	"path"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// linkRewriter points relative links at Markdown sources to their rendered
// .html output. Absolute URLs and links with a scheme are left alone.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			if dest, changed := RewriteDestination(string(link.Destination)); changed {
				link.Destination = []byte(dest)
			}
		}
		return gmast.WalkContinue, nil
	})
}

// RewriteDestination maps "guide.md#intro" to "guide.html#intro". It reports
// whether the destination changed.
func RewriteDestination(dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return dest, false
	}
	if !IsSource(u.Path) {
		return dest, false
	}
	u.Path = OutputPath(u.Path)
	return u.String(), true
}

// IsSource reports whether p names a Markdown file.
func IsSource(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// OutputPath swaps the Markdown extension of p for .html.
func OutputPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p)) + ".html"
}
