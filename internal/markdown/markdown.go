// Package markdown converts Markdown bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options controls Markdown conversion.
type Options struct {
	// Unsafe passes raw HTML in the source through to the output.
	Unsafe bool
	// RewriteLinks turns relative links to .md files into links to .html files.
	RewriteLinks bool
}

// Converter renders Markdown to HTML. It is safe for sequential reuse.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds a converter with GitHub flavoured Markdown enabled.
func NewConverter(opts Options) *Converter {
	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if opts.RewriteLinks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)))
	}

	var rendererOpts []goldmark.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parserOpts...),
	}, rendererOpts...)...)

	return &Converter{md: md}
}

// Convert renders body (front matter already removed) to HTML.
func (c *Converter) Convert(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
