// Package markdown is the plugin converting Markdown source files to HTML.
package markdown

import (
	"context"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	md "git.home.luguber.info/inful/tagpages/internal/markdown"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
)

// Name is the configuration name of the plugin.
const Name = "markdown"

// Plugin renders every .md file and moves it to the matching .html path. Files
// without a title take the text of their first level one heading.
type Plugin struct {
	plugin.BasePlugin
	converter *md.Converter
}

// New returns the plugin.
func New(opts md.Options) *Plugin {
	return &Plugin{converter: md.NewConverter(opts)}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeTransform,
		Description: "Converts Markdown files to HTML",
	}
}

func (p *Plugin) Execute(ctx context.Context, pctx *plugin.PluginContext) error {
	files := pctx.Site.Files
	converted := 0

	for _, path := range files.Paths() {
		if err := ctx.Err(); err != nil {
			return err
		}
		f := files[path]
		if f.Generated || !md.IsSource(path) {
			continue
		}

		html, err := p.converter.Convert(f.Contents)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "markdown conversion failed").
				WithContext("path", path).
				Build()
		}
		f.Contents = html
		if f.String("title") == "" {
			if title := md.FirstHeading(html); title != "" {
				f.FrontMatter["title"] = title
			}
		}

		out := md.OutputPath(path)
		if _, exists := files[out]; exists {
			pctx.Logger.Warn("Converted file replaces existing output", logfields.Path(out))
		}
		files.Move(path, out)
		converted++
	}

	pctx.Logger.Debug("Markdown converted", logfields.Count(converted))
	return nil
}
