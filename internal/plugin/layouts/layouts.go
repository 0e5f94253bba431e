// Package layouts renders files carrying a template field through Go HTML
// templates loaded from a layouts directory.
package layouts

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/site"
	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// Name is the configuration name of the plugin.
const Name = "layouts"

// Plugin renders every file whose front matter names a template.
type Plugin struct {
	dir string
}

// New returns the plugin reading templates below dir.
func New(dir string) *Plugin {
	return &Plugin{dir: dir}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeLayout,
		Description: "Renders pages through html/template layouts",
	}
}

func (p *Plugin) Validate() error {
	info, err := os.Stat(p.dir)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "layouts directory not readable").
			WithContext("layouts", p.dir).
			Build()
	}
	if !info.IsDir() {
		return derrors.ConfigError("layouts is not a directory").
			WithContext("layouts", p.dir).
			Build()
	}
	return nil
}

func (p *Plugin) Execute(ctx context.Context, pctx *plugin.PluginContext) error {
	s := pctx.Site
	tpl, err := Load(p.dir, Funcs(s))
	if err != nil {
		return err
	}

	rendered := 0
	for _, path := range s.Files.Paths() {
		if err := ctx.Err(); err != nil {
			return err
		}
		f := s.Files[path]
		name := f.Template()
		if name == "" {
			continue
		}

		out, err := Render(tpl, name, NewData(s, f))
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "render layout").
				WithContext("path", path).
				WithContext("template", name).
				Build()
		}
		f.Contents = out
		f.Rendered = true
		rendered++
	}

	pctx.Logger.Debug("Layouts rendered", logfields.Count(rendered))
	return nil
}

// Load parses every regular, non-hidden file below dir. Templates are named by
// their slash separated path relative to dir, e.g. "partials/tag.tmpl".
func Load(dir string, funcs template.FuncMap) (*template.Template, error) {
	root := template.New("").Funcs(funcs)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		content, err := os.ReadFile(path) // #nosec G304 -- walking the configured layouts directory
		if err != nil {
			return err
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "parse layout").
				WithContext("template", name).
				Build()
		}
		return nil
	})
	if err != nil {
		if _, ok := derrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "load layouts").
			WithContext("layouts", dir).
			Build()
	}
	return root, nil
}

// Render executes the named template.
func Render(tpl *template.Template, name string, data Data) ([]byte, error) {
	if tpl.Lookup(name) == nil {
		return nil, derrors.NotFoundError("layout not found").
			WithContext("template", name).
			Build()
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Funcs returns the helpers available to layouts.
func Funcs(s *site.Site) template.FuncMap {
	return template.FuncMap{
		"safeTag": taxonomy.SafeTag,
		"slug":    taxonomy.SlugTag,
		// tagPath finds the first page of tag, optionally within one collection.
		"tagPath": func(tag string, collection ...string) string {
			return TagPath(s, tag, collection...)
		},
	}
}

// TagPath returns the path of the first page generated for tag, or "" when
// there is none.
func TagPath(s *site.Site, tag string, collection ...string) string {
	var pages []*site.File
	if len(collection) > 0 {
		if c, ok := s.Metadata.Collection(collection[0]); ok {
			pages = c.Pages
		}
	} else {
		for _, name := range s.Metadata.CollectionNames() {
			c, _ := s.Metadata.Collection(name)
			pages = append(pages, c.Pages...)
		}
	}
	for _, f := range pages {
		if f.Pagination != nil && f.Pagination.Tag == tag && f.Pagination.Num == 1 {
			return f.Path
		}
	}
	return ""
}
