// Package collections assigns site files to named collections.
package collections

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// Name is the configuration name of the plugin.
const Name = "collections"

// FieldCollection lets a file join collections from its front matter.
const FieldCollection = "collection"

// Definition configures one collection.
type Definition struct {
	Name string
	// Pattern is a doublestar glob matched against file paths.
	Pattern string
	// SortBy names a front matter field. Files without it sort last.
	SortBy  string
	Reverse bool
}

// Plugin builds collections in definition order.
type Plugin struct {
	definitions []Definition
}

// New returns the plugin for the given definitions.
func New(definitions []Definition) *Plugin {
	return &Plugin{definitions: definitions}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeCollection,
		Description: "Groups files into named collections by pattern or front matter",
	}
}

func (p *Plugin) Validate() error {
	seen := make(map[string]bool, len(p.definitions))
	for _, def := range p.definitions {
		if def.Name == "" {
			return derrors.ValidationError("collection name is required").Build()
		}
		if seen[def.Name] {
			return derrors.ValidationError("duplicate collection").
				WithContext("collection", def.Name).
				Build()
		}
		seen[def.Name] = true
		if def.Pattern != "" && !doublestar.ValidatePattern(def.Pattern) {
			return derrors.ValidationError("invalid collection pattern").
				WithContext("collection", def.Name).
				WithContext("pattern", def.Pattern).
				Build()
		}
	}
	return nil
}

func (p *Plugin) Execute(ctx context.Context, pctx *plugin.PluginContext) error {
	s := pctx.Site
	paths := s.Files.Paths()

	for _, def := range p.definitions {
		if err := ctx.Err(); err != nil {
			return err
		}

		var files []*site.File
		for _, path := range paths {
			f := s.Files[path]
			if f.Generated {
				continue
			}
			ok, err := def.matches(f)
			if err != nil {
				return err
			}
			if ok {
				files = append(files, f)
			}
		}

		if def.SortBy != "" {
			slices.SortStableFunc(files, func(a, b *site.File) int {
				return compareField(a.Get(def.SortBy), b.Get(def.SortBy))
			})
		}
		if def.Reverse {
			slices.Reverse(files)
		}

		s.Metadata.AddCollection(&site.Collection{Name: def.Name, Files: files})
		pctx.Logger.Debug("Collection built", logfields.Collection(def.Name), logfields.Count(len(files)))
	}
	return nil
}

func (d Definition) matches(f *site.File) (bool, error) {
	if d.Pattern != "" {
		ok, err := doublestar.Match(d.Pattern, f.Path)
		if err != nil {
			return false, fmt.Errorf("match pattern %q: %w", d.Pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	switch v := f.Get(FieldCollection).(type) {
	case string:
		return v == d.Name, nil
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == d.Name {
				return true, nil
			}
		}
	case []string:
		return slices.Contains(v, d.Name), nil
	}
	return false, nil
}

// compareField orders front matter values. Missing values sort after present
// ones; values of different kinds compare by their printed form.
func compareField(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
