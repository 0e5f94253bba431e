package build

import (
	"git.home.luguber.info/inful/tagpages/internal/config"
	md "git.home.luguber.info/inful/tagpages/internal/markdown"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/plugin/collections"
	"git.home.luguber.info/inful/tagpages/internal/plugin/layouts"
	"git.home.luguber.info/inful/tagpages/internal/plugin/markdown"
	"git.home.luguber.info/inful/tagpages/internal/plugin/tags"
)

// NewRegistry registers every plugin the configuration can select. Only the
// names listed in cfg.Plugins run.
func NewRegistry(cfg *config.Config) (*plugin.Registry, error) {
	reg := plugin.NewRegistry()
	for _, p := range []plugin.Plugin{
		markdown.New(md.Options{Unsafe: true, RewriteLinks: true}),
		collections.New(CollectionDefinitions(cfg)),
		tags.New(TagOptions(cfg)),
		layouts.New(cfg.Layouts),
	} {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// CollectionDefinitions maps the collections section in document order.
func CollectionDefinitions(cfg *config.Config) []collections.Definition {
	defs := make([]collections.Definition, 0, len(cfg.Collections))
	for _, e := range cfg.Collections {
		defs = append(defs, collections.Definition{
			Name:    e.Key,
			Pattern: e.Value.Pattern,
			SortBy:  e.Value.SortBy,
			Reverse: e.Value.Reverse,
		})
	}
	return defs
}

// TagOptions maps the tags section in document order, which is also the
// order collections are merged into the global index.
func TagOptions(cfg *config.Config) []tags.CollectionOptions {
	out := make([]tags.CollectionOptions, 0, len(cfg.Tags))
	for _, e := range cfg.Tags {
		out = append(out, tags.CollectionOptions{
			Collection: e.Key,
			Options: tags.Options{
				Handle:       e.Value.Handle,
				SkipMetadata: e.Value.SkipMetadata,
				Path:         e.Value.Path,
				PathPage:     e.Value.PathPage,
				PerPage:      e.Value.PerPage,
				Template:     e.Value.Template,
				Metadata:     e.Value.Metadata,
				Slugify:      e.Value.Slugify,
			},
		})
	}
	return out
}
