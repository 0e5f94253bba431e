// Package tags generates per-tag listing pages for collections and publishes
// the global tag index.
package tags

import (
	"context"
	"maps"
	"slices"

	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/logfields"
	"git.home.luguber.info/inful/tagpages/internal/plugin"
	"git.home.luguber.info/inful/tagpages/internal/plugin/collections"
	"git.home.luguber.info/inful/tagpages/internal/site"
	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// Name is the configuration name of the plugin.
const Name = "tags"

// Plugin processes collections in configuration order.
type Plugin struct {
	collections []CollectionOptions
}

// New returns the plugin for the given per-collection options.
func New(collections []CollectionOptions) *Plugin {
	return &Plugin{collections: collections}
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         Name,
		Version:      "v1.0.0",
		Type:         plugin.PluginTypeTaxonomy,
		Description:  "Paginated tag listing pages and the global tag index",
		Dependencies: []string{collections.Name},
	}
}

func (p *Plugin) Validate() error {
	seen := make(map[string]bool, len(p.collections))
	for _, co := range p.collections {
		if co.Collection == "" {
			return derrors.ValidationError("tags entry without collection name").Build()
		}
		if seen[co.Collection] {
			return derrors.ValidationError("collection configured twice for tags").
				WithContext("collection", co.Collection).
				Build()
		}
		seen[co.Collection] = true
	}
	return nil
}

// Execute extracts tags, builds the per-collection and global indexes and adds
// one page file per tag page to the registry. The global index replaces
// Metadata.Tags once every collection has been processed.
func (p *Plugin) Execute(ctx context.Context, pctx *plugin.PluginContext) error {
	s := pctx.Site
	global := taxonomy.NewIndex[*site.File]()

	for _, co := range p.collections {
		if err := ctx.Err(); err != nil {
			return err
		}

		coll, ok := s.Metadata.Collection(co.Collection)
		if !ok {
			return derrors.NotFoundError("collection not found").
				WithContext("collection", co.Collection).
				Build()
		}

		opts := co.WithDefaults(co.Collection)
		idx := indexCollection(coll, opts.Handle)
		coll.Tags = idx
		if !opts.SkipMetadata {
			global = global.Merge(idx)
		}

		coll.Pages = emitPages(pctx, co.Collection, opts, idx)

		pctx.Recorder.SetCollectionTags(co.Collection, idx.Len())
		pctx.Recorder.AddTagPages(co.Collection, len(coll.Pages))
		pctx.Logger.Info("Tag pages generated",
			logfields.Collection(co.Collection),
			logfields.Count(idx.Len()),
			logfields.Page(len(coll.Pages)))
	}

	s.Metadata.Tags = global
	return nil
}

// indexCollection replaces the raw tag field of every member that has one with
// its extracted tag list and buckets the members by tag.
func indexCollection(coll *site.Collection, handle string) *site.TagIndex {
	for _, f := range coll.Files {
		if raw, present := f.FrontMatter[handle]; present {
			f.FrontMatter[handle] = taxonomy.SplitTags(raw)
		}
	}
	return taxonomy.Bucketize(coll.Files, func(f *site.File) []string {
		return f.Tags(handle)
	})
}

func emitPages(pctx *plugin.PluginContext, collection string, opts Options, idx *site.TagIndex) []*site.File {
	files := pctx.Site.Files
	tpl := opts.templater()

	var out []*site.File
	for tag, items := range idx.All() {
		for _, page := range taxonomy.Paginate(tag, items, opts.PerPage) {
			page.Path = tpl.PagePath(tag, page.Num)

			fm := map[string]any{
				site.KeyTemplate: opts.Template,
				site.KeyTag:      tag,
			}
			maps.Copy(fm, tpl.Fields(opts.Metadata, tag, page.Num))

			f := site.NewFile(page.Path, fm, nil)
			f.Generated = true
			f.Pagination = page

			if prev, exists := files[page.Path]; exists {
				out = slices.DeleteFunc(out, func(g *site.File) bool { return g == prev })
				pctx.Logger.Debug("Tag page overwrites existing file",
					logfields.Collection(collection),
					logfields.Tag(tag),
					logfields.Path(page.Path),
					logfields.Page(page.Num),
					"generated", prev.Generated)
			}
			files.Add(f)
			out = append(out, f)
		}
	}
	return out
}
