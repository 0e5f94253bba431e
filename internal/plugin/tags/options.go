package tags

import (
	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// Defaults applied to unset options.
const (
	DefaultHandle   = "tags"
	DefaultTemplate = "partials/tag.tmpl"
)

// Options configures tag pages for one collection.
type Options struct {
	// Handle is the front matter field holding the tags.
	Handle string
	// SkipMetadata keeps this collection out of the global tag index.
	SkipMetadata bool
	// Path is the output path of the first page of a tag.
	Path string
	// PathPage is the output path of later pages.
	PathPage string
	// PerPage limits items per page; zero or less means one page per tag.
	PerPage  int
	Template string
	// Metadata is merged onto every generated page after placeholder expansion.
	Metadata map[string]any
	// Slugify switches path-safe tags from lowercase-and-hyphen to full slugs.
	Slugify bool
}

// CollectionOptions binds options to a collection name.
type CollectionOptions struct {
	Collection string
	Options
}

// WithDefaults fills unset options for collection.
func (o Options) WithDefaults(collection string) Options {
	if o.Handle == "" {
		o.Handle = DefaultHandle
	}
	if o.Path == "" {
		o.Path = taxonomy.SafeTag(collection) + "/tags/" + taxonomy.TagPlaceholder + "/index.html"
	}
	if o.PathPage == "" {
		o.PathPage = taxonomy.SafeTag(collection) + "/tags/" + taxonomy.TagPlaceholder + "/" + taxonomy.NumPlaceholder + "/index.html"
	}
	if o.Template == "" {
		o.Template = DefaultTemplate
	}
	if o.PerPage < 0 {
		o.PerPage = 0
	}
	return o
}

func (o Options) templater() taxonomy.Templater {
	t := taxonomy.Templater{Path: o.Path, PathPage: o.PathPage}
	if o.Slugify {
		t.Normalize = taxonomy.SlugTag
	}
	return t
}
