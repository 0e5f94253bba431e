package layouts

import (
	"html/template"

	"git.home.luguber.info/inful/tagpages/internal/site"
	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// Data is the value a layout executes against.
type Data struct {
	Page *site.File
	// FrontMatter is Page.FrontMatter.
	FrontMatter map[string]any
	// Contents is the page body, trusted as HTML.
	Contents    template.HTML
	Pagination  *taxonomy.Page[*site.File]
	Site        map[string]any
	Tags        *site.TagIndex
	Collections map[string]*site.Collection
}

// NewData builds the layout data for f.
func NewData(s *site.Site, f *site.File) Data {
	return Data{
		Page:        f,
		FrontMatter: f.FrontMatter,
		Contents:    template.HTML(f.Contents), // #nosec G203 -- file contents are the site author's own HTML
		Pagination:  f.Pagination,
		Site:        s.Metadata.Fields,
		Tags:        s.Metadata.Tags,
		Collections: s.Metadata.Collections,
	}
}
