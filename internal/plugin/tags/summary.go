package tags

import (
	"git.home.luguber.info/inful/tagpages/internal/site"
)

// Summary describes one tag of an index.
type Summary struct {
	Tag   string   `json:"tag"`
	Count int      `json:"count"`
	Pages []string `json:"pages"`
}

// Summarize lists the tags of idx in index order with the paths of the pages
// found among pages.
func Summarize(idx *site.TagIndex, pages []*site.File) []Summary {
	byTag := make(map[string][]string)
	for _, f := range pages {
		if f.Pagination == nil {
			continue
		}
		byTag[f.Pagination.Tag] = append(byTag[f.Pagination.Tag], f.Path)
	}

	out := make([]Summary, 0, idx.Len())
	for tag, items := range idx.All() {
		paths := byTag[tag]
		if paths == nil {
			paths = []string{}
		}
		out = append(out, Summary{Tag: tag, Count: len(items), Pages: paths})
	}
	return out
}

// GeneratedPages returns the tag pages currently in the registry, sorted by path.
func GeneratedPages(files site.Files) []*site.File {
	var out []*site.File
	for _, p := range files.Paths() {
		if f := files[p]; f.Generated && f.Pagination != nil {
			out = append(out, f)
		}
	}
	return out
}
