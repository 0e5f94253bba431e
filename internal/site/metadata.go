package site

import (
	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// TagIndex maps tags to files in first-seen order.
type TagIndex = taxonomy.Index[*File]

// Collection is a named, ordered group of files.
type Collection struct {
	Name  string
	Files []*File
	// Tags is the collection's own tag index, set by the tags plugin.
	Tags *TagIndex
	// Pages lists the tag pages generated for the collection.
	Pages []*File
}

// Metadata is the store shared by all plugins of a pass.
type Metadata struct {
	// Fields holds free-form site metadata from configuration.
	Fields      map[string]any
	Collections map[string]*Collection
	// Tags is the global index merged across collections.
	Tags *TagIndex

	order []string
}

// NewMetadata returns an empty store carrying fields.
func NewMetadata(fields map[string]any) *Metadata {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Metadata{
		Fields:      fields,
		Collections: make(map[string]*Collection),
		Tags:        taxonomy.NewIndex[*File](),
	}
}

// AddCollection registers c, replacing any collection of the same name while
// keeping its original position.
func (m *Metadata) AddCollection(c *Collection) {
	if _, exists := m.Collections[c.Name]; !exists {
		m.order = append(m.order, c.Name)
	}
	m.Collections[c.Name] = c
}

// Collection looks up a collection by name.
func (m *Metadata) Collection(name string) (*Collection, bool) {
	c, ok := m.Collections[name]
	return c, ok
}

// CollectionNames returns collection names in registration order.
func (m *Metadata) CollectionNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Site bundles the registry and metadata of one pass.
type Site struct {
	Source      string
	Destination string
	Files       Files
	Metadata    *Metadata
}

// New returns an empty site.
func New(source, destination string, fields map[string]any) *Site {
	return &Site{
		Source:      source,
		Destination: destination,
		Files:       make(Files),
		Metadata:    NewMetadata(fields),
	}
}
