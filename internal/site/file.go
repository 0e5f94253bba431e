// Package site holds the in-memory model of one build pass: the file registry,
// the shared metadata store and collections, plus reading the source tree and
// writing the destination tree.
package site

import (
	"io/fs"
	"maps"
	"slices"

	"git.home.luguber.info/inful/tagpages/internal/taxonomy"
)

// Front matter keys written onto generated pages.
const (
	KeyTemplate   = "template"
	KeyTag        = "tag"
	KeyPagination = "pagination"
)

// File is one entry of the output registry.
type File struct {
	// Path is slash separated and relative to the source and destination roots.
	Path        string
	FrontMatter map[string]any
	// Contents is the body without front matter.
	Contents []byte
	Mode     fs.FileMode

	// Generated marks files created during the pass rather than read from source.
	Generated bool
	// Rendered is set once a layout has produced the final Contents.
	Rendered bool
	// Pagination is only set on generated tag pages.
	Pagination *taxonomy.Page[*File]
}

// NewFile returns a file with an initialised front matter map.
func NewFile(path string, frontMatter map[string]any, contents []byte) *File {
	if frontMatter == nil {
		frontMatter = map[string]any{}
	}
	return &File{Path: path, FrontMatter: frontMatter, Contents: contents, Mode: 0o644}
}

// Get returns a front matter value.
func (f *File) Get(key string) any {
	return f.FrontMatter[key]
}

// String returns a front matter value when it is a string.
func (f *File) String(key string) string {
	s, _ := f.FrontMatter[key].(string)
	return s
}

// Template returns the layout this file asks to be rendered with.
func (f *File) Template() string {
	return f.String(KeyTemplate)
}

// Tags returns the extracted tag list stored under handle. Files processed by
// the tags plugin carry a []string there.
func (f *File) Tags(handle string) []string {
	tags, _ := f.FrontMatter[handle].([]string)
	return tags
}

// Files is the output registry keyed by path. Adding a file under an existing
// path replaces the earlier entry.
type Files map[string]*File

// Add registers f under its path.
func (files Files) Add(f *File) {
	files[f.Path] = f
}

// Move re-keys the file at from to the path to.
func (files Files) Move(from, to string) {
	f, ok := files[from]
	if !ok || from == to {
		return
	}
	delete(files, from)
	f.Path = to
	files[to] = f
}

// Paths returns all registered paths sorted.
func (files Files) Paths() []string {
	return slices.Sorted(maps.Keys(files))
}
