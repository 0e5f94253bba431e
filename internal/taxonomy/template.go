package taxonomy

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholders recognised in path templates and page metadata.
const (
	TagPlaceholder = ":tag"
	NumPlaceholder = ":num"
)

// Normalizer turns a tag into a path segment.
type Normalizer func(tag string) string

// SafeTag lowercases tag and replaces spaces with hyphens.
// "Tag One" becomes "tag-one"; punctuation is kept.
func SafeTag(tag string) string {
	if tag == "" {
		return ""
	}
	// A Caser carries state, so one is built per call.
	return strings.ReplaceAll(cases.Lower(language.Und).String(tag), " ", "-")
}

// SlugTag produces an ASCII slug: lowercased, transliterated, punctuation removed.
func SlugTag(tag string) string {
	return slug.Make(tag)
}

// Expand substitutes both placeholders in tpl in a single pass, so a tag that
// itself contains ":num" is left alone.
func Expand(tpl, tag string, num int) string {
	return strings.NewReplacer(TagPlaceholder, tag, NumPlaceholder, strconv.Itoa(num)).Replace(tpl)
}

// Templater renders the output path and metadata of a tag page.
type Templater struct {
	// Path is used for page 1 of every tag.
	Path string
	// PathPage is used for pages 2..n.
	PathPage string
	// Normalize makes the tag path-safe. Nil means SafeTag.
	Normalize Normalizer
}

// PagePath returns the output path of page num (1-based) of tag.
func (t Templater) PagePath(tag string, num int) string {
	tpl := t.Path
	if num > 1 {
		tpl = t.PathPage
	}
	return Expand(tpl, t.normalize(tag), num)
}

// Fields applies the placeholders to every string value of fields and returns a
// new map. Metadata is display text, so `:tag` receives the tag as written rather
// than its path-safe form. Non-string values are copied unchanged.
func (t Templater) Fields(fields map[string]any, tag string, num int) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = Expand(s, tag, num)
			continue
		}
		out[k] = v
	}
	return out
}

func (t Templater) normalize(tag string) string {
	if t.Normalize == nil {
		return SafeTag(tag)
	}
	return t.Normalize(tag)
}
