// Package taxonomy holds the pure tag-listing primitives used by the tags plugin.
//
// The package knows nothing about files or the build pipeline. It works on any
// item type:
//
//   - SplitTags turns a raw front matter value into trimmed tag tokens.
//   - Index is an insertion-ordered tag -> items bucket map; Merge folds one
//     index into another by concatenation.
//   - Paginate slices one bucket into linked pages.
//   - Templater renders output paths and per-page metadata from the `:tag` and
//     `:num` placeholders.
//
// Everything here is synchronous and single-pass. Index is not safe for
// concurrent mutation.
package taxonomy
