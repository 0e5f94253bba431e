package taxonomy

import "iter"

// Index maps tags to the items carrying them.
//
// Keys keep first-seen order and each bucket keeps insertion order, so two
// builds over the same input produce identical listings.
type Index[T any] struct {
	keys    []string
	buckets map[string][]T
}

// NewIndex returns an empty index.
func NewIndex[T any]() *Index[T] {
	return &Index[T]{buckets: make(map[string][]T)}
}

// Bucketize builds an index over items. tagsOf returns the already extracted tags
// of an item; a tag repeated on the same item adds that item only once.
func Bucketize[T any](items []T, tagsOf func(T) []string) *Index[T] {
	idx := NewIndex[T]()
	for _, item := range items {
		seen := make(map[string]struct{})
		for _, tag := range tagsOf(item) {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			idx.Add(tag, item)
		}
	}
	return idx
}

// Add appends item to the bucket for tag, creating the bucket on first use.
func (x *Index[T]) Add(tag string, item T) {
	if _, ok := x.buckets[tag]; !ok {
		x.keys = append(x.keys, tag)
	}
	x.buckets[tag] = append(x.buckets[tag], item)
}

// Merge appends every bucket of other onto x (concatenation, never replacement)
// and returns x so callers can thread an accumulator through a fold.
func (x *Index[T]) Merge(other *Index[T]) *Index[T] {
	if other == nil {
		return x
	}
	for _, tag := range other.keys {
		for _, item := range other.buckets[tag] {
			x.Add(tag, item)
		}
	}
	return x
}

// Keys returns the tags in first-seen order.
func (x *Index[T]) Keys() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

// Items returns the bucket for tag, or nil when no item carries it.
func (x *Index[T]) Items(tag string) []T {
	if x == nil {
		return nil
	}
	return x.buckets[tag]
}

// Has reports whether any item carries tag.
func (x *Index[T]) Has(tag string) bool {
	if x == nil {
		return false
	}
	_, ok := x.buckets[tag]
	return ok
}

// Len returns the number of distinct tags.
func (x *Index[T]) Len() int {
	if x == nil {
		return 0
	}
	return len(x.keys)
}

// All iterates buckets in key order.
func (x *Index[T]) All() iter.Seq2[string, []T] {
	return func(yield func(string, []T) bool) {
		if x == nil {
			return
		}
		for _, tag := range x.keys {
			if !yield(tag, x.buckets[tag]) {
				return
			}
		}
	}
}

// Map returns the buckets as a plain map. Slices are shared with the index.
func (x *Index[T]) Map() map[string][]T {
	out := make(map[string][]T, x.Len())
	for tag, items := range x.All() {
		out[tag] = items
	}
	return out
}
