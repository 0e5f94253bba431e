package taxonomy

// Page is one slice of a tag bucket.
//
// Prev and Next link the pages of one tag into a non-cyclic chain. Path is the
// output path of the record that carries the page; Paginate leaves it empty for
// the caller to fill.
type Page[T any] struct {
	Num   int // 1-based
	Pages int
	Tag   string
	Start int
	End   int // exclusive
	Items []T
	Prev  *Page[T]
	Next  *Page[T]
	Path  string
}

// IsFirst reports whether p is the first page of its tag.
func (p *Page[T]) IsFirst() bool { return p.Prev == nil }

// IsLast reports whether p is the last page of its tag.
func (p *Page[T]) IsLast() bool { return p.Next == nil }

// PageCount returns how many pages n items occupy at perPage items per page.
// perPage <= 0 means unbounded: one page for any non-empty bucket.
func PageCount(n, perPage int) int {
	if n <= 0 {
		return 0
	}
	if perPage <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Paginate slices items into pages of perPage items and links neighbours.
// An empty bucket yields no pages, whatever perPage is.
func Paginate[T any](tag string, items []T, perPage int) []*Page[T] {
	n := len(items)
	total := PageCount(n, perPage)
	if total == 0 {
		return nil
	}

	size := perPage
	if size <= 0 {
		size = n
	}

	pages := make([]*Page[T], 0, total)
	var prev *Page[T]
	for i := range total {
		start := i * size
		end := min(start+size, n)
		page := &Page[T]{
			Num:   i + 1,
			Pages: total,
			Tag:   tag,
			Start: start,
			End:   end,
			Items: items[start:end:end],
		}
		if prev != nil {
			page.Prev = prev
			prev.Next = page
		}
		pages = append(pages, page)
		prev = page
	}
	return pages
}
