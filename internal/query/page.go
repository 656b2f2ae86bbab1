package query

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 4

// Page is one window over a filtered, sorted result set, together with the
// query that produced it.
type Page[T any] struct {
	Items       []T
	TotalItems  int
	CurrentPage int
	PageSize    int
	SortBy      string
	SortOrder   string
	SearchQuery string
}

// TotalPages returns the number of pages covering TotalItems.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasPreviousPage() bool { return p.CurrentPage > 1 }

func (p Page[T]) HasNextPage() bool { return p.CurrentPage < p.TotalPages() }

// Paginate slices items into the requested page. The page number is clamped
// to the valid range; a non-positive size falls back to DefaultPageSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	last := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if last > 0 && page > last {
		page = last
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		TotalItems:  total,
		CurrentPage: page,
		PageSize:    size,
	}
}
