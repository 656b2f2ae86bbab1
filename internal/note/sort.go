package note

import (
	"sort"
	"strings"

	"github.com/notatez/notatez/internal/query"
)

// Sort keys accepted by List. Anything else falls back to ascending order
// by identifier.
const (
	SortByTitle        = "title"
	SortByContent      = "content"
	SortByAuthor       = "author"
	SortByDateCreated  = "dateCreated"
	SortByDateModified = "dateModified"
)

// Sort orders notes in place by the given key, ties broken by the incoming
// (document) order. Content and author sort over their rendered text forms.
func Sort(notes []Note, sortBy string, descending bool) {
	var less func(a, b Note) bool
	switch sortBy {
	case SortByTitle:
		less = func(a, b Note) bool { return a.Title < b.Title }
	case SortByContent:
		less = func(a, b Note) bool {
			return query.PlainText(a.Content, false) < query.PlainText(b.Content, false)
		}
	case SortByAuthor:
		less = func(a, b Note) bool { return a.Author.Name < b.Author.Name }
	case SortByDateCreated:
		less = func(a, b Note) bool { return a.DateCreated.Before(b.DateCreated) }
	case SortByDateModified:
		less = func(a, b Note) bool { return a.DateModified.Before(b.DateModified) }
	default:
		sort.SliceStable(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
		return
	}
	if descending {
		inner := less
		less = func(a, b Note) bool { return inner(b, a) }
	}
	sort.SliceStable(notes, func(i, j int) bool { return less(notes[i], notes[j]) })
}

// Search filters notes to those whose title, plain-text content or author
// name contains the query, case-insensitively. An empty query keeps
// everything.
func Search(notes []Note, q string) []Note {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(query.PlainText(n.Content, false)), q) ||
			strings.Contains(strings.ToLower(n.Author.Name), q) {
			out = append(out, n)
		}
	}
	return out
}
