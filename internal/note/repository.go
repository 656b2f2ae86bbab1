package note

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/xmldoc"
)

// Repository is the CRUD facade over the notes document. It holds no record
// state between calls: every operation is a fresh load (reads) or a locked
// load-mutate-save cycle (writes) against the store.
type Repository struct {
	store *xmldoc.Store
}

// NewStore opens the notes document under dir.
func NewStore(dir string) *xmldoc.Store {
	return xmldoc.NewStore(dir, RootName)
}

func NewRepository(store *xmldoc.Store) *Repository {
	return &Repository{store: store}
}

func items(doc *xmldoc.Document) []*xmldoc.Element {
	out := make([]*xmldoc.Element, 0, len(doc.Items))
	for _, el := range doc.Items {
		if el.Name == itemName {
			out = append(out, el)
		}
	}
	return out
}

func find(doc *xmldoc.Document, id int) (*xmldoc.Element, error) {
	for _, el := range items(doc) {
		n, err := el.Int("Id")
		if err != nil {
			return nil, err
		}
		if n == id {
			return el, nil
		}
	}
	return nil, nil
}

// GetAll returns every note in document order.
func (r *Repository) GetAll(ctx context.Context) ([]Note, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	els := items(doc)
	notes := make([]Note, 0, len(els))
	for _, el := range els {
		n, err := decode(el)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// GetByID returns the note with the given identifier, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int) (Note, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return Note{}, err
	}
	el, err := find(doc, id)
	if err != nil {
		return Note{}, err
	}
	if el == nil {
		return Note{}, fmt.Errorf("note %d: %w", id, xmldoc.ErrNotFound)
	}
	return decode(el)
}

// GetBySlug returns the first note carrying the given slug, or ErrNotFound.
// Slugs are not unique; on collision the earliest note in document order
// wins.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (Note, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return Note{}, err
	}
	for _, el := range items(doc) {
		if el.Text("Slug") == slug {
			return decode(el)
		}
	}
	return Note{}, fmt.Errorf("note %q: %w", slug, xmldoc.ErrNotFound)
}

// GetByAccountID returns the notes owned by the given account, in document
// order. An account with no notes yields an empty slice.
func (r *Repository) GetByAccountID(ctx context.Context, accountID int) ([]Note, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var notes []Note
	for _, el := range items(doc) {
		n, err := el.Int("AccountId")
		if err != nil {
			return nil, err
		}
		if n != accountID {
			continue
		}
		note, err := decode(el)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// Create assigns the next identifier, derives the slug from the title,
// stamps both dates and persists the record. The Author snapshot is stored
// as given.
func (r *Repository) Create(ctx context.Context, n *Note) error {
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		next, err := doc.NextID("Id")
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		n.ID = next
		n.Title = strings.TrimSpace(n.Title)
		n.Slug = GenerateSlug(n.Title)
		n.Content = strings.TrimSpace(n.Content)
		n.DateCreated = now
		n.DateModified = now
		doc.Items = append(doc.Items, encode(*n))
		return nil
	})
}

// Update overwrites the mutable fields of an existing note. Title and
// Content keep their current values when the input leaves them empty; the
// slug is re-derived from the effective title either way. Ownership and the
// Author snapshot are replaced wholesale, and DateModified is re-stamped
// while DateCreated stays untouched. Returns ErrNotFound when the
// identifier is absent.
func (r *Repository) Update(ctx context.Context, n *Note) error {
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		el, err := find(doc, n.ID)
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("note %d: %w", n.ID, xmldoc.ErrNotFound)
		}

		title := strings.TrimSpace(n.Title)
		if title == "" {
			title = el.Text("Title")
		}
		el.SetText("Title", title)
		el.SetText("Slug", GenerateSlug(title))

		if content := strings.TrimSpace(n.Content); content != "" {
			el.SetText("Content", html.EscapeString(content))
		}

		el.SetText("DateModified", time.Now().UTC().Format(xmldoc.TimeFormat))
		el.SetText("AccountId", strconv.Itoa(n.AccountID))
		el.Replace(snapshotElement(n.Author))
		return nil
	})
}

// Delete removes the note, or returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		el, err := find(doc, id)
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("note %d: %w", id, xmldoc.ErrNotFound)
		}
		doc.Remove(el)
		return nil
	})
}
