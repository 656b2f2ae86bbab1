package account

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/xmldoc"
)

// Repository is the CRUD facade over the accounts document. It holds no
// record state between calls: every operation is a fresh load (reads) or a
// locked load-mutate-save cycle (writes) against the store.
type Repository struct {
	store *xmldoc.Store
}

// NewStore opens the accounts document under dir.
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
		n, err := el.Int("AccountId")
		if err != nil {
			return nil, err
		}
		if n == id {
			return el, nil
		}
	}
	return nil, nil
}

// GetAll returns every account in document order.
func (r *Repository) GetAll(ctx context.Context) ([]Account, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	els := items(doc)
	accounts := make([]Account, 0, len(els))
	for _, el := range els {
		a, err := decode(el)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// GetByID returns the account with the given identifier, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int) (Account, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return Account{}, err
	}
	el, err := find(doc, id)
	if err != nil {
		return Account{}, err
	}
	if el == nil {
		return Account{}, fmt.Errorf("account %d: %w", id, xmldoc.ErrNotFound)
	}
	return decode(el)
}

// GetByEmail returns the account stored under the given email address, or
// ErrNotFound. The input is compared against the encoded at-rest form.
func (r *Repository) GetByEmail(ctx context.Context, email string) (Account, error) {
	stored := EncodeEmail(email)
	doc, err := r.store.Load(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, el := range items(doc) {
		if el.Text("Email") == stored {
			return decode(el)
		}
	}
	return Account{}, fmt.Errorf("account %q: %w", email, xmldoc.ErrNotFound)
}

// Create assigns the next identifier, derives Name from the email
// local-part, encodes Email, stamps DateCreated and persists the record.
// The Password field must already be protected by the credential guard.
// Email uniqueness is not enforced here; callers pre-check.
func (r *Repository) Create(ctx context.Context, a *Account) error {
	email := strings.TrimSpace(a.Email)
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		next, err := doc.NextID("AccountId")
		if err != nil {
			return err
		}
		a.AccountID = next
		a.Name = NameFromEmail(email)
		a.Email = EncodeEmail(email)
		a.DateCreated = time.Now().UTC()
		a.DateModified = time.Time{}
		doc.Items = append(doc.Items, encode(*a))
		return nil
	})
}

// Update overwrites the mutable fields of an existing account: Email and
// Password when the input supplies them, plus a fresh DateModified stamp.
// DateCreated, Name and the identifier are left untouched. Returns
// ErrNotFound when the identifier is absent.
func (r *Repository) Update(ctx context.Context, a *Account) error {
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		el, err := find(doc, a.AccountID)
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("account %d: %w", a.AccountID, xmldoc.ErrNotFound)
		}
		if email := strings.TrimSpace(a.Email); email != "" {
			el.SetText("Email", EncodeEmail(email))
		}
		if a.Password != "" {
			el.SetText("Password", a.Password)
		}
		el.SetText("DateModified", time.Now().UTC().Format(xmldoc.TimeFormat))
		return nil
	})
}

// Delete removes the account, or returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.store.Mutate(ctx, func(doc *xmldoc.Document) error {
		el, err := find(doc, id)
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("account %d: %w", id, xmldoc.ErrNotFound)
		}
		doc.Remove(el)
		return nil
	})
}

// EncodeEmail maps an email address to its entity-encoded at-rest form.
func EncodeEmail(email string) string {
	return html.EscapeString(strings.TrimSpace(email))
}
