package note

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/query"
	"github.com/notatez/notatez/internal/sessions"
	"github.com/notatez/notatez/pkg/logger"
)

var (
	// ErrNoSession is returned when a write is attempted without an active
	// session.
	ErrNoSession = errors.New("no active session")
	// ErrNotOwner is returned when a session tries to modify another
	// account's note.
	ErrNotOwner = errors.New("note owned by another account")
	// ErrInvalid is returned when a note fails validation.
	ErrInvalid = errors.New("invalid note")
)

// MaxTitleLength bounds note titles.
const MaxTitleLength = 100

// AuthorSource resolves account identifiers to display names for the
// embedded author snapshot. A missing account resolves to an empty name.
type AuthorSource interface {
	AccountName(ctx context.Context, id int) (string, error)
}

// ListRequest describes one listing query. Zero values mean: first page,
// default size, no filter, ascending by identifier.
type ListRequest struct {
	Page        int
	PageSize    int
	SortBy      string
	Descending  bool
	SearchQuery string
}

// Service gates note writes behind an active session and keeps the author
// snapshot in step with the owning account. Reads are public.
type Service struct {
	repo    *Repository
	authors AuthorSource
}

func NewService(repo *Repository, authors AuthorSource) *Service {
	return &Service{repo: repo, authors: authors}
}

func activeSession(sess *sessions.Session) error {
	if sess == nil || !sess.Active(time.Now().UTC()) {
		return ErrNoSession
	}
	return nil
}

func validateTitle(title string, required bool) error {
	if required && title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalid, MaxTitleLength)
	}
	return nil
}

// Create persists a new note owned by the session's account, with a fresh
// author snapshot.
func (s *Service) Create(ctx context.Context, sess *sessions.Session, title, content string) (Note, error) {
	if err := activeSession(sess); err != nil {
		return Note{}, err
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if err := validateTitle(title, true); err != nil {
		return Note{}, err
	}
	if content == "" {
		return Note{}, fmt.Errorf("%w: content is required", ErrInvalid)
	}
	name, err := s.authors.AccountName(ctx, sess.AccountID)
	if err != nil {
		return Note{}, err
	}
	n := Note{
		Title:     title,
		Content:   content,
		AccountID: sess.AccountID,
		Author:    Author{AccountID: sess.AccountID, Name: name},
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return Note{}, err
	}
	logger.Infof("note created: id=%d account=%d", n.ID, n.AccountID)
	return n, nil
}

// Update overwrites the note's title and content after checking that the
// session's account owns it. The author snapshot is refreshed from the
// current account name.
func (s *Service) Update(ctx context.Context, sess *sessions.Session, id int, title, content string) error {
	if err := activeSession(sess); err != nil {
		return err
	}
	if err := validateTitle(strings.TrimSpace(title), false); err != nil {
		return err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.AccountID != sess.AccountID {
		return fmt.Errorf("note %d: %w", id, ErrNotOwner)
	}
	name, err := s.authors.AccountName(ctx, sess.AccountID)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, &Note{
		ID:        id,
		Title:     title,
		Content:   content,
		AccountID: sess.AccountID,
		Author:    Author{AccountID: sess.AccountID, Name: name},
	})
}

// Delete removes the note after checking ownership.
func (s *Service) Delete(ctx context.Context, sess *sessions.Session, id int) error {
	if err := activeSession(sess); err != nil {
		return err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.AccountID != sess.AccountID {
		return fmt.Errorf("note %d: %w", id, ErrNotOwner)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Infof("note deleted: id=%d account=%d", id, sess.AccountID)
	return nil
}

// Get returns a single note by identifier. Reads need no session.
func (s *Service) Get(ctx context.Context, id int) (Note, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the first note carrying the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (Note, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List filters, sorts and paginates the full collection per the request,
// echoing the query back on the returned page.
func (s *Service) List(ctx context.Context, req ListRequest) (query.Page[Note], error) {
	notes, err := s.repo.GetAll(ctx)
	if err != nil {
		return query.Page[Note]{}, err
	}
	notes = Search(notes, req.SearchQuery)
	Sort(notes, req.SortBy, req.Descending)

	page := query.Paginate(notes, req.Page, req.PageSize)
	page.SortBy = req.SortBy
	page.SortOrder = "asc"
	if req.Descending {
		page.SortOrder = "desc"
	}
	page.SearchQuery = req.SearchQuery
	return page, nil
}

// ListByAccount returns the session account's own notes, newest first.
func (s *Service) ListByAccount(ctx context.Context, sess *sessions.Session) ([]Note, error) {
	if err := activeSession(sess); err != nil {
		return nil, err
	}
	notes, err := s.repo.GetByAccountID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	Sort(notes, SortByDateCreated, true)
	return notes, nil
}
