package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service wraps store operations with session lifecycle logic.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// Issue creates and persists a new session for the account.
func (s *Service) Issue(ctx context.Context, accountID int, name, email string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate returns the session for id when it exists and has not expired,
// nil otherwise.
func (s *Service) Validate(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || !sess.Active(time.Now().UTC()) {
		return nil, nil
	}
	return sess, nil
}

// Clear removes the session from the store and zeroes the caller's copy, so
// a held reference no longer authorizes anything.
func (s *Service) Clear(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	if err := s.store.DeleteByID(ctx, sess.ID); err != nil {
		return err
	}
	*sess = Session{}
	return nil
}
