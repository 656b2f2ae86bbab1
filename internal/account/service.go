package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notatez/notatez/internal/password"
	"github.com/notatez/notatez/internal/ratelimit"
	"github.com/notatez/notatez/internal/sessions"
	"github.com/notatez/notatez/internal/xmldoc"
	"github.com/notatez/notatez/pkg/logger"
	"github.com/notatez/notatez/pkg/metrics"
)

// ErrEmailTaken is returned by Register when the email is already in use.
var ErrEmailTaken = errors.New("email already registered")

// Service is the credential guard: it owns registration, password
// verification and session issuance. Repositories never see plaintext
// passwords; Protect runs here before anything is persisted.
type Service struct {
	repo       *Repository
	sessions   *sessions.Service
	limiter    *ratelimit.Limiter
	sessionTTL time.Duration
}

func NewService(repo *Repository, sess *sessions.Service, limiter *ratelimit.Limiter, sessionTTL time.Duration) *Service {
	return &Service{repo: repo, sessions: sess, limiter: limiter, sessionTTL: sessionTTL}
}

// Register creates an account after checking email uniqueness. The returned
// account carries the assigned identifier and derived name.
func (s *Service) Register(ctx context.Context, email, plain string) (Account, error) {
	email = strings.TrimSpace(email)

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return Account{}, fmt.Errorf("%q: %w", email, ErrEmailTaken)
	}
	if !errors.Is(err, xmldoc.ErrNotFound) {
		return Account{}, err
	}

	hash, err := password.Protect(strings.TrimSpace(plain))
	if err != nil {
		return Account{}, err
	}
	a := Account{Email: email, Password: hash}
	if err := s.repo.Create(ctx, &a); err != nil {
		return Account{}, err
	}
	logger.Infof("account registered: id=%d name=%s", a.AccountID, a.Name)
	return a, nil
}

// Authenticate scans accounts for a matching email and verifies the
// password against the stored hash. On success it issues a session for the
// matched account and returns its identifier; on any miss it returns 0 (the
// designated no-account sentinel) with a nil session. Attempts are throttled
// per email; throttled attempts fail without touching storage.
func (s *Service) Authenticate(ctx context.Context, email, plain string) (int, *sessions.Session, error) {
	email = strings.TrimSpace(email)
	plain = strings.TrimSpace(plain)

	if s.limiter != nil && !s.limiter.Allow(strings.ToLower(email)) {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		logger.Warnf("login throttled: email=%s", email)
		return 0, nil, nil
	}

	accounts, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, nil, err
	}

	stored := EncodeEmail(email)
	for _, a := range accounts {
		if a.Email != stored || !password.Verify(plain, a.Password) {
			continue
		}
		sess, err := s.sessions.Issue(ctx, a.AccountID, a.Name, email, s.sessionTTL)
		if err != nil {
			return 0, nil, err
		}
		metrics.LoginAttempts.WithLabelValues("success").Inc()
		return a.AccountID, sess, nil
	}

	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	return 0, nil, nil
}

// Logout clears the session; a nil session is a no-op.
func (s *Service) Logout(ctx context.Context, sess *sessions.Session) error {
	return s.sessions.Clear(ctx, sess)
}

// AccountName resolves the display name for an account identifier. A
// missing account yields an empty name, not an error; listings render that
// as an unknown author.
func (s *Service) AccountName(ctx context.Context, id int) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, xmldoc.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return a.Name, nil
}

// ChangePassword re-protects and stores a new password for the account.
func (s *Service) ChangePassword(ctx context.Context, id int, plain string) error {
	hash, err := password.Protect(strings.TrimSpace(plain))
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, &Account{AccountID: id, Password: hash})
}
