package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notatez/notatez/internal/ratelimit"
	"github.com/notatez/notatez/internal/sessions"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repo := NewRepository(NewStore(t.TempDir()))
	return NewService(repo, sessions.NewService(sessions.NewMemoryStore()), nil, time.Hour)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Equal(t, 1, a.AccountID)
	require.Equal(t, "ana", a.Name)
	require.NotContains(t, a.Password, "Abc12345!")

	id, sess, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Equal(t, 1, id)
	require.NotNil(t, sess)
	require.Equal(t, "ana", sess.Name)
	require.True(t, sess.Active(time.Now().UTC()))
}

func TestAuthenticateFailures(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// empty collection
	id, sess, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Zero(t, id)
	require.Nil(t, sess)

	_, err = svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)

	// wrong password
	id, _, err = svc.Authenticate(ctx, "ana@x.com", "wrong")
	require.NoError(t, err)
	require.Zero(t, id)

	// wrong email
	id, _, err = svc.Authenticate(ctx, "bo@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ana@x.com", "Other9876!")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDeleteRegisterSequence(t *testing.T) {
	repo := NewRepository(NewStore(t.TempDir()))
	svc := NewService(repo, sessions.NewService(sessions.NewMemoryStore()), nil, time.Hour)
	ctx := context.Background()

	a, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Equal(t, 1, a.AccountID)
	require.Equal(t, "ana", a.Name)

	b, err := svc.Register(ctx, "bo@x.com", "Xy98765!")
	require.NoError(t, err)
	require.Equal(t, 2, b.AccountID)

	require.NoError(t, repo.Delete(ctx, 1))

	c, err := svc.Register(ctx, "cy@x.com", "Qq55555!")
	require.NoError(t, err)
	require.Equal(t, 3, c.AccountID, "identifiers are never reused after deletion")

	// the deleted account can no longer authenticate
	id, _, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestAuthenticateThrottled(t *testing.T) {
	repo := NewRepository(NewStore(t.TempDir()))
	limiter := ratelimit.New("login-test", 0.01, 2)
	svc := NewService(repo, sessions.NewService(sessions.NewMemoryStore()), limiter, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, _, err := svc.Authenticate(ctx, "ana@x.com", "wrong")
		require.NoError(t, err)
	}

	// bucket exhausted: even the right password is rejected without a scan
	id, sess, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Zero(t, id)
	require.Nil(t, sess)

	// other emails are unaffected
	id, _, err = svc.Authenticate(ctx, "bo@x.com", "whatever")
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestLogoutClearsSession(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	_, sess, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.NotNil(t, sess)

	require.NoError(t, svc.Logout(ctx, sess))
	require.False(t, sess.Active(time.Now().UTC()))
}

func TestAccountName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)

	name, err := svc.AccountName(ctx, a.AccountID)
	require.NoError(t, err)
	require.Equal(t, "ana", name)

	name, err = svc.AccountName(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.NoError(t, svc.ChangePassword(ctx, a.AccountID, "NewPass99!"))

	id, _, err := svc.Authenticate(ctx, "ana@x.com", "Abc12345!")
	require.NoError(t, err)
	require.Zero(t, id)

	id, _, err = svc.Authenticate(ctx, "ana@x.com", "NewPass99!")
	require.NoError(t, err)
	require.Equal(t, a.AccountID, id)
}
