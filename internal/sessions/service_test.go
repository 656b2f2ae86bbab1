package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueValidateClear(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	sess, err := svc.Issue(ctx, 1, "ana", "ana@x.com", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, 1, sess.AccountID)
	require.True(t, sess.Active(time.Now().UTC()))

	got, err := svc.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ana", got.Name)

	require.NoError(t, svc.Clear(ctx, sess))
	require.Zero(t, sess.AccountID, "cleared session must not keep identity")
	require.False(t, sess.Active(time.Now().UTC()))

	gone, err := svc.Validate(ctx, got.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestValidateUnknownID(t *testing.T) {
	svc := NewService(NewMemoryStore())
	got, err := svc.Validate(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestIssueUniqueIDs(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	a, err := svc.Issue(ctx, 1, "a", "a@x.com", time.Minute)
	require.NoError(t, err)
	b, err := svc.Issue(ctx, 1, "a", "a@x.com", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}
