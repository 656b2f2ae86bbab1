package account

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notatez/notatez/internal/xmldoc"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(NewStore(t.TempDir()))
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	a := Account{Email: "ana@x.com", Password: "hash-a"}
	require.NoError(t, r.Create(ctx, &a))
	require.Equal(t, 1, a.AccountID)
	require.Equal(t, "ana", a.Name)

	b := Account{Email: "bo@x.com", Password: "hash-b"}
	require.NoError(t, r.Create(ctx, &b))
	require.Equal(t, 2, b.AccountID)

	// deleting the maximum id must not make it reusable
	require.NoError(t, r.Delete(ctx, 2))
	c := Account{Email: "cy@x.com", Password: "hash-c"}
	require.NoError(t, r.Create(ctx, &c))
	require.Equal(t, 3, c.AccountID)
}

func TestGetByIDAndEmail(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	a := Account{Email: "ana@x.com", Password: "hash"}
	require.NoError(t, r.Create(ctx, &a))

	got, err := r.GetByID(ctx, a.AccountID)
	require.NoError(t, err)
	require.Equal(t, "ana", got.Name)
	require.False(t, got.DateCreated.IsZero())

	got, err = r.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, a.AccountID, got.AccountID)

	_, err = r.GetByID(ctx, 99)
	require.ErrorIs(t, err, xmldoc.ErrNotFound)
	_, err = r.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, xmldoc.ErrNotFound)
}

func TestUpdatePreservesIdentityAndCreationTime(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	a := Account{Email: "ana@x.com", Password: "hash"}
	require.NoError(t, r.Create(ctx, &a))
	before, err := r.GetByID(ctx, a.AccountID)
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, &Account{AccountID: a.AccountID, Email: "ana@y.com"}))

	after, err := r.GetByID(ctx, a.AccountID)
	require.NoError(t, err)
	require.Equal(t, before.DateCreated, after.DateCreated)
	require.True(t, after.DateModified.After(before.DateModified))
	require.Equal(t, EncodeEmail("ana@y.com"), after.Email)
	// omitted fields are not cleared
	require.Equal(t, "hash", after.Password)
	require.Equal(t, "ana", after.Name)
}

func TestUpdateAndDeleteNotFoundLeaveDocumentUnchanged(t *testing.T) {
	store := NewStore(t.TempDir())
	r := NewRepository(store)
	ctx := context.Background()

	a := Account{Email: "ana@x.com", Password: "hash"}
	require.NoError(t, r.Create(ctx, &a))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	err = r.Update(ctx, &Account{AccountID: 42, Email: "x@y.com"})
	require.ErrorIs(t, err, xmldoc.ErrNotFound)
	err = r.Delete(ctx, 42)
	require.ErrorIs(t, err, xmldoc.ErrNotFound)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestEmailEncodedAtRest(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	a := Account{Email: `ana+"tag"@x.com`, Password: "hash"}
	require.NoError(t, r.Create(ctx, &a))
	require.Equal(t, `ana+&#34;tag&#34;@x.com`, a.Email)

	got, err := r.GetByEmail(ctx, `ana+"tag"@x.com`)
	require.NoError(t, err)
	require.Equal(t, a.AccountID, got.AccountID)
}

func TestCreateStampsCreationTime(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	start := time.Now().UTC()
	a := Account{Email: "ana@x.com", Password: "hash"}
	require.NoError(t, r.Create(ctx, &a))
	require.False(t, a.DateCreated.Before(start.Truncate(time.Second)))
}
