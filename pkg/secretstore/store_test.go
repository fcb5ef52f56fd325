package secretstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/secretstore"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

func newRecord(t *testing.T, issuer, account string) totp.Record {
	t.Helper()
	secret, err := totp.GenerateSecret()
	require.NoError(t, err)
	rec, err := totp.NewRecord(totp.Params{Secret: secret, Issuer: issuer, AccountID: account})
	require.NoError(t, err)
	return rec
}

// testStore runs the behaviour every Store implementation must share.
// userID must not own entries before the call.
func testStore(t *testing.T, store secretstore.Store, userID int64) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Cleanup(func() { _, _ = store.DeleteAll(ctx, userID) })

		rec := newRecord(t, "Acme", "alice@example.com")
		created, err := store.Create(ctx, userID, rec)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, userID, created.UserID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := store.Get(ctx, userID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, rec, got.Record)

		_, err = store.Get(ctx, userID+1, created.ID)
		assert.ErrorIs(t, err, secretstore.ErrNotFound)
		_, err = store.Get(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, secretstore.ErrNotFound)
	})

	t.Run("duplicate secret", func(t *testing.T) {
		t.Cleanup(func() {
			_, _ = store.DeleteAll(ctx, userID)
			_, _ = store.DeleteAll(ctx, userID+1)
		})

		rec := newRecord(t, "Acme", "alice")
		_, err := store.Create(ctx, userID, rec)
		require.NoError(t, err)

		same, err := totp.NewRecord(totp.Params{Secret: rec.Secret(), Issuer: "Other"})
		require.NoError(t, err)
		_, err = store.Create(ctx, userID, same)
		assert.ErrorIs(t, err, totp.ErrDuplicateSecret)

		_, err = store.Create(ctx, userID+1, rec)
		assert.ErrorIs(t, err, totp.ErrDuplicateSecret)

		n, err := store.Count(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("list pages newest first", func(t *testing.T) {
		t.Cleanup(func() { _, _ = store.DeleteAll(ctx, userID) })

		var ids []uuid.UUID
		for _, account := range []string{"a", "b", "c", "d", "e"} {
			e, err := store.Create(ctx, userID, newRecord(t, "Acme", account))
			require.NoError(t, err)
			ids = append(ids, e.ID)
		}

		first, err := store.List(ctx, userID, secretstore.Page{Number: 1, Size: 2})
		require.NoError(t, err)
		require.Len(t, first.Entries, 2)
		assert.Equal(t, ids[4], first.Entries[0].ID)
		assert.Equal(t, ids[3], first.Entries[1].ID)
		assert.Equal(t, 5, first.Total)
		assert.Equal(t, 3, first.TotalPages)
		assert.True(t, first.HasNext)
		assert.False(t, first.HasPrevious)

		last, err := store.List(ctx, userID, secretstore.Page{Number: 3, Size: 2})
		require.NoError(t, err)
		require.Len(t, last.Entries, 1)
		assert.Equal(t, ids[0], last.Entries[0].ID)
		assert.False(t, last.HasNext)
		assert.True(t, last.HasPrevious)

		beyond, err := store.List(ctx, userID, secretstore.Page{Number: 99, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, beyond.Page)

		defaults, err := store.List(ctx, userID, secretstore.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, defaults.Page)
		assert.Equal(t, secretstore.DefaultPageSize, defaults.PerPage)
		assert.Len(t, defaults.Entries, 5)
	})

	t.Run("list empty", func(t *testing.T) {
		res, err := store.List(ctx, userID, secretstore.Page{Number: 1, Size: 5})
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
		assert.Equal(t, 1, res.TotalPages)
		assert.False(t, res.HasNext)
		assert.False(t, res.HasPrevious)
	})

	t.Run("search", func(t *testing.T) {
		t.Cleanup(func() { _, _ = store.DeleteAll(ctx, userID) })

		for _, p := range [][2]string{
			{"GitHub", "alice@example.com"},
			{"Google", "bob@gmail.com"},
			{"Acme", "github-bot"},
			{"100%_Corp", "carol"},
		} {
			_, err := store.Create(ctx, userID, newRecord(t, p[0], p[1]))
			require.NoError(t, err)
		}

		found, err := store.Search(ctx, userID, "GITHUB")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "github-bot", found[0].Record.AccountID())
		assert.Equal(t, "GitHub", found[1].Record.Issuer())

		found, err = store.Search(ctx, userID, "%_")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "100%_Corp", found[0].Record.Issuer())

		found, err = store.Search(ctx, userID, "nothing")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = store.Search(ctx, userID+1, "g")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("export", func(t *testing.T) {
		t.Cleanup(func() { _, _ = store.DeleteAll(ctx, userID) })

		var ids []uuid.UUID
		for _, account := range []string{"a", "b", "c"} {
			e, err := store.Create(ctx, userID, newRecord(t, "Acme", account))
			require.NoError(t, err)
			ids = append(ids, e.ID)
		}

		all, err := store.Export(ctx, userID)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, ids[0], all[0].ID)
		assert.Equal(t, ids[2], all[2].ID)

		some, err := store.Export(ctx, userID, ids[2], uuid.New(), ids[0])
		require.NoError(t, err)
		require.Len(t, some, 2)
		assert.Equal(t, ids[0], some[0].ID)
		assert.Equal(t, ids[2], some[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		t.Cleanup(func() { _, _ = store.DeleteAll(ctx, userID) })

		rec := newRecord(t, "Acme", "a")
		e, err := store.Create(ctx, userID, rec)
		require.NoError(t, err)
		_, err = store.Create(ctx, userID, newRecord(t, "Acme", "b"))
		require.NoError(t, err)

		n, err := store.Delete(ctx, userID+1, e.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = store.Delete(ctx, userID, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = store.Delete(ctx, userID, e.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		// the secret can be registered again once removed
		_, err = store.Create(ctx, userID, rec)
		require.NoError(t, err)

		n, err = store.DeleteAll(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := store.Count(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("zero record", func(t *testing.T) {
		_, err := store.Create(ctx, userID, totp.Record{})
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	})
}
