package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/healthtrack/healthtrack-go/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheetUserStore() (*SheetUserStore, *sheet.Memory) {
	mem := sheet.NewMemory()
	return NewSheetUserStore(mem, "Users!A:C"), mem
}

func TestSheetUserStoreCreateAndFind(t *testing.T) {
	store, _ := newTestSheetUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Username: "alice123", PasswordHash: "hash1"}))

	user, err := store.FindByUsername(ctx, "alice123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash1", user.PasswordHash)

	byID, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice123", byID.Username)
}

func TestSheetUserStoreAbsentSheetReadsAsEmpty(t *testing.T) {
	store, _ := newTestSheetUserStore()

	// A not-yet-provisioned tab is the same as no matching row, not a
	// fatal error.
	_, err := store.FindByUsername(context.Background(), "anyone")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSheetUserStoreLookupIsCaseSensitive(t *testing.T) {
	store, _ := newTestSheetUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Username: "Alice", PasswordHash: "h"}))

	_, err := store.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSheetUserStoreDuplicate(t *testing.T) {
	store, _ := newTestSheetUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Username: "alice123", PasswordHash: "h1"}))

	err := store.Create(ctx, &User{ID: "u2", Username: "alice123", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// The original record is untouched.
	user, err := store.FindByUsername(ctx, "alice123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestSheetUserStoreWritesHeaderOnce(t *testing.T) {
	store, mem := newTestSheetUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Username: "alice123", PasswordHash: "h1"}))
	require.NoError(t, store.Create(ctx, &User{ID: "u2", Username: "bob456", PasswordHash: "h2"}))

	rows, err := mem.Read(ctx, "Users!A:C")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, userHeader, rows[0])
	assert.Equal(t, []string{"u1", "alice123", "h1"}, rows[1])
	assert.Equal(t, []string{"u2", "bob456", "h2"}, rows[2])
}

func TestSheetUserStoreConcurrentCreateSameUsername(t *testing.T) {
	store, _ := newTestSheetUserStore()
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Create(ctx, &User{ID: "u", Username: "alice123", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrDuplicateUsername):
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent registration may win")
	assert.Equal(t, attempts-1, lost)
}
