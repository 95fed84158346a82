package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kn-labs/keepnotes-backend/internal/models"
)

func newUserStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(filepath.Join(t.TempDir(), "users.csv"))
}

func testUser(username string) models.User {
	return models.User{
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		FavoriteItem: "pasta",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestCredentialStore_AddAndFind(t *testing.T) {
	store := newUserStore(t)

	want := testUser("alice")
	require.NoError(t, store.AddUser(want))

	got, err := store.FindUser("alice")
	require.NoError(t, err)
	require.Equal(t, want.Username, got.Username)
	require.Equal(t, want.PasswordHash, got.PasswordHash)
	require.Equal(t, want.FavoriteItem, got.FavoriteItem)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestCredentialStore_FindUser_NotFound(t *testing.T) {
	store := newUserStore(t)

	_, err := store.FindUser("ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialStore_DuplicateUsername(t *testing.T) {
	store := newUserStore(t)

	require.NoError(t, store.AddUser(testUser("alice")))
	err := store.AddUser(testUser("alice"))
	require.ErrorIs(t, err, ErrUsernameTaken)

	users, err := store.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1, "table must hold exactly one record for the username")
}

func TestCredentialStore_DuplicateIsCaseInsensitive(t *testing.T) {
	store := newUserStore(t)

	require.NoError(t, store.AddUser(testUser("alice")))
	err := store.AddUser(testUser("ALICE"))
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCredentialStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")

	require.NoError(t, NewCredentialStore(path).AddUser(testUser("alice")))

	reopened := NewCredentialStore(path)
	got, err := reopened.FindUser("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
}

func TestCredentialStore_MissingFileIsEmptyTable(t *testing.T) {
	store := newUserStore(t)

	users, err := store.ListUsers()
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestCredentialStore_WritesHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, NewCredentialStore(path).AddUser(testUser("alice")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	first := strings.SplitN(string(raw), "\n", 2)[0]
	require.Equal(t, "username,password_hash,favorite_item,created_at", first)
}

func TestCredentialStore_ListIncludesHashes(t *testing.T) {
	store := newUserStore(t)
	require.NoError(t, store.AddUser(testUser("alice")))
	require.NoError(t, store.AddUser(testUser("bob")))

	users, err := store.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.NotEmpty(t, u.PasswordHash)
	}
}

func TestCredentialStore_ConcurrentRegistrations(t *testing.T) {
	store := newUserStore(t)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			errs <- store.AddUser(testUser("race"))
		}()
	}

	succeeded := 0
	for i := 0; i < n; i++ {
		err := <-errs
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one concurrent registration may win")

	users, err := store.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
}
