package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndValidate(t *testing.T) {
	store := NewSessionStore(time.Minute)

	token, err := store.Create("alice", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, ok := store.Validate(token)
	require.True(t, ok)
	require.Equal(t, "alice", sess.Username)
	require.False(t, sess.Admin)
}

func TestSessionStore_EmptyTokenRejected(t *testing.T) {
	store := NewSessionStore(time.Minute)

	_, ok := store.Validate("")
	require.False(t, ok)
}

func TestSessionStore_UnknownTokenRejected(t *testing.T) {
	store := NewSessionStore(time.Minute)

	_, ok := store.Validate("nonsense-token")
	require.False(t, ok)
}

func TestSessionStore_Invalidate(t *testing.T) {
	store := NewSessionStore(time.Minute)

	token, err := store.Create("alice", false)
	require.NoError(t, err)

	store.Invalidate(token)
	_, ok := store.Validate(token)
	require.False(t, ok)

	// Invalidating again is a no-op.
	store.Invalidate(token)
}

func TestSessionStore_ReloginInvalidatesPreviousToken(t *testing.T) {
	store := NewSessionStore(time.Minute)

	first, err := store.Create("alice", false)
	require.NoError(t, err)
	second, err := store.Create("alice", false)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, ok := store.Validate(first)
	require.False(t, ok, "old session must be gone after a new login")
	_, ok = store.Validate(second)
	require.True(t, ok)
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(20 * time.Millisecond)

	token, err := store.Create("alice", false)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, ok := store.Validate(token)
	require.False(t, ok)
}

func TestSessionStore_AdminFlag(t *testing.T) {
	store := NewSessionStore(time.Minute)

	token, err := store.Create("root", true)
	require.NoError(t, err)

	sess, ok := store.Validate(token)
	require.True(t, ok)
	require.True(t, sess.Admin)
}

func TestSessionStore_IndependentUsers(t *testing.T) {
	store := NewSessionStore(time.Minute)

	aliceToken, err := store.Create("alice", false)
	require.NoError(t, err)
	bobToken, err := store.Create("bob", false)
	require.NoError(t, err)

	aliceSess, ok := store.Validate(aliceToken)
	require.True(t, ok)
	bobSess, ok := store.Validate(bobToken)
	require.True(t, ok)
	require.NotEqual(t, aliceSess.Username, bobSess.Username)
}
