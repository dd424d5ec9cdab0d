package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Create("ya29.token")
	require.NotEmpty(t, sess.ID)
	assert.True(t, sess.HasGoogleAccess())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "ya29.token", got.Token())

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(time.Minute)

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess := store.Create("tok")

	now = now.Add(2 * time.Minute)
	_, ok := store.Get(sess.ID)
	assert.False(t, ok, "expired session should be gone")
}

func TestSession_NilSafety(t *testing.T) {
	var sess *Session
	assert.False(t, sess.HasGoogleAccess())
	assert.Empty(t, sess.Token())
}
