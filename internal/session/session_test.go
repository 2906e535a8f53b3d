package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func sample() *Session {
	return &Session{
		BaseURL:   "http://localhost:8080",
		Token:     "tok",
		Username:  "admin",
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
}

func TestStore_Keyring(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()
	s := NewStore(dir)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Save(sample()))
	_, err = os.Stat(filepath.Join(dir, fileName))
	assert.True(t, os.IsNotExist(err), "keyring in use, no file expected")

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "admin", got.Username)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_FileFallback(t *testing.T) {
	keyring.MockInitWithError(errors.New("no keyring"))
	dir := filepath.Join(t.TempDir(), "quotedesk")
	s := NewStore(dir)

	require.NoError(t, s.Save(sample()))

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestStore_ExpiredIsCleared(t *testing.T) {
	keyring.MockInit()
	s := NewStore(t.TempDir())

	sess := sample()
	require.NoError(t, s.Save(sess))

	s.now = func() time.Time { return sess.ExpiresAt.Add(time.Second) }
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	s.now = time.Now
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoSession, "expired session was removed")
}

func TestStore_RejectsEmpty(t *testing.T) {
	keyring.MockInit()
	s := NewStore(t.TempDir())
	assert.Error(t, s.Save(nil))
	assert.Error(t, s.Save(&Session{}))
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Session{}).Expired(now), "no expiry means never")
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now))
}
