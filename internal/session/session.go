// Package session persists the quotectl login across runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "quotedesk"
	KeyName     = "session"
	fileName    = "session.json"
)

// ErrNoSession means nobody is logged in, or the stored login expired.
var ErrNoSession = errors.New("not logged in")

// Session is one stored login.
type Session struct {
	BaseURL   string    `json:"base_url"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store keeps the session in the OS keyring and falls back to a 0600 file in
// dir when no keyring is available.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, fileName)
}

// Save stores sess, replacing any previous login.
func (s *Store) Save(sess *Session) error {
	if sess == nil || sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := keyring.Set(ServiceName, KeyName, string(data)); err == nil {
		_ = os.Remove(s.path())
		return nil
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load returns the stored session. Expired sessions are cleared and reported
// as ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		_ = s.Clear()
		return nil, ErrNoSession
	}
	if sess.Expired(s.now()) {
		_ = s.Clear()
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *Store) read() ([]byte, error) {
	value, err := keyring.Get(ServiceName, KeyName)
	if err == nil {
		return []byte(value), nil
	}

	data, ferr := os.ReadFile(s.path())
	if ferr == nil {
		return data, nil
	}
	if errors.Is(ferr, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	return nil, fmt.Errorf("failed to read session file: %w", ferr)
}

// Clear forgets the session everywhere it may be stored.
func (s *Store) Clear() error {
	// fails when there is no keyring or nothing stored in it
	_ = keyring.Delete(ServiceName, KeyName)
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
