package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"altweb/internal/auth/domain"
	"altweb/pkg/jwt"
)

// Session is the client-side identity state: the raw bearer token plus the
// claims decoded from it. The display name is derived from the email local
// part; the token payload does not carry one.
type Session struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

// SessionStore keeps the current session in memory and mirrors it to a
// state file so it survives restarts. Safe for concurrent use.
type SessionStore struct {
	mu      sync.RWMutex
	path    string
	session *Session
}

// NewSessionStore loads any previously stored session from path. A stored
// token that no longer decodes is treated as corrupt: the file is removed
// and the store starts unauthenticated.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		_ = os.Remove(path)
		return s, nil
	}
	if _, err := jwt.Decode(sess.Token); err != nil {
		_ = os.Remove(path)
		return s, nil
	}

	s.session = &sess
	return s, nil
}

// Set decodes the token's claims (no signature check: verification is the
// server's job), stores the session, and persists it.
func (s *SessionStore) Set(token string) (*Session, error) {
	claims, err := jwt.Decode(token)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:       token,
		UserID:      claims.UserID,
		Email:       claims.Email,
		Role:        claims.Role,
		DisplayName: domain.LocalPart(claims.Email),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	return sess, s.persist(sess)
}

// Clear removes the session from memory and disk. Requests made afterwards
// are unauthenticated.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Current returns the held session, or nil when unauthenticated.
func (s *SessionStore) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	clone := *s.session
	return &clone
}

// Token returns the raw bearer token, or "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

func (s *SessionStore) persist(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
