package services

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// DefaultSessionDuration is 7 days.
const DefaultSessionDuration = 7 * 24 * time.Hour

const cleanupInterval = 5 * time.Minute

// Session is the server-side state behind a bearer token.
type Session struct {
	Username  string
	Admin     bool
	ExpiresAt time.Time
}

// SessionStore maps opaque bearer tokens to logged-in usernames, in memory.
// A user holds at most one live session: logging in again invalidates the
// previous token, so the expiry timer always resets from the latest login.
type SessionStore struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]Session
	byUser   map[string]string // username -> current token
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionDuration
	}
	s := &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		byUser:   make(map[string]string),
	}
	go s.cleanupLoop()
	return s
}

// Create issues a new session token for a user, invalidating any session
// the user already holds.
func (s *SessionStore) Create(username string, admin bool) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[username]; ok {
		delete(s.sessions, old)
	}
	s.sessions[token] = Session{
		Username:  username,
		Admin:     admin,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.byUser[username] = token
	return token, nil
}

// Validate checks a session token and returns its session state.
// Expired sessions are removed on sight.
func (s *SessionStore) Validate(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		s.Invalidate(token)
		return Session{}, false
	}
	return sess, true
}

// Invalidate removes a session. Unknown tokens are a no-op.
func (s *SessionStore) Invalidate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		if s.byUser[sess.Username] == token {
			delete(s.byUser, sess.Username)
		}
		delete(s.sessions, token)
	}
}

// cleanupLoop drops expired sessions so the maps don't grow without bound.
func (s *SessionStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for token, sess := range s.sessions {
			if now.After(sess.ExpiresAt) {
				if s.byUser[sess.Username] == token {
					delete(s.byUser, sess.Username)
				}
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}
