package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session carries the delegated Google OAuth bearer credential for one
// logged-in browser. The real OAuth dance happens outside this service; the
// frontend hands the delegated access token to POST /auth/session and gets
// a session id back.
type Session struct {
	ID          string
	AccessToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// HasGoogleAccess reports whether calendar/mail tools may be used in this
// session. A nil session (anonymous chat) has no access.
func (s *Session) HasGoogleAccess() bool {
	return s != nil && s.AccessToken != ""
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(accessToken string) *Session {
	now := s.now()
	sess := &Session{
		ID:          uuid.NewString(),
		AccessToken: accessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session for id, expiring it lazily.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return sess, true
}
