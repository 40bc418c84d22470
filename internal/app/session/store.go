package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// CookieName carries the session id between requests.
const CookieName = "wayfarer_session"

const (
	defaultTTL      = 30 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Store keeps sessions in an expiring in-memory cache keyed by session id.
// Nothing survives process restart, matching the page-session lifetime of
// the state it holds.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a session store. A non-positive ttl falls back to the
// default.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{cache: gocache.New(ttl, cleanupInterval)}
}

// Get looks up a session by id.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// GetOrCreate returns the session for id, minting a fresh one (with a new
// uuid) when the id is empty or expired. The second return reports whether a
// new session was created, so the caller can set the cookie.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if sess, found := s.Get(id); found {
		return sess, false
	}
	sess := NewSession(uuid.New().String())
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess, true
}
