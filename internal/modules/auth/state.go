package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultMaxStates = 4096

type stateEntry struct {
	returnURL string
	expiresAt time.Time
}

// StateStore remembers anti-forgery state tokens handed out by
// /authenticate until the provider redirects back. Entries expire after
// ttl and are consumed on first use; the map is capacity-bounded so an
// attacker spamming /authenticate cannot grow it without limit.
type StateStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]stateEntry
	now     func() time.Time
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		ttl:     ttl,
		max:     defaultMaxStates,
		entries: make(map[string]stateEntry),
		now:     time.Now,
	}
}

// Issue mints a fresh state token bound to returnURL.
func (s *StateStore) Issue(returnURL string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)
	if len(s.entries) >= s.max {
		s.evictOldestLocked()
	}

	token := uuid.New().String()
	s.entries[token] = stateEntry{returnURL: returnURL, expiresAt: now.Add(s.ttl)}
	return token
}

// Consume validates and removes a token, returning its bound return URL.
// Unknown or expired tokens fail.
func (s *StateStore) Consume(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", false
	}
	delete(s.entries, token)

	if s.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.returnURL, true
}

func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *StateStore) purgeLocked(now time.Time) {
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}

func (s *StateStore) evictOldestLocked() {
	var oldest string
	var oldestAt time.Time
	for token, entry := range s.entries {
		if oldest == "" || entry.expiresAt.Before(oldestAt) {
			oldest = token
			oldestAt = entry.expiresAt
		}
	}
	if oldest != "" {
		delete(s.entries, oldest)
	}
}
