package storage

import (
	"sync"

	"ultrabot/server/internal/models"
)

// SessionStore holds the session-scoped "current user" snapshots, keyed by
// session token. It is the process-side analogue of a per-tab session slot:
// state here does not survive a restart.
type SessionStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewSessionStore() *SessionStore {
	return &SessionStore{users: make(map[string]models.User)}
}

func (s *SessionStore) Put(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = user
}

func (s *SessionStore) Get(token string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[token]
	return user, ok
}

func (s *SessionStore) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, token)
}

// refresh rewrites every snapshot holding the given user so durable and
// session views agree after an update.
func (s *SessionStore) refresh(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, existing := range s.users {
		if existing.ID == user.ID {
			s.users[token] = user
		}
	}
}
