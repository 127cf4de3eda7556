package storage

import (
	"cmp"
	"slices"
	"sync"

	"github.com/BISU-Projects/bamboo/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.RecognitionSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.RecognitionSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.RecognitionSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.RecognitionSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns all sessions, newest first
func (s *SessionStore) List() []*models.RecognitionSession {
	s.mu.RLock()
	list := make([]*models.RecognitionSession, 0, len(s.sessions))
	for _, v := range s.sessions {
		list = append(list, v)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *models.RecognitionSession) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return list
}

// Delete removes a session and reports whether it existed
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}

