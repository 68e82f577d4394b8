package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTokenTaken is returned by Insert when the token is already live
	ErrTokenTaken = errors.New("session token already in use")
	// ErrRegistryFull is returned when the store holds its maximum number of sessions
	ErrRegistryFull = errors.New("session registry full")
)

// Store defines the interface for session storage operations.
// Implementations must be safe for concurrent use.
type Store interface {
	// Insert stores s under s.Token. limit <= 0 means unbounded.
	Insert(s Session, limit int) error
	Get(token string) (Session, bool)
	// Delete is idempotent
	Delete(token string)
	DeleteExpired(now time.Time) int
	Len() int
}

// MemoryStore is a process-local Store guarded by a read/write mutex
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Insert(sess Session, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.Token]; ok {
		return ErrTokenTaken
	}
	if limit > 0 && len(s.sessions) >= limit {
		return ErrRegistryFull
	}
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemoryStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

func (s *MemoryStore) DeleteExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// RunSweeper purges expired sessions from store every interval until ctx is
// done. It returns immediately when interval is not positive.
func RunSweeper(ctx context.Context, store Store, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := store.DeleteExpired(now)
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
