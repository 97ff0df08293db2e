package rps

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default session store when no Redis is configured.
// A janitor tick sweeps expired entries when a TTL is set; Get and Take
// also check expiry so a stale entry never leaks out between sweeps.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memEntry
	ttl      time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

type memEntry struct {
	session   Session
	expiresAt time.Time // zero means no expiry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memEntry),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidArgs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sess.ID]; ok && !expired(e, time.Now()) {
		return ErrDuplicateSession
	}
	e := memEntry{session: *sess}
	if s.ttl > 0 {
		e.expiresAt = time.Now().Add(s.ttl)
	}
	s.sessions[sess.ID] = e
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || expired(e, time.Now()) {
		return nil, ErrSessionNotFound
	}
	out := e.session
	return &out, nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || expired(e, time.Now()) {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, id)
	out := e.session
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.sessions {
		if !expired(e, now) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

func (s *MemoryStore) janitor() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-tick.C:
			s.mu.Lock()
			for id, e := range s.sessions {
				if expired(e, now) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func expired(e memEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
