package services

import (
	"context"
	"sync"

	"investhub/internal/core/domain"
)

// SessionStore fans auth session changes out to subscribers and keeps the
// latest session so late checkers can resolve it synchronously. The auth
// service publishes into it; the gate subscribes.
type SessionStore struct {
	mu      sync.RWMutex
	current *domain.Session
	subs    map[int]chan domain.SessionEvent
	nextID  int
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		subs: map[int]chan domain.SessionEvent{},
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener stops draining, otherwise publishers drop its events.
// The channel is never closed: Publish sends outside the lock, so closing
// here could panic a publisher holding a stale snapshot. A cancelled
// subscriber simply stops receiving and exits via its own context.
func (s *SessionStore) Subscribe() (<-chan domain.SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan domain.SessionEvent, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

// Publish records the session change and notifies every subscriber. A
// subscriber that stopped draining loses the event rather than blocking
// the publisher.
func (s *SessionStore) Publish(evt domain.SessionEvent) {
	s.mu.Lock()
	switch evt.Type {
	case domain.EventSignedIn:
		s.current = evt.Session
	case domain.EventSignedOut:
		s.current = nil
	}
	subs := make([]chan domain.SessionEvent, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Current returns the latest known session, nil when signed out
func (s *SessionStore) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}
