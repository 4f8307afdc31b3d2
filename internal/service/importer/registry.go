package importer

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/google/uuid"
)

// Registry keeps import sessions in memory until they go idle for longer
// than the TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
	}
}

// Create registers a new session at the upload step.
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.now())

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	activeSessions.Inc()
	return s
}

// Get returns a live session. Expired sessions are dropped on access.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, importer.ErrSessionNotFound
	}
	if r.expired(s) {
		r.remove(id)
		return nil, importer.ErrSessionNotFound
	}
	return s, nil
}

// With runs fn while holding the session lock and marks the session active.
func (r *Registry) With(id string, fn func(s *Session) error) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.touch(r.now()) }()
	return fn(s)
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return importer.ErrSessionNotFound
	}
	r.remove(id)
	return nil
}

// ExpireIdle drops every session idle for longer than the TTL.
func (r *Registry) ExpireIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			r.remove(id)
			n++
		}
	}
	return n
}

func (r *Registry) ExpiresAt(s *Session) time.Time {
	return s.LastActive().Add(r.ttl)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(s *Session) bool {
	return r.ttl > 0 && r.now().After(r.ExpiresAt(s))
}

// remove must be called with r.mu held.
func (r *Registry) remove(id string) {
	delete(r.sessions, id)
	activeSessions.Dec()
}
