package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-paramedit/internal/logx"
	"github.com/goliatone/go-paramedit/pkg/editor"
)

// browserSession is the per-cookie view state. The editor session carries
// the parameter data; materialized is the last dump the user asked for.
type browserSession struct {
	id        string
	csrf      string
	editor    *editor.Session
	expiresAt time.Time

	mu           sync.Mutex
	materialized string
}

func (s *browserSession) setMaterialized(dump string) {
	s.mu.Lock()
	s.materialized = dump
	s.mu.Unlock()
}

func (s *browserSession) materializedDump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materialized
}

type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	items   map[string]*browserSession
	factory func() *editor.Session
	now     func() time.Time
}

func newSessionStore(ttl time.Duration, factory func() *editor.Session) *sessionStore {
	if factory == nil {
		factory = func() *editor.Session { return editor.NewSession() }
	}
	return &sessionStore{
		ttl:     ttl,
		items:   make(map[string]*browserSession),
		factory: factory,
		now:     time.Now,
	}
}

func (s *sessionStore) create(ctx context.Context) (string, *browserSession) {
	token := uuid.NewString()
	entry := &browserSession{
		id:        uuid.NewString()[:8],
		csrf:      uuid.NewString(),
		editor:    s.factory(),
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Lock()
	swept := s.sweepLocked()
	s.items[token] = entry
	s.mu.Unlock()
	logx.WithSession(ctx, entry.id).Info("session created", "expires", entry.expiresAt.Format(time.RFC3339), "swept", swept)
	return token, entry
}

// get returns a live session and slides its expiry forward.
func (s *sessionStore) get(ctx context.Context, token string) (*browserSession, bool) {
	if token == "" {
		return nil, false
	}
	now := s.now()
	s.mu.Lock()
	entry, ok := s.items[token]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if now.After(entry.expiresAt) {
		delete(s.items, token)
		s.mu.Unlock()
		logx.WithSession(ctx, entry.id).Info("session expired")
		return nil, false
	}
	entry.expiresAt = now.Add(s.ttl)
	s.mu.Unlock()
	return entry, true
}

// sweepLocked drops expired sessions and reports how many were removed.
// Callers hold s.mu.
func (s *sessionStore) sweepLocked() int {
	now := s.now()
	removed := 0
	for token, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, token)
			removed++
		}
	}
	return removed
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
