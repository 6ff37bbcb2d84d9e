package handlers

import (
	"net/http"
	"sync"
	"time"

	"spellquiz/internal/quiz"
	"spellquiz/internal/security"
)

const sessionLifetime = 24 * time.Hour

// Registry maps browser session IDs to quiz sessions. Sessions live
// in memory only; restarting the server starts everyone back at the
// menu.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	factory  func() *quiz.Session
}

type sessionEntry struct {
	session  *quiz.Session
	lastSeen time.Time
}

// NewRegistry creates a registry that builds fresh sessions with factory.
func NewRegistry(factory func() *quiz.Session) *Registry {
	return &Registry{
		sessions: make(map[string]*sessionEntry),
		factory:  factory,
	}
}

// Get returns the quiz session for the request's browser, creating a
// session and setting the cookie on first contact.
func (reg *Registry) Get(w http.ResponseWriter, r *http.Request) *quiz.Session {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
		if entry, ok := reg.sessions[cookie.Value]; ok {
			entry.lastSeen = time.Now()
			return entry.session
		}
	}

	id := security.GenerateSessionID()
	session := reg.factory()
	reg.sessions[id] = &sessionEntry{session: session, lastSeen: time.Now()}
	http.SetCookie(w, security.CreateSessionCookie(r, id, time.Now().Add(sessionLifetime)))
	return session
}

// CleanupExpired drops sessions idle for longer than the session
// lifetime. Run periodically from the server's background loop.
func (reg *Registry) CleanupExpired() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-sessionLifetime)
	for id, entry := range reg.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(reg.sessions, id)
			removed++
		}
	}
	return removed
}
