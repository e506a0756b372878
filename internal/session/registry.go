// Package session keeps the in-memory logins of the running process.
//
// A Session binds a connection identity (one window, one CLI run) to the
// account's derived document secret and its cached streak stats. Sessions
// are never persisted.
package session

import (
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
)

// Session is an active login.
type Session struct {
	Username       string
	DocumentSecret string
	Stats          streak.Stats
}

// Registry maps connection identities to sessions. It is safe for concurrent
// use; every map operation holds the registry lock.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	iterations int
}

// NewRegistry creates an empty registry deriving document secrets with the
// given PBKDF2 iteration count (cryptox.DocumentSecretIterations in production).
func NewRegistry(iterations int) *Registry {
	return &Registry{
		sessions:   make(map[string]*Session),
		iterations: iterations,
	}
}

// Open derives the document secret for username/password and stores a new
// session under connID, replacing any previous one. The returned value is a
// copy.
//
// Open does not check the password; callers authenticate first.
func (r *Registry) Open(connID, username string, password []byte, stats streak.Stats) Session {
	s := &Session{
		Username:       common.NormalizeUsername(username),
		DocumentSecret: cryptox.DocumentSecret(common.NormalizeUsername(username), password, r.iterations),
		Stats:          stats,
	}

	r.mu.Lock()
	r.sessions[connID] = s
	r.mu.Unlock()

	return *s
}

// Get returns a copy of the session for connID.
func (r *Registry) Get(connID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[connID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// UpdateStats replaces the cached stats of an existing session. It reports
// false and does nothing when connID has no session.
func (r *Registry) UpdateStats(connID string, stats streak.Stats) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.Stats = stats
	return true
}

// Close removes the session for connID, if any.
func (r *Registry) Close(connID string) {
	r.mu.Lock()
	delete(r.sessions, connID)
	r.mu.Unlock()
}

// CloseAll drops every session. Hosts call it when their window closes.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
