package memory

import (
	"sync"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

// Ensure SessionCache implements the interface.
var _ driven.SessionCache = (*SessionCache)(nil)

// SessionCache is the in-memory implementation of driven.SessionCache.
// All mutation happens under the write lock and replaces the stored
// slice wholesale, so a Snapshot taken under the read lock always sees
// a complete history and never a partially written one.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]domain.History
}

// NewSessionCache creates a new in-memory session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		sessions: make(map[string]domain.History),
	}
}

// Append adds one message to a session, creating it if absent.
func (c *SessionCache) Append(sessionID string, msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.sessions[sessionID]
	next := make(domain.History, len(old), len(old)+1)
	copy(next, old)
	c.sessions[sessionID] = append(next, msg)
	return nil
}

// Snapshot returns a copy of the session history, or nil when the
// session is not in memory.
func (c *SessionCache) Snapshot(sessionID string) (domain.History, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	history, ok := c.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return history.Clone(), nil
}

// Replace atomically swaps the stored history for a session.
func (c *SessionCache) Replace(sessionID string, history domain.History) error {
	clone := history.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = clone
	return nil
}

// Delete removes a session from memory.
func (c *SessionCache) Delete(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}
