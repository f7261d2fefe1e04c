package services

import (
	"context"
	"fmt"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService manages stored sessions.
type SessionService struct {
	cache driven.SessionCache
	store driven.MessageStore
}

// NewSessionService creates a new session service.
func NewSessionService(cache driven.SessionCache, store driven.MessageStore) *SessionService {
	return &SessionService{cache: cache, store: store}
}

// List returns stored sessions, most recently updated first.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Delete removes a session from memory and durable storage.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidSession
	}
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.cache.Delete(sessionID)
	return nil
}
