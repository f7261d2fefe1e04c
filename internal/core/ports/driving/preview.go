package driving

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// PreviewService turns a session's model output into renderable units.
type PreviewService interface {
	// Preview assembles the ordered preview units for a session.
	// An empty result is a normal outcome, not an error.
	Preview(ctx context.Context, sessionID string) (domain.PreviewResult, error)
}

// SessionService manages stored sessions.
type SessionService interface {
	// List returns stored sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes a session from memory and durable storage.
	Delete(ctx context.Context, sessionID string) error
}
