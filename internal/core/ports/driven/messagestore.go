package driven

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// MessageStore durably persists completed chat turns.
// Backed by SQLite. The core depends on nothing beyond this contract:
// it rehydrates the SessionCache from LoadMessages and persists each
// finished message with AppendMessage.
type MessageStore interface {
	// LoadMessages returns the ordered messages of a session.
	// An unknown session yields an empty slice, not an error.
	LoadMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// AppendMessage durably appends one message to a session,
	// creating the session record if absent.
	AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) error

	// ListSessions returns stored sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// DeleteSession removes a session and its messages.
	DeleteSession(ctx context.Context, sessionID string) error
}
