package driving

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// Turn is the outcome of one chat exchange.
type Turn struct {
	// SessionID identifies the session the turn belongs to. For a new
	// conversation this is the freshly assigned id.
	SessionID string

	// Reply is the complete model response text.
	Reply string
}

// ChatService conducts the code-building conversation.
type ChatService interface {
	// Send submits one user message and returns the model's reply.
	// When onDelta is non-nil the reply is streamed through it fragment
	// by fragment before the completed Turn is returned. An empty
	// sessionID starts a new session.
	Send(ctx context.Context, sessionID, text string, onDelta func(delta string) error) (Turn, error)

	// History returns a snapshot of the session's messages,
	// rehydrating from durable storage when memory is cold.
	History(ctx context.Context, sessionID string) (domain.History, error)
}
