package driven

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// ModelProvider generates model responses from a conversation.
// The core treats a complete response and an incrementally delivered
// stream uniformly as "the text of a model message, possibly still
// growing".
//
// Implementations may include:
//   - Gemini (generateContent / streamGenerateContent)
//   - Ollama (local models, NDJSON streaming)
type ModelProvider interface {
	// Chat returns the complete response for the given history.
	// The system instruction is passed separately from the messages.
	Chat(ctx context.Context, system string, history []domain.Message, opts ChatOptions) (string, error)

	// ChatStream delivers the response incrementally. onDelta is called
	// for each text fragment in arrival order; returning an error from
	// onDelta aborts the stream. The accumulated full text is returned
	// even when the stream ends early, so callers can keep the partial
	// content as a best-effort snapshot.
	ChatStream(ctx context.Context, system string, history []domain.Message, opts ChatOptions, onDelta func(delta string) error) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the provider is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures response generation.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
