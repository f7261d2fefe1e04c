package driven

import "github.com/atelier-labs/forgeview-cli/internal/core/domain"

// SessionCache holds the in-memory history of active sessions.
// It is the only shared mutable state in the core, and it is mutated
// exclusively through whole-snapshot replacement so that a concurrent
// reader never observes a torn write.
//
// Implementations must guarantee:
//   - Snapshot returns a copy; callers may mutate it freely.
//   - Replace is a single atomic swap of the whole history. During a
//     streaming turn, successive Replace calls carry a final model
//     message with strictly growing content; an interleaved Snapshot
//     must yield a history whose last message is one of those
//     snapshots, never a mix of two.
//   - Writes for one session id are serialized.
type SessionCache interface {
	// Append adds one message to the session, preserving arrival order.
	// The session is created if absent.
	Append(sessionID string, msg domain.Message) error

	// Snapshot returns a copy of the current history, or nil when the
	// session is not in memory. Absence is not an error: the caller is
	// responsible for rehydrating from durable storage via Replace.
	Snapshot(sessionID string) (domain.History, error)

	// Replace atomically overwrites the stored history for a session.
	// Used for streaming progress snapshots and for rehydration.
	Replace(sessionID string, history domain.History) error

	// Delete removes a session from memory.
	Delete(sessionID string)
}
