package domain

import "time"

// Role identifies the author of a chat message.
type Role string

// Message roles. The model side is "model" rather than "assistant"
// to match the wire format of the Gemini generateContent API.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Message is one role-tagged chat message.
// A message is immutable once appended to a history; a model message
// that is still streaming grows only by whole-history replacement,
// never by in-place mutation.
type Message struct {
	// Role is the author of the message.
	Role Role

	// Content is the message text. For a model message this may be a
	// partial prefix of the final text while a stream is in flight.
	Content string

	// CreatedAt is when the message was first stored.
	CreatedAt time.Time
}

// History is the ordered message sequence of one session.
// Index order is arrival order.
type History []Message

// Clone returns a deep copy of the history. Messages hold only value
// fields, so a slice copy is a full copy.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// LastModel returns the most recent model-authored message and true,
// or a zero Message and false when none exists.
func (h History) LastModel() (Message, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Role == RoleModel {
			return h[i], true
		}
	}
	return Message{}, false
}

// TailModel returns up to n trailing model-authored messages in
// arrival order (most recent last). Used to reconstruct a response
// that was split across a turn limit.
func (h History) TailModel(n int) []Message {
	if n <= 0 {
		return nil
	}
	var out []Message
	for i := len(h) - 1; i >= 0 && len(out) < n; i-- {
		if h[i].Role == RoleModel {
			out = append(out, h[i])
		}
	}
	// Collected newest-first; reverse to arrival order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Session describes a stored chat session.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// Title is a human-readable label, derived from the first user
	// message when not set explicitly.
	Title string

	// MessageCount is the number of durably stored messages.
	MessageCount int

	// CreatedAt is when the session was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the session last received a message.
	UpdatedAt time.Time
}
