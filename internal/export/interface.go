// Package export renders a session transcript in interchange formats
// so conversations can be archived or fed into other tooling.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// Transcript is the exportable view of one session.
type Transcript struct {
	SessionID string    `json:"sessionId" yaml:"sessionId"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Exported  time.Time `json:"exportedAt" yaml:"exportedAt"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// Message is one transcript entry.
type Message struct {
	Role      string    `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewTranscript builds a transcript from a session history.
func NewTranscript(sessionID, title string, history domain.History) *Transcript {
	messages := make([]Message, len(history))
	for i, m := range history {
		messages[i] = Message{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return &Transcript{
		SessionID: sessionID,
		Title:     title,
		Exported:  time.Now().UTC(),
		Messages:  messages,
	}
}

// Exporter defines the interface for all export formats.
type Exporter interface {
	Export(t *Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, markdown)", format)
	}
}
