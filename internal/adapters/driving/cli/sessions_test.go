package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

func TestSessionsListCmd(t *testing.T) {
	sessions := &stubSessions{sessions: []domain.Session{
		{ID: "s-1", MessageCount: 4, UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "s-2", MessageCount: 2, UpdatedAt: time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)},
	}}
	withServices(t, &stubChat{}, &stubPreview{}, sessions)

	out, err := execute(t, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "s-1")
	assert.Contains(t, out, "s-2")
	assert.Contains(t, out, "MESSAGES")
}

func TestSessionsListCmd_Empty(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	out, err := execute(t, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet")
}

func TestSessionsDeleteCmd(t *testing.T) {
	sessions := &stubSessions{}
	withServices(t, &stubChat{}, &stubPreview{}, sessions)

	out, err := execute(t, "sessions", "delete", "s-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted session s-1")
	assert.Equal(t, []string{"s-1"}, sessions.deleted)
}
