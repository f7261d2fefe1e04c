package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
)

func TestChatCmd_NoStream(t *testing.T) {
	chat := &stubChat{turn: driving.Turn{SessionID: "s-123", Reply: "Here is your component"}}
	withServices(t, chat, &stubPreview{}, &stubSessions{})

	out, err := execute(t, "chat", "--no-stream", "build a button")
	require.NoError(t, err)
	assert.Contains(t, out, "Here is your component")
	assert.Contains(t, out, "session s-123")
}

func TestChatCmd_Error(t *testing.T) {
	chat := &stubChat{err: errors.New("model unreachable")}
	withServices(t, chat, &stubPreview{}, &stubSessions{})

	_, err := execute(t, "chat", "--no-stream", "build a button")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unreachable")
}

func TestChatCmd_RequiresMessage(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	_, err := execute(t, "chat")
	assert.Error(t, err)
}
