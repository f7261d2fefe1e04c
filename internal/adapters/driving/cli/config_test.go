package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

func TestConfigSetAndShow(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	out, err := execute(t, "config", "set", "llm.provider", "ollama")
	require.NoError(t, err)
	assert.Contains(t, out, "Set llm.provider = ollama")

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "llm.provider = ollama")
	assert.Contains(t, out, "llm.model = (not set)")
}

func TestConfigSet_IntegerValue(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	_, err := execute(t, "config", "set", driven.ConfigChatTokenBudget, "8000")
	require.NoError(t, err)

	assert.Equal(t, 8000, configStore.GetInt(driven.ConfigChatTokenBudget))
}

func TestConfigShow_MasksAPIKey(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	_, err := execute(t, "config", "set", driven.ConfigLLMAPIKey, "sk-verysecretkey12345")
	require.NoError(t, err)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-verysecretkey12345")
	assert.Contains(t, out, "sk-v")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "********", maskAPIKey("short123"))
	assert.Equal(t, "sk-1********6789", maskAPIKey("sk-1234512346789"))
	assert.Equal(t, "", maskAPIKey(""))
}
