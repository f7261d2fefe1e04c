package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

func TestNewPromptStore_NoImmediateIO(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	// Construction is lazy: nothing written yet
	assert.NoDirExists(t, dir)
}

func TestPromptStore_Load_CreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)
	assert.Contains(t, prompt, "JSON manifest")

	assert.FileExists(t, filepath.Join(dir, "builder_system.txt"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestPromptStore_Load_UserEditWins(t *testing.T) {
	dir := t.TempDir()
	custom := "You build terminal dashboards only."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "builder_system.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStore_Reload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)

	edited := "Edited prompt."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "builder_system.txt"), []byte(edited), 0600))

	// Cached until reloaded
	cached, err := store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}

func TestPromptStore_Watch_ClearsCacheOnEdit(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptBuilderSystem)
	require.NoError(t, err)

	require.NoError(t, store.Watch())
	defer store.Close()

	edited := "Watched edit."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "builder_system.txt"), []byte(edited), 0600))

	// The watcher delivers asynchronously
	require.Eventually(t, func() bool {
		fresh, err := store.Load(driven.PromptBuilderSystem)
		return err == nil && fresh == edited
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPromptStore_Close_WithoutWatch(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
