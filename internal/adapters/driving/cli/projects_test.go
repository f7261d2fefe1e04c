package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

func projectStub() *stubProjects {
	return &stubProjects{
		project: &driven.Project{ID: "p1", SessionID: "s-123", Name: "landing page", CurrentVersion: 2},
		files: []domain.ManifestFile{
			{Path: "app/page.tsx", Content: "export default function Home() {}", Description: "Home page"},
			{Path: "components/Button.tsx", Content: "export function Button() {}"},
		},
	}
}

func TestProjectsFilesCmd_Summary(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})
	projectService = projectStub()

	out, err := execute(t, "projects", "files", "s-123")
	require.NoError(t, err)
	assert.Contains(t, out, "landing page")
	assert.Contains(t, out, "version 2, 2 files")
	assert.Contains(t, out, "app/page.tsx")
	assert.Contains(t, out, "Home page")
	assert.Contains(t, out, "components/Button.tsx")
	// Contents only shown with --full
	assert.NotContains(t, out, "export default function Home() {}")
}

func TestProjectsFilesCmd_Full(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})
	projectService = projectStub()

	out, err := execute(t, "projects", "files", "--full", "s-123")
	require.NoError(t, err)
	assert.Contains(t, out, "export default function Home() {}")
}

func TestProjectsFilesCmd_JSON(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})
	projectService = projectStub()

	out, err := execute(t, "projects", "files", "--json", "s-123")
	require.NoError(t, err)

	var decoded []domain.ManifestFile
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "app/page.tsx", decoded[0].Path)
}

func TestProjectsFilesCmd_NoProject(t *testing.T) {
	withServices(t, &stubChat{}, &stubPreview{}, &stubSessions{})

	out, err := execute(t, "projects", "files", "s-123")
	require.NoError(t, err)
	assert.Contains(t, out, "No generated project")
}
