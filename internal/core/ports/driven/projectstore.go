package driven

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// Project describes a persisted generated project.
type Project struct {
	// ID is the unique project identifier.
	ID string

	// SessionID links the project to the chat session that produced it.
	SessionID string

	// Name is a human-readable label derived from the prompt.
	Name string

	// Description summarises what was generated.
	Description string

	// CurrentVersion is the latest stored version number, starting at 1.
	CurrentVersion int
}

// ProjectStore persists multi-file projects extracted from model
// responses, versioned per generation turn.
// This is an optional service - when nil, manifest persistence is
// skipped and previews still work from the session history alone.
type ProjectStore interface {
	// GetProjectBySession returns the project for a session, or
	// domain.ErrNotFound when none exists.
	GetProjectBySession(ctx context.Context, sessionID string) (*Project, error)

	// CreateProject stores a new project record with no versions yet;
	// generation turns are recorded with AddVersion.
	CreateProject(ctx context.Context, p *Project) error

	// AddVersion records a new generation turn for a project and
	// returns the new version number.
	AddVersion(ctx context.Context, projectID, prompt, generatedCode string) (int, error)

	// SaveFiles stores the manifest files for a project version.
	SaveFiles(ctx context.Context, projectID string, version int, files []domain.ManifestFile) error

	// GetFiles returns the files of a project version. Version 0 means
	// the current version.
	GetFiles(ctx context.Context, projectID string, version int) ([]domain.ManifestFile, error)
}
