package services

import (
	"context"
	"fmt"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService reads back the projects the chat service persists
// from generation turns.
type ProjectService struct {
	projects driven.ProjectStore
}

// NewProjectService creates a new project service.
func NewProjectService(projects driven.ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// Files returns a session's project and one version's files. Version 0
// resolves to the project's current version.
func (s *ProjectService) Files(ctx context.Context, sessionID string, version int) (*driven.Project, []domain.ManifestFile, error) {
	if sessionID == "" {
		return nil, nil, domain.ErrInvalidSession
	}
	project, err := s.projects.GetProjectBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load project: %w", err)
	}
	files, err := s.projects.GetFiles(ctx, project.ID, version)
	if err != nil {
		return nil, nil, fmt.Errorf("load project files: %w", err)
	}
	return project, files, nil
}
