package driving

import (
	"context"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

// ProjectService reads back the generated projects persisted from chat
// turns.
type ProjectService interface {
	// Files returns a session's project together with the files of one
	// version. Version 0 means the project's current version.
	Files(ctx context.Context, sessionID string, version int) (*driven.Project, []domain.ManifestFile, error)
}
