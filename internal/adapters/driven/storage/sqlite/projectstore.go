package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

// projectStore implements driven.ProjectStore.
type projectStore struct {
	store *Store
}

var _ driven.ProjectStore = (*projectStore)(nil)

// GetProjectBySession returns the project for a session.
func (s *projectStore) GetProjectBySession(ctx context.Context, sessionID string) (*driven.Project, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, session_id, name, description, current_version
		FROM projects
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, sessionID)

	var p driven.Project
	err := row.Scan(&p.ID, &p.SessionID, &p.Name, &p.Description, &p.CurrentVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &p, nil
}

// CreateProject stores a new project record.
func (s *projectStore) CreateProject(ctx context.Context, p *driven.Project) error {
	now := time.Now().UTC()
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO projects (id, session_id, name, description, current_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, p.ID, p.SessionID, p.Name, p.Description, now, now)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// AddVersion records a new generation turn and returns the new
// version number. The version counter lives on the project row so
// concurrent writers cannot hand out the same number.
func (s *projectStore) AddVersion(ctx context.Context, projectID, prompt, generatedCode string) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	row := tx.QueryRowContext(ctx, `
		UPDATE projects
		SET current_version = current_version + 1, updated_at = ?
		WHERE id = ?
		RETURNING current_version
	`, now, projectID)

	var version int
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("bumping project version: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO project_versions (project_id, version, prompt, generated_code, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, projectID, version, prompt, generatedCode, now)
	if err != nil {
		return 0, fmt.Errorf("inserting project version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing version: %w", err)
	}
	return version, nil
}

// SaveFiles stores the manifest files for a project version.
func (s *projectStore) SaveFiles(ctx context.Context, projectID string, version int, files []domain.ManifestFile) error {
	if len(files) == 0 {
		return nil
	}
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_files (project_id, version, path, content, description)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(project_id, version, path) DO UPDATE SET
				content = excluded.content,
				description = excluded.description
		`, projectID, version, f.Path, f.Content, f.Description)
		if err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing files: %w", err)
	}
	return nil
}

// GetFiles returns the files of a project version. Version 0 means
// the current version.
func (s *projectStore) GetFiles(ctx context.Context, projectID string, version int) ([]domain.ManifestFile, error) {
	if version == 0 {
		row := s.store.db.QueryRowContext(ctx, "SELECT current_version FROM projects WHERE id = ?", projectID)
		if err := row.Scan(&version); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("resolving current version: %w", err)
		}
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, content, description
		FROM project_files
		WHERE project_id = ? AND version = ?
		ORDER BY path ASC
	`, projectID, version)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []domain.ManifestFile
	for rows.Next() {
		var f domain.ManifestFile
		if err := rows.Scan(&f.Path, &f.Content, &f.Description); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return files, nil
}
