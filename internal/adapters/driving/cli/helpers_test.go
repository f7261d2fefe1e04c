package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/config/file"
	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
)

// stubChat is a canned driving.ChatService.
type stubChat struct {
	turn    driving.Turn
	history domain.History
	err     error
}

func (s *stubChat) Send(_ context.Context, sessionID, _ string, onDelta func(string) error) (driving.Turn, error) {
	if onDelta != nil && s.err == nil {
		_ = onDelta(s.turn.Reply)
	}
	turn := s.turn
	if turn.SessionID == "" {
		turn.SessionID = sessionID
	}
	return turn, s.err
}

func (s *stubChat) History(context.Context, string) (domain.History, error) {
	return s.history, s.err
}

// stubPreview is a canned driving.PreviewService.
type stubPreview struct {
	result domain.PreviewResult
	err    error
}

func (s *stubPreview) Preview(context.Context, string) (domain.PreviewResult, error) {
	return s.result, s.err
}

// stubSessions is a canned driving.SessionService.
type stubSessions struct {
	sessions []domain.Session
	deleted  []string
	err      error
}

func (s *stubSessions) List(context.Context) ([]domain.Session, error) {
	return s.sessions, s.err
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

// stubProjects is a canned driving.ProjectService.
type stubProjects struct {
	project *driven.Project
	files   []domain.ManifestFile
	err     error
}

func (s *stubProjects) Files(context.Context, string, int) (*driven.Project, []domain.ManifestFile, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.project == nil {
		return nil, nil, domain.ErrNotFound
	}
	return s.project, s.files, nil
}

// withServices installs stub services for one test and restores the
// previous wiring afterwards. Tests exercising the projects command
// assign projectService directly after calling this.
func withServices(t *testing.T, chat driving.ChatService, preview driving.PreviewService, sessions driving.SessionService) {
	t.Helper()

	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	prevConfig, prevChat, prevPreview, prevSessions := configStore, chatService, previewService, sessionService
	prevProjects := projectService
	configStore, chatService, previewService, sessionService = cfg, chat, preview, sessions
	projectService = &stubProjects{}
	t.Cleanup(func() {
		configStore, chatService, previewService, sessionService = prevConfig, prevChat, prevPreview, prevSessions
		projectService = prevProjects
	})
}

// execute runs the root command with args and returns captured output.
// Package-level flag variables keep their values between invocations,
// so they are reset to defaults first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	chatSession = ""
	chatNoStream = false
	previewJSON = false
	previewFull = false
	exportFormat = "json"
	exportOutput = ""
	projectsVersion = 0
	projectsJSON = false
	projectsFull = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
