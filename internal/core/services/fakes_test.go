package services

import (
	"context"
	"sync"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

// fakeCache is a minimal SessionCache for service tests.
type fakeCache struct {
	mu       sync.Mutex
	sessions map[string]domain.History
}

func newFakeCache() *fakeCache {
	return &fakeCache{sessions: make(map[string]domain.History)}
}

func (c *fakeCache) Append(sessionID string, msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = append(c.sessions[sessionID], msg)
	return nil
}

func (c *fakeCache) Snapshot(sessionID string) (domain.History, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return h.Clone(), nil
}

func (c *fakeCache) Replace(sessionID string, history domain.History) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = history.Clone()
	return nil
}

func (c *fakeCache) Delete(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, sessionID)
}

// fakeStore is an in-memory MessageStore.
type fakeStore struct {
	mu        sync.Mutex
	messages  map[string][]domain.Message
	order     []string
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{messages: make(map[string][]domain.Message)}
}

func (s *fakeStore) LoadMessages(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages[sessionID]))
	copy(out, s.messages[sessionID])
	return out, nil
}

func (s *fakeStore) AppendMessage(_ context.Context, sessionID string, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	if _, ok := s.messages[sessionID]; !ok {
		s.order = append(s.order, sessionID)
	}
	s.messages[sessionID] = append(s.messages[sessionID], domain.Message{Role: role, Content: content})
	return nil
}

func (s *fakeStore) ListSessions(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, domain.Session{ID: id, MessageCount: len(s.messages[id])})
	}
	return out, nil
}

func (s *fakeStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, sessionID)
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeModel returns a canned reply, optionally as a sequence of
// streaming deltas.
type fakeModel struct {
	reply      string
	deltas     []string
	streamErr  error
	lastSystem string
	lastWindow []domain.Message
}

func (m *fakeModel) Chat(_ context.Context, system string, history []domain.Message, _ driven.ChatOptions) (string, error) {
	m.lastSystem = system
	m.lastWindow = history
	return m.reply, nil
}

func (m *fakeModel) ChatStream(_ context.Context, system string, history []domain.Message, _ driven.ChatOptions, onDelta func(string) error) (string, error) {
	m.lastSystem = system
	m.lastWindow = history
	var full string
	deltas := m.deltas
	if len(deltas) == 0 {
		deltas = []string{m.reply}
	}
	for _, d := range deltas {
		if err := onDelta(d); err != nil {
			return full, err
		}
		full += d
	}
	if m.streamErr != nil {
		return full, m.streamErr
	}
	return full, nil
}

func (m *fakeModel) ModelName() string { return "fake-model" }

func (m *fakeModel) Ping(context.Context) error { return nil }

func (m *fakeModel) Close() error { return nil }

// fakeProjects records ProjectStore calls.
type fakeProjects struct {
	mu       sync.Mutex
	projects map[string]*driven.Project
	versions map[string]int
	files    map[string][]domain.ManifestFile
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{
		projects: make(map[string]*driven.Project),
		versions: make(map[string]int),
		files:    make(map[string][]domain.ManifestFile),
	}
}

func (p *fakeProjects) GetProjectBySession(_ context.Context, sessionID string) (*driven.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, proj := range p.projects {
		if proj.SessionID == sessionID {
			return proj, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *fakeProjects) CreateProject(_ context.Context, proj *driven.Project) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.projects[proj.ID] = proj
	return nil
}

func (p *fakeProjects) AddVersion(_ context.Context, projectID, _, _ string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.versions[projectID]++
	return p.versions[projectID], nil
}

func (p *fakeProjects) SaveFiles(_ context.Context, projectID string, version int, files []domain.ManifestFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[projectID] = files
	return nil
}

func (p *fakeProjects) GetFiles(_ context.Context, projectID string, _ int) ([]domain.ManifestFile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.files[projectID], nil
}
