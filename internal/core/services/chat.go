package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
	"github.com/atelier-labs/forgeview-cli/internal/extract"
	"github.com/atelier-labs/forgeview-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatConfig holds tunables for the chat service.
type ChatConfig struct {
	// TokenBudget caps the estimated prompt tokens sent to the model.
	TokenBudget int

	// MaxMessages caps how many trailing messages are sent as context.
	MaxMessages int

	// RatePerHour limits messages per session per hour (0 = unlimited).
	RatePerHour int

	// FlushEvery is the number of stream deltas between cache
	// snapshots of the growing model message.
	FlushEvery int
}

// Default tunables, matching the context window and snapshot cadence
// the system was designed against.
const (
	DefaultTokenBudget = 16000
	DefaultMaxMessages = 10
	DefaultFlushEvery  = 10
)

// defaultBuilderPrompt is the fallback system instruction when no
// PromptStore is configured. It fixes the one structural contract the
// extraction pipeline depends on: full applications arrive as a JSON
// manifest with a "type" tag and a "files" array.
const defaultBuilderPrompt = `You are an expert full-stack developer assistant. You build complete, production-ready applications with React, Next.js and Tailwind CSS.

Detect whether the user wants a full application or a single component.

For FULL APPLICATIONS, respond with exactly one JSON manifest in a fenced json block:

{
  "type": "fullstack",
  "files": [
    {"path": "app/page.tsx", "content": "// complete code", "description": "Main page"}
  ],
  "explanation": "Brief architecture explanation",
  "dependencies": ["package-name"]
}

Pages live under app/ (app/page.tsx, app/about/page.tsx), API routes under app/api/. Write complete working code with no placeholders. The preview runs standalone in a browser: inline every custom component, avoid TypeScript annotations, and import nothing except lucide-react icons.

For SIMPLE COMPONENTS, respond with one self-contained React component in a fenced code block. Tailwind for styling, lucide-react for icons, responsive and accessible.`

// ChatService conducts the code-building conversation: it owns the
// session lifecycle, streams model output into the session cache via
// atomic snapshot replacement, and persists completed turns.
type ChatService struct {
	model    driven.ModelProvider
	cache    driven.SessionCache
	store    driven.MessageStore
	projects driven.ProjectStore
	prompts  driven.PromptStore
	cfg      ChatConfig

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewChatService creates a new chat service. The projects parameter is
// optional (can be nil); manifest persistence is skipped without it.
func NewChatService(
	model driven.ModelProvider,
	cache driven.SessionCache,
	store driven.MessageStore,
	projects driven.ProjectStore,
	cfg ChatConfig,
) *ChatService {
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = DefaultTokenBudget
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = DefaultFlushEvery
	}
	return &ChatService{
		model:    model,
		cache:    cache,
		store:    store,
		projects: projects,
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the hardcoded default prompt.
func (s *ChatService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Send submits one user message and returns the model's reply.
func (s *ChatService) Send(ctx context.Context, sessionID, text string, onDelta func(string) error) (driving.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return driving.Turn{}, fmt.Errorf("empty message: %w", domain.ErrInvalidInput)
	}
	if s.model == nil {
		return driving.Turn{}, domain.ErrModelUnavailable
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Debug("Starting new session %s", sessionID)
	} else if err := s.hydrate(ctx, sessionID); err != nil {
		return driving.Turn{}, err
	}

	if !s.allow(sessionID) {
		return driving.Turn{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrRateLimited)
	}

	userMsg := domain.Message{Role: domain.RoleUser, Content: text, CreatedAt: time.Now()}
	if err := s.cache.Append(sessionID, userMsg); err != nil {
		return driving.Turn{}, fmt.Errorf("append user message: %w", err)
	}
	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, text); err != nil {
		return driving.Turn{}, fmt.Errorf("persist user message: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}

	base, err := s.cache.Snapshot(sessionID)
	if err != nil {
		return driving.Turn{}, fmt.Errorf("snapshot session: %w", err)
	}
	window := windowHistory(base, s.cfg.TokenBudget, s.cfg.MaxMessages)
	logger.Debug("Sending %d of %d messages to %s", len(window), len(base), s.model.ModelName())

	reply, streamErr := s.generate(ctx, sessionID, base, window, onDelta)
	if reply == "" && streamErr != nil {
		return driving.Turn{}, streamErr
	}

	// A partial reply from an interrupted stream is kept as-is: the
	// accumulated snapshot is durable enough, and no rollback happens.
	modelMsg := domain.Message{Role: domain.RoleModel, Content: reply, CreatedAt: time.Now()}
	if err := s.cache.Replace(sessionID, append(base.Clone(), modelMsg)); err != nil {
		return driving.Turn{}, fmt.Errorf("store model message: %w", err)
	}
	if err := s.store.AppendMessage(ctx, sessionID, domain.RoleModel, reply); err != nil {
		return driving.Turn{}, fmt.Errorf("persist model message: %w", errors.Join(domain.ErrStoreUnavailable, err))
	}

	s.persistManifest(ctx, sessionID, text, reply)

	return driving.Turn{SessionID: sessionID, Reply: reply}, streamErr
}

// generate runs one model call, streaming when onDelta is set. During
// streaming the cache history is periodically replaced with a snapshot
// whose last element is the growing model message, so a concurrent
// preview request sees best-effort partial content.
func (s *ChatService) generate(
	ctx context.Context,
	sessionID string,
	base domain.History,
	window []domain.Message,
	onDelta func(string) error,
) (string, error) {
	system := s.loadPrompt()
	opts := driven.ChatOptions{Temperature: 0.7}

	if onDelta == nil {
		reply, err := s.model.Chat(ctx, system, window, opts)
		if err != nil {
			return "", fmt.Errorf("model chat: %w", err)
		}
		return reply, nil
	}

	var full strings.Builder
	sinceFlush := 0
	reply, err := s.model.ChatStream(ctx, system, window, opts, func(delta string) error {
		full.WriteString(delta)
		if err := onDelta(delta); err != nil {
			return err
		}
		sinceFlush++
		if sinceFlush >= s.cfg.FlushEvery {
			sinceFlush = 0
			partial := domain.Message{Role: domain.RoleModel, Content: full.String(), CreatedAt: time.Now()}
			if err := s.cache.Replace(sessionID, append(base.Clone(), partial)); err != nil {
				logger.Warn("Streaming snapshot failed: %v", err)
			}
		}
		return nil
	})
	if err != nil {
		// Keep whatever arrived before the interruption.
		if reply == "" {
			reply = full.String()
		}
		return reply, fmt.Errorf("model stream: %w", err)
	}
	return reply, nil
}

// History returns a snapshot of the session's messages.
func (s *ChatService) History(ctx context.Context, sessionID string) (domain.History, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidSession
	}
	if err := s.hydrate(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.cache.Snapshot(sessionID)
}

// hydrate repopulates the session cache from durable storage when the
// in-memory history is empty. Durable storage is authoritative after a
// restart; history is never fabricated when it cannot be read.
func (s *ChatService) hydrate(ctx context.Context, sessionID string) error {
	snap, err := s.cache.Snapshot(sessionID)
	if err != nil {
		return fmt.Errorf("snapshot session: %w", err)
	}
	if len(snap) > 0 {
		return nil
	}

	stored, err := s.store.LoadMessages(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("rehydrate session %s: %w", sessionID, errors.Join(domain.ErrStoreUnavailable, err))
	}
	if len(stored) == 0 {
		return nil
	}
	logger.Debug("Rehydrated %d messages for session %s", len(stored), sessionID)
	return s.cache.Replace(sessionID, stored)
}

// allow checks the per-session rate limit.
func (s *ChatService) allow(sessionID string) bool {
	if s.cfg.RatePerHour <= 0 {
		return true
	}
	s.mu.Lock()
	lim, ok := s.limiters[sessionID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Hour/time.Duration(s.cfg.RatePerHour)), s.cfg.RatePerHour)
		s.limiters[sessionID] = lim
	}
	s.mu.Unlock()
	return lim.Allow()
}

// loadPrompt returns the builder system prompt, preferring the
// configured PromptStore.
func (s *ChatService) loadPrompt() string {
	if s.prompts == nil {
		return defaultBuilderPrompt
	}
	prompt, err := s.prompts.Load(driven.PromptBuilderSystem)
	if err != nil {
		return defaultBuilderPrompt
	}
	return prompt
}

// persistManifest stores the files of a project manifest found in the
// reply, versioned per turn. Failures are logged, never fatal: a
// database hiccup must not lose the chat turn itself.
func (s *ChatService) persistManifest(ctx context.Context, sessionID, prompt, reply string) {
	if s.projects == nil {
		return
	}

	var manifest *domain.ProjectManifest
	for _, region := range extract.ScanRegions(reply) {
		if m, ok := extract.DetectManifest(region.RawText); ok {
			manifest = m
			break
		}
	}
	if manifest == nil || len(manifest.Files) == 0 {
		return
	}

	project, err := s.projects.GetProjectBySession(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		name := prompt
		if runes := []rune(name); len(runes) > 45 {
			name = string(runes[:45])
		}
		project = &driven.Project{
			ID:          uuid.NewString(),
			SessionID:   sessionID,
			Name:        name,
			Description: "Generated project: " + manifest.Explanation,
		}
		if err := s.projects.CreateProject(ctx, project); err != nil {
			logger.Warn("Create project failed: %v", err)
			return
		}
	case err != nil:
		logger.Warn("Load project failed: %v", err)
		return
	}

	version, err := s.projects.AddVersion(ctx, project.ID, prompt, reply)
	if err != nil {
		logger.Warn("Add project version failed: %v", err)
		return
	}
	if err := s.projects.SaveFiles(ctx, project.ID, version, manifest.Files); err != nil {
		logger.Warn("Save project files failed: %v", err)
		return
	}
	logger.Info("Saved %d files (version %d) for session %s", len(manifest.Files), version, sessionID)
}
