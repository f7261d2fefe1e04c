package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
	"github.com/atelier-labs/forgeview-cli/internal/extract"
	"github.com/atelier-labs/forgeview-cli/internal/logger"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// PreviewService assembles preview units from a session's model
// output. The extraction pipeline itself is pure; this service only
// chooses the text snapshot it runs over.
type PreviewService struct {
	cache driven.SessionCache
	store driven.MessageStore

	// joinModels is how many trailing model messages are concatenated
	// (most recent last) to reconstruct a response split across a turn
	// limit. The newline join cannot sit inside a JSON string literal,
	// so it never corrupts the brace-balance scan.
	joinModels int
}

// NewPreviewService creates a new preview service. joinModels <= 0
// defaults to 1 (only the latest model message is considered).
func NewPreviewService(cache driven.SessionCache, store driven.MessageStore, joinModels int) *PreviewService {
	if joinModels <= 0 {
		joinModels = 1
	}
	return &PreviewService{cache: cache, store: store, joinModels: joinModels}
}

// Preview assembles the ordered preview units for a session.
func (s *PreviewService) Preview(ctx context.Context, sessionID string) (domain.PreviewResult, error) {
	if sessionID == "" {
		return domain.PreviewResult{}, domain.ErrInvalidSession
	}
	logger.Section("Preview Assembly")

	history, err := s.snapshot(ctx, sessionID)
	if err != nil {
		return domain.PreviewResult{}, err
	}

	tail := history.TailModel(s.joinModels)
	if len(tail) == 0 {
		// The session exists (or is brand new) but holds no model
		// message yet; a stream may still be in flight.
		logger.Debug("Session %s has no model message yet", sessionID)
		return domain.PreviewResult{SessionID: sessionID, Generating: true}, nil
	}

	parts := make([]string, len(tail))
	for i, m := range tail {
		parts[i] = m.Content
	}
	units := extract.Run(strings.Join(parts, "\n"))
	logger.Info("Assembled %d preview units for session %s", len(units), sessionID)

	return domain.PreviewResult{SessionID: sessionID, Units: units}, nil
}

// snapshot returns the session history, treating durable storage as
// authoritative when memory is cold so a restarted process never shows
// a stale "still generating" state.
func (s *PreviewService) snapshot(ctx context.Context, sessionID string) (domain.History, error) {
	snap, err := s.cache.Snapshot(sessionID)
	if err != nil {
		return nil, fmt.Errorf("snapshot session: %w", err)
	}
	if len(snap) > 0 {
		return snap, nil
	}

	stored, err := s.store.LoadMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("rehydrate session %s: %w", sessionID, errors.Join(domain.ErrStoreUnavailable, err))
	}
	if len(stored) == 0 {
		return nil, nil
	}
	if err := s.cache.Replace(sessionID, stored); err != nil {
		return nil, fmt.Errorf("warm session cache: %w", err)
	}
	return domain.History(stored).Clone(), nil
}
