package services

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

// getCodec returns the cl100k_base tokenizer, a reasonable
// approximation for the models we talk to.
func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// estimateTokens returns an approximate token count for text,
// falling back to a bytes/4 heuristic when the codec is unavailable.
func estimateTokens(text string) int {
	c, err := getCodec()
	if err != nil {
		return len(text) / 4
	}
	ids, _, err := c.Encode(text)
	if err != nil {
		return len(text) / 4
	}
	return len(ids)
}

// windowHistory keeps the most recent messages whose summed token
// estimate fits tokenBudget, capped at maxMessages. The returned slice
// preserves arrival order. The newest message is always kept so a
// long prompt is never silently dropped.
func windowHistory(h domain.History, tokenBudget, maxMessages int) []domain.Message {
	if len(h) == 0 {
		return nil
	}
	if maxMessages <= 0 {
		maxMessages = len(h)
	}

	total := 0
	start := len(h)
	for i := len(h) - 1; i >= 0 && len(h)-i <= maxMessages; i-- {
		cost := estimateTokens(h[i].Content)
		if total+cost > tokenBudget && start < len(h) {
			break
		}
		total += cost
		start = i
	}

	out := make([]domain.Message, len(h)-start)
	copy(out, h[start:])
	return out
}
