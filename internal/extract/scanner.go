package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// minTrailingRegion is the minimum trimmed length of an implicit
// trailing region. Shorter truncated fragments are dropped rather
// than previewed.
const minTrailingRegion = 24

// fenceRe matches one complete fenced region: an opening triple
// backtick, an optional language tag line, the interior, and the
// closing backticks. The interior is captured verbatim.
var fenceRe = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")

// langTagRe matches a bare language tag line ("tsx", "json", "c++").
var langTagRe = regexp.MustCompile(`^[A-Za-z0-9+#_.-]+$`)

// ScanRegions splits text into its ordered fenced code regions.
// Empty regions are dropped. When no complete fence exists but the
// text contains an opening fence marker, everything after the last
// marker becomes one implicit trailing region (streaming truncation),
// minus an optional leading language-tag line.
func ScanRegions(text string) []domain.CodeRegion {
	var regions []domain.CodeRegion

	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(m[1])
		if raw == "" {
			continue
		}
		regions = append(regions, domain.CodeRegion{
			RawText:      raw,
			OrdinalIndex: len(regions),
		})
	}
	if len(regions) > 0 {
		return regions
	}

	// Streaming truncation: the closing fence never arrived.
	idx := strings.LastIndex(text, "```")
	if idx < 0 {
		return nil
	}
	tail := text[idx+3:]
	if line, rest, ok := strings.Cut(tail, "\n"); ok && langTagRe.MatchString(strings.TrimSpace(line)) {
		tail = rest
	}
	tail = strings.TrimSpace(tail)
	if len(tail) < minTrailingRegion {
		return nil
	}
	return []domain.CodeRegion{{RawText: tail, OrdinalIndex: 0}}
}

// looksLikeJSON reports whether s is, in its entirety, a bare JSON
// document. Used to keep raw JSON payloads from being classified as
// markup or script.
func looksLikeJSON(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if t[0] != '{' && t[0] != '[' {
		return false
	}
	return json.Valid([]byte(t))
}
