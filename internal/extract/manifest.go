package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// maxBraceBackscan bounds the backward walk from a "type" key to the
// opening brace of its enclosing object. The key is normally the first
// one in the manifest, so the brace sits within a few bytes.
const maxBraceBackscan = 256

// typeKeyRe matches a "type" key with a string value.
var typeKeyRe = regexp.MustCompile(`"type"\s*:\s*"([A-Za-z]+)"`)

// trailingCommaRe matches a trailing comma immediately before a
// closing brace or bracket, a common model output defect.
var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// DetectManifest locates an embedded project manifest inside a code
// region's text. The region may contain surrounding prose; the manifest
// boundary is found with a brace-balanced, string-escape-aware scan.
// A manifest truncated mid-stream is repaired by appending the
// outstanding closing delimiters before parsing; a strict parse failure
// is retried once with trailing commas removed.
//
// The second return is false when no occurrence yields a manifest with
// a recognized type and an array-valued files field.
func DetectManifest(raw string) (*domain.ProjectManifest, bool) {
	// Cheap gate before any scanning.
	if !strings.Contains(raw, `"type"`) || !strings.Contains(raw, `"files"`) {
		return nil, false
	}

	for _, loc := range typeKeyRe.FindAllStringSubmatchIndex(raw, -1) {
		tag := raw[loc[2]:loc[3]]
		if !domain.IsManifestKind(tag) {
			continue
		}

		start := backscanBrace(raw, loc[0])
		if start < 0 {
			continue
		}

		candidate := balancedSlice(raw, start)
		if m, ok := parseManifest(candidate); ok {
			return m, true
		}
		// This occurrence is unrecoverable; keep scanning.
	}
	return nil, false
}

// backscanBrace walks backward from pos to the nearest unmatched
// opening brace within maxBraceBackscan bytes, or -1.
func backscanBrace(raw string, pos int) int {
	depth := 0
	for i := pos; i >= 0 && pos-i <= maxBraceBackscan; i-- {
		switch raw[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// balancedSlice returns the candidate JSON text starting at the brace
// at start. The forward scan tracks nesting depth and string state:
// an "inside string" flag toggled by unescaped quotes, with an escape
// flag that consumes exactly one following character. If end-of-text
// arrives before the depth returns to zero, the outstanding closers
// (and an unterminated string quote) are appended.
func balancedSlice(raw string, start int) string {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return raw[start : i+1]
			}
		}
	}

	// Truncated mid-stream: append the missing closers in reverse
	// nesting order.
	var b strings.Builder
	b.WriteString(raw[start:])
	if inString {
		if escaped {
			// A trailing backslash would otherwise escape our quote.
			b.WriteByte('n')
		}
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// parseManifest strictly parses candidate, retrying once with trailing
// commas stripped. Acceptance requires a recognized type tag and a
// present, array-valued files field.
func parseManifest(candidate string) (*domain.ProjectManifest, bool) {
	var m domain.ProjectManifest
	if err := json.Unmarshal([]byte(candidate), &m); err != nil {
		repaired := trailingCommaRe.ReplaceAllString(candidate, "$1")
		if err := json.Unmarshal([]byte(repaired), &m); err != nil {
			return nil, false
		}
	}
	if !domain.IsManifestKind(m.Type) || m.Files == nil {
		return nil, false
	}
	return &m, true
}
