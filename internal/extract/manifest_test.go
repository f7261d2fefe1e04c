package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedManifest = `{
  "type": "fullstack",
  "files": [
    {"path": "app/page.tsx", "content": "export default function Home(){return null}", "description": "Main page"},
    {"path": "app/api/users/route.ts", "content": "export async function GET(){}"}
  ],
  "dependencies": ["drizzle-orm"],
  "explanation": "A small app"
}`

func TestDetectManifest_WellFormed(t *testing.T) {
	m, ok := DetectManifest(wellFormedManifest)
	require.True(t, ok)
	assert.Equal(t, "fullstack", m.Type)
	require.Len(t, m.Files, 2)
	assert.Equal(t, "app/page.tsx", m.Files[0].Path)
	assert.Equal(t, "Main page", m.Files[0].Description)
	assert.Equal(t, []string{"drizzle-orm"}, m.Dependencies)
}

func TestDetectManifest_SurroundedByProse(t *testing.T) {
	raw := "Here is the project you asked for:\n\n" + wellFormedManifest + "\n\nLet me know if you need changes."

	m, ok := DetectManifest(raw)
	require.True(t, ok)
	assert.Len(t, m.Files, 2)
}

func TestDetectManifest_BracesInsideStrings(t *testing.T) {
	// Content fields contain braces and escaped quotes; the balanced
	// scan must not count delimiters inside string literals.
	raw := `{"type":"web","files":[{"path":"app/page.tsx","content":"function Home(){ return \"{}\" } // {{{"}]}`

	m, ok := DetectManifest(raw)
	require.True(t, ok)
	require.Len(t, m.Files, 1)
	assert.Contains(t, m.Files[0].Content, `return "{}"`)
}

func TestDetectManifest_TruncationRepair(t *testing.T) {
	// Cutting the manifest off mid-array must still parse, and the
	// already-complete fields must survive intact, for at least three
	// missing closers.
	full := wellFormedManifest
	cutpoints := []string{
		// Missing ] } (2 closers), cut after the first file object.
		full[:strings.Index(full, `{"path": "app/api`)-6],
		// Missing " } ] } style tail, cut inside the second path string.
		full[:strings.Index(full, "route.ts")],
		// Cut right after the files key's opening bracket.
		full[:strings.Index(full, `[`)+1],
	}

	for i, raw := range cutpoints {
		m, ok := DetectManifest(raw)
		require.True(t, ok, "cutpoint %d", i)
		assert.Equal(t, "fullstack", m.Type, "cutpoint %d", i)
	}

	// The complete first file must be preserved verbatim at cutpoint 0.
	m, ok := DetectManifest(cutpoints[0])
	require.True(t, ok)
	require.NotEmpty(t, m.Files)
	assert.Equal(t, "export default function Home(){return null}", m.Files[0].Content)
}

func TestDetectManifest_TrailingCommaRepair(t *testing.T) {
	raw := `{"type":"app","files":[{"path":"app/page.tsx","content":"x",},],}`

	m, ok := DetectManifest(raw)
	require.True(t, ok)
	assert.Len(t, m.Files, 1)
}

func TestDetectManifest_UnrecognizedType(t *testing.T) {
	raw := `{"type":"component","files":[{"path":"a.tsx","content":"x"}]}`

	_, ok := DetectManifest(raw)
	assert.False(t, ok)
}

func TestDetectManifest_SkipsToNextOccurrence(t *testing.T) {
	// The first "type" occurrence is a decoy inside an unparseable
	// fragment; detection must continue to the real manifest.
	raw := `broken: {"type": "web" oops` + "\n\n" + wellFormedManifest

	m, ok := DetectManifest(raw)
	require.True(t, ok)
	assert.Equal(t, "fullstack", m.Type)
	assert.Len(t, m.Files, 2)
}

func TestDetectManifest_MissingFilesKey(t *testing.T) {
	_, ok := DetectManifest(`{"type":"web","name":"x"}`)
	assert.False(t, ok)
}

func TestDetectManifest_FilesNotArray(t *testing.T) {
	_, ok := DetectManifest(`{"type":"web","files":"nope"}`)
	assert.False(t, ok)
}

func TestDetectManifest_PlainCode(t *testing.T) {
	_, ok := DetectManifest("export default function App(){ return null }")
	assert.False(t, ok)
}

func TestBalancedSlice_CompleteObject(t *testing.T) {
	raw := `prefix {"a":{"b":[1,2]}} suffix`
	got := balancedSlice(raw, strings.Index(raw, "{"))
	assert.Equal(t, `{"a":{"b":[1,2]}}`, got)
	assert.True(t, json.Valid([]byte(got)))
}

func TestBalancedSlice_RepairsTruncatedString(t *testing.T) {
	got := balancedSlice(`{"a":"unterminated`, 0)
	assert.True(t, json.Valid([]byte(got)), "got %q", got)
}

func TestBalancedSlice_RepairsTrailingEscape(t *testing.T) {
	got := balancedSlice(`{"a":"ends with \`, 0)
	assert.True(t, json.Valid([]byte(got)), "got %q", got)
}

func TestBackscanBrace(t *testing.T) {
	raw := `text { "type": "web" }`
	assert.Equal(t, 5, backscanBrace(raw, strings.Index(raw, `"type"`)))
}

func TestBackscanBrace_SkipsMatchedPair(t *testing.T) {
	// The {} pair before "type" is matched; the enclosing brace is the
	// first one.
	raw := `{ "x": {}, "type": "web" }`
	assert.Equal(t, 0, backscanBrace(raw, strings.Index(raw, `"type"`)))
}

func TestBackscanBrace_NotFound(t *testing.T) {
	assert.Equal(t, -1, backscanBrace(`no brace here "type"`, 14))
}
