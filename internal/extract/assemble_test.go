package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SingleScriptBlock(t *testing.T) {
	text := "Sure, here you go:\n```jsx\nimport { Star } from \"lucide-react\";\n\nfunction Rating() {\n  return (<div><Star /></div>);\n}\n```"

	units := Run(text)
	require.Len(t, units, 1)
	assert.Equal(t, "block-0", units[0].ID)
	assert.Equal(t, "Code Block 1", units[0].Name)
	assert.True(t, units[0].IsExecutable)
	assert.Equal(t, "Rating", units[0].FallbackExportName)
	assert.NotContains(t, units[0].Code, "import")
}

func TestRun_ManifestTwoPages(t *testing.T) {
	text := "```json\n" + `{
  "type": "fullstack",
  "files": [
    {"path": "app/about/page.tsx", "content": "export default function About(){return null}"},
    {"path": "app/page.tsx", "content": "export default function Home(){return null}"}
  ]
}` + "\n```"

	units := Run(text)
	require.Len(t, units, 2)
	// Fixed priority: home first, regardless of manifest order.
	assert.Equal(t, "block-0", units[0].ID)
	assert.Equal(t, "Home", units[0].Name)
	assert.Equal(t, "block-1", units[1].ID)
	assert.Equal(t, "About", units[1].Name)
	assert.True(t, units[0].IsExecutable)
	assert.True(t, units[1].IsExecutable)
}

func TestRun_ManifestSingleHomePage_CodeUnchanged(t *testing.T) {
	text := "```json\n" + `{"type":"web","files":[{"path":"app/page.tsx","content":"export default function Home(){return null}"}]}` + "\n```"

	units := Run(text)
	require.Len(t, units, 1)
	assert.Equal(t, "Home", units[0].Name)
	assert.True(t, units[0].IsExecutable)
	assert.Equal(t, "export default function Home(){return null}", units[0].Code)
}

func TestRun_ManifestHTMLPageVerbatim(t *testing.T) {
	text := "```json\n" + `{"type":"website","files":[{"path":"index.html","content":"<h1>Hi & <b>welcome</b></h1>"}]}` + "\n```"

	units := Run(text)
	require.Len(t, units, 1)
	assert.Equal(t, "Home", units[0].Name)
	assert.False(t, units[0].IsExecutable)
	assert.Equal(t, "<h1>Hi & <b>welcome</b></h1>", units[0].Code)
	assert.Empty(t, units[0].FallbackExportName)
}

func TestRun_MixedBlocks(t *testing.T) {
	text := "```js\nfunction Counter(){ return (<div/>); }\n```\nand some markup:\n```html\n<section>static</section>\n```"

	units := Run(text)
	require.Len(t, units, 2)
	assert.Equal(t, "Code Block 1", units[0].Name)
	assert.True(t, units[0].IsExecutable)
	assert.Equal(t, "HTML Preview 1", units[1].Name)
	assert.False(t, units[1].IsExecutable)
	assert.Equal(t, "<section>static</section>", units[1].Code)
}

func TestRun_ProseOnly(t *testing.T) {
	assert.Empty(t, Run("I can help you build that. What colours do you prefer?"))
}

func TestRun_BareJSONMessage(t *testing.T) {
	// Valid JSON with no fences and no markup must not become a
	// markup unit.
	assert.Empty(t, Run(`{"status": "thinking", "progress": 0.5}`))
}

func TestRun_UnfencedMarkupFallback(t *testing.T) {
	text := "<div style=\"padding:2rem\"><h1>Landing</h1><p>Welcome.</p></div>"

	units := Run(text)
	require.Len(t, units, 1)
	assert.Equal(t, "HTML Preview 1", units[0].Name)
	assert.False(t, units[0].IsExecutable)
	assert.Equal(t, text, units[0].Code)
}

func TestRun_Idempotent(t *testing.T) {
	text := "```jsx\nfunction Widget(){ return (<div/>); }\n```\n```html\n<p>x</p>\n```"

	first := Run(text)
	second := Run(text)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Code, second[i].Code)
	}
}

func TestRun_DiscardedRegionDoesNotConsumeID(t *testing.T) {
	text := "```json\n{\"not\": \"a manifest\"}\n```\n```js\nfunction App(){ return (<div/>); }\n```"

	units := Run(text)
	require.Len(t, units, 1)
	assert.Equal(t, "block-0", units[0].ID)
	assert.Equal(t, "Code Block 1", units[0].Name)
}
