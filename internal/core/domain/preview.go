package domain

// CodeRegion is one fenced span extracted from a message's text.
// Regions are ephemeral: produced by the scanner and consumed within
// a single pipeline run.
type CodeRegion struct {
	// RawText is the fence interior, verbatim.
	RawText string

	// OrdinalIndex is the zero-based position within the scanned text.
	OrdinalIndex int
}

// ManifestKinds is the closed set of accepted project-kind tags.
// The model is instructed to emit "fullstack"; the remainder are
// tolerated spellings seen in practice.
var ManifestKinds = []string{"fullstack", "web", "app", "project", "website"}

// IsManifestKind reports whether tag is a recognized project-kind tag.
func IsManifestKind(tag string) bool {
	for _, k := range ManifestKinds {
		if tag == k {
			return true
		}
	}
	return false
}

// ManifestFile is one file within a project manifest.
type ManifestFile struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

// ProjectManifest is a structured multi-file project emitted by the
// model in place of a single code block.
type ProjectManifest struct {
	Type         string         `json:"type"`
	Files        []ManifestFile `json:"files"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Explanation  string         `json:"explanation,omitempty"`
}

// PreviewUnit is one named, normalized, independently renderable piece
// of code or markup. Ids are unique and sequential within one assembly.
type PreviewUnit struct {
	// ID is the stable identifier within one assembly ("block-0", ...).
	ID string `json:"id"`

	// Name is the human-readable label shown in the preview switcher.
	Name string `json:"name"`

	// Code is the normalized source. For markup units it is verbatim.
	Code string `json:"code"`

	// FallbackExportName is the identifier the sandbox falls back to
	// when the unit's default export cannot be resolved. May be empty.
	FallbackExportName string `json:"fallbackName"`

	// IsExecutable distinguishes script-like units (transpiled and
	// executed by the sandbox) from markup-like units (injected as-is).
	IsExecutable bool `json:"isJS"`
}

// PreviewResult is the outcome of one preview assembly.
// An empty unit list is a normal outcome, not an error: the model has
// not yet emitted renderable code, or the content is plain prose.
type PreviewResult struct {
	// SessionID is the session the preview was assembled for.
	SessionID string `json:"sessionId"`

	// Units is the ordered renderable set. Nil or empty means there
	// is nothing to preview yet.
	Units []PreviewUnit `json:"units"`

	// Generating indicates the session exists but holds no model
	// message yet (a stream may still be in flight).
	Generating bool `json:"generating"`
}

// Empty reports whether the result carries no renderable units.
func (r PreviewResult) Empty() bool {
	return len(r.Units) == 0
}
