package extract

import (
	"regexp"
	"strings"
)

// Import rewriting patterns. Only sandbox-provided globals are
// resolvable at render time, so recognized icon imports are redirected
// to the sandbox's dynamic Lucide proxy and everything else is removed.
var (
	lucideImportRe = regexp.MustCompile(`import\s*\{\s*([^}]+?)\s*\}\s*from\s*['"]lucide-react['"];?`)
	fromImportRe   = regexp.MustCompile(`(?s)import\s+.*?from\s+['"][^'"]+['"];?`)
	bareImportRe   = regexp.MustCompile(`import\s*['"][^'"]+['"];?`)

	topDeclRe       = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:function|const|class|var|let)\s+(\w+)`)
	defaultExportRe = regexp.MustCompile(`export\s+default`)
)

// NormalizeScript prepares a script-like unit for the sandbox.
// Two passes: a destructuring lucide-react import becomes a plain
// destructuring assignment against the Lucide sandbox global, then
// every remaining import statement is stripped. If the unit declares
// no default export afterwards, a synthetic one is appended for the
// fallback identifier.
//
// The returned fallback name may be empty; such a unit is still
// emitted and fails at render time inside the sandbox, isolated from
// the rest of the set.
func NormalizeScript(raw string) (code, fallback string) {
	code = lucideImportRe.ReplaceAllString(raw, "const { $1 } = Lucide;")
	code = fromImportRe.ReplaceAllString(code, "")
	code = bareImportRe.ReplaceAllString(code, "")

	// The fallback is chosen from the pre-strip declarations so an
	// identifier bound by a removed import line is never picked.
	fallback = FallbackExport(raw)

	if fallback != "" && !defaultExportRe.MatchString(code) {
		code = strings.TrimRight(code, "\n") + "\n\nexport default " + fallback + ";"
	}
	return code, fallback
}

// FallbackExport scans top-level declarations and returns the
// identifier the sandbox should fall back to: the first capitalized
// name (component naming convention), else the last declared name,
// else "".
func FallbackExport(raw string) string {
	matches := topDeclRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		if name := m[1]; name[0] >= 'A' && name[0] <= 'Z' {
			return name
		}
	}
	return matches[len(matches)-1][1]
}
