package extract

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

// Classification is the outcome of the plain-region decision table.
type Classification int

// Region classifications, checked in order.
const (
	// ClassScript marks a region as executable script-like code.
	ClassScript Classification = iota

	// ClassMarkup marks a region as verbatim markup.
	ClassMarkup

	// ClassDiscard marks a region as not previewable.
	ClassDiscard
)

// Script-shape heuristics, each independently testable.
var (
	importExportRe = regexp.MustCompile(`\b(?:import|export)\b`)
	capitalDeclRe  = regexp.MustCompile(`(?m)^\s*(?:function|const|class)\s+[A-Z]\w*`)
	returnParenRe  = regexp.MustCompile(`return\s*\(`)
	componentTagRe = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*[\s/>]`)
	markupTagRe    = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// ClassifyRegion applies the decision table to a plain (non-manifest)
// region:
//
//	script-like  import/export keywords, a capitalized declaration,
//	             a "return (" pattern, or a component tag, and not a
//	             bare JSON document
//	markup-like  angle-bracket tag syntax, and not a bare JSON document
//	discard      everything else
func ClassifyRegion(raw string) Classification {
	if looksLikeJSON(raw) {
		return ClassDiscard
	}
	if importExportRe.MatchString(raw) ||
		capitalDeclRe.MatchString(raw) ||
		returnParenRe.MatchString(raw) ||
		componentTagRe.MatchString(raw) {
		return ClassScript
	}
	if markupTagRe.MatchString(raw) {
		return ClassMarkup
	}
	return ClassDiscard
}

// homePriority is the fixed ordering of canonical home-page paths.
// Files on this list sort before everything else, in list order.
var homePriority = []string{
	"app/page.tsx",
	"src/app/page.tsx",
	"app/page.jsx",
	"src/app/page.jsx",
	"app/index.html",
	"index.html",
}

// pageFileNames are the recognized routed-page file names.
var pageFileNames = map[string]bool{
	"page.tsx": true,
	"page.jsx": true,
	"page.js":  true,
}

// SelectPages filters a manifest's files to top-level routed pages and
// sorts them into preview order: canonical home paths first, then
// alphabetically by path.
//
// When the manifest contains no routed page at all, the first
// script-capable file is returned alone so a single-file manifest
// still previews.
func SelectPages(files []domain.ManifestFile) []domain.ManifestFile {
	var pages []domain.ManifestFile
	for _, f := range files {
		if isRoutedPage(f.Path) {
			pages = append(pages, f)
		}
	}
	if len(pages) == 0 {
		for _, f := range files {
			if hasScriptExt(f.Path) {
				return []domain.ManifestFile{f}
			}
		}
		return nil
	}

	sort.SliceStable(pages, func(i, j int) bool {
		pi, pj := homeRank(pages[i].Path), homeRank(pages[j].Path)
		if pi != pj {
			return pi < pj
		}
		return pages[i].Path < pages[j].Path
	})
	return pages
}

// isRoutedPage reports whether a manifest path is a previewable
// top-level routed page: it lives under an application directory (or
// is a markup document), carries a recognized page-file name, and is
// not a layout, dynamic segment, API route, or framework-private path.
func isRoutedPage(p string) bool {
	p = strings.TrimPrefix(path.Clean(p), "./")
	base := path.Base(p)

	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, "_") || strings.HasPrefix(seg, "[") {
			return false
		}
	}
	if strings.HasPrefix(base, "layout.") {
		return false
	}

	if strings.HasSuffix(base, ".html") {
		return true
	}

	under := strings.HasPrefix(p, "app/") || strings.HasPrefix(p, "src/app/") || strings.HasPrefix(p, "pages/")
	if !under {
		return false
	}
	if strings.HasPrefix(p, "app/api/") || strings.HasPrefix(p, "src/app/api/") {
		return false
	}
	return pageFileNames[base]
}

// hasScriptExt reports whether the path names a script source file.
func hasScriptExt(p string) bool {
	switch path.Ext(p) {
	case ".tsx", ".jsx", ".ts", ".js":
		return true
	}
	return false
}

// homeRank returns the priority-list index of p, or len(homePriority)
// when p is not a canonical home path.
func homeRank(p string) int {
	p = strings.TrimPrefix(path.Clean(p), "./")
	for i, h := range homePriority {
		if p == h {
			return i
		}
	}
	return len(homePriority)
}

// PageDisplayName derives a human-readable label from a manifest path:
// directory and suffix conventions are stripped, an index or page-root
// file becomes "Home", and the remainder is title-cased.
func PageDisplayName(p string) string {
	p = strings.TrimPrefix(path.Clean(p), "./")
	for _, prefix := range []string{"src/app/", "app/", "pages/", "src/"} {
		p = strings.TrimPrefix(p, prefix)
	}

	base := path.Base(p)
	if pageFileNames[base] {
		p = path.Dir(p)
	} else {
		p = strings.TrimSuffix(p, path.Ext(p))
	}

	stem := path.Base(p)
	if stem == "." || stem == "/" || stem == "" || stem == "index" || stem == "page" {
		return "Home"
	}
	return titleCase(stem)
}

// titleCase turns "user-profile" or "user_profile" into "User Profile".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
