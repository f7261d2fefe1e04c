package extract

import (
	"fmt"
	"path"
	"strings"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
	"github.com/atelier-labs/forgeview-cli/internal/logger"
)

// Run executes the full pipeline over one text snapshot and returns
// the ordered preview units. An empty slice is the normal outcome for
// prose-only content.
//
// Ids are assigned sequentially in scan order ("block-0", "block-1",
// ...), so an unchanged snapshot always yields an identical sequence.
func Run(text string) []domain.PreviewUnit {
	var (
		units       []domain.PreviewUnit
		codeCount   int
		markupCount int
	)

	add := func(name, code, fallback string, executable bool) {
		units = append(units, domain.PreviewUnit{
			ID:                 fmt.Sprintf("block-%d", len(units)),
			Name:               name,
			Code:               code,
			FallbackExportName: fallback,
			IsExecutable:       executable,
		})
	}

	regions := ScanRegions(text)
	logger.Debug("Scanned %d code regions", len(regions))

	for _, region := range regions {
		if m, ok := DetectManifest(region.RawText); ok {
			pages := SelectPages(m.Files)
			logger.Debug("Manifest %q: %d files, %d previewable pages", m.Type, len(m.Files), len(pages))
			for _, f := range pages {
				if strings.HasSuffix(path.Base(f.Path), ".html") {
					add(PageDisplayName(f.Path), f.Content, "", false)
					continue
				}
				code, fallback := NormalizeScript(f.Content)
				add(PageDisplayName(f.Path), code, fallback, true)
			}
			continue
		}

		switch ClassifyRegion(region.RawText) {
		case ClassScript:
			codeCount++
			code, fallback := NormalizeScript(region.RawText)
			add(fmt.Sprintf("Code Block %d", codeCount), code, fallback, true)
		case ClassMarkup:
			markupCount++
			add(fmt.Sprintf("HTML Preview %d", markupCount), region.RawText, "", false)
		case ClassDiscard:
			logger.Debug("Region %d discarded", region.OrdinalIndex)
		}
	}

	// No fences at all: a message that visibly carries markup is
	// previewed whole, unless it is itself a bare JSON payload.
	if len(units) == 0 && len(regions) == 0 &&
		strings.Contains(text, "<") && strings.Contains(text, ">") && !looksLikeJSON(text) {
		add("HTML Preview 1", text, "", false)
	}

	return units
}
