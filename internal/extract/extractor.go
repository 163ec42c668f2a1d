package extract

import (
	"context"
	"log/slog"
)

// Document supplies page-level content to the extractor. Readers are
// expected to tolerate malformed pages: a page-level error is recovered
// by the extractor, only a document that cannot be opened at all is
// fatal.
type Document interface {
	// Pages returns the number of pages in the document.
	Pages() int

	// Text returns the plain text of a page (0-based).
	Text(ctx context.Context, page int) (string, error)

	// Tables returns the tabular grids of a page (0-based). A grid is
	// rows of cell strings.
	Tables(ctx context.Context, page int) ([][][]string, error)
}

// Extractor runs both parsing strategies over a document and
// reconciles their candidates. Stateless between calls; each Extract
// owns its candidate list.
type Extractor struct {
	patterns *PatternSet
	logger   *slog.Logger
}

// NewExtractor creates an extractor using the given pattern set. A nil
// pattern set selects the built-in rules.
func NewExtractor(patterns *PatternSet, logger *slog.Logger) *Extractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{patterns: patterns, logger: logger}
}

// Extract walks the document's pages in order, collects table
// candidates then pattern candidates per page, and dedupes the combined
// list. A page whose text or table read fails contributes nothing and
// extraction continues; an empty final list is returned as-is, the
// caller decides whether that is an error.
//
// Pages are processed sequentially: dedupe precedence depends on stable
// first-seen ordering.
func (e *Extractor) Extract(ctx context.Context, doc Document) ([]LabResult, error) {
	pages := doc.Pages()
	candidates := make([]LabResult, 0, 16)

	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tables, err := doc.Tables(ctx, page)
		if err != nil {
			e.logger.Warn("table extraction failed, skipping page tables",
				"page", page+1, "error", err)
		} else if len(tables) > 0 {
			candidates = append(candidates, ParseTables(tables)...)
		}

		text, err := doc.Text(ctx, page)
		if err != nil {
			e.logger.Warn("text extraction failed, skipping page text",
				"page", page+1, "error", err)
			continue
		}
		candidates = append(candidates, e.patterns.ParseText(text)...)
	}

	results := Dedupe(candidates)
	e.logger.Debug("extraction complete",
		"pages", pages, "candidates", len(candidates), "results", len(results))
	return results, nil
}
