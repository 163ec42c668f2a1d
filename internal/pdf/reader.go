// Package pdf reads lab-report PDFs page by page for the extraction
// pipeline. pdfcpu validates the file and supplies the page count;
// per-page text is rendered with pdftotext (poppler-utils) in layout
// mode so tabular alignment survives into the text.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/labdecoder/labdecoder/internal/extract"
)

// Reader implements extract.Document over a PDF file on disk.
type Reader struct {
	path  string
	pages int
}

var _ extract.Document = (*Reader)(nil)

// Open validates the PDF and determines its page count. Any failure
// here means the document is unreadable as a whole and is wrapped as
// extract.ErrDocumentUnreadable.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrDocumentUnreadable, err)
	}
	defer f.Close()

	pages, err := api.PageCount(f, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrDocumentUnreadable, err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: pdf has no pages", extract.ErrDocumentUnreadable)
	}

	return &Reader{path: path, pages: pages}, nil
}

// Pages returns the page count determined at open time.
func (r *Reader) Pages() int {
	return r.pages
}

// Text extracts the plain text of one page (0-based) using pdftotext.
// -layout preserves horizontal positioning, which the table heuristic
// depends on.
func (r *Reader) Text(ctx context.Context, page int) (string, error) {
	if page < 0 || page >= r.pages {
		return "", fmt.Errorf("page %d out of range (1-%d)", page+1, r.pages)
	}

	pageStr := strconv.Itoa(page + 1)
	cmd := exec.CommandContext(ctx, "pdftotext",
		"-layout",
		"-f", pageStr,
		"-l", pageStr,
		r.path,
		"-", // write to stdout
	)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed for page %s: %w", pageStr, err)
	}
	return string(output), nil
}

// Tables recovers tabular grids from the page's layout text. This is a
// heuristic: columns in layout mode appear as runs of two or more
// spaces, so consecutive multi-cell lines are grouped into one grid.
func (r *Reader) Tables(ctx context.Context, page int) ([][][]string, error) {
	text, err := r.Text(ctx, page)
	if err != nil {
		return nil, err
	}
	return detectGrids(text), nil
}
