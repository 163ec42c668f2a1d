package pdf

import (
	"regexp"
	"strings"
)

// cellSeparator splits a layout-mode line into cells. pdftotext renders
// column gaps as runs of spaces; two or more is treated as a boundary.
var cellSeparator = regexp.MustCompile(`\s{2,}`)

// minGridRows is the smallest block treated as a table: a header row
// plus at least one data row.
const minGridRows = 2

// detectGrids groups consecutive multi-cell lines of layout text into
// grids. A line belongs to the current grid when it splits into at
// least two cells; blank or single-cell lines terminate it. Blocks
// shorter than minGridRows are discarded.
func detectGrids(text string) [][][]string {
	var grids [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= minGridRows {
			grids = append(grids, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		current = append(current, cells)
	}
	flush()

	return grids
}

// splitCells breaks a line on multi-space runs, trimming each cell.
// Returns nil for blank lines.
func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	parts := cellSeparator.Split(trimmed, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
