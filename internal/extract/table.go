package extract

import "strings"

// Keyword sets used to resolve logical columns from a table's header
// row. The first header cell containing any keyword wins.
var (
	testKeywords  = []string{"test", "name", "component"}
	valueKeywords = []string{"value", "result"}
	unitKeywords  = []string{"unit", "units"}
	rangeKeywords = []string{"range", "reference", "normal"}
)

// ParseTables extracts lab results from tabular grids. A grid is a
// sequence of rows, each row a sequence of cell strings. Row 0 is
// treated as a header; grids without at least one header and one data
// row are skipped. Identical input always produces the identical
// candidate list, in grid-then-row order.
func ParseTables(grids [][][]string) []LabResult {
	var results []LabResult

	for _, grid := range grids {
		if len(grid) < 2 {
			continue
		}

		headers := make([]string, len(grid[0]))
		for i, h := range grid[0] {
			headers[i] = strings.ToLower(h)
		}

		testCol := findColumn(headers, testKeywords)
		valueCol := findColumn(headers, valueKeywords)
		unitCol := findColumn(headers, unitKeywords)
		rangeCol := findColumn(headers, rangeKeywords)

		// A row must at least reach past the test and value columns.
		minLen := 0
		if testCol > minLen {
			minLen = testCol
		}
		if valueCol > minLen {
			minLen = valueCol
		}

		for _, row := range grid[1:] {
			if len(row) == 0 || len(row) <= minLen {
				continue
			}

			testName := cellAt(row, testCol)
			value := cellAt(row, valueCol)
			if strings.TrimSpace(testName) == "" || strings.TrimSpace(value) == "" {
				continue
			}

			results = append(results, newResult(
				strings.TrimSpace(testName),
				strings.TrimSpace(value),
				strings.TrimSpace(cellAt(row, unitCol)),
				strings.TrimSpace(cellAt(row, rangeCol)),
			))
		}
	}

	return results
}

// findColumn returns the index of the first header cell containing any
// of the keywords, or -1 when no header matches.
func findColumn(headers []string, keywords []string) int {
	for i, header := range headers {
		for _, kw := range keywords {
			if strings.Contains(header, kw) {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the cell at idx, or "" when the column was not
// resolved (-1) or the row is too short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
