// Package extract turns loosely structured lab-report content into
// canonical test results. Two independent strategies feed the pipeline:
// table parsing over extracted grids and pattern matching over raw page
// text. Candidates from both are reconciled by a stable deduplication
// pass keyed on (test name, value).
package extract

import "fmt"

// Status classifies a measured value against its reference range.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusHigh    Status = "high"
	StatusLow     Status = "low"
	StatusUnknown Status = "unknown"
)

// LabResult is a single test result as discovered in a document.
// The fields carry the raw strings from the source; TestName is not
// normalized to any canonical vocabulary. Status is always derived via
// Classify, never set directly. Results are not mutated after
// construction.
type LabResult struct {
	TestName       string `json:"test_name"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
	Status         Status `json:"status"`
}

// newResult constructs a LabResult with its status computed from the
// value and reference range. All parser emissions go through here so
// that identical (value, range) pairs always classify identically.
func newResult(testName, value, unit, refRange string) LabResult {
	return LabResult{
		TestName:       testName,
		Value:          value,
		Unit:           unit,
		ReferenceRange: refRange,
		Status:         Classify(value, refRange),
	}
}

// String renders the result in a compact single-line form for logs.
func (r LabResult) String() string {
	return fmt.Sprintf("%s: %s %s [%s]", r.TestName, r.Value, r.Unit, r.Status)
}
