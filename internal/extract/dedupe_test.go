package extract

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	tableHgb := LabResult{TestName: "Hemoglobin", Value: "10.5", Unit: "g/dL", ReferenceRange: "12.0-15.5", Status: StatusLow}
	patternHgb := LabResult{TestName: "Hemoglobin", Value: "10.5", Status: StatusUnknown}
	glucose := LabResult{TestName: "Glucose", Value: "95", Unit: "mg/dL", ReferenceRange: "70-100", Status: StatusNormal}

	tests := []struct {
		name       string
		candidates []LabResult
		expected   []LabResult
	}{
		{
			name:       "empty input",
			candidates: nil,
			expected:   []LabResult{},
		},
		{
			name:       "no duplicates preserved in order",
			candidates: []LabResult{tableHgb, glucose},
			expected:   []LabResult{tableHgb, glucose},
		},
		{
			name:       "table candidate wins over pattern candidate",
			candidates: []LabResult{tableHgb, glucose, patternHgb},
			expected:   []LabResult{tableHgb, glucose},
		},
		{
			name: "test name compared case-insensitively",
			candidates: []LabResult{
				tableHgb,
				{TestName: "HEMOGLOBIN", Value: "10.5", Status: StatusUnknown},
			},
			expected: []LabResult{tableHgb},
		},
		{
			name: "value compared as exact string",
			candidates: []LabResult{
				{TestName: "Hemoglobin", Value: "10.5"},
				{TestName: "Hemoglobin", Value: "10.50"},
			},
			expected: []LabResult{
				{TestName: "Hemoglobin", Value: "10.5"},
				{TestName: "Hemoglobin", Value: "10.50"},
			},
		},
		{
			name: "same test different values both kept",
			candidates: []LabResult{
				{TestName: "Glucose", Value: "95"},
				{TestName: "Glucose", Value: "112"},
			},
			expected: []LabResult{
				{TestName: "Glucose", Value: "95"},
				{TestName: "Glucose", Value: "112"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.candidates)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Dedupe() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestDedupeIdempotent(t *testing.T) {
	candidates := []LabResult{
		{TestName: "Hemoglobin", Value: "10.5"},
		{TestName: "hemoglobin", Value: "10.5"},
		{TestName: "Glucose", Value: "95"},
		{TestName: "Glucose", Value: "95"},
		{TestName: "WBC", Value: "6.2"},
	}

	once := Dedupe(candidates)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent: %+v vs %+v", once, twice)
	}
}
