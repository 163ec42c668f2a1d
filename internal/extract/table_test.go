package extract

import (
	"reflect"
	"testing"
)

func TestParseTables(t *testing.T) {
	tests := []struct {
		name     string
		grids    [][][]string
		expected []LabResult
	}{
		{
			name: "full header with one data row",
			grids: [][][]string{{
				{"Test", "Value", "Unit", "Range"},
				{"Hemoglobin", "10.5", "g/dL", "12.0-15.5"},
			}},
			expected: []LabResult{{
				TestName:       "Hemoglobin",
				Value:          "10.5",
				Unit:           "g/dL",
				ReferenceRange: "12.0-15.5",
				Status:         StatusLow,
			}},
		},
		{
			name: "alternate header keywords",
			grids: [][][]string{{
				{"Component", "Result", "Units", "Reference Interval"},
				{"Glucose", "95", "mg/dL", "70-100"},
			}},
			expected: []LabResult{{
				TestName:       "Glucose",
				Value:          "95",
				Unit:           "mg/dL",
				ReferenceRange: "70-100",
				Status:         StatusNormal,
			}},
		},
		{
			name: "missing unit and range columns",
			grids: [][][]string{{
				{"Test Name", "Value"},
				{"WBC", "6.2"},
			}},
			expected: []LabResult{{
				TestName: "WBC",
				Value:    "6.2",
				Status:   StatusUnknown,
			}},
		},
		{
			name: "cells trimmed",
			grids: [][][]string{{
				{"Test", "Value", "Unit", "Range"},
				{"  Iron  ", " 55 ", " ug/dL ", " 60-170 "},
			}},
			expected: []LabResult{{
				TestName:       "Iron",
				Value:          "55",
				Unit:           "ug/dL",
				ReferenceRange: "60-170",
				Status:         StatusLow,
			}},
		},
		{
			name:     "header only grid skipped",
			grids:    [][][]string{{{"Test", "Value"}}},
			expected: nil,
		},
		{
			name:     "empty grid skipped",
			grids:    [][][]string{{}},
			expected: nil,
		},
		{
			name: "short row skipped",
			grids: [][][]string{{
				{"Test", "Value", "Unit", "Range"},
				{"Hemoglobin"},
				{"Glucose", "95", "mg/dL", "70-100"},
			}},
			expected: []LabResult{{
				TestName:       "Glucose",
				Value:          "95",
				Unit:           "mg/dL",
				ReferenceRange: "70-100",
				Status:         StatusNormal,
			}},
		},
		{
			name: "blank test name or value skipped",
			grids: [][][]string{{
				{"Test", "Value"},
				{"", "95"},
				{"Glucose", "   "},
				{"Glucose", "95"},
			}},
			expected: []LabResult{{
				TestName: "Glucose",
				Value:    "95",
				Status:   StatusUnknown,
			}},
		},
		{
			name: "no matching header columns yields nothing",
			grids: [][][]string{{
				{"Date", "Physician"},
				{"2024-01-01", "Dr. Smith"},
			}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTables(tt.grids)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseTables() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

// Identical grid input must always yield the identical candidate list.
func TestParseTablesDeterministic(t *testing.T) {
	grids := [][][]string{{
		{"Test", "Value", "Unit", "Range"},
		{"Hemoglobin", "10.5", "g/dL", "12.0-15.5"},
		{"Glucose", "95", "mg/dL", "70-100"},
	}}

	first := ParseTables(grids)
	for i := 0; i < 10; i++ {
		if got := ParseTables(grids); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: results differ: %+v vs %+v", i, got, first)
		}
	}
}
