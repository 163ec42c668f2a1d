package extract

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		refRange string
		expected Status
	}{
		{"below range", "10.5", "12.0-15.5", StatusLow},
		{"above range", "16.2", "12.0-15.5", StatusHigh},
		{"inside range", "13.0", "12.0-15.5", StatusNormal},
		{"low boundary is normal", "12.0", "12.0-15.5", StatusNormal},
		{"high boundary is normal", "15.5", "12.0-15.5", StatusNormal},
		{"spaced hyphen", "95", "70 - 100", StatusNormal},
		{"range embedded in text", "95", "Adults: 70-100 mg/dL", StatusNormal},
		{"first range pair wins", "5", "10-20 or 1-6", StatusLow},
		{"thousands separator in value", "6,200", "4500-11000", StatusNormal},
		{"integer bounds", "250", "150-200", StatusHigh},
		{"non-numeric value", "positive", "1-2", StatusUnknown},
		{"empty value", "", "1-2", StatusUnknown},
		{"empty range", "10.5", "", StatusUnknown},
		{"range without pair", "10.5", "see notes", StatusUnknown},
		{"single number range", "10.5", "12.0", StatusUnknown},
		{"malformed value with letters", "10.5x", "1-20", StatusUnknown},
		{"whitespace value", "   ", "1-2", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.value, tt.refRange)
			if got != tt.expected {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.value, tt.refRange, got, tt.expected)
			}
		})
	}
}

// Status must be a pure function of (value, range): identical inputs
// classify identically regardless of which parser produced them.
func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := Classify("10.5", "12.0-15.5"); got != StatusLow {
			t.Fatalf("iteration %d: got %q, want %q", i, got, StatusLow)
		}
	}
}
