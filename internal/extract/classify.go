package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// rangePattern matches the first "<low> - <high>" pair in a reference
// range string. Hyphen may be surrounded by whitespace.
var rangePattern = regexp.MustCompile(`([\d.]+)\s*-\s*([\d.]+)`)

// Classify determines whether a measured value falls below, inside, or
// above its reference range. The bounds form an inclusive normal
// interval. Grouping commas in the value are stripped before parsing.
//
// Classify is total: any value or range that does not parse yields
// StatusUnknown. It never panics and holds no state, so it is safe for
// concurrent use.
func Classify(value, refRange string) Status {
	val, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), 64)
	if err != nil {
		return StatusUnknown
	}

	m := rangePattern.FindStringSubmatch(refRange)
	if m == nil {
		return StatusUnknown
	}
	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return StatusUnknown
	}
	high, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return StatusUnknown
	}

	switch {
	case val < low:
		return StatusLow
	case val > high:
		return StatusHigh
	default:
		return StatusNormal
	}
}
