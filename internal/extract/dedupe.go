package extract

import "strings"

// identityKey detects duplicate candidates. Value is compared as an
// exact string, not numerically, so "10.5" and "10.50" are distinct
// identities.
type identityKey struct {
	testName string
	value    string
}

// Dedupe drops candidates whose (lower-cased test name, value) pair has
// already been seen, keeping the first occurrence in input order.
// Because table candidates are concatenated ahead of pattern
// candidates, table-derived results win when both parsers describe the
// same pair. Single pass, stable, idempotent.
func Dedupe(candidates []LabResult) []LabResult {
	seen := make(map[identityKey]struct{}, len(candidates))
	unique := make([]LabResult, 0, len(candidates))

	for _, c := range candidates {
		key := identityKey{testName: strings.ToLower(c.TestName), value: c.Value}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
