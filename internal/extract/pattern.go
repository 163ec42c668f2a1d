package extract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

//go:embed rules_schema.json
var rulesSchemaJSON string

// Rule binds a family of synonymous test-name aliases to one compiled
// recognition expression. One rule matches any member of the family.
type Rule struct {
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"aliases"`
}

// ruleFile is the on-disk shape of a rule set.
type ruleFile struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// compiledRule pairs a rule with its expression. Submatch groups:
// 1 alias, 2 numeric value, 3 unit (optional), 4 reference range
// (optional).
type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// PatternSet scans free text for known test signatures. Rules are
// applied in order; all matches from all rules are collected.
// Overlapping matches from different rules are not reconciled here,
// that is Dedupe's job.
type PatternSet struct {
	rules []compiledRule
}

// DefaultPatterns returns the built-in rule set. The embedded rules are
// validated at build time by tests, so failure here is a programming
// error.
func DefaultPatterns() *PatternSet {
	ps, err := NewPatternSet(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules invalid: %v", err))
	}
	return ps
}

// NewPatternSet parses, validates, and compiles a YAML rule set.
func NewPatternSet(data []byte) (*PatternSet, error) {
	if err := validateRules(data); err != nil {
		return nil, err
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	ps := &PatternSet{rules: make([]compiledRule, 0, len(rf.Rules))}
	for _, rule := range rf.Rules {
		re, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		ps.rules = append(ps.rules, compiledRule{rule: rule, re: re})
	}
	return ps, nil
}

// LoadPatterns reads a rule set from a file. An empty path returns the
// built-in defaults.
func LoadPatterns(path string) (*PatternSet, error) {
	if path == "" {
		return DefaultPatterns(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	ps, err := NewPatternSet(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return ps, nil
}

// validateRules checks the rule document against the embedded JSON
// Schema before compilation, so malformed user files fail at
// construction with a precise message instead of at scan time.
func validateRules(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse rules: %w", err)
	}
	// jsonschema validates JSON-shaped values; round-trip through JSON
	// to normalize YAML map types.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to normalize rules: %w", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(jsonBytes, &jsonDoc); err != nil {
		return fmt.Errorf("failed to normalize rules: %w", err)
	}

	schema, err := jsonschema.CompileString("rules_schema.json", rulesSchemaJSON)
	if err != nil {
		return fmt.Errorf("failed to compile rules schema: %w", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// compileRule builds the recognition expression for one alias family.
// The template shape is: alias, optional colon, numeric value, optional
// unit, optional "Ref Range:" literal, optional low-high range. The
// "Ref Range:" literal is tried before the unit so a bare "Ref" is
// never mistaken for a unit token.
func compileRule(rule Rule) (*regexp.Regexp, error) {
	if len(rule.Aliases) == 0 {
		return nil, fmt.Errorf("no aliases")
	}

	// Longer aliases first so "Platelet Count" wins over "Platelet".
	aliases := make([]string, len(rule.Aliases))
	copy(aliases, rule.Aliases)
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i]) > len(aliases[j])
	})

	var alt bytes.Buffer
	for i, a := range aliases {
		if i > 0 {
			alt.WriteByte('|')
		}
		alt.WriteString(regexp.QuoteMeta(a))
	}

	pattern := fmt.Sprintf(
		`(?i)\b(%s)\s*:?\s*(\d(?:[\d,.]*\d)?)`+
			`(?:\s*(?:Ref\.?\s*Range:?|([a-zA-Z/%%][a-zA-Z\d/%%.^-]*)\s*(?:Ref\.?\s*Range:?)?))?`+
			`\s*([\d.]+\s*-\s*[\d.]+)?`,
		alt.String(),
	)
	return regexp.Compile(pattern)
}

// ParseText scans text for all non-overlapping matches of every rule,
// left to right, and emits one candidate per match.
func (ps *PatternSet) ParseText(text string) []LabResult {
	if text == "" {
		return nil
	}

	var results []LabResult
	for _, cr := range ps.rules {
		for _, m := range cr.re.FindAllStringSubmatch(text, -1) {
			results = append(results, newResult(
				strings.TrimSpace(m[1]),
				strings.TrimSpace(m[2]),
				strings.TrimSpace(m[3]),
				strings.TrimSpace(m[4]),
			))
		}
	}
	return results
}

// Rules returns the rule definitions in application order.
func (ps *PatternSet) Rules() []Rule {
	rules := make([]Rule, len(ps.rules))
	for i, cr := range ps.rules {
		rules[i] = cr.rule
	}
	return rules
}
