// Package prompts holds the prompt templates for the generation
// operations. Embedded .tmpl files are the source of truth; each
// template's required inputs are part of the contract with the
// generator call site.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/labdecoder/labdecoder/internal/extract"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template keys, matching the file names under templates/.
const (
	KeyExplain = "explain"
	KeyAnswer  = "answer"
	KeySummary = "summary"
)

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ExplainData feeds the explain template: one result plus retrieved
// context.
type ExplainData struct {
	Context string
	Result  extract.LabResult
}

// AnswerData feeds the answer template: a follow-up question, the full
// result set, and retrieved context.
type AnswerData struct {
	Context  string
	Question string
	Results  []extract.LabResult
}

// SummaryData feeds the summary template: abnormal results plus
// aggregate counts and retrieved context.
type SummaryData struct {
	Context     string
	NormalCount int
	Abnormal    []extract.LabResult
}

// Explain renders the single-result explanation prompt.
func Explain(data ExplainData) (string, error) {
	return render(KeyExplain, data)
}

// Answer renders the follow-up question prompt.
func Answer(data AnswerData) (string, error) {
	return render(KeyAnswer, data)
}

// Summary renders the overall summary prompt.
func Summary(data SummaryData) (string, error) {
	return render(KeySummary, data)
}

func render(key string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, key+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", key, err)
	}
	return sb.String(), nil
}
