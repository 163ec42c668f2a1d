// Package rag explains extracted lab results in plain language. It
// assembles task-specific prompts from results plus retrieved reference
// passages and calls a generation backend. Every operation degrades
// rather than fails: retrieval trouble substitutes a sentinel context
// blob and generation trouble substitutes a fixed apology, so a request
// is never aborted downstream of extraction.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/prompts"
	"github.com/labdecoder/labdecoder/internal/providers"
)

// Sentinel strings substituted when a collaborator degrades.
const (
	noContextSentinel = "No relevant medical reference information available."
	generationApology = "Sorry, I could not generate an explanation for this result right now."
	allNormalSummary  = "Great news! All your lab results are within normal ranges. Keep up the good work with your health!"
	noResultsSummary  = "No lab results are available to summarize."
	explainSystemRole = "You are a helpful assistant that explains medical lab results in plain language. You are not a doctor and you remind users to consult one for medical advice."
	defaultRetrievalK = 3
	summaryRetrievalK = 4
)

// Retriever is the semantic-search collaborator. Implementations
// return a concatenated context blob; empty means nothing matched.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (string, error)
}

// Service is the long-lived RAG engine, constructed once at process
// start and injected into request handlers.
type Service struct {
	retriever Retriever
	generator providers.Generator
	logger    *slog.Logger
}

// New creates a Service. Both collaborators are required.
func New(retriever Retriever, generator providers.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{retriever: retriever, generator: generator, logger: logger}
}

// Explain generates a plain-language explanation for one result.
func (s *Service) Explain(ctx context.Context, result extract.LabResult) string {
	query := fmt.Sprintf("%s %s meaning causes treatment", result.TestName, result.Status)
	blob := s.retrieve(ctx, query, defaultRetrievalK)

	prompt, err := prompts.Explain(prompts.ExplainData{Context: blob, Result: result})
	if err != nil {
		s.logger.Error("explain prompt render failed", "test", result.TestName, "error", err)
		return generationApology
	}
	return s.generate(ctx, prompt)
}

// ExplainAll generates explanations for every result, keyed by test
// name. Calls are sequential: the generator is assumed blocking,
// one-at-a-time per request.
func (s *Service) ExplainAll(ctx context.Context, results []extract.LabResult) map[string]string {
	explanations := make(map[string]string, len(results))
	for _, r := range results {
		s.logger.Debug("explaining result", "test", r.TestName)
		explanations[r.TestName] = s.Explain(ctx, r)
	}
	return explanations
}

// Answer responds to a follow-up question in the context of the
// patient's results.
func (s *Service) Answer(ctx context.Context, question string, results []extract.LabResult) string {
	blob := s.retrieve(ctx, question, defaultRetrievalK)

	prompt, err := prompts.Answer(prompts.AnswerData{
		Context:  blob,
		Question: question,
		Results:  results,
	})
	if err != nil {
		s.logger.Error("answer prompt render failed", "error", err)
		return generationApology
	}
	return s.generate(ctx, prompt)
}

// Summarize produces an overall summary. When every result is normal
// no generation happens: a fixed reassuring message is returned.
func (s *Service) Summarize(ctx context.Context, results []extract.LabResult) string {
	if len(results) == 0 {
		return noResultsSummary
	}

	var abnormal []extract.LabResult
	normalCount := 0
	for _, r := range results {
		switch r.Status {
		case extract.StatusHigh, extract.StatusLow:
			abnormal = append(abnormal, r)
		case extract.StatusNormal:
			normalCount++
		}
	}
	if len(abnormal) == 0 {
		return allNormalSummary
	}

	queries := make([]string, len(abnormal))
	for i, r := range abnormal {
		queries[i] = fmt.Sprintf("%s %s", r.TestName, r.Status)
	}
	blob := s.retrieve(ctx, strings.Join(queries, " "), summaryRetrievalK)

	prompt, err := prompts.Summary(prompts.SummaryData{
		Context:     blob,
		NormalCount: normalCount,
		Abnormal:    abnormal,
	})
	if err != nil {
		s.logger.Error("summary prompt render failed", "error", err)
		return generationApology
	}
	return s.generate(ctx, prompt)
}

// retrieve queries the knowledge collaborator, substituting the
// sentinel blob when the store is unavailable or nothing matches.
func (s *Service) retrieve(ctx context.Context, query string, k int) string {
	blob, err := s.retriever.Retrieve(ctx, query, k)
	if err != nil {
		s.logger.Warn("retrieval unavailable, continuing without context", "error", err)
		return noContextSentinel
	}
	if strings.TrimSpace(blob) == "" {
		return noContextSentinel
	}
	return blob
}

// generate calls the generation collaborator, substituting the fixed
// apology on failure. Generation errors never propagate.
func (s *Service) generate(ctx context.Context, prompt string) string {
	result, err := s.generator.Generate(ctx, &providers.GenerateRequest{
		System: explainSystemRole,
		Prompt: prompt,
	})
	if err != nil {
		s.logger.Error("generation failed", "provider", s.generator.Name(), "error", err)
		return generationApology
	}
	return result.Content
}
