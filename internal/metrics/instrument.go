package metrics

import (
	"context"
	"time"

	"github.com/labdecoder/labdecoder/internal/providers"
)

// InstrumentGenerator wraps gen so every call is recorded. A nil
// recorder returns gen unwrapped.
func InstrumentGenerator(gen providers.Generator, rec *Recorder) providers.Generator {
	if rec == nil {
		return gen
	}
	return &meteredGenerator{gen: gen, rec: rec}
}

type meteredGenerator struct {
	gen providers.Generator
	rec *Recorder
}

var _ providers.Generator = (*meteredGenerator)(nil)

func (g *meteredGenerator) Name() string  { return g.gen.Name() }
func (g *meteredGenerator) Model() string { return g.gen.Model() }

func (g *meteredGenerator) Generate(ctx context.Context, req *providers.GenerateRequest) (*providers.GenerateResult, error) {
	start := time.Now()
	result, err := g.gen.Generate(ctx, req)

	m := Metric{
		Provider: g.gen.Name(),
		Model:    g.gen.Model(),
		Seconds:  time.Since(start).Seconds(),
		Success:  err == nil,
	}
	if result != nil {
		m.Model = result.ModelUsed
		m.PromptTokens = result.PromptTokens
		m.CompletionTokens = result.CompletionTokens
		m.TotalTokens = result.TotalTokens
	}
	g.rec.Record(m)

	return result, err
}
