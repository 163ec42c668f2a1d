package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// fakeDocument is an in-memory Document for orchestrator tests.
type fakeDocument struct {
	texts     []string
	tables    [][][][]string
	textErrs  map[int]error
	tableErrs map[int]error
}

func (d *fakeDocument) Pages() int { return len(d.texts) }

func (d *fakeDocument) Text(_ context.Context, page int) (string, error) {
	if err := d.textErrs[page]; err != nil {
		return "", err
	}
	return d.texts[page], nil
}

func (d *fakeDocument) Tables(_ context.Context, page int) ([][][]string, error) {
	if err := d.tableErrs[page]; err != nil {
		return nil, err
	}
	if page >= len(d.tables) {
		return nil, nil
	}
	return d.tables[page], nil
}

func testExtractor() *Extractor {
	return NewExtractor(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtractTableAndPattern(t *testing.T) {
	doc := &fakeDocument{
		texts: []string{"Glucose: 95 mg/dL Ref Range: 70-100"},
		tables: [][][][]string{{{
			{"Test", "Value", "Unit", "Range"},
			{"Hemoglobin", "10.5", "g/dL", "12.0-15.5"},
		}}},
	}

	results, err := testExtractor().Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	// Table candidates precede pattern candidates.
	if results[0].TestName != "Hemoglobin" || results[0].Status != StatusLow {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].TestName != "Glucose" || results[1].Status != StatusNormal {
		t.Errorf("unexpected second result: %+v", results[1])
	}
}

// A result discoverable both in a table and via pattern match must
// appear exactly once, sourced from the table.
func TestExtractTablePrecedence(t *testing.T) {
	doc := &fakeDocument{
		texts: []string{"Hemoglobin 10.5"},
		tables: [][][][]string{{{
			{"Test", "Value", "Unit", "Range"},
			{"Hemoglobin", "10.5", "g/dL", "12.0-15.5"},
		}}},
	}

	results, err := testExtractor().Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d: %+v", len(results), results)
	}
	if results[0].Unit != "g/dL" || results[0].Status != StatusLow {
		t.Errorf("pattern candidate shadowed table candidate: %+v", results[0])
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	results, err := testExtractor().Extract(context.Background(), &fakeDocument{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}

// A failing page contributes nothing; later pages still extract.
func TestExtractPageFailureRecovered(t *testing.T) {
	doc := &fakeDocument{
		texts: []string{"Hemoglobin 10.5 g/dL 12.0-15.5", "Glucose: 95 mg/dL Ref Range: 70-100"},
		textErrs: map[int]error{
			0: errors.New("page decode failed"),
		},
		tableErrs: map[int]error{
			0: errors.New("page decode failed"),
		},
	}

	results, err := testExtractor().Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(results) != 1 || results[0].TestName != "Glucose" {
		t.Errorf("expected only glucose from page 2, got %+v", results)
	}
}

func TestExtractContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testExtractor().Extract(ctx, &fakeDocument{texts: []string{"x"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// Page order determines candidate order, which determines dedupe
// precedence across pages.
func TestExtractPageOrderStable(t *testing.T) {
	doc := &fakeDocument{
		texts: []string{
			"Hemoglobin 10.5 g/dL 12.0-15.5",
			"Hemoglobin 10.5",
		},
	}

	results, err := testExtractor().Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d: %+v", len(results), results)
	}
	if results[0].ReferenceRange != "12.0-15.5" {
		t.Errorf("page 1 candidate should win: %+v", results[0])
	}
}
