package knowledge

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func writeKnowledgeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	hemoglobin := `Hemoglobin is the protein in red blood cells that carries oxygen throughout the body.

Low hemoglobin levels may indicate anemia, which can be caused by iron deficiency, chronic disease, or blood loss.

Iron-rich foods such as red meat, beans, and leafy greens can help raise hemoglobin levels.`

	glucose := `Glucose is the main sugar found in blood and the body's primary source of energy.

High fasting glucose levels may indicate prediabetes or diabetes and warrant follow-up testing.`

	if err := os.WriteFile(filepath.Join(dir, "hemoglobin.txt"), []byte(hemoglobin), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "glucose.md"), []byte(glucose), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestBuildAndRetrieve(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	count, err := store.Build(ctx, writeKnowledgeDir(t))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 passages, got %d", count)
	}

	got, err := store.Retrieve(ctx, "hemoglobin low anemia", 2)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(got), "anemia") {
		t.Errorf("expected anemia passage, got %q", got)
	}
	if n := len(strings.Split(got, "\n\n")); n > 2 {
		t.Errorf("expected at most 2 passages, got %d", n)
	}
}

func TestRetrieveNoMatch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Build(ctx, writeKnowledgeDir(t)); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got, err := store.Retrieve(ctx, "xylophone", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestRetrieveQuerySanitized(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Build(ctx, writeKnowledgeDir(t)); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// FTS5 operators and punctuation in the query must not error.
	for _, q := range []string{`glucose AND NOT "x`, `(high) -low`, `*`, ``} {
		if _, err := store.Retrieve(ctx, q, 3); err != nil {
			t.Errorf("Retrieve(%q) failed: %v", q, err)
		}
	}
}

func TestPing(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err == nil {
		t.Error("expected error for empty store")
	}

	if _, err := store.Build(ctx, writeKnowledgeDir(t)); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed on populated store: %v", err)
	}
}

func TestBuildReplacesExisting(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	dir := writeKnowledgeDir(t)

	if _, err := store.Build(ctx, dir); err != nil {
		t.Fatal(err)
	}
	count, err := store.Build(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("rebuild should replace, not append: got %d passages", count)
	}
}

func TestChunkText(t *testing.T) {
	chunks := chunkText("short\n\n" + strings.Repeat("a", minChunkLen) + "\n\n  \n\n" + strings.Repeat("b", minChunkLen+5))
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
}

func TestFTSQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hemoglobin low", `"hemoglobin" OR "low"`},
		{`"quoted" (grouped)`, `"quoted" OR "grouped"`},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := ftsQuery(tt.input); got != tt.expected {
			t.Errorf("ftsQuery(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
