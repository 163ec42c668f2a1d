// Package knowledge stores reference passages about lab tests and
// serves top-k retrieval for the RAG layer. The index is a SQLite FTS5
// table built from a directory of plain-text reference files; ranked
// full-text match stands in for the embedding search of the upstream
// knowledge base, which callers treat as a black box either way.
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	_ "modernc.org/sqlite"
)

// DefaultTopK is the passage count retrieved when callers pass k <= 0.
const DefaultTopK = 3

// minChunkLen filters out fragments too short to be a useful passage.
const minChunkLen = 40

// Store is a file-backed (or in-memory) passage index.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the passage index at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge db: %w", err)
	}

	if _, err := db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS passages
		USING fts5(content, source)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create passage index: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the index is reachable and non-empty.
func (s *Store) Ping(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM passages`).Scan(&count); err != nil {
		return fmt.Errorf("knowledge store unavailable: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("knowledge store is empty")
	}
	return nil
}

// Build indexes every .txt and .md file under dir, replacing any
// existing passages. Files are chunked on blank lines so each passage
// is one paragraph.
func (s *Store) Build(ctx context.Context, dir string) (int, error) {
	entries := make([]string, 0, 16)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan knowledge dir: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin indexing: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM passages`); err != nil {
		return 0, fmt.Errorf("failed to clear passage index: %w", err)
	}

	total := 0
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}

		source := filepath.Base(path)
		for _, chunk := range chunkText(string(data)) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO passages (content, source) VALUES (?, ?)`,
				chunk, source); err != nil {
				return 0, fmt.Errorf("failed to index passage from %s: %w", source, err)
			}
			total++
		}
		s.logger.Debug("indexed knowledge file", "file", source)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit passage index: %w", err)
	}

	s.logger.Info("knowledge index built", "files", len(entries), "passages", total)
	return total, nil
}

// Retrieve returns the top-k ranked passages for the query, joined by
// blank lines. An empty string with nil error means no passage matched.
func (s *Store) Retrieve(ctx context.Context, query string, k int) (string, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	match := ftsQuery(query)
	if match == "" {
		return "", nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM passages WHERE passages MATCH ? ORDER BY rank LIMIT ?`,
		match, k)
	if err != nil {
		return "", fmt.Errorf("passage query failed: %w", err)
	}
	defer rows.Close()

	var passages []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return "", fmt.Errorf("passage scan failed: %w", err)
		}
		passages = append(passages, content)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("passage query failed: %w", err)
	}

	return strings.Join(passages, "\n\n"), nil
}

// chunkText splits a document into paragraph passages on blank lines.
func chunkText(text string) []string {
	var chunks []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if len(block) >= minChunkLen {
			chunks = append(chunks, block)
		}
	}
	return chunks
}

// ftsQuery converts free text into an FTS5 match expression:
// alphanumeric tokens only, quoted, OR-combined so any term can match.
// Quoting keeps FTS operators in user text from reaching the parser.
func ftsQuery(query string) string {
	tokens := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	quoted := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		quoted = append(quoted, `"`+tok+`"`)
	}
	return strings.Join(quoted, " OR ")
}
