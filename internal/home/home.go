// Package home manages the labdecoder home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the home directory.
	DefaultDirName = ".labdecoder"

	// KnowledgeDirName is the subdirectory for reference text files.
	KnowledgeDirName = "knowledge"

	// KnowledgeDBName is the SQLite passage index file.
	KnowledgeDBName = "knowledge.db"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the labdecoder home directory structure.
type Dir struct {
	path string
}

// New creates a Dir with the given path. If path is empty, uses the
// default (~/.labdecoder).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// KnowledgePath returns the reference text directory.
func (d *Dir) KnowledgePath() string {
	return filepath.Join(d.path, KnowledgeDirName)
}

// KnowledgeDBPath returns the passage index location.
func (d *Dir) KnowledgeDBPath() string {
	return filepath.Join(d.path, KnowledgeDBName)
}

// ConfigPath returns the default config file location.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory tree if missing.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.path, d.KnowledgePath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
		}
	}
	return nil
}
