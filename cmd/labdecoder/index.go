package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/labdecoder/labdecoder/internal/home"
	"github.com/labdecoder/labdecoder/internal/knowledge"
)

var indexDBPath string

var indexCmd = &cobra.Command{
	Use:   "index [knowledge-dir]",
	Short: "Build the knowledge index from reference text files",
	Long: `Index the reference corpus used for retrieval-augmented explanations.

All .txt and .md files under the given directory (default:
~/.labdecoder/knowledge) are chunked into passages and indexed.
Re-running replaces the existing index.

Examples:
  labdecoder index                      # Index ~/.labdecoder/knowledge
  labdecoder index ./medical-reference  # Index a custom directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		dir := h.KnowledgePath()
		if len(args) == 1 {
			dir = args[0]
		}
		dbPath := indexDBPath
		if dbPath == "" {
			dbPath = h.KnowledgeDBPath()
		}

		store, err := knowledge.Open(dbPath, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := store.Build(cmd.Context(), dir)
		if err != nil {
			return err
		}

		fmt.Printf("indexed %d passages into %s\n", count, dbPath)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexDBPath, "db", "", "index location (default: ~/.labdecoder/knowledge.db)")

	rootCmd.AddCommand(indexCmd)
}
