package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "labdecoder",
	Short: "Lab report extraction and plain-language explanation service",
	Long: `Labdecoder ingests lab-report PDFs, extracts structured test results,
and explains them in plain language using retrieval-augmented generation.

The pipeline includes:
  - Table and pattern-based result extraction with status classification
  - Deduplication across extraction strategies
  - Full-text knowledge retrieval over a reference corpus
  - LLM-generated explanations, answers, and summaries`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.labdecoder/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "labdecoder home directory (default: ~/.labdecoder)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.AddCommand(versionCmd)
}
