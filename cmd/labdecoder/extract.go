package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/pdf"
)

var extractRulesFile string

var extractCmd = &cobra.Command{
	Use:   "extract <report.pdf>",
	Short: "Extract lab results from a PDF and print them",
	Long: `Extract structured lab results from a report PDF without starting
the server. Results print to stdout in the chosen output format.

Examples:
  labdecoder extract report.pdf
  labdecoder extract report.pdf -o json
  labdecoder extract report.pdf --rules my-rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		patterns, err := extract.LoadPatterns(extractRulesFile)
		if err != nil {
			return err
		}

		doc, err := pdf.Open(args[0])
		if err != nil {
			return err
		}

		results, err := extract.NewExtractor(patterns, logger).Extract(cmd.Context(), doc)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return extract.ErrNoResults
		}

		return printResults(results)
	},
}

func printResults(results []extract.LabResult) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(results)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func init() {
	extractCmd.Flags().StringVar(&extractRulesFile, "rules", "", "pattern rules file (default: built-in rules)")

	rootCmd.AddCommand(extractCmd)
}
