package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tcimlab/estudios/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "estudios",
	Short: "Study catalog aggregation and reporting",
	Long: `estudios aggregates a CSV catalog of research studies by category,
subcategory and suitability level, and renders the distribution as plain
text, machine-readable data, a static chart or an interactive HTML report.

Features:
  • Single-pass aggregation with deterministic ranking
  • Encoding-tolerant CSV reading (UTF-8, Latin-1, CP1252)
  • Static PNG bar charts
  • Interactive HTML reports with per-category drill-down`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
