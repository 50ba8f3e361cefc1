package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcimlab/estudios/app"
	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/service"
)

var (
	// Output format flags (following pattern of other commands)
	summaryJSON bool
	summaryCSV  bool
	summaryYAML bool

	summaryOutputPath  string
	summaryShowDetails bool
	summaryChartPath   string

	summaryCategoryField    string
	summarySubcategoryField string
	summarySuitabilityField string
	summaryEncodings        []string
	summaryConfigPath       string
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary [paths...]",
	Short: "Summarize the study catalog by category",
	Long: `Summarize a study catalog grouped by category and subcategory.

Counts are ranked by size; ties keep the order in which the values first
appear in the catalog, so repeated runs over the same input are identical.
Blank classification values are counted under explicit placeholders rather
than dropped.

Examples:
  estudios summary catalog.csv              # Plain text summary
  estudios summary data/*.csv               # Aggregate several files
  estudios summary --json catalog.csv       # Output as JSON
  estudios summary --details catalog.csv    # Include subcategory breakdown
  estudios summary --chart dist.png catalog.csv  # Also render a PNG chart`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummaryCommand,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	// Output options
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
	summaryCmd.Flags().BoolVar(&summaryCSV, "csv", false, "Output as CSV")
	summaryCmd.Flags().BoolVar(&summaryYAML, "yaml", false, "Output as YAML")
	summaryCmd.Flags().StringVarP(&summaryOutputPath, "output", "o", "", "Write output to file instead of stdout")
	summaryCmd.Flags().BoolVar(&summaryShowDetails, "details", true, "Include the per-category subcategory breakdown")
	summaryCmd.Flags().StringVar(&summaryChartPath, "chart", "", "Also render a PNG bar chart to the given path")

	// Catalog field options
	summaryCmd.Flags().StringVar(&summaryCategoryField, "category-field", "", "Column holding the category")
	summaryCmd.Flags().StringVar(&summarySubcategoryField, "subcategory-field", "", "Column holding the subcategory")
	summaryCmd.Flags().StringVar(&summarySuitabilityField, "suitability-field", "", "Column holding the suitability level")
	summaryCmd.Flags().StringSliceVar(&summaryEncodings, "encoding", nil, "Encodings to try, in order")

	// Configuration
	summaryCmd.Flags().StringVarP(&summaryConfigPath, "config", "c", "", "Configuration file path")
}

func runSummaryCommand(cmd *cobra.Command, args []string) error {
	outputFormat := domain.OutputFormatText
	if summaryJSON {
		outputFormat = domain.OutputFormatJSON
	} else if summaryCSV {
		outputFormat = domain.OutputFormatCSV
	} else if summaryYAML {
		outputFormat = domain.OutputFormatYAML
	}

	// When --details is not given explicitly, the configuration decides.
	showDetails := summaryShowDetails
	if !flagChanged(cmd, "details") {
		if cfg, err := loadConfigOrDefault(summaryConfigPath); err == nil {
			showDetails = cfg.Output.ShowDetails
		}
	}

	request := domain.SummaryRequest{
		Paths:        args,
		OutputFormat: outputFormat,
		OutputWriter: os.Stdout,
		OutputPath:   summaryOutputPath,
		ShowDetails:  showDetails,
		ChartPath:    summaryChartPath,
		ConfigPath:   summaryConfigPath,
		Fields:       fieldOverrides(),
		Encodings:    summaryEncodings,
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	useColors := shouldUseColors() && outputFormat == domain.OutputFormatText && summaryOutputPath == ""

	studyService := service.NewStudyService()
	reader := service.NewStudyReader()
	formatter := service.NewSummaryFormatter(showDetails, useColors)
	progress := service.CreateProgressReporter(os.Stderr, len(args), verbose)

	summaryUseCase, err := app.NewSummaryUseCaseBuilder().
		WithService(studyService).
		WithReader(reader).
		WithFormatter(formatter).
		WithConfigLoader(service.NewConfigurationLoader()).
		WithProgress(progress).
		WithChartRenderer(service.NewChartRenderer()).
		WithReportWriter(service.NewFileOutputWriter(os.Stderr)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create summary use case: %w", err)
	}

	if err := summaryUseCase.Execute(cmd.Context(), request); err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}

	return nil
}

// fieldOverrides builds a partial field mapping from the CLI flags; unset
// fields fall through to the configuration defaults.
func fieldOverrides() domain.FieldConfig {
	var fields domain.FieldConfig
	if summaryCategoryField != "" {
		fields.Category = domain.Field{Name: summaryCategoryField, Placeholder: domain.PlaceholderCategory}
	}
	if summarySubcategoryField != "" {
		fields.Subcategory = domain.Field{Name: summarySubcategoryField, Placeholder: domain.PlaceholderSubcategory}
	}
	if summarySuitabilityField != "" {
		fields.Suitability = domain.Field{Name: summarySuitabilityField, Placeholder: domain.PlaceholderSuitability}
	}
	return fields
}
