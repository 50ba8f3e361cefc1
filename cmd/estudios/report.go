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
	reportOutputPath string
	reportTitle      string
	reportNoOpen     bool
	reportConfigPath string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [paths...]",
	Short: "Generate an interactive HTML report",
	Long: `Generate a self-contained interactive HTML report of the study catalog.

The report shows a stacked bar chart of categories split by suitability
level; clicking a bar drills down into the subcategories and the individual
studies of that category. The page opens in the default browser unless
--no-open is given or the session is not interactive.

Examples:
  estudios report catalog.csv             # Timestamped report, opened in browser
  estudios report -o report.html catalog.csv
  estudios report --no-open catalog.csv   # Generate without opening`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReportCommand,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOutputPath, "output", "o", "", "Output HTML path (default: timestamped file under the reports directory)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Report title")
	reportCmd.Flags().BoolVar(&reportNoOpen, "no-open", false, "Don't auto-open the report in a browser")
	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "c", "", "Configuration file path")
}

func runReportCommand(cmd *cobra.Command, args []string) error {
	outputPath := reportOutputPath
	if outputPath == "" {
		var err error
		outputPath, err = generateOutputFilePath("report", "html", reportConfigPath)
		if err != nil {
			return err
		}
	}

	title := reportTitle
	if title == "" {
		title = defaultReportTitle(reportConfigPath)
	}

	request := domain.ReportRequest{
		Paths:      args,
		OutputPath: outputPath,
		NoOpen:     reportNoOpen || !isInteractiveEnvironment(),
		Title:      title,
		ConfigPath: reportConfigPath,
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	reportUseCase := app.NewReportUseCase(
		service.NewStudyService(),
		service.NewStudyReader(),
		service.NewHTMLFormatter(),
		service.NewConfigurationLoader(),
		service.CreateProgressReporter(os.Stderr, len(args), verbose),
		service.NewFileOutputWriter(os.Stderr),
	)

	if err := reportUseCase.Execute(cmd.Context(), request); err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	return nil
}

func defaultReportTitle(configPath string) string {
	cfg, _ := loadConfigOrDefault(configPath)
	return cfg.Report.Title
}
