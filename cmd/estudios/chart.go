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
	chartOutputPath string
	chartTitle      string
	chartWidth      int
	chartHeight     int
	chartConfigPath string
)

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart [paths...]",
	Short: "Render a PNG bar chart of studies per category",
	Long: `Render the category distribution of a study catalog as a static PNG
bar chart. Categories are ordered by study count.

Examples:
  estudios chart catalog.csv                      # Timestamped PNG under the reports dir
  estudios chart -o dist.png catalog.csv          # Explicit output path
  estudios chart --title "Estudios 2026" catalog.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChartCommand,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartOutputPath, "output", "o", "", "Output PNG path (default: timestamped file under the reports directory)")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "Chart title")
	chartCmd.Flags().IntVar(&chartWidth, "width", 0, "Chart width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 0, "Chart height in pixels")
	chartCmd.Flags().StringVarP(&chartConfigPath, "config", "c", "", "Configuration file path")
}

func runChartCommand(cmd *cobra.Command, args []string) error {
	outputPath := chartOutputPath
	if outputPath == "" {
		var err error
		outputPath, err = generateOutputFilePath("chart", "png", chartConfigPath)
		if err != nil {
			return err
		}
	}

	// Appearance flags fall back to the configuration file.
	cfg, _ := loadConfigOrDefault(chartConfigPath)
	title, width, height := chartTitle, chartWidth, chartHeight
	if title == "" {
		title = cfg.Chart.Title
	}
	if width == 0 {
		width = cfg.Chart.Width
	}
	if height == 0 {
		height = cfg.Chart.Height
	}

	request := domain.ChartRequest{
		Paths:      args,
		OutputPath: outputPath,
		Title:      title,
		Width:      width,
		Height:     height,
		ConfigPath: chartConfigPath,
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	chartUseCase := app.NewChartUseCase(
		service.NewStudyService(),
		service.NewStudyReader(),
		service.NewChartRenderer(),
		service.NewConfigurationLoader(),
		service.CreateProgressReporter(os.Stderr, len(args), verbose),
	)

	if err := chartUseCase.Execute(cmd.Context(), request); err != nil {
		return fmt.Errorf("chart generation failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Chart generated: %s\n", outputPath)
	return nil
}
