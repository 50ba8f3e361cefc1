package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcimlab/estudios/app"
	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/service"
)

var linesEncodings []string

// linesCmd represents the lines command
var linesCmd = &cobra.Command{
	Use:   "lines <file>",
	Short: "Count the lines of a catalog file",
	Long: `Count the physical lines and data rows of a catalog file, using the
same encoding tolerance as the summary command.

Examples:
  estudios lines catalog.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runLinesCommand,
}

func init() {
	rootCmd.AddCommand(linesCmd)

	linesCmd.Flags().StringSliceVar(&linesEncodings, "encoding", nil, "Encodings to try, in order")
}

func runLinesCommand(cmd *cobra.Command, args []string) error {
	request := domain.LineCountRequest{
		Path:         args[0],
		Encodings:    linesEncodings,
		OutputWriter: os.Stdout,
	}

	linesUseCase := app.NewLinesUseCase(service.NewLineCounter(), service.NewConfigurationLoader())

	if err := linesUseCase.Execute(cmd.Context(), request); err != nil {
		return fmt.Errorf("line count failed: %w", err)
	}

	return nil
}
