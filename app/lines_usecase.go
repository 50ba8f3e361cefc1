package app

import (
	"context"
	"fmt"

	"github.com/tcimlab/estudios/domain"
)

// LinesUseCase orchestrates the line count workflow
type LinesUseCase struct {
	counter      domain.LineCounter
	configLoader domain.ConfigurationLoader
}

// NewLinesUseCase creates a new line count use case
func NewLinesUseCase(counter domain.LineCounter, configLoader domain.ConfigurationLoader) *LinesUseCase {
	return &LinesUseCase{counter: counter, configLoader: configLoader}
}

// Execute counts the lines of the catalog file and prints the result
func (uc *LinesUseCase) Execute(ctx context.Context, req domain.LineCountRequest) error {
	if req.Path == "" {
		return domain.NewInvalidInputError("no input path specified", nil)
	}
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}

	encodings := req.Encodings
	if len(encodings) == 0 && uc.configLoader != nil {
		if cfg := uc.configLoader.LoadDefaultConfig(); cfg != nil {
			encodings = cfg.Encodings
		}
	}

	response, err := uc.counter.CountLines(ctx, req.Path, encodings)
	if err != nil {
		return err
	}

	fmt.Fprintf(req.OutputWriter, "%s: %d lines (%d data rows)\n", req.Path, response.TotalLines, response.DataRows)
	return nil
}
