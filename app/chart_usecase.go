package app

import (
	"context"
	"fmt"
	"os"

	"github.com/tcimlab/estudios/domain"
)

// ChartUseCase orchestrates the static chart workflow
type ChartUseCase struct {
	service      domain.StudyService
	reader       domain.StudyReader
	renderer     domain.ChartRenderer
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressReporter
}

// NewChartUseCase creates a new chart use case
func NewChartUseCase(
	service domain.StudyService,
	reader domain.StudyReader,
	renderer domain.ChartRenderer,
	configLoader domain.ConfigurationLoader,
	progress domain.ProgressReporter,
) *ChartUseCase {
	return &ChartUseCase{
		service:      service,
		reader:       reader,
		renderer:     renderer,
		configLoader: configLoader,
		progress:     progress,
	}
}

// Execute aggregates the catalog and writes the PNG chart. Unlike the chart
// flag of the summary workflow, a render failure here fails the run.
func (uc *ChartUseCase) Execute(ctx context.Context, req domain.ChartRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	agg, err := uc.aggregate(ctx, finalReq)
	if err != nil {
		return err
	}

	file, err := os.Create(finalReq.OutputPath)
	if err != nil {
		return domain.NewOutputError("failed to create chart file: "+finalReq.OutputPath, err)
	}
	defer file.Close()

	return uc.renderer.Render(agg, finalReq, file)
}

func (uc *ChartUseCase) aggregate(ctx context.Context, req domain.ChartRequest) (*domain.Aggregation, error) {
	files, err := uc.reader.CollectCSVFiles(req.Paths)
	if err != nil {
		return nil, err
	}

	if uc.progress != nil {
		uc.progress.StartProgress(len(files))
		defer uc.progress.FinishProgress()
	}

	var records []domain.Record
	for i, file := range files {
		fileRecords, err := uc.reader.ReadStudies(ctx, file, req.Encodings)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)

		if uc.progress != nil {
			uc.progress.UpdateProgress(file, i, len(files))
		}
	}

	return uc.service.Aggregate(ctx, records, req.Fields)
}

func (uc *ChartUseCase) validateRequest(req domain.ChartRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if req.OutputPath == "" {
		return fmt.Errorf("chart output path is required")
	}
	if req.Width < 0 || req.Height < 0 {
		return fmt.Errorf("chart dimensions cannot be negative")
	}
	return nil
}

func (uc *ChartUseCase) loadAndMergeConfig(req domain.ChartRequest) (domain.ChartRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.SummaryRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq == nil {
		return req, nil
	}

	merged := req
	if merged.Fields.Category.Name == "" {
		merged.Fields = configReq.Fields
	}
	if len(merged.Encodings) == 0 {
		merged.Encodings = configReq.Encodings
	}
	return merged, nil
}
