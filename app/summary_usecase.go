package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tcimlab/estudios/domain"
)

// SummaryUseCase orchestrates the catalog summary workflow
type SummaryUseCase struct {
	service      domain.StudyService
	reader       domain.StudyReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressReporter
	chart        domain.ChartRenderer
	writer       domain.ReportWriter
}

// NewSummaryUseCase creates a new summary use case
func NewSummaryUseCase(
	service domain.StudyService,
	reader domain.StudyReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
	progress domain.ProgressReporter,
	chart domain.ChartRenderer,
	writer domain.ReportWriter,
) *SummaryUseCase {
	return &SummaryUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
		chart:        chart,
		writer:       writer,
	}
}

// Execute performs the complete summary workflow
func (uc *SummaryUseCase) Execute(ctx context.Context, req domain.SummaryRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	_, agg, err := uc.aggregate(ctx, finalReq)
	if err != nil {
		return err
	}

	response := uc.service.Summarize(agg)

	// The chart is a side output: render failures are reported as warnings
	// and never fail the summary itself.
	if finalReq.ChartPath != "" {
		if err := uc.renderChart(agg, finalReq); err != nil {
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("chart skipped: %v", err))
		}
	}

	if uc.writer != nil && finalReq.OutputPath != "" {
		return uc.writer.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, true, func(w io.Writer) error {
			return uc.formatter.Write(response, finalReq.OutputFormat, w)
		})
	}

	if err := uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// Aggregate reads and aggregates the request's catalog files without
// formatting anything. Shared by the chart and report workflows.
func (uc *SummaryUseCase) Aggregate(ctx context.Context, req domain.SummaryRequest) (*domain.Aggregation, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	_, agg, err := uc.aggregate(ctx, finalReq)
	return agg, err
}

func (uc *SummaryUseCase) aggregate(ctx context.Context, req domain.SummaryRequest) ([]domain.Record, *domain.Aggregation, error) {
	files, err := uc.reader.CollectCSVFiles(req.Paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, domain.NewInvalidInputError("no catalog files found in the specified paths", nil)
	}

	if uc.progress != nil {
		uc.progress.StartProgress(len(files))
		defer uc.progress.FinishProgress()
	}

	var records []domain.Record
	for i, file := range files {
		fileRecords, err := uc.reader.ReadStudies(ctx, file, req.Encodings)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, fileRecords...)

		if uc.progress != nil {
			uc.progress.UpdateProgress(file, i, len(files))
		}
	}

	agg, err := uc.service.Aggregate(ctx, records, req.Fields)
	if err != nil {
		return nil, nil, err
	}

	return records, agg, nil
}

func (uc *SummaryUseCase) renderChart(agg *domain.Aggregation, req domain.SummaryRequest) error {
	if uc.chart == nil {
		return domain.NewRenderError("no chart renderer configured", nil)
	}

	file, err := os.Create(req.ChartPath)
	if err != nil {
		return domain.NewOutputError("failed to create chart file: "+req.ChartPath, err)
	}
	defer file.Close()

	chartReq := domain.ChartRequest{OutputPath: req.ChartPath}
	return uc.chart.Render(agg, chartReq, file)
}

// validateRequest validates the summary request
func (uc *SummaryUseCase) validateRequest(req domain.SummaryRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer is required")
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV:
		// Valid formats
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *SummaryUseCase) loadAndMergeConfig(req domain.SummaryRequest) (domain.SummaryRequest, error) {
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

	if configReq != nil {
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// SummaryUseCaseBuilder provides a builder pattern for creating SummaryUseCase
type SummaryUseCaseBuilder struct {
	service      domain.StudyService
	reader       domain.StudyReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressReporter
	chart        domain.ChartRenderer
	writer       domain.ReportWriter
}

// NewSummaryUseCaseBuilder creates a new builder
func NewSummaryUseCaseBuilder() *SummaryUseCaseBuilder {
	return &SummaryUseCaseBuilder{}
}

// WithService sets the aggregation service
func (b *SummaryUseCaseBuilder) WithService(service domain.StudyService) *SummaryUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the study reader
func (b *SummaryUseCaseBuilder) WithReader(reader domain.StudyReader) *SummaryUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *SummaryUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *SummaryUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *SummaryUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *SummaryUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithProgress sets the progress reporter
func (b *SummaryUseCaseBuilder) WithProgress(progress domain.ProgressReporter) *SummaryUseCaseBuilder {
	b.progress = progress
	return b
}

// WithChartRenderer sets the optional chart renderer
func (b *SummaryUseCaseBuilder) WithChartRenderer(chart domain.ChartRenderer) *SummaryUseCaseBuilder {
	b.chart = chart
	return b
}

// WithReportWriter sets the optional file output writer
func (b *SummaryUseCaseBuilder) WithReportWriter(writer domain.ReportWriter) *SummaryUseCaseBuilder {
	b.writer = writer
	return b
}

// Build creates the SummaryUseCase with the configured dependencies
func (b *SummaryUseCaseBuilder) Build() (*SummaryUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("study service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("study reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewSummaryUseCase(b.service, b.reader, b.formatter, b.configLoader, b.progress, b.chart, b.writer), nil
}
