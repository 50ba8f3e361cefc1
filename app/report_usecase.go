package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tcimlab/estudios/domain"
)

// ReportUseCase orchestrates the interactive HTML report workflow
type ReportUseCase struct {
	service      domain.StudyService
	reader       domain.StudyReader
	formatter    domain.ReportFormatter
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressReporter
	writer       domain.ReportWriter
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(
	service domain.StudyService,
	reader domain.StudyReader,
	formatter domain.ReportFormatter,
	configLoader domain.ConfigurationLoader,
	progress domain.ProgressReporter,
	writer domain.ReportWriter,
) *ReportUseCase {
	return &ReportUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
		writer:       writer,
	}
}

// Execute aggregates the catalog, renders the HTML report and writes it to
// the output path, opening it in a browser unless suppressed.
func (uc *ReportUseCase) Execute(ctx context.Context, req domain.ReportRequest) error {
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

	html, err := uc.formatter.FormatReport(agg, finalReq.Fields, finalReq.Title)
	if err != nil {
		return err
	}

	return uc.writer.Write(os.Stdout, finalReq.OutputPath, domain.OutputFormatHTML, finalReq.NoOpen, func(w io.Writer) error {
		_, err := w.Write([]byte(html))
		return err
	})
}

func (uc *ReportUseCase) aggregate(ctx context.Context, req domain.ReportRequest) (*domain.Aggregation, error) {
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

func (uc *ReportUseCase) validateRequest(req domain.ReportRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	if req.OutputPath == "" {
		return fmt.Errorf("report output path is required")
	}
	return nil
}

func (uc *ReportUseCase) loadAndMergeConfig(req domain.ReportRequest) (domain.ReportRequest, error) {
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
