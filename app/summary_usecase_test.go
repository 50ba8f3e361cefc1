package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tcimlab/estudios/domain"
)

// Mock implementations
type mockStudyService struct {
	mock.Mock
}

func (m *mockStudyService) Aggregate(ctx context.Context, records []domain.Record, fields domain.FieldConfig) (*domain.Aggregation, error) {
	args := m.Called(ctx, records, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aggregation), args.Error(1)
}

func (m *mockStudyService) Summarize(agg *domain.Aggregation) *domain.SummaryResponse {
	args := m.Called(agg)
	return args.Get(0).(*domain.SummaryResponse)
}

type mockStudyReader struct {
	mock.Mock
}

func (m *mockStudyReader) CollectCSVFiles(paths []string) ([]string, error) {
	args := m.Called(paths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStudyReader) ReadStudies(ctx context.Context, path string, encodings []string) ([]domain.Record, error) {
	args := m.Called(ctx, path, encodings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

type mockOutputFormatter struct {
	mock.Mock
}

func (m *mockOutputFormatter) Format(response *domain.SummaryResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockOutputFormatter) Write(response *domain.SummaryResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigurationLoader struct {
	mock.Mock
}

func (m *mockConfigurationLoader) LoadConfig(path string) (*domain.SummaryRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryRequest), args.Error(1)
}

func (m *mockConfigurationLoader) LoadDefaultConfig() *domain.SummaryRequest {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.SummaryRequest)
}

func (m *mockConfigurationLoader) MergeConfig(base *domain.SummaryRequest, override *domain.SummaryRequest) *domain.SummaryRequest {
	args := m.Called(base, override)
	return args.Get(0).(*domain.SummaryRequest)
}

type mockProgressReporter struct {
	mock.Mock
}

func (m *mockProgressReporter) StartProgress(totalFiles int) {
	m.Called(totalFiles)
}

func (m *mockProgressReporter) UpdateProgress(currentFile string, processed, total int) {
	m.Called(currentFile, processed, total)
}

func (m *mockProgressReporter) FinishProgress() {
	m.Called()
}

type mockChartRenderer struct {
	mock.Mock
}

func (m *mockChartRenderer) Render(agg *domain.Aggregation, req domain.ChartRequest, w io.Writer) error {
	args := m.Called(agg, req, w)
	return args.Error(0)
}

// Helper functions
func setupSummaryUseCaseMocks() (*SummaryUseCase, *mockStudyService, *mockStudyReader, *mockOutputFormatter) {
	service := &mockStudyService{}
	reader := &mockStudyReader{}
	formatter := &mockOutputFormatter{}

	useCase := NewSummaryUseCase(service, reader, formatter, nil, nil, nil, nil)
	return useCase, service, reader, formatter
}

func createValidSummaryRequest() domain.SummaryRequest {
	return domain.SummaryRequest{
		Paths:        []string{"catalog.csv"},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &bytes.Buffer{},
		Fields:       domain.DefaultFieldConfig(),
		Encodings:    domain.DefaultEncodings(),
	}
}

func sampleAggregation() *domain.Aggregation {
	return &domain.Aggregation{
		Total:            2,
		Categories:       map[string]int{"Yoga": 2},
		RankedCategories: []domain.CountEntry{{Name: "Yoga", Count: 2}},
	}
}

func TestSummaryUseCaseExecute(t *testing.T) {
	useCase, service, reader, formatter := setupSummaryUseCaseMocks()
	req := createValidSummaryRequest()

	records := []domain.Record{{"Category": "Yoga"}, {"Category": "Yoga"}}
	agg := sampleAggregation()
	response := &domain.SummaryResponse{Total: 2}

	reader.On("CollectCSVFiles", req.Paths).Return([]string{"catalog.csv"}, nil)
	reader.On("ReadStudies", mock.Anything, "catalog.csv", req.Encodings).Return(records, nil)
	service.On("Aggregate", mock.Anything, records, req.Fields).Return(agg, nil)
	service.On("Summarize", agg).Return(response)
	formatter.On("Write", response, domain.OutputFormatText, req.OutputWriter).Return(nil)

	err := useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	reader.AssertExpectations(t)
	service.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestSummaryUseCaseValidation(t *testing.T) {
	useCase, _, _, _ := setupSummaryUseCaseMocks()

	tests := []struct {
		name    string
		mutate  func(*domain.SummaryRequest)
		message string
	}{
		{"no paths", func(r *domain.SummaryRequest) { r.Paths = nil }, "no input paths"},
		{"no writer", func(r *domain.SummaryRequest) { r.OutputWriter = nil }, "output writer"},
		{"bad format", func(r *domain.SummaryRequest) { r.OutputFormat = "xml" }, "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createValidSummaryRequest()
			tt.mutate(&req)

			err := useCase.Execute(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSummaryUseCaseReadFailureIsFatal(t *testing.T) {
	useCase, _, reader, _ := setupSummaryUseCaseMocks()
	req := createValidSummaryRequest()

	readErr := domain.NewFileNotFoundError("catalog.csv", nil)
	reader.On("CollectCSVFiles", req.Paths).Return([]string{"catalog.csv"}, nil)
	reader.On("ReadStudies", mock.Anything, "catalog.csv", req.Encodings).Return(nil, readErr)

	err := useCase.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILE_NOT_FOUND")
}

func TestSummaryUseCaseCollectFailureIsFatal(t *testing.T) {
	useCase, _, reader, _ := setupSummaryUseCaseMocks()
	req := createValidSummaryRequest()

	reader.On("CollectCSVFiles", req.Paths).Return(nil, domain.NewFileNotFoundError("catalog.csv", nil))

	err := useCase.Execute(context.Background(), req)
	require.Error(t, err)
}

func TestSummaryUseCaseChartFailureIsWarning(t *testing.T) {
	service := &mockStudyService{}
	reader := &mockStudyReader{}
	formatter := &mockOutputFormatter{}
	renderer := &mockChartRenderer{}

	useCase := NewSummaryUseCase(service, reader, formatter, nil, nil, renderer, nil)

	req := createValidSummaryRequest()
	req.ChartPath = t.TempDir() + "/chart.png"

	records := []domain.Record{{"Category": "Yoga"}}
	agg := sampleAggregation()
	response := &domain.SummaryResponse{Total: 1}

	reader.On("CollectCSVFiles", req.Paths).Return([]string{"catalog.csv"}, nil)
	reader.On("ReadStudies", mock.Anything, "catalog.csv", req.Encodings).Return(records, nil)
	service.On("Aggregate", mock.Anything, records, req.Fields).Return(agg, nil)
	service.On("Summarize", agg).Return(response)
	renderer.On("Render", agg, mock.Anything, mock.Anything).Return(errors.New("render exploded"))
	formatter.On("Write", response, domain.OutputFormatText, req.OutputWriter).Return(nil)

	err := useCase.Execute(context.Background(), req)
	require.NoError(t, err, "chart failures must not fail the summary")

	require.Len(t, response.Warnings, 1)
	assert.Contains(t, response.Warnings[0], "chart skipped")
}

func TestSummaryUseCaseMultipleFiles(t *testing.T) {
	useCase, service, reader, formatter := setupSummaryUseCaseMocks()
	req := createValidSummaryRequest()
	req.Paths = []string{"a.csv", "b.csv"}

	recordsA := []domain.Record{{"Category": "Yoga"}}
	recordsB := []domain.Record{{"Category": "Taichi"}}
	combined := append(append([]domain.Record{}, recordsA...), recordsB...)
	agg := sampleAggregation()
	response := &domain.SummaryResponse{Total: 2}

	reader.On("CollectCSVFiles", req.Paths).Return([]string{"a.csv", "b.csv"}, nil)
	reader.On("ReadStudies", mock.Anything, "a.csv", req.Encodings).Return(recordsA, nil)
	reader.On("ReadStudies", mock.Anything, "b.csv", req.Encodings).Return(recordsB, nil)
	service.On("Aggregate", mock.Anything, combined, req.Fields).Return(agg, nil)
	service.On("Summarize", agg).Return(response)
	formatter.On("Write", response, domain.OutputFormatText, req.OutputWriter).Return(nil)

	require.NoError(t, useCase.Execute(context.Background(), req))
	service.AssertExpectations(t)
}

func TestSummaryUseCaseBuilderRequiredDeps(t *testing.T) {
	_, err := NewSummaryUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewSummaryUseCaseBuilder().
		WithService(&mockStudyService{}).
		WithReader(&mockStudyReader{}).
		Build()
	assert.Error(t, err)

	useCase, err := NewSummaryUseCaseBuilder().
		WithService(&mockStudyService{}).
		WithReader(&mockStudyReader{}).
		WithFormatter(&mockOutputFormatter{}).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, useCase)
}
