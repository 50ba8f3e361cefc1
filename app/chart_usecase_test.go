package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/service"
)

func newChartUseCaseForTest() *ChartUseCase {
	return NewChartUseCase(
		service.NewStudyService(),
		service.NewStudyReader(),
		service.NewChartRenderer(),
		service.NewConfigurationLoader(),
		service.NewNoOpProgressReporter(),
	)
}

func TestChartUseCaseExecute(t *testing.T) {
	catalog := writeTestCatalog(t)
	output := filepath.Join(t.TempDir(), "chart.png")

	req := domain.ChartRequest{
		Paths:      []string{catalog},
		OutputPath: output,
		Title:      "Distribución",
		Width:      800,
		Height:     400,
	}

	err := newChartUseCaseForTest().Execute(context.Background(), req)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}), "output should be a PNG image")
}

func TestChartUseCaseValidation(t *testing.T) {
	useCase := newChartUseCaseForTest()

	err := useCase.Execute(context.Background(), domain.ChartRequest{OutputPath: "chart.png"})
	assert.Error(t, err)

	err = useCase.Execute(context.Background(), domain.ChartRequest{Paths: []string{"catalog.csv"}})
	assert.Error(t, err)

	err = useCase.Execute(context.Background(), domain.ChartRequest{
		Paths:      []string{"catalog.csv"},
		OutputPath: "chart.png",
		Width:      -1,
	})
	assert.Error(t, err)
}

func TestChartUseCaseEmptyCatalogFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Category,Subcategory\n"), 0o644))

	req := domain.ChartRequest{
		Paths:      []string{path},
		OutputPath: filepath.Join(t.TempDir(), "chart.png"),
	}

	// The dedicated chart command treats a render failure as fatal, unlike
	// the summary command's chart flag.
	err := newChartUseCaseForTest().Execute(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_ERROR")
}
