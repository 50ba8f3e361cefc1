package service

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/internal/config"
)

// ChartRendererImpl renders a static PNG bar chart of study counts per
// category.
type ChartRendererImpl struct{}

// NewChartRenderer creates a new chart renderer
func NewChartRenderer() *ChartRendererImpl {
	return &ChartRendererImpl{}
}

// Render draws the ranked category counts as a bar chart and writes the PNG
// bytes to w.
func (r *ChartRendererImpl) Render(agg *domain.Aggregation, req domain.ChartRequest, w io.Writer) error {
	if agg == nil || len(agg.RankedCategories) == 0 {
		return domain.NewRenderError("no categories to chart", nil)
	}

	bars := make([]chart.Value, 0, len(agg.RankedCategories))
	maxCount := 0
	for _, entry := range agg.RankedCategories {
		if entry.Count > maxCount {
			maxCount = entry.Count
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", entry.Name, entry.Count),
			Value: float64(entry.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("4e79a7"),
				StrokeColor: drawing.ColorFromHex("365070"),
				StrokeWidth: 1,
			},
		})
	}

	width, height := req.Width, req.Height
	if width <= 0 {
		width = config.DefaultChartWidth
	}
	if height <= 0 {
		height = config.DefaultChartHeight
	}
	title := req.Title
	if title == "" {
		title = config.DefaultChartTitle
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		// An explicit range keeps the renderer from rejecting the chart when
		// every category shares the same count (min == max).
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return domain.NewRenderError("failed to render chart", err)
	}

	return nil
}

// barWidth spreads the bars across the drawable area, leaving room for the
// default inter-bar spacing.
func barWidth(chartWidth, bars int) int {
	if bars == 0 {
		return 0
	}
	width := (chartWidth - 100) / (bars * 2)
	if width < 10 {
		width = 10
	}
	if width > 80 {
		width = 80
	}
	return width
}
