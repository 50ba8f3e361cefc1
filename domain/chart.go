package domain

import (
	"io"
)

// ChartRequest represents a request for a static category bar chart
type ChartRequest struct {
	// Input CSV files (or glob patterns) to aggregate
	Paths []string

	// Destination PNG path
	OutputPath string

	// Chart appearance
	Title  string
	Width  int
	Height int

	// Configuration
	ConfigPath string
	Fields     FieldConfig
	Encodings  []string
}

// ChartRenderer renders an aggregation as a static image
type ChartRenderer interface {
	// Render writes the chart image for the aggregation to the writer
	Render(agg *Aggregation, req ChartRequest, w io.Writer) error
}
