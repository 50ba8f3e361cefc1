package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// CountEntry is one bucket of a ranked count: a label and how many records
// fell into it.
type CountEntry struct {
	Name  string
	Count int
}

// Aggregation is the complete grouped view of one catalog read. It is built
// once per run and never mutated afterwards; renderers only read from it.
type Aggregation struct {
	// Total number of records aggregated
	Total int

	// Raw counts per dimension
	Categories    map[string]int
	Subcategories map[string]map[string]int
	Suitability   map[string]map[string]int

	// Original records per category, in input order
	Studies map[string][]Record

	// Ranked views: count descending, ties broken by first occurrence in the
	// input. Deterministic for a given input order.
	RankedCategories    []CountEntry
	RankedSubcategories map[string][]CountEntry
}

// SummaryRequest represents a request for a grouped catalog summary
type SummaryRequest struct {
	// Input CSV files (or glob patterns) to aggregate
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file instead of OutputWriter
	ShowDetails  bool   // Include the per-category subcategory breakdown

	// Optional static chart rendered alongside the summary. Render failures
	// are reported as warnings and do not fail the run.
	ChartPath string

	// Configuration
	ConfigPath string
	Fields     FieldConfig
	Encodings  []string
}

// RankedCount is a display-ready count with its share of the parent total.
type RankedCount struct {
	Name    string
	Count   int
	Percent float64
}

// CategorySummary is the display-ready breakdown of one category. Percent is
// the category's share of the grand total; subcategory and suitability
// percentages are shares of the category itself.
type CategorySummary struct {
	Name          string
	Count         int
	Percent       float64
	Subcategories []RankedCount
	Suitability   []RankedCount
}

// SummaryResponse represents the complete summary result
type SummaryResponse struct {
	Total      int
	Categories []CategorySummary

	Warnings []string

	// Metadata
	GeneratedAt string
	Version     string
}

// StudyService defines the core aggregation logic
type StudyService interface {
	// Aggregate groups the records by category, subcategory and suitability
	Aggregate(ctx context.Context, records []Record, fields FieldConfig) (*Aggregation, error)

	// Summarize converts an aggregation into a display-ready summary
	Summarize(agg *Aggregation) *SummaryResponse
}

// StudyReader defines the interface for locating and reading catalog files
type StudyReader interface {
	// CollectCSVFiles expands glob patterns and validates that every input
	// path resolves to at least one existing file
	CollectCSVFiles(paths []string) ([]string, error)

	// ReadStudies reads one catalog file, attempting the given encodings in
	// order before falling back to a permissive replacement decode
	ReadStudies(ctx context.Context, path string, encodings []string) ([]Record, error)
}

// OutputFormatter defines the interface for formatting summary results
type OutputFormatter interface {
	// Format formats the summary according to the specified format
	Format(response *SummaryResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *SummaryResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*SummaryRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *SummaryRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *SummaryRequest, override *SummaryRequest) *SummaryRequest
}

// ProgressReporter reports per-file progress while reading catalogs
type ProgressReporter interface {
	StartProgress(totalFiles int)
	UpdateProgress(currentFile string, processed, total int)
	FinishProgress()
}
