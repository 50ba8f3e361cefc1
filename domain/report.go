package domain

// ReportRequest represents a request for the interactive HTML report
type ReportRequest struct {
	// Input CSV files (or glob patterns) to aggregate
	Paths []string

	// Destination HTML path; empty means a timestamped file under the
	// configured reports directory
	OutputPath string

	// NoOpen suppresses auto-opening the report in a browser
	NoOpen bool

	// Report title
	Title string

	// Configuration
	ConfigPath string
	Fields     FieldConfig
	Encodings  []string
}

// ReportFormatter renders an aggregation as a self-contained interactive
// HTML page with per-category drill-down
type ReportFormatter interface {
	FormatReport(agg *Aggregation, fields FieldConfig, title string) (string, error)
}
