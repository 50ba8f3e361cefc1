package domain

import (
	"context"
	"io"
)

// LineCountRequest represents a request to count the lines of a catalog file
type LineCountRequest struct {
	Path         string
	Encodings    []string
	OutputWriter io.Writer
}

// LineCountResponse holds the raw line count of a catalog file
type LineCountResponse struct {
	// TotalLines includes the header row
	TotalLines int

	// DataRows is TotalLines minus the header row, never negative
	DataRows int
}

// LineCounter counts lines under the same encoding tolerance as the reader
type LineCounter interface {
	CountLines(ctx context.Context, path string, encodings []string) (*LineCountResponse, error)
}
