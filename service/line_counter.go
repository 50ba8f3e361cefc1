package service

import (
	"context"
	"os"
	"strings"

	"github.com/tcimlab/estudios/domain"
)

// LineCounterImpl implements the LineCounter interface
type LineCounterImpl struct{}

// NewLineCounter creates a new line counter service
func NewLineCounter() *LineCounterImpl {
	return &LineCounterImpl{}
}

// CountLines counts the physical lines of a catalog file and the data rows
// it holds (lines minus the header). Decoding follows the same fallback
// chain as the reader so byte counts are not skewed by encoding noise.
func (c *LineCounterImpl) CountLines(ctx context.Context, path string, encodings []string) (*domain.LineCountResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError("cannot read file: "+path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := decodeWithFallback(data, encodings)

	// Every physical line counts, blank ones included. Splitting leaves one
	// empty element after a trailing newline; only that one is dropped.
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	total := len(lines)

	response := &domain.LineCountResponse{TotalLines: total}
	if total > 0 {
		response.DataRows = total - 1
	}

	return response, nil
}
