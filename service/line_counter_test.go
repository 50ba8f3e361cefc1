package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcimlab/estudios/domain"
)

func TestCountLines(t *testing.T) {
	path := writeCatalog(t, "catalog.csv", []byte("Category,Subcategory\nYoga,Hatha\nTaichi,Chen\n"))

	counter := NewLineCounter()
	response, err := counter.CountLines(context.Background(), path, domain.DefaultEncodings())
	require.NoError(t, err)

	assert.Equal(t, 3, response.TotalLines)
	assert.Equal(t, 2, response.DataRows)
}

func TestCountLinesIncludesBlankLines(t *testing.T) {
	// Blank lines are physical lines and count like any other.
	path := writeCatalog(t, "blank.csv", []byte("Category\n\nYoga\n\n\n"))

	counter := NewLineCounter()
	response, err := counter.CountLines(context.Background(), path, domain.DefaultEncodings())
	require.NoError(t, err)

	assert.Equal(t, 5, response.TotalLines)
	assert.Equal(t, 4, response.DataRows)
}

func TestCountLinesNoTrailingNewline(t *testing.T) {
	path := writeCatalog(t, "notrail.csv", []byte("Category\nYoga"))

	counter := NewLineCounter()
	response, err := counter.CountLines(context.Background(), path, domain.DefaultEncodings())
	require.NoError(t, err)

	assert.Equal(t, 2, response.TotalLines)
	assert.Equal(t, 1, response.DataRows)
}

func TestCountLinesEmptyFile(t *testing.T) {
	path := writeCatalog(t, "empty.csv", nil)

	counter := NewLineCounter()
	response, err := counter.CountLines(context.Background(), path, domain.DefaultEncodings())
	require.NoError(t, err)

	assert.Equal(t, 0, response.TotalLines)
	assert.Equal(t, 0, response.DataRows, "data rows never go negative")
}

func TestCountLinesMissingFile(t *testing.T) {
	counter := NewLineCounter()
	_, err := counter.CountLines(context.Background(), "/nonexistent/catalog.csv", domain.DefaultEncodings())

	require.Error(t, err)
	var domainErr domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)
}

func TestCountLinesLatin1(t *testing.T) {
	path := writeCatalog(t, "latin1.csv", []byte("Category\nM\xe9dica\n"))

	counter := NewLineCounter()
	response, err := counter.CountLines(context.Background(), path, domain.DefaultEncodings())
	require.NoError(t, err)
	assert.Equal(t, 2, response.TotalLines)
}
