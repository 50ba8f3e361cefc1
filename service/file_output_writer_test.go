package service

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcimlab/estudios/domain"
)

func TestFileOutputWriterToWriter(t *testing.T) {
	var status, out bytes.Buffer
	writer := NewFileOutputWriter(&status)

	err := writer.Write(&out, "", domain.OutputFormatText, true, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", out.String())
	assert.Empty(t, status.String(), "no status message when writing to a writer")
}

func TestFileOutputWriterToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	var status bytes.Buffer
	writer := NewFileOutputWriter(&status)

	err := writer.Write(nil, path, domain.OutputFormatJSON, true, func(w io.Writer) error {
		_, err := w.Write([]byte(`{"total":0}`))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"total":0}`, string(data))
	assert.Contains(t, status.String(), "JSON report generated")
}

func TestFileOutputWriterHTMLNoOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	var status bytes.Buffer
	writer := NewFileOutputWriter(&status)

	err := writer.Write(nil, path, domain.OutputFormatHTML, true, func(w io.Writer) error {
		_, err := w.Write([]byte("<!DOCTYPE html>"))
		return err
	})
	require.NoError(t, err)
	assert.Contains(t, status.String(), "HTML report generated")
}

func TestFileOutputWriterCreateFailure(t *testing.T) {
	var status bytes.Buffer
	writer := NewFileOutputWriter(&status)

	err := writer.Write(nil, "/nonexistent/dir/out.txt", domain.OutputFormatText, true, func(w io.Writer) error {
		return nil
	})
	assert.Error(t, err)
}
