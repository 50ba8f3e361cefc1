package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding/charmap"

	"github.com/tcimlab/estudios/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StudyReaderImpl implements the StudyReader interface
type StudyReaderImpl struct{}

// NewStudyReader creates a new study reader service
func NewStudyReader() *StudyReaderImpl {
	return &StudyReaderImpl{}
}

// CollectCSVFiles expands glob patterns and validates input paths. Every
// argument must resolve to at least one existing file.
func (r *StudyReaderImpl) CollectCSVFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.ContainsAny(path, "*?[{") {
			matches, err := doublestar.FilepathGlob(path)
			if err != nil {
				return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", path), err)
			}
			if len(matches) == 0 {
				return nil, domain.NewFileNotFoundError(path, nil)
			}
			files = append(files, matches...)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		if info.IsDir() {
			matches, err := doublestar.FilepathGlob(filepath.Join(path, "*.csv"))
			if err != nil || len(matches) == 0 {
				return nil, domain.NewInvalidInputError(fmt.Sprintf("no CSV files found in directory: %s", path), err)
			}
			files = append(files, matches...)
			continue
		}
		files = append(files, path)
	}

	return files, nil
}

// ReadStudies reads one catalog file and returns its rows keyed by the
// header fields. The configured encodings are attempted strictly in order;
// when none decodes cleanly, a permissive decode substitutes the Unicode
// replacement character for undecodable bytes.
func (r *StudyReaderImpl) ReadStudies(ctx context.Context, path string, encodings []string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot read file: %s", path), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A UTF-8 BOM is valid UTF-8, so the strict utf-8 attempt would keep it
	// and corrupt the first header name. Strip it before decoding.
	data = bytes.TrimPrefix(data, utf8BOM)

	text := decodeWithFallback(data, encodings)

	records, err := parseCSV(text, csvDelimiter(path))
	if err != nil {
		return nil, domain.NewDecodeError(path, err)
	}

	return records, nil
}

// decodeWithFallback tries each named encoding strictly, in order, and falls
// back to replacing undecodable bytes when none succeeds.
func decodeWithFallback(data []byte, encodings []string) string {
	for _, name := range encodings {
		if text, err := decode(data, name); err == nil {
			return text
		}
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// decode decodes data under a single named encoding, failing rather than
// substituting when the bytes do not fit.
func decode(data []byte, name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 input")
		}
		return string(data), nil
	case "utf-8-sig":
		trimmed := bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(trimmed) {
			return "", fmt.Errorf("invalid UTF-8 input")
		}
		return string(trimmed), nil
	case "latin-1", "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "cp1252", "windows-1252":
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unknown encoding: %s", name)
	}
}

// csvDelimiter picks the field delimiter from the file extension.
func csvDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseCSV parses the decoded text into records keyed by the header row.
// Rows shorter than the header simply lack the trailing fields; the
// aggregator substitutes placeholders for them.
func parseCSV(text string, delimiter rune) ([]domain.Record, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
