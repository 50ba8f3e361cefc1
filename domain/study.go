package domain

import (
	"strings"
)

// Record is a single row of the study catalog, keyed by the header field name.
// Values are kept exactly as read; normalization happens on access.
type Record map[string]string

// Field names a CSV column together with the placeholder substituted when the
// column is absent or blank.
type Field struct {
	Name        string
	Placeholder string
}

// FieldConfig names the catalog columns the aggregator and the renderers care
// about. It is passed explicitly instead of living in package globals so that
// callers can point the tool at differently-labelled catalogs.
type FieldConfig struct {
	Category    Field
	Subcategory Field
	Suitability Field
	Title       Field
	Author      Field
	Year        Field
}

// Get returns the normalized value of the given field for this record.
func (r Record) Get(f Field) string {
	return NormalizeText(r[f.Name], f.Placeholder)
}

// NormalizeText trims surrounding whitespace and substitutes the placeholder
// when the trimmed value is empty.
func NormalizeText(value, placeholder string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return placeholder
	}
	return trimmed
}
