package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		placeholder string
		expected    string
	}{
		{"plain value", "Acupuncture", "Sin categoría", "Acupuncture"},
		{"surrounding whitespace trimmed", "  Yoga  ", "Sin categoría", "Yoga"},
		{"empty value replaced", "", "Sin categoría", "Sin categoría"},
		{"whitespace only replaced", "   ", "Sin categoría", "Sin categoría"},
		{"tabs and newlines replaced", "\t\n", "Sin subcategoría", "Sin subcategoría"},
		{"inner whitespace preserved", "Mind  Body", "Sin categoría", "Mind  Body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.value, tt.placeholder))
		})
	}
}

func TestRecordGet(t *testing.T) {
	record := Record{
		"Category":    "  Herbal medicine ",
		"Subcategory": "",
	}
	category := Field{Name: "Category", Placeholder: "Sin categoría"}
	subcategory := Field{Name: "Subcategory", Placeholder: "Sin subcategoría"}
	suitability := Field{Name: "TCIM_suitability_level", Placeholder: "Not applicable"}

	assert.Equal(t, "Herbal medicine", record.Get(category))
	assert.Equal(t, "Sin subcategoría", record.Get(subcategory))

	// Missing columns behave like blank values
	assert.Equal(t, "Not applicable", record.Get(suitability))
}

func TestDefaultFieldConfig(t *testing.T) {
	fields := DefaultFieldConfig()

	assert.Equal(t, DefaultCategoryField, fields.Category.Name)
	assert.Equal(t, PlaceholderCategory, fields.Category.Placeholder)
	assert.Equal(t, DefaultSubcategoryField, fields.Subcategory.Name)
	assert.Equal(t, PlaceholderSubcategory, fields.Subcategory.Placeholder)
	assert.Equal(t, DefaultSuitabilityField, fields.Suitability.Name)
	assert.Equal(t, PlaceholderSuitability, fields.Suitability.Placeholder)
}

func TestSuitabilityColors(t *testing.T) {
	for _, level := range SuitabilityLevels() {
		assert.NotEmpty(t, SuitabilityColor(level), "level %q should map to a color", level)
	}

	// Unknown levels fall back to the neutral color
	assert.Equal(t, SuitabilityColor("Not applicable"), SuitabilityColor("something else"))
}
