package domain

// Default catalog column names. These match the headers of the TCIM study
// catalog exports the tool was written for.
const (
	DefaultCategoryField    = "Category"
	DefaultSubcategoryField = "Subcategory"
	DefaultSuitabilityField = "TCIM_suitability_level"
	DefaultTitleField       = "Title"
	DefaultAuthorField      = "Author"
	DefaultYearField        = "Year"
)

// Placeholders substituted for missing or blank classification values.
const (
	PlaceholderCategory    = "Sin categoría"
	PlaceholderSubcategory = "Sin subcategoría"
	PlaceholderSuitability = "Not applicable"
	PlaceholderTitle       = "[Sin título]"
	PlaceholderAuthor      = "[Sin autor]"
	PlaceholderYear        = "[Sin año]"
)

// DefaultEncodings returns the ordered list of encodings attempted when
// reading a catalog file. The first encoding that decodes cleanly wins; a
// permissive replacement decode is the last resort after all of these.
func DefaultEncodings() []string {
	return []string{"utf-8", "latin-1", "iso-8859-1", "cp1252", "utf-8-sig"}
}

// DefaultFieldConfig returns the field configuration for standard catalog
// exports.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Category:    Field{Name: DefaultCategoryField, Placeholder: PlaceholderCategory},
		Subcategory: Field{Name: DefaultSubcategoryField, Placeholder: PlaceholderSubcategory},
		Suitability: Field{Name: DefaultSuitabilityField, Placeholder: PlaceholderSuitability},
		Title:       Field{Name: DefaultTitleField, Placeholder: PlaceholderTitle},
		Author:      Field{Name: DefaultAuthorField, Placeholder: PlaceholderAuthor},
		Year:        Field{Name: DefaultYearField, Placeholder: PlaceholderYear},
	}
}

// SuitabilityLevels returns the known suitability levels in display order.
// Levels observed in the data but not listed here are appended after these.
func SuitabilityLevels() []string {
	return []string{"High", "Moderate", "Low", "Not applicable"}
}

// SuitabilityColor returns the display color for a suitability level.
func SuitabilityColor(level string) string {
	switch level {
	case "High":
		return "#2ecc71"
	case "Moderate":
		return "#f39c12"
	case "Low":
		return "#e74c3c"
	default:
		return "#95a5a6"
	}
}
