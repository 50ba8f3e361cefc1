package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcimlab/estudios/domain"
)

func sampleAggregation(t *testing.T) *domain.Aggregation {
	t.Helper()

	records := []domain.Record{
		{
			"Category":               "Acupuntura",
			"Subcategory":            "Auricular",
			"TCIM_suitability_level": "High",
			"Title":                  "Auricular acupuncture for chronic pain",
			"Author":                 "García",
			"Year":                   "2019",
		},
		{
			"Category":               "Acupuntura",
			"Subcategory":            "Electro",
			"TCIM_suitability_level": "Moderate",
			"Title":                  "Electroacupuncture & the <knee>",
			"Author":                 "Liu",
			"Year":                   "2021",
		},
		{
			"Category": "Yoga",
		},
	}

	svc := NewStudyService()
	agg, err := svc.Aggregate(context.Background(), records, domain.DefaultFieldConfig())
	require.NoError(t, err)
	return agg
}

func TestFormatReportStructure(t *testing.T) {
	formatter := NewHTMLFormatter()

	html, err := formatter.FormatReport(sampleAggregation(t), domain.DefaultFieldConfig(), "Distribution of Studies")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Distribution of Studies</title>")
	assert.Contains(t, html, "cdn.plot.ly/plotly-2.27.0.min.js")
	assert.Contains(t, html, "Acupuntura")
	assert.Contains(t, html, "plotly_click")
}

func TestFormatReportEmbedsStudies(t *testing.T) {
	formatter := NewHTMLFormatter()

	html, err := formatter.FormatReport(sampleAggregation(t), domain.DefaultFieldConfig(), "Report")
	require.NoError(t, err)

	assert.Contains(t, html, "Auricular acupuncture for chronic pain")
	assert.Contains(t, html, "García")
	// Records with blank details fall back to placeholders
	assert.Contains(t, html, "[Sin título]")
}

func TestFormatReportSuitabilityColors(t *testing.T) {
	formatter := NewHTMLFormatter()

	html, err := formatter.FormatReport(sampleAggregation(t), domain.DefaultFieldConfig(), "Report")
	require.NoError(t, err)

	for _, level := range domain.SuitabilityLevels() {
		assert.Contains(t, html, domain.SuitabilityColor(level))
	}
}

func TestFormatReportEmptyAggregation(t *testing.T) {
	svc := NewStudyService()
	agg, err := svc.Aggregate(context.Background(), nil, domain.DefaultFieldConfig())
	require.NoError(t, err)

	formatter := NewHTMLFormatter()
	html, err := formatter.FormatReport(agg, domain.DefaultFieldConfig(), "Empty")
	require.NoError(t, err)
	assert.Contains(t, html, "0 studies")
}
