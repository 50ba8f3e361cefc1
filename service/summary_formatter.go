package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/tcimlab/estudios/domain"
)

// SummaryFormatterImpl implements the OutputFormatter interface
type SummaryFormatterImpl struct {
	utils       *FormatUtils
	showDetails bool
	useColors   bool
}

// NewSummaryFormatter creates a new summary formatter
func NewSummaryFormatter(showDetails, useColors bool) *SummaryFormatterImpl {
	return &SummaryFormatterImpl{
		utils:       NewFormatUtils(),
		showDetails: showDetails,
		useColors:   useColors,
	}
}

// Format formats the summary according to the specified format
func (f *SummaryFormatterImpl) Format(response *domain.SummaryResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(f.toSerializable(response))
	case domain.OutputFormatYAML:
		return EncodeYAML(f.toSerializable(response))
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer. JSON and YAML are
// streamed directly to the writer instead of going through a string.
func (f *SummaryFormatterImpl) Write(response *domain.SummaryResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, f.toSerializable(response))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, f.toSerializable(response))
	}

	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	_, err = writer.Write([]byte(output))
	if err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

func (f *SummaryFormatterImpl) formatText(response *domain.SummaryResponse) string {
	var builder strings.Builder

	title := "Study Distribution Summary"
	if f.useColors {
		title = ColorCyan + ColorBold + title + ColorReset
	}
	builder.WriteString(f.utils.FormatMainHeader(title))
	builder.WriteString(f.utils.FormatLabelWithIndent(0, "Total studies", response.Total))
	builder.WriteString(f.utils.FormatSectionSeparator())

	table := tablewriter.NewWriter(&builder)
	table.SetHeader([]string{"Category", "Count", "Share"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, category := range response.Categories {
		table.Append([]string{
			category.Name,
			strconv.Itoa(category.Count),
			f.utils.FormatPercentage(category.Percent),
		})
	}
	table.Render()

	if f.showDetails {
		for _, category := range response.Categories {
			builder.WriteString(f.utils.FormatSectionSeparator())
			builder.WriteString(f.utils.FormatSectionHeader(f.categoryHeading(category)))
			for _, sub := range category.Subcategories {
				builder.WriteString(fmt.Sprintf("%s%s: %d (%s)\n",
					strings.Repeat(" ", SectionPadding),
					sub.Name, sub.Count, f.utils.FormatPercentage(sub.Percent)))
			}
			if len(category.Suitability) > 0 {
				builder.WriteString(strings.Repeat(" ", SectionPadding) + "Suitability:\n")
				for _, level := range category.Suitability {
					builder.WriteString(fmt.Sprintf("%s%s: %d (%s)\n",
						strings.Repeat(" ", ItemPadding),
						f.suitabilityLabel(level.Name), level.Count, f.utils.FormatPercentage(level.Percent)))
				}
			}
		}
	}

	builder.WriteString(f.utils.FormatSectionSeparator())
	builder.WriteString(f.utils.FormatWarningsSection(response.Warnings))

	return builder.String()
}

func (f *SummaryFormatterImpl) suitabilityLabel(level string) string {
	if !f.useColors {
		return level
	}
	return f.utils.FormatSuitabilityWithColor(level)
}

func (f *SummaryFormatterImpl) categoryHeading(category domain.CategorySummary) string {
	name := category.Name
	if f.useColors {
		name = ColorBold + name + ColorReset
	}
	return fmt.Sprintf("%s (%d)", name, category.Count)
}

func (f *SummaryFormatterImpl) formatCSV(response *domain.SummaryResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write([]string{"category", "subcategory", "count", "percent"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, category := range response.Categories {
		row := []string{category.Name, "", strconv.Itoa(category.Count), fmt.Sprintf("%.1f", category.Percent)}
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
		for _, sub := range category.Subcategories {
			row := []string{category.Name, sub.Name, strconv.Itoa(sub.Count), fmt.Sprintf("%.1f", sub.Percent)}
			if err := writer.Write(row); err != nil {
				return "", domain.NewOutputError("failed to write CSV row", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV output", err)
	}

	return builder.String(), nil
}

// serializableSummary mirrors SummaryResponse with stable lowercase keys for
// JSON and YAML output.
type serializableSummary struct {
	Total       int                    `json:"total" yaml:"total"`
	Categories  []serializableCategory `json:"categories" yaml:"categories"`
	Warnings    []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string                 `json:"generated_at" yaml:"generated_at"`
	Version     string                 `json:"version" yaml:"version"`
}

type serializableCategory struct {
	Name          string              `json:"name" yaml:"name"`
	Count         int                 `json:"count" yaml:"count"`
	Percent       float64             `json:"percent" yaml:"percent"`
	Subcategories []serializableCount `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
	Suitability   []serializableCount `json:"suitability,omitempty" yaml:"suitability,omitempty"`
}

type serializableCount struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

func (f *SummaryFormatterImpl) toSerializable(response *domain.SummaryResponse) serializableSummary {
	out := serializableSummary{
		Total:       response.Total,
		Warnings:    response.Warnings,
		GeneratedAt: response.GeneratedAt,
		Version:     response.Version,
	}
	for _, category := range response.Categories {
		sc := serializableCategory{
			Name:    category.Name,
			Count:   category.Count,
			Percent: category.Percent,
		}
		if f.showDetails {
			for _, sub := range category.Subcategories {
				sc.Subcategories = append(sc.Subcategories, serializableCount(sub))
			}
			for _, level := range category.Suitability {
				sc.Suitability = append(sc.Suitability, serializableCount(level))
			}
		}
		out.Categories = append(out.Categories, sc)
	}
	return out
}
