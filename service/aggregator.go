package service

import (
	"context"
	"sort"
	"time"

	"github.com/tcimlab/estudios/domain"
	"github.com/tcimlab/estudios/internal/version"
)

// StudyServiceImpl implements the StudyService interface
type StudyServiceImpl struct{}

// NewStudyService creates a new study aggregation service
func NewStudyService() *StudyServiceImpl {
	return &StudyServiceImpl{}
}

// Aggregate performs a single pass over the records, grouping them by
// normalized category, subcategory and suitability level. Ranked views are
// ordered by count descending with ties broken by first appearance, so
// repeated runs over the same input produce identical output.
func (s *StudyServiceImpl) Aggregate(ctx context.Context, records []domain.Record, fields domain.FieldConfig) (*domain.Aggregation, error) {
	agg := &domain.Aggregation{
		Categories:    make(map[string]int),
		Subcategories: make(map[string]map[string]int),
		Suitability:   make(map[string]map[string]int),
		Studies:       make(map[string][]domain.Record),
	}

	catSeen := make(map[string]int)
	subSeen := make(map[string]map[string]int)

	for i, record := range records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		category := record.Get(fields.Category)
		subcategory := record.Get(fields.Subcategory)
		suitability := record.Get(fields.Suitability)

		if _, ok := catSeen[category]; !ok {
			catSeen[category] = len(catSeen)
			agg.Subcategories[category] = make(map[string]int)
			agg.Suitability[category] = make(map[string]int)
			subSeen[category] = make(map[string]int)
		}
		if _, ok := subSeen[category][subcategory]; !ok {
			subSeen[category][subcategory] = len(subSeen[category])
		}

		agg.Total++
		agg.Categories[category]++
		agg.Subcategories[category][subcategory]++
		agg.Suitability[category][suitability]++
		agg.Studies[category] = append(agg.Studies[category], record)
	}

	agg.RankedCategories = rankCounts(agg.Categories, catSeen)
	agg.RankedSubcategories = make(map[string][]domain.CountEntry, len(agg.Subcategories))
	for category, counts := range agg.Subcategories {
		agg.RankedSubcategories[category] = rankCounts(counts, subSeen[category])
	}

	return agg, nil
}

// Summarize converts an aggregation into the response shape used by the
// formatters. Category percentages are shares of the grand total;
// subcategory and suitability percentages are shares of their parent
// category.
func (s *StudyServiceImpl) Summarize(agg *domain.Aggregation) *domain.SummaryResponse {
	response := &domain.SummaryResponse{
		Total:       agg.Total,
		Categories:  make([]domain.CategorySummary, 0, len(agg.RankedCategories)),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	for _, entry := range agg.RankedCategories {
		summary := domain.CategorySummary{
			Name:    entry.Name,
			Count:   entry.Count,
			Percent: percentOf(entry.Count, agg.Total),
		}
		for _, sub := range agg.RankedSubcategories[entry.Name] {
			summary.Subcategories = append(summary.Subcategories, domain.RankedCount{
				Name:    sub.Name,
				Count:   sub.Count,
				Percent: percentOf(sub.Count, entry.Count),
			})
		}
		summary.Suitability = suitabilityBreakdown(agg.Suitability[entry.Name], entry.Count)
		response.Categories = append(response.Categories, summary)
	}

	return response
}

// suitabilityBreakdown orders the per-category suitability counts by the
// known level order, then any unexpected levels alphabetically.
func suitabilityBreakdown(counts map[string]int, categoryCount int) []domain.RankedCount {
	if len(counts) == 0 {
		return nil
	}

	known := domain.SuitabilityLevels()
	breakdown := make([]domain.RankedCount, 0, len(counts))
	seen := make(map[string]bool, len(known))
	for _, level := range known {
		seen[level] = true
		if count, ok := counts[level]; ok {
			breakdown = append(breakdown, domain.RankedCount{
				Name:    level,
				Count:   count,
				Percent: percentOf(count, categoryCount),
			})
		}
	}

	extras := make([]string, 0)
	for level := range counts {
		if !seen[level] {
			extras = append(extras, level)
		}
	}
	sort.Strings(extras)
	for _, level := range extras {
		breakdown = append(breakdown, domain.RankedCount{
			Name:    level,
			Count:   counts[level],
			Percent: percentOf(counts[level], categoryCount),
		})
	}

	return breakdown
}

// rankCounts orders counts descending, breaking ties by first appearance in
// the input.
func rankCounts(counts map[string]int, firstSeen map[string]int) []domain.CountEntry {
	entries := make([]domain.CountEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, domain.CountEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Name] < firstSeen[entries[j].Name]
	})
	return entries
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
