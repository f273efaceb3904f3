package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/form-atlas/pkg/models/domain"
)

// AggregateFindings returns the maximum severity across the findings; an
// empty set aggregates to Pass.
func AggregateFindings(findings []domain.Finding) domain.Severity {
	overall := domain.SeverityPass
	for _, f := range findings {
		if f.Severity > overall {
			overall = f.Severity
		}
	}
	return overall
}

type severityTally struct {
	passes   int
	warnings int
	errors   int
}

func tally(findings []domain.Finding) severityTally {
	var t severityTally
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			t.errors++
		case domain.SeverityWarning:
			t.warnings++
		default:
			t.passes++
		}
	}
	return t
}

// BuildSectionSummaries groups findings by category and summarizes each
// group. Output is ordered by severity descending, then category name
// ascending, so repeated runs over the same finding set are identical.
func BuildSectionSummaries(findings []domain.Finding) []domain.SectionSummary {
	grouped := make(map[string][]domain.Finding)
	var order []string
	for _, f := range findings {
		if _, seen := grouped[f.Category]; !seen {
			order = append(order, f.Category)
		}
		grouped[f.Category] = append(grouped[f.Category], f)
	}

	summaries := make([]domain.SectionSummary, 0, len(order))
	for _, category := range order {
		group := grouped[category]
		counts := tally(group)

		var parts []string
		if counts.passes > 0 {
			parts = append(parts, fmt.Sprintf("%d passes", counts.passes))
		}
		if counts.warnings > 0 {
			parts = append(parts, fmt.Sprintf("%d warnings", counts.warnings))
		}
		if counts.errors > 0 {
			parts = append(parts, fmt.Sprintf("%d errors", counts.errors))
		}

		confidence := 0.0
		for _, f := range group {
			confidence += f.Confidence
		}
		confidence /= float64(len(group))

		summaries = append(summaries, domain.SectionSummary{
			Section:    category,
			Severity:   AggregateFindings(group),
			Summary:    fmt.Sprintf("%s review: %s.", category, strings.Join(parts, ", ")),
			Confidence: confidence,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Severity != summaries[j].Severity {
			return summaries[i].Severity > summaries[j].Severity
		}
		return strings.ToLower(summaries[i].Section) < strings.ToLower(summaries[j].Section)
	})
	return summaries
}

// ComposeOverallSummary renders a one-sentence tally of the finding set.
func ComposeOverallSummary(findings []domain.Finding) string {
	if len(findings) == 0 {
		return "No automated findings generated."
	}
	counts := tally(findings)
	var parts []string
	if counts.errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", counts.errors))
	}
	if counts.warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", counts.warnings))
	}
	if counts.passes > 0 {
		parts = append(parts, fmt.Sprintf("%d check(s) passed", counts.passes))
	}
	return "Overall results: " + strings.Join(parts, ", ") + "."
}

// MergeFindings combines a base finding set with an additional one. Findings
// are keyed by id: an added finding with a known id replaces the base finding
// in place, new ids append in first-seen order. The added set always wins on
// collision.
func MergeFindings(base, added []domain.Finding) []domain.Finding {
	merged := make([]domain.Finding, 0, len(base)+len(added))
	index := make(map[string]int, len(base))

	for _, f := range base {
		if pos, seen := index[f.ID]; seen {
			merged[pos] = f
			continue
		}
		index[f.ID] = len(merged)
		merged = append(merged, f)
	}
	for _, f := range added {
		if pos, seen := index[f.ID]; seen {
			merged[pos] = f
			continue
		}
		index[f.ID] = len(merged)
		merged = append(merged, f)
	}
	return merged
}
