package analyst

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/de-tools/form-atlas/pkg/services/filing"
	"github.com/de-tools/form-atlas/pkg/services/narrative"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amounts = message.NewPrinter(language.English)

// Controller assembles multi-year performance reports. Snapshots and key
// metrics are computed before any narrative pass and force-written into the
// final report afterwards.
type Controller struct {
	narrator narrative.AnalystNarrator
}

// NewController creates a performance controller. A nil narrator yields a
// deterministic-only report.
func NewController(narrator narrative.AnalystNarrator) *Controller {
	return &Controller{narrator: narrator}
}

// BuildReport analyzes a batch of payload entries covering one organization
// across multiple fiscal years. Every entry must decode to a valid filing,
// resolve to a fiscal year and carry the same EIN; any violation rejects the
// whole batch.
func (c *Controller) BuildReport(ctx context.Context, payloads []map[string]any) (domain.AnalystReport, error) {
	logger := zerolog.Ctx(ctx)

	if len(payloads) == 0 {
		return domain.AnalystReport{}, fmt.Errorf("at least one payload entry is required for performance analysis")
	}

	bundles := make([]FilingBundle, 0, len(payloads))
	var orgEIN, orgName string

	for i, entry := range payloads {
		f, err := filing.Decode(filing.ExtractionPayload(entry))
		if err != nil {
			return domain.AnalystReport{}, fmt.Errorf("entry %d: %w", i, err)
		}

		year, err := filing.ResolveYear(entry, f)
		if err != nil {
			return domain.AnalystReport{}, fmt.Errorf("entry %d: %w", i, err)
		}

		if orgEIN == "" {
			orgEIN = f.Org.EIN
			orgName = f.Org.LegalName
		} else if f.Org.EIN != orgEIN {
			return domain.AnalystReport{}, fmt.Errorf(
				"entry %d: EIN %s does not match %s; all entries must belong to the same organization",
				i, f.Org.EIN, orgEIN)
		}

		bundles = append(bundles, FilingBundle{Year: year, Filing: f})
	}

	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Year < bundles[j].Year })

	snapshots := BuildSnapshots(bundles)
	metrics := BuildKeyMetrics(snapshots)
	notes := composeNotes(metrics)

	var draft domain.AnalystReport
	if c.narrator != nil {
		var err error
		draft, err = c.narrator.NarratePerformance(ctx, narrative.AnalystContext{
			OrgName:   orgName,
			OrgEIN:    orgEIN,
			Snapshots: snapshots,
			Metrics:   metrics,
			Notes:     notes,
		})
		if err != nil {
			logger.Warn().Err(err).Str("ein", orgEIN).Msg("performance narration failed; continuing with deterministic metrics")
			draft = domain.AnalystReport{}
		}
	}

	years := make([]int, 0, len(snapshots))
	for _, snap := range snapshots {
		years = append(years, snap.Year)
	}

	report := draft
	report.OrgName = orgName
	report.OrgEIN = orgEIN
	report.YearsAnalyzed = years
	report.KeyMetrics = metrics
	if report.Outlook == "" {
		report.Outlook = "Pending analysis"
	}
	return report, nil
}

// composeNotes summarizes the headline metrics for the narrator's context.
func composeNotes(metrics []domain.TrendMetric) []string {
	var notes []string
	if len(metrics) == 0 {
		return notes
	}

	if metrics[0].CAGR != nil {
		notes = append(notes, fmt.Sprintf("Revenue CAGR: %.2f%%", *metrics[0].CAGR*100))
	}
	if len(metrics) > 1 && metrics[1].CAGR != nil {
		notes = append(notes, fmt.Sprintf("Expense CAGR: %.2f%%", *metrics[1].CAGR*100))
	}
	for _, m := range metrics {
		if m.Name == "Operating Surplus" && len(m.Points) > 0 {
			latest := m.Points[len(m.Points)-1].Value
			notes = append(notes, amounts.Sprintf("Latest operating surplus: %.0f", latest))
			break
		}
	}
	return notes
}
