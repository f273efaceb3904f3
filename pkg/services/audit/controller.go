package audit

import (
	"context"
	"fmt"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/de-tools/form-atlas/pkg/services/filing"
	"github.com/de-tools/form-atlas/pkg/services/narrative"
	"github.com/de-tools/form-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
)

// Controller assembles audit reports. The deterministic battery always runs
// first; a narrator may propose additional or replacement findings, but the
// merged set, overall severity, section summaries and organization identity
// are recomputed and force-written afterwards, so the narrator can neither
// suppress a deterministic finding nor alter the aggregate.
type Controller struct {
	verifier registry.Verifier
	narrator narrative.AuditNarrator
}

// NewController creates an audit controller. Both collaborators are
// optional: a nil verifier degrades the EIN check, a nil narrator yields a
// deterministic-only report.
func NewController(verifier registry.Verifier, narrator narrative.AuditNarrator) *Controller {
	return &Controller{verifier: verifier, narrator: narrator}
}

// BuildReport runs the audit pipeline over one extraction payload (bare or
// wrapped under "extraction" with optional "metadata").
func (c *Controller) BuildReport(ctx context.Context, payload map[string]any) (domain.AuditReport, error) {
	logger := zerolog.Ctx(ctx)

	f, err := filing.Decode(filing.ExtractionPayload(payload))
	if err != nil {
		return domain.AuditReport{}, fmt.Errorf("invalid extraction payload: %w", err)
	}

	findings := RunChecks(ctx, f, c.verifier)

	metadata := map[string]any{}
	if raw, ok := payload["metadata"].(map[string]any); ok {
		metadata = raw
	}

	var draft domain.AuditReport
	if c.narrator != nil {
		draft, err = c.narrator.NarrateAudit(ctx, narrative.AuditContext{
			Filing:   f,
			Findings: findings,
			Metadata: metadata,
		})
		if err != nil {
			logger.Warn().Err(err).Str("ein", f.Org.EIN).Msg("audit narration failed; continuing with deterministic findings")
			draft = domain.AuditReport{}
		}
	}

	merged := MergeFindings(findings, draft.Findings)

	report := domain.AuditReport{
		OrgEIN:          f.Org.EIN,
		OrgName:         f.Org.LegalName,
		OverallSeverity: AggregateFindings(merged),
		Findings:        merged,
		Sections:        BuildSectionSummaries(merged),
		OverallSummary:  ComposeOverallSummary(merged),
		Notes:           draft.Notes,
	}

	// The filing's identity wins whenever it is populated.
	if report.OrgEIN == "" {
		report.OrgEIN = draft.OrgEIN
	}
	if report.OrgName == "" {
		report.OrgName = draft.OrgName
	}

	if year, ok := filing.CoerceYear(metadata["return_year"]); ok {
		report.Year = year
	}
	if report.Notes == "" {
		if source, ok := metadata["source"].(string); ok && source != "" {
			report.Notes = fmt.Sprintf("Reviewed data source: %s.", source)
		}
	}

	return report, nil
}
