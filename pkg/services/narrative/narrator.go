// Package narrative holds the language-model collaborator boundary. The
// narrator proposes draft reports; report assembly never trusts its numeric
// fields over the deterministic computation.
package narrative

import (
	"context"

	"github.com/de-tools/form-atlas/pkg/models/domain"
)

// AuditContext is everything the narrator receives for a single-filing audit.
type AuditContext struct {
	Filing   domain.Filing
	Findings []domain.Finding
	Metadata map[string]any
}

// AnalystContext is everything the narrator receives for a multi-year
// performance analysis.
type AnalystContext struct {
	OrgName   string
	OrgEIN    string
	Snapshots []domain.YearlySnapshot
	Metrics   []domain.TrendMetric
	Notes     []string
}

type AuditNarrator interface {
	NarrateAudit(ctx context.Context, audit AuditContext) (domain.AuditReport, error)
}

type AnalystNarrator interface {
	NarratePerformance(ctx context.Context, performance AnalystContext) (domain.AnalystReport, error)
}
