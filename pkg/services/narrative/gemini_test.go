package narrative

import (
	"context"
	"testing"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuditDraft(t *testing.T) {
	raw := []byte(`{
		"organization_ein": "12-3456789",
		"organization_name": "Community Health Alliance",
		"overall_severity": "Warning",
		"findings": [
			{
				"check_id": "board_hours",
				"category": "Governance",
				"severity": "Warning",
				"message": "Board hours appear understated.",
				"confidence": 0.6
			}
		],
		"notes": "Narrative context attached."
	}`)

	draft, err := parseAuditDraft(raw)
	require.NoError(t, err)

	assert.Equal(t, "12-3456789", draft.OrgEIN)
	assert.Equal(t, domain.SeverityWarning, draft.OverallSeverity)
	require.Len(t, draft.Findings, 1)
	assert.Equal(t, "board_hours", draft.Findings[0].ID)
	assert.Equal(t, domain.SeverityWarning, draft.Findings[0].Severity)
	assert.Equal(t, "Narrative context attached.", draft.Notes)
}

func TestParseAuditDraft_Malformed(t *testing.T) {
	_, err := parseAuditDraft([]byte("I am unable to produce JSON."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse audit draft")
}

func TestParsePerformanceDraft(t *testing.T) {
	raw := []byte(`{
		"organization_name": "Community Health Alliance",
		"organization_ein": "12-3456789",
		"years_analyzed": [2021, 2022],
		"key_metrics": [
			{
				"name": "Total Revenue",
				"unit": "USD",
				"points": [{"year": 2021, "value": 1000}, {"year": 2022, "value": 1100, "growth": 0.1}],
				"cagr": 0.1,
				"direction": "Improving"
			}
		],
		"insights": [
			{"category": "Revenue", "direction": "Improving", "summary": "Contributions are growing.", "confidence": 0.7}
		],
		"recommendations": ["Diversify funding sources."],
		"outlook": "Strong"
	}`)

	draft, err := parsePerformanceDraft(raw)
	require.NoError(t, err)

	assert.Equal(t, []int{2021, 2022}, draft.YearsAnalyzed)
	require.Len(t, draft.KeyMetrics, 1)
	assert.Equal(t, domain.TrendImproving, draft.KeyMetrics[0].Direction)
	require.NotNil(t, draft.KeyMetrics[0].CAGR)
	assert.InDelta(t, 0.1, *draft.KeyMetrics[0].CAGR, 1e-9)
	require.Len(t, draft.Insights, 1)
	assert.Equal(t, "Contributions are growing.", draft.Insights[0].Summary)
	assert.Equal(t, "Strong", draft.Outlook)
}

func TestParsePerformanceDraft_Malformed(t *testing.T) {
	_, err := parsePerformanceDraft([]byte("[]"))
	require.Error(t, err)
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	require.Error(t, err)
}
