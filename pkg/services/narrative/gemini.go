package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/de-tools/form-atlas/pkg/adapters"
	"github.com/de-tools/form-atlas/pkg/models/api"
	"github.com/de-tools/form-atlas/pkg/models/domain"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const auditSystemPrompt = "You are a Form 990 auditor. Review the extraction data and the deterministic " +
	"checks provided in the context. Validate or adjust the findings, add any additional issues or " +
	"mitigations, and craft narrative section summaries that highlight the most material points. " +
	"Severity must be one of Pass, Warning, Error. Ground every statement in the supplied data; " +
	"do not invent financial figures. Respond with a single JSON object matching the audit report schema."

const performanceSystemPrompt = "You are a nonprofit financial analyst. You receive multi-year Form 990 " +
	"extractions summarized into deterministic metrics (series, ratios, surplus, CAGR). Highlight " +
	"performance trends, governance implications, and forward-looking risks. Provide concise bullet " +
	"insights, clear recommendations tied to the data, and a balanced outlook. Only cite facts available " +
	"in the provided series; do not invent figures. Respond with a single JSON object matching the " +
	"performance report schema."

// Gemini narrates reports through the Gemini API, requesting structured JSON
// output and parsing it into draft reports. It implements both narrator
// interfaces.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("a Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) ([]byte, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("narrative model returned an empty response")
	}
	return []byte(text), nil
}

func (g *Gemini) NarrateAudit(ctx context.Context, audit AuditContext) (domain.AuditReport, error) {
	findings := make([]api.Finding, 0, len(audit.Findings))
	for _, f := range audit.Findings {
		findings = append(findings, adapters.MapFindingDomainToApi(f))
	}

	payload, err := json.Marshal(map[string]any{
		"extraction":             audit.Filing,
		"deterministic_findings": findings,
		"metadata":               audit.Metadata,
	})
	if err != nil {
		return domain.AuditReport{}, fmt.Errorf("failed to encode audit context: %w", err)
	}

	raw, err := g.generate(ctx, auditSystemPrompt+"\n\nContext:\n"+string(payload))
	if err != nil {
		return domain.AuditReport{}, err
	}
	return parseAuditDraft(raw)
}

func (g *Gemini) NarratePerformance(ctx context.Context, performance AnalystContext) (domain.AnalystReport, error) {
	metrics := make([]api.TrendMetric, 0, len(performance.Metrics))
	for _, m := range performance.Metrics {
		metrics = append(metrics, adapters.MapTrendMetricDomainToApi(m))
	}

	payload, err := json.Marshal(map[string]any{
		"organization_name": performance.OrgName,
		"organization_ein":  performance.OrgEIN,
		"series":            performance.Snapshots,
		"key_metrics":       metrics,
		"notes":             performance.Notes,
	})
	if err != nil {
		return domain.AnalystReport{}, fmt.Errorf("failed to encode performance context: %w", err)
	}

	raw, err := g.generate(ctx, performanceSystemPrompt+"\n\nContext:\n"+string(payload))
	if err != nil {
		return domain.AnalystReport{}, err
	}
	return parsePerformanceDraft(raw)
}

func parseAuditDraft(raw []byte) (domain.AuditReport, error) {
	var draft api.AuditReport
	if err := json.Unmarshal(raw, &draft); err != nil {
		return domain.AuditReport{}, fmt.Errorf("failed to parse audit draft: %w", err)
	}
	return adapters.MapAuditReportApiToDomain(draft), nil
}

func parsePerformanceDraft(raw []byte) (domain.AnalystReport, error) {
	var draft api.AnalystReport
	if err := json.Unmarshal(raw, &draft); err != nil {
		return domain.AnalystReport{}, fmt.Errorf("failed to parse performance draft: %w", err)
	}
	return adapters.MapAnalystReportApiToDomain(draft), nil
}
