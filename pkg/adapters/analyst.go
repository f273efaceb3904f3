package adapters

import (
	"github.com/de-tools/form-atlas/pkg/models/api"
	"github.com/de-tools/form-atlas/pkg/models/domain"
)

func MapTrendDirectionDomainToApi(d domain.TrendDirection) api.TrendDirection {
	switch d {
	case domain.TrendImproving:
		return api.TrendImproving
	case domain.TrendDeclining:
		return api.TrendDeclining
	case domain.TrendVolatile:
		return api.TrendVolatile
	default:
		return api.TrendStable
	}
}

func MapTrendDirectionApiToDomain(d api.TrendDirection) domain.TrendDirection {
	switch d {
	case api.TrendImproving:
		return domain.TrendImproving
	case api.TrendDeclining:
		return domain.TrendDeclining
	case api.TrendVolatile:
		return domain.TrendVolatile
	default:
		return domain.TrendStable
	}
}

func MapTrendMetricDomainToApi(m domain.TrendMetric) api.TrendMetric {
	res := api.TrendMetric{
		Name:        m.Name,
		Unit:        m.Unit,
		Description: m.Description,
		Points:      make([]api.TrendMetricPoint, 0, len(m.Points)),
		CAGR:        m.CAGR,
		Direction:   MapTrendDirectionDomainToApi(m.Direction),
		Notes:       m.Notes,
	}
	for _, p := range m.Points {
		res.Points = append(res.Points, api.TrendMetricPoint{Year: p.Year, Value: p.Value, Growth: p.Growth})
	}
	return res
}

func MapTrendMetricApiToDomain(m api.TrendMetric) domain.TrendMetric {
	res := domain.TrendMetric{
		Name:        m.Name,
		Unit:        m.Unit,
		Description: m.Description,
		Points:      make([]domain.TrendMetricPoint, 0, len(m.Points)),
		CAGR:        m.CAGR,
		Direction:   MapTrendDirectionApiToDomain(m.Direction),
		Notes:       m.Notes,
	}
	for _, p := range m.Points {
		res.Points = append(res.Points, domain.TrendMetricPoint{Year: p.Year, Value: p.Value, Growth: p.Growth})
	}
	return res
}

func MapAnalystReportApiToDomain(r api.AnalystReport) domain.AnalystReport {
	res := domain.AnalystReport{
		OrgName:         r.OrganizationName,
		OrgEIN:          r.OrganizationEIN,
		YearsAnalyzed:   append([]int(nil), r.YearsAnalyzed...),
		KeyMetrics:      make([]domain.TrendMetric, 0, len(r.KeyMetrics)),
		Insights:        make([]domain.TrendInsight, 0, len(r.Insights)),
		Recommendations: append([]string(nil), r.Recommendations...),
		Outlook:         r.Outlook,
	}
	for _, m := range r.KeyMetrics {
		res.KeyMetrics = append(res.KeyMetrics, MapTrendMetricApiToDomain(m))
	}
	for _, i := range r.Insights {
		res.Insights = append(res.Insights, MapTrendInsightApiToDomain(i))
	}
	return res
}

func MapTrendInsightApiToDomain(i api.TrendInsight) domain.TrendInsight {
	return domain.TrendInsight{
		Category:   i.Category,
		Direction:  MapTrendDirectionApiToDomain(i.Direction),
		Summary:    i.Summary,
		Confidence: i.Confidence,
	}
}

func MapAnalystReportDomainToApi(r domain.AnalystReport) api.AnalystReport {
	res := api.AnalystReport{
		OrganizationName: r.OrgName,
		OrganizationEIN:  r.OrgEIN,
		YearsAnalyzed:    append([]int(nil), r.YearsAnalyzed...),
		KeyMetrics:       make([]api.TrendMetric, 0, len(r.KeyMetrics)),
		Insights:         make([]api.TrendInsight, 0, len(r.Insights)),
		Recommendations:  append([]string(nil), r.Recommendations...),
		Outlook:          r.Outlook,
	}
	for _, m := range r.KeyMetrics {
		res.KeyMetrics = append(res.KeyMetrics, MapTrendMetricDomainToApi(m))
	}
	for _, i := range r.Insights {
		res.Insights = append(res.Insights, api.TrendInsight{
			Category:   i.Category,
			Direction:  MapTrendDirectionDomainToApi(i.Direction),
			Summary:    i.Summary,
			Confidence: i.Confidence,
		})
	}
	return res
}
