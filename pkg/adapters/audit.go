package adapters

import (
	"github.com/de-tools/form-atlas/pkg/models/api"
	"github.com/de-tools/form-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityWarning:
		return api.SeverityWarning
	case domain.SeverityError:
		return api.SeverityError
	default:
		return api.SeverityPass
	}
}

func MapSeverityApiToDomain(s api.Severity) domain.Severity {
	switch s {
	case api.SeverityWarning:
		return domain.SeverityWarning
	case api.SeverityError:
		return domain.SeverityError
	default:
		return domain.SeverityPass
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		CheckID:    f.ID,
		Category:   f.Category,
		Severity:   MapSeverityDomainToApi(f.Severity),
		Message:    f.Message,
		Mitigation: f.Mitigation,
		Confidence: f.Confidence,
	}
}

func MapFindingApiToDomain(f api.Finding) domain.Finding {
	return domain.Finding{
		ID:         f.CheckID,
		Category:   f.Category,
		Severity:   MapSeverityApiToDomain(f.Severity),
		Message:    f.Message,
		Mitigation: f.Mitigation,
		Confidence: f.Confidence,
	}
}

func MapSectionSummaryDomainToApi(s domain.SectionSummary) api.SectionSummary {
	return api.SectionSummary{
		Section:    s.Section,
		Severity:   MapSeverityDomainToApi(s.Severity),
		Summary:    s.Summary,
		Confidence: s.Confidence,
	}
}

func MapSectionSummaryApiToDomain(s api.SectionSummary) domain.SectionSummary {
	return domain.SectionSummary{
		Section:    s.Section,
		Severity:   MapSeverityApiToDomain(s.Severity),
		Summary:    s.Summary,
		Confidence: s.Confidence,
	}
}

func MapAuditReportApiToDomain(r api.AuditReport) domain.AuditReport {
	res := domain.AuditReport{
		OrgEIN:          r.OrganizationEIN,
		OrgName:         r.OrganizationName,
		Year:            r.Year,
		OverallSeverity: MapSeverityApiToDomain(r.OverallSeverity),
		Findings:        make([]domain.Finding, 0, len(r.Findings)),
		Sections:        make([]domain.SectionSummary, 0, len(r.Sections)),
		OverallSummary:  r.OverallSummary,
		Notes:           r.Notes,
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingApiToDomain(f))
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, MapSectionSummaryApiToDomain(s))
	}
	return res
}

func MapAuditReportDomainToApi(r domain.AuditReport) api.AuditReport {
	res := api.AuditReport{
		OrganizationEIN:  r.OrgEIN,
		OrganizationName: r.OrgName,
		Year:             r.Year,
		OverallSeverity:  MapSeverityDomainToApi(r.OverallSeverity),
		Findings:         make([]api.Finding, 0, len(r.Findings)),
		Sections:         make([]api.SectionSummary, 0, len(r.Sections)),
		OverallSummary:   r.OverallSummary,
		Notes:            r.Notes,
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingDomainToApi(f))
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, MapSectionSummaryDomainToApi(s))
	}
	return res
}
