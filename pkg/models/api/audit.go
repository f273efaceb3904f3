package api

type Severity string

const (
	SeverityPass    Severity = "Pass"
	SeverityWarning Severity = "Warning"
	SeverityError   Severity = "Error"
)

type Finding struct {
	CheckID    string   `json:"check_id"`
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Mitigation string   `json:"mitigation,omitempty"`
	Confidence float64  `json:"confidence"`
}

type SectionSummary struct {
	Section    string   `json:"section"`
	Severity   Severity `json:"severity"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`
}

type AuditReport struct {
	OrganizationEIN  string           `json:"organization_ein"`
	OrganizationName string           `json:"organization_name"`
	Year             int              `json:"year,omitempty"`
	OverallSeverity  Severity         `json:"overall_severity"`
	Findings         []Finding        `json:"findings"`
	Sections         []SectionSummary `json:"sections"`
	OverallSummary   string           `json:"overall_summary,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}
