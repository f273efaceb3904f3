package domain

type Severity int

const (
	SeverityPass Severity = iota + 1
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Pass"
	}
}

// Finding is the result of one deterministic check. ID is a stable key: when
// finding sets are merged, a later finding with the same ID replaces the
// earlier one.
type Finding struct {
	ID         string
	Category   string
	Severity   Severity
	Message    string
	Mitigation string
	Confidence float64
}

// SectionSummary aggregates the findings of one category. It is derived from
// a finding set and recomputed whenever that set changes.
type SectionSummary struct {
	Section    string
	Severity   Severity
	Summary    string
	Confidence float64
}

type AuditReport struct {
	OrgEIN          string
	OrgName         string
	Year            int // 0 when no return year could be resolved
	OverallSeverity Severity
	Findings        []Finding
	Sections        []SectionSummary
	OverallSummary  string
	Notes           string
}

// EINVerification is the outcome of a registry lookup for one tax ID.
type EINVerification struct {
	Confirmed  bool
	Confidence float64
	Note       string
}
