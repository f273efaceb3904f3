package api

type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendDeclining TrendDirection = "Declining"
	TrendStable    TrendDirection = "Stable"
	TrendVolatile  TrendDirection = "Volatile"
)

type TrendMetricPoint struct {
	Year   int      `json:"year"`
	Value  float64  `json:"value"`
	Growth *float64 `json:"growth"`
}

type TrendMetric struct {
	Name        string             `json:"name"`
	Unit        string             `json:"unit"`
	Description string             `json:"description"`
	Points      []TrendMetricPoint `json:"points"`
	CAGR        *float64           `json:"cagr"`
	Direction   TrendDirection     `json:"direction"`
	Notes       string             `json:"notes,omitempty"`
}

type TrendInsight struct {
	Category   string         `json:"category"`
	Direction  TrendDirection `json:"direction"`
	Summary    string         `json:"summary"`
	Confidence float64        `json:"confidence"`
}

type AnalystReport struct {
	OrganizationName string         `json:"organization_name"`
	OrganizationEIN  string         `json:"organization_ein"`
	YearsAnalyzed    []int          `json:"years_analyzed"`
	KeyMetrics       []TrendMetric  `json:"key_metrics"`
	Insights         []TrendInsight `json:"insights"`
	Recommendations  []string       `json:"recommendations"`
	Outlook          string         `json:"outlook"`
}
