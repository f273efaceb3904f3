package domain

type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendDeclining TrendDirection = "Declining"
	TrendStable    TrendDirection = "Stable"
	TrendVolatile  TrendDirection = "Volatile"
)

// YearlySnapshot is one fiscal year's derived figures. Growth and ratio
// fields are nil when the computation is undefined (no prior year, zero
// denominator).
type YearlySnapshot struct {
	Year             int
	TotalRevenue     float64
	TotalExpenses    float64
	RevenueGrowth    *float64
	ExpenseGrowth    *float64
	Surplus          float64
	ProgramRatio     *float64
	AdminRatio       *float64
	FundraisingRatio *float64
	NetMargin        *float64
}

type TrendMetricPoint struct {
	Year   int
	Value  float64
	Growth *float64 // year-over-year, nil on the first point
}

// TrendMetric is one named series across the analyzed years. It is derived
// solely from snapshots and never mutated after construction.
type TrendMetric struct {
	Name        string
	Unit        string
	Description string
	Points      []TrendMetricPoint
	CAGR        *float64 // nil unless both endpoints are strictly positive
	Direction   TrendDirection
	Notes       string
}

// TrendInsight is a narrative observation proposed by the analyst
// collaborator; it carries no computed figures of its own.
type TrendInsight struct {
	Category   string
	Direction  TrendDirection
	Summary    string
	Confidence float64
}

type AnalystReport struct {
	OrgName         string
	OrgEIN          string
	YearsAnalyzed   []int
	KeyMetrics      []TrendMetric
	Insights        []TrendInsight
	Recommendations []string
	Outlook         string
}
