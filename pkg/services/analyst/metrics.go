package analyst

import (
	"math"
	"strings"

	"github.com/de-tools/form-atlas/pkg/models/domain"
)

// FilingBundle pairs one filing with its resolved fiscal year.
type FilingBundle struct {
	Year   int
	Filing domain.Filing
}

func ptr(v float64) *float64 {
	return &v
}

// safeRatio divides numerator by denominator, reporting nil for a zero
// denominator.
func safeRatio(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	return ptr(numerator / denominator)
}

// growth computes (current - previous) / previous. It is nil when previous
// is unknown or zero, not just unknown, to avoid division by zero.
func growth(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	return ptr((current - *previous) / *previous)
}

// directionFromPoints classifies a value series. Within a 2% tolerance of
// the first value (flat 0.01 when it is zero) the series is stable. A series
// of three or more points whose interior sign changes reach half the point
// count is volatile; otherwise the endpoint delta decides improving versus
// declining.
func directionFromPoints(values []float64) domain.TrendDirection {
	if len(values) < 2 {
		return domain.TrendStable
	}

	start, end := values[0], values[len(values)-1]
	delta := end - start
	tolerance := 0.01
	if start != 0 {
		tolerance = math.Abs(start) * 0.02
	}
	if math.Abs(delta) <= tolerance {
		return domain.TrendStable
	}

	if len(values) > 2 {
		swings := 0
		for i := 1; i < len(values)-1; i++ {
			if (values[i]-values[i-1])*(values[i+1]-values[i]) < 0 {
				swings++
			}
		}
		if swings >= len(values)/2 {
			return domain.TrendVolatile
		}
	}

	if delta > 0 {
		return domain.TrendImproving
	}
	return domain.TrendDeclining
}

// cagr is the compound annual growth rate between the series endpoints. It
// is undefined unless both endpoints are strictly positive and at least one
// period elapsed.
func cagr(start, end float64, periods int) *float64 {
	if start <= 0 || end <= 0 || periods <= 0 {
		return nil
	}
	return ptr(math.Pow(end/start, 1/float64(periods)) - 1)
}

// BuildSnapshots derives one snapshot per filing. Bundles must already be
// sorted ascending by year; growth figures compare against the previous
// bundle in the slice.
func BuildSnapshots(bundles []FilingBundle) []domain.YearlySnapshot {
	snapshots := make([]domain.YearlySnapshot, 0, len(bundles))
	var previousRevenue, previousExpenses *float64

	for _, bundle := range bundles {
		revenue := bundle.Filing.Revenue.TotalRevenue
		expenses := bundle.Filing.Expenses.TotalExpenses
		program := bundle.Filing.Expenses.ProgramServicesExpenses
		admin := bundle.Filing.Expenses.ManagementGeneralExpenses
		fundraising := bundle.Filing.Expenses.FundraisingExpenses

		snapshots = append(snapshots, domain.YearlySnapshot{
			Year:             bundle.Year,
			TotalRevenue:     revenue,
			TotalExpenses:    expenses,
			RevenueGrowth:    growth(revenue, previousRevenue),
			ExpenseGrowth:    growth(expenses, previousExpenses),
			Surplus:          revenue - expenses,
			ProgramRatio:     safeRatio(program, expenses),
			AdminRatio:       safeRatio(admin, expenses),
			FundraisingRatio: safeRatio(fundraising, expenses),
			NetMargin:        safeRatio(revenue-expenses, revenue),
		})
		previousRevenue = ptr(revenue)
		previousExpenses = ptr(expenses)
	}

	return snapshots
}

type seriesEntry struct {
	year  int
	value *float64
}

// metricFromSeries builds one named metric from a (year, value) series.
// Missing values default to 0.0 before growth, direction and CAGR math, so a
// year with no data pulls the series toward zero instead of being skipped.
func metricFromSeries(name, unit, description string, series []seriesEntry) domain.TrendMetric {
	points := make([]domain.TrendMetricPoint, 0, len(series))
	for _, entry := range series {
		value := 0.0
		if entry.value != nil {
			value = *entry.value
		}
		points = append(points, domain.TrendMetricPoint{Year: entry.year, Value: value})
	}

	for i := 1; i < len(points); i++ {
		points[i].Growth = growth(points[i].Value, ptr(points[i-1].Value))
	}

	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}

	metric := domain.TrendMetric{
		Name:        name,
		Unit:        unit,
		Description: description,
		Points:      points,
		Direction:   directionFromPoints(values),
	}
	if len(points) >= 2 {
		metric.CAGR = cagr(points[0].Value, points[len(points)-1].Value, len(points)-1)
	}
	return metric
}

// BuildKeyMetrics derives the named trend metrics from a snapshot sequence.
func BuildKeyMetrics(snapshots []domain.YearlySnapshot) []domain.TrendMetric {
	if len(snapshots) == 0 {
		return nil
	}

	series := func(pick func(domain.YearlySnapshot) *float64) []seriesEntry {
		entries := make([]seriesEntry, 0, len(snapshots))
		for _, snap := range snapshots {
			entries = append(entries, seriesEntry{year: snap.Year, value: pick(snap)})
		}
		return entries
	}

	metrics := []domain.TrendMetric{
		metricFromSeries("Total Revenue", "USD", "Reported total revenue in Part I.",
			series(func(s domain.YearlySnapshot) *float64 { return ptr(s.TotalRevenue) })),
		metricFromSeries("Total Expenses", "USD", "Reported total expenses in Part I.",
			series(func(s domain.YearlySnapshot) *float64 { return ptr(s.TotalExpenses) })),
		metricFromSeries("Operating Surplus", "USD", "Difference between total revenue and total expenses.",
			series(func(s domain.YearlySnapshot) *float64 { return ptr(s.Surplus) })),
		metricFromSeries("Program Service Ratio", "Ratio", "Program service expenses divided by total expenses.",
			series(func(s domain.YearlySnapshot) *float64 { return s.ProgramRatio })),
		metricFromSeries("Administrative Ratio", "Ratio", "Management & general expenses divided by total expenses.",
			series(func(s domain.YearlySnapshot) *float64 { return s.AdminRatio })),
		metricFromSeries("Fundraising Ratio", "Ratio", "Fundraising expenses divided by total expenses.",
			series(func(s domain.YearlySnapshot) *float64 { return s.FundraisingRatio })),
	}

	for i := range metrics {
		switch {
		case strings.HasSuffix(metrics[i].Name, "Ratio"):
			metrics[i].Notes = "Higher values indicate greater spending share."
		case metrics[i].Name == "Operating Surplus":
			metrics[i].Notes = "Positive surplus implies revenues exceeded expenses."
		}
	}

	return metrics
}
