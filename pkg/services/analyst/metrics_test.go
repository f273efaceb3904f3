package analyst

import (
	"testing"

	"github.com/de-tools/form-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundle(year int, revenue, expenses, program, admin, fundraising float64) FilingBundle {
	return FilingBundle{
		Year: year,
		Filing: domain.Filing{
			Org: domain.OrgMetadata{EIN: "12-3456789", LegalName: "Community Health Alliance"},
			Revenue: domain.RevenueBreakdown{
				TotalRevenue: revenue,
			},
			Expenses: domain.ExpensesBreakdown{
				TotalExpenses:             expenses,
				ProgramServicesExpenses:   program,
				ManagementGeneralExpenses: admin,
				FundraisingExpenses:       fundraising,
			},
		},
	}
}

func TestGrowth(t *testing.T) {
	result := growth(110, ptr(100))
	require.NotNil(t, result)
	assert.InDelta(t, 0.10, *result, 1e-9)

	assert.Nil(t, growth(110, nil), "no previous value means no growth figure")
	assert.Nil(t, growth(110, ptr(0)), "a zero base means no growth figure")

	result = growth(90, ptr(100))
	require.NotNil(t, result)
	assert.InDelta(t, -0.10, *result, 1e-9)
}

func TestSafeRatio(t *testing.T) {
	result := safeRatio(30, 100)
	require.NotNil(t, result)
	assert.InDelta(t, 0.3, *result, 1e-9)

	assert.Nil(t, safeRatio(30, 0))
}

func TestCAGR(t *testing.T) {
	result := cagr(100, 121, 2)
	require.NotNil(t, result)
	assert.InDelta(t, 0.10, *result, 1e-9)

	assert.Nil(t, cagr(0, 121, 2), "zero start is undefined")
	assert.Nil(t, cagr(-5, 121, 2), "negative start is undefined")
	assert.Nil(t, cagr(100, -5, 2), "negative end is undefined")
	assert.Nil(t, cagr(100, 121, 0), "no elapsed periods is undefined")
}

func TestDirectionFromPoints(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   domain.TrendDirection
	}{
		{"single point", []float64{100}, domain.TrendStable},
		{"flat", []float64{100, 100, 100}, domain.TrendStable},
		{"within tolerance", []float64{100, 103, 101}, domain.TrendStable},
		{"increasing", []float64{100, 110, 125}, domain.TrendImproving},
		{"decreasing", []float64{125, 110, 100}, domain.TrendDeclining},
		{"alternating", []float64{100, 150, 90, 160}, domain.TrendVolatile},
		{"zero start uses flat tolerance", []float64{0, 0.005}, domain.TrendStable},
		{"zero start beyond flat tolerance", []float64{0, 5}, domain.TrendImproving},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, directionFromPoints(tc.values))
		})
	}
}

func TestBuildSnapshots(t *testing.T) {
	bundles := []FilingBundle{
		bundle(2021, 1000, 800, 500, 200, 100),
		bundle(2022, 1100, 900, 600, 200, 100),
	}

	snapshots := BuildSnapshots(bundles)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, 2021, first.Year)
	assert.Nil(t, first.RevenueGrowth, "the first year has no prior to compare against")
	assert.Nil(t, first.ExpenseGrowth)
	assert.Equal(t, 200.0, first.Surplus)
	require.NotNil(t, first.ProgramRatio)
	assert.InDelta(t, 0.625, *first.ProgramRatio, 1e-9)
	require.NotNil(t, first.NetMargin)
	assert.InDelta(t, 0.2, *first.NetMargin, 1e-9)

	second := snapshots[1]
	require.NotNil(t, second.RevenueGrowth)
	assert.InDelta(t, 0.10, *second.RevenueGrowth, 1e-9)
	require.NotNil(t, second.ExpenseGrowth)
	assert.InDelta(t, 0.125, *second.ExpenseGrowth, 1e-9)
}

func TestBuildSnapshots_ZeroExpensesLeaveRatiosUnset(t *testing.T) {
	snapshots := BuildSnapshots([]FilingBundle{bundle(2021, 1000, 0, 0, 0, 0)})
	require.Len(t, snapshots, 1)
	assert.Nil(t, snapshots[0].ProgramRatio)
	assert.Nil(t, snapshots[0].AdminRatio)
	assert.Nil(t, snapshots[0].FundraisingRatio)
}

func TestBuildKeyMetrics(t *testing.T) {
	snapshots := BuildSnapshots([]FilingBundle{
		bundle(2020, 1000, 800, 500, 200, 100),
		bundle(2021, 1100, 850, 550, 200, 100),
		bundle(2022, 1210, 900, 600, 200, 100),
	})

	metrics := BuildKeyMetrics(snapshots)
	require.Len(t, metrics, 6)

	revenue := metrics[0]
	assert.Equal(t, "Total Revenue", revenue.Name)
	assert.Equal(t, "USD", revenue.Unit)
	require.Len(t, revenue.Points, 3)
	assert.Nil(t, revenue.Points[0].Growth)
	require.NotNil(t, revenue.Points[1].Growth)
	assert.InDelta(t, 0.10, *revenue.Points[1].Growth, 1e-9)
	require.NotNil(t, revenue.CAGR)
	assert.InDelta(t, 0.10, *revenue.CAGR, 1e-9)
	assert.Equal(t, domain.TrendImproving, revenue.Direction)

	program := metrics[3]
	assert.Equal(t, "Program Service Ratio", program.Name)
	assert.Equal(t, "Ratio", program.Unit)
	assert.Equal(t, "Higher values indicate greater spending share.", program.Notes)

	surplus := metrics[2]
	assert.Equal(t, "Operating Surplus", surplus.Name)
	assert.Equal(t, "Positive surplus implies revenues exceeded expenses.", surplus.Notes)
}

func TestBuildKeyMetrics_Empty(t *testing.T) {
	assert.Nil(t, BuildKeyMetrics(nil))
}

// A year with zero total expenses has no defined ratios; the metric series
// records those years as 0.0 rather than skipping them, pulling direction and
// CAGR toward zero. The defaulting is intentional and this test pins it.
func TestBuildKeyMetrics_MissingRatiosDefaultToZero(t *testing.T) {
	snapshots := BuildSnapshots([]FilingBundle{
		bundle(2021, 1000, 800, 500, 200, 100),
		bundle(2022, 1000, 0, 0, 0, 0),
	})

	metrics := BuildKeyMetrics(snapshots)
	program := metrics[3]
	require.Len(t, program.Points, 2)
	assert.Equal(t, 0.0, program.Points[1].Value)
	assert.Nil(t, program.CAGR, "a zero endpoint leaves CAGR undefined")
	assert.Equal(t, domain.TrendDeclining, program.Direction)
}
