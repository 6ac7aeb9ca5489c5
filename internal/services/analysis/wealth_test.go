package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/rentfolio/internal/models"
)

func TestBuildWealthPaths_WorkedExample(t *testing.T) {
	params := models.AnalysisParams{
		HoldingYears:       3,
		SellClosingCostPct: 6,
		BenchmarkGrowthPct: 10,
	}
	up := upfrontFigures{
		DownPayment:       20000,
		BuyClosingCosts:   5000,
		InitialInvestment: 25000,
		LoanAmount:        80000,
	}
	sched := schedule{
		Equity: []models.EquityPoint{
			{Year: 1, PropertyValue: 100000, RemainingMortgage: 79000, Equity: 21000},
			{Year: 2, PropertyValue: 100000, RemainingMortgage: 78000, Equity: 22000},
			{Year: 3, PropertyValue: 100000, RemainingMortgage: 76500, Equity: 23500},
		},
		CashFlows: []float64{-1000, 500, 2000},
	}

	paths := buildWealthPaths(100000, params, up, sched)

	require.Len(t, paths.Property, 4)
	require.Len(t, paths.Benchmark, 4)
	require.Len(t, paths.Deployed, 4)

	// Liquidation value: net equity after selling costs plus cumulative cash flow.
	assert.InDelta(t, 14000, paths.Property[0], 1e-9)
	assert.InDelta(t, 14000, paths.Property[1], 1e-9)
	assert.InDelta(t, 15500, paths.Property[2], 1e-9)
	assert.InDelta(t, 18500, paths.Property[3], 1e-9)

	// Benchmark compounds at 10% and absorbs the year-1 capital call.
	assert.InDelta(t, 25000, paths.Benchmark[0], 1e-9)
	assert.InDelta(t, 28500, paths.Benchmark[1], 1e-9)
	assert.InDelta(t, 31350, paths.Benchmark[2], 1e-9)
	assert.InDelta(t, 34485, paths.Benchmark[3], 1e-9)

	assert.Equal(t, []float64{25000, 26000, 26000, 26000}, paths.Deployed)
}

func TestBuildWealthPaths_DeployedNonDecreasing(t *testing.T) {
	listing := models.Listing{ZPID: "w1", Price: 300000, PropertyTaxRatePct: 2.15}
	params := models.DefaultParams()
	rent, _ := resolveMonthlyRent(listing, params.FallbackRentRatio)
	up := computeUpfront(listing.Price, params)
	sched := projectSchedule(listing, params, rent, up)

	paths := buildWealthPaths(listing.Price, params, up, sched)

	require.Len(t, paths.Deployed, params.HoldingYears+1)
	assert.InDelta(t, up.InitialInvestment, paths.Deployed[0], 1e-9)
	for i := 1; i < len(paths.Deployed); i++ {
		assert.GreaterOrEqual(t, paths.Deployed[i], paths.Deployed[i-1])
	}
}

func TestBuildWealthPaths_PositiveCashFlowStaysOutOfBenchmark(t *testing.T) {
	params := models.AnalysisParams{
		HoldingYears:       2,
		SellClosingCostPct: 0,
		BenchmarkGrowthPct: 0,
	}
	up := upfrontFigures{DownPayment: 10000, InitialInvestment: 10000, LoanAmount: 40000}
	sched := schedule{
		Equity: []models.EquityPoint{
			{Year: 1, PropertyValue: 50000, RemainingMortgage: 39000},
			{Year: 2, PropertyValue: 50000, RemainingMortgage: 38000},
		},
		CashFlows: []float64{3000, 3000},
	}

	paths := buildWealthPaths(50000, params, up, sched)

	// Zero growth, no capital calls: the benchmark never moves.
	assert.Equal(t, []float64{10000, 10000, 10000}, paths.Benchmark)
	assert.Equal(t, []float64{10000, 10000, 10000}, paths.Deployed)
}
