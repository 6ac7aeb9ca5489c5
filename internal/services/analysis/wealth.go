package analysis

import "github.com/bobmcallan/rentfolio/internal/models"

// wealthPaths holds two cumulative-wealth series anchored at the same
// starting capital, plus the capital deployed into the benchmark. All three
// have length holdingYears+1 with a year-zero baseline at index 0.
type wealthPaths struct {
	Property  []float64
	Benchmark []float64
	Deployed  []float64
}

// buildWealthPaths compares liquidating the property each year against
// holding the same capital in a benchmark investment.
//
// The property series is liquidation value: equity net of selling costs, plus
// all operating cash flow received so far. The benchmark compounds at the
// configured growth rate; whenever the property demands a capital call (a
// negative annual cash flow), the same amount is contributed to the benchmark
// so both paths absorb identical total outlay.
func buildWealthPaths(price float64, params models.AnalysisParams, up upfrontFigures, sched schedule) wealthPaths {
	years := params.HoldingYears
	sellFrac := params.SellClosingCostPct / 100
	growth := 1 + params.BenchmarkGrowthPct/100

	paths := wealthPaths{
		Property:  make([]float64, years+1),
		Benchmark: make([]float64, years+1),
		Deployed:  make([]float64, years+1),
	}

	// Year-zero baselines: liquidation before any appreciation, and the full
	// initial investment parked in the benchmark.
	paths.Property[0] = up.DownPayment - sellFrac*price
	paths.Benchmark[0] = up.InitialInvestment
	paths.Deployed[0] = up.InitialInvestment

	cumulativeCashFlow := 0.0
	for year := 1; year <= years; year++ {
		point := sched.Equity[year-1]
		cashFlow := sched.CashFlows[year-1]
		cumulativeCashFlow += cashFlow

		netEquity := point.PropertyValue - point.RemainingMortgage - sellFrac*point.PropertyValue
		paths.Property[year] = netEquity + cumulativeCashFlow

		paths.Benchmark[year] = paths.Benchmark[year-1] * growth
		paths.Deployed[year] = paths.Deployed[year-1]
		if cashFlow < 0 {
			paths.Benchmark[year] += -cashFlow
			paths.Deployed[year] += -cashFlow
		}
	}

	return paths
}
