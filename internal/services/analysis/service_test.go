package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/models"
)

func newTestService() *Service {
	return NewService(nil, common.NewSilentLogger())
}

// costFreeParams has every recurring cost zeroed out, so cash flow is rent
// minus the mortgage payment and results can be checked by hand.
func costFreeParams() models.AnalysisParams {
	return models.AnalysisParams{
		InterestRatePct:    6,
		LoanTermYears:      30,
		DownPaymentPct:     20,
		BuyClosingCostPct:  0,
		SellClosingCostPct: 0,
		HoldingYears:       10,
		AppreciationPct:    0,
		RentGrowthPct:      0,
		MaintenancePct:     0,
		VacancyPct:         0,
		InsuranceAnnual:    0,
		ManagementFeePct:   0,
		BenchmarkGrowthPct: 8,
		FallbackRentRatio:  0.008,
	}
}

func TestAnalyze_FallbackRentScenario(t *testing.T) {
	svc := newTestService()
	listing := models.Listing{ZPID: "30001", Price: 300000}
	params := costFreeParams()

	result := svc.Analyze(listing, params)

	// 0.8% of price, flagged as a fallback.
	assert.InDelta(t, 2400, result.MonthlyRent, 1e-9)
	assert.True(t, result.RentFallback)
	assert.Contains(t, flagCodes(result.QualityFlags), "rent_fallback")

	assert.InDelta(t, 60000, result.InitialInvestment, 1e-9)
	assert.InDelta(t, 240000, result.LoanAmount, 1e-9)
	assert.InDelta(t, 1438.92, result.MonthlyPayment, 0.01)
	assert.InDelta(t, 961.08, result.MonthlyCashFlow, 0.01)
	assert.InDelta(t, 9.6, result.CapRatePct, 0.001)
	assert.InDelta(t, 19.22, result.CashOnCashPct, 0.01)

	// Exit after 10 of 30 years with no appreciation or selling costs.
	assert.InDelta(t, 300000, result.FutureValue, 1e-6)
	assert.InDelta(t, 200845.6, result.RemainingMortgage, 1.0)
	assert.InDelta(t, 99154, result.NetSaleProceeds, 1.0)
	assert.InDelta(t, 154483, result.TotalProfit, 2.0)
	assert.InDelta(t, 25.75, result.AnnualizedROIPct, 0.01)

	require.True(t, result.IRRFound)
	assert.Greater(t, result.IRRPct, 18.0)
	assert.Less(t, result.IRRPct, 25.0)
}

func TestAnalyze_TotalProfitIdentity(t *testing.T) {
	svc := newTestService()
	listing := models.Listing{
		ZPID:               "30002",
		Price:              275000,
		RentEstimate:       2150,
		PropertyTaxRatePct: 1.8,
		MonthlyHOAFee:      120,
	}
	result := svc.Analyze(listing, models.DefaultParams())

	var totalCashFlow float64
	for _, cf := range result.AnnualCashFlows {
		totalCashFlow += cf
	}
	assert.InDelta(t, totalCashFlow+result.NetSaleProceeds-result.InitialInvestment, result.TotalProfit, 1e-6)
}

func TestAnalyze_ZeroInterestLoan(t *testing.T) {
	svc := newTestService()
	listing := models.Listing{ZPID: "30003", Price: 120000, RentEstimate: 1000}
	params := costFreeParams()
	params.InterestRatePct = 0

	result := svc.Analyze(listing, params)

	// 96000 over 360 straight-line payments
	assert.InDelta(t, 266.67, result.MonthlyPayment, 0.01)
	assert.InDelta(t, 96000-96000.0/3, result.RemainingMortgage, 0.01)
}

func TestAnalyze_SeriesLengths(t *testing.T) {
	svc := newTestService()
	listing := models.Listing{ZPID: "30004", Price: 300000, RentEstimate: 2400}
	params := models.DefaultParams()
	params.HoldingYears = 7

	result := svc.Analyze(listing, params)

	assert.Len(t, result.EquityGrowth, 7)
	assert.Len(t, result.AnnualCashFlows, 7)
	assert.Len(t, result.PropertyWealth, 8)
	assert.Len(t, result.BenchmarkWealth, 8)
	assert.Len(t, result.BenchmarkDeployed, 8)
}

func TestAnalyze_DegenerateListingDoesNotPanic(t *testing.T) {
	svc := newTestService()
	result := svc.Analyze(models.Listing{ZPID: "30005", Price: 0}, models.DefaultParams())

	assert.Zero(t, result.MonthlyRent)
	assert.Zero(t, result.CapRatePct)
	assert.Zero(t, result.CashOnCashPct)
	assert.Zero(t, result.AnnualizedROIPct)
	assert.False(t, result.IRRFound)
	codes := flagCodes(result.QualityFlags)
	assert.Contains(t, codes, "non_positive_price")
	assert.Contains(t, codes, "zero_initial_investment")
}

func TestAnalyze_NegativeHoldingYears(t *testing.T) {
	svc := newTestService()
	listing := models.Listing{ZPID: "30006", Price: 300000, RentEstimate: 2400}
	params := models.DefaultParams()
	params.HoldingYears = -3

	result := svc.Analyze(listing, params)

	// Degrades to an empty schedule instead of raising.
	assert.Equal(t, 0, result.HoldingYears)
	assert.Empty(t, result.EquityGrowth)
	assert.Empty(t, result.AnnualCashFlows)
	assert.Len(t, result.PropertyWealth, 1)
	assert.Len(t, result.BenchmarkWealth, 1)
	assert.Len(t, result.BenchmarkDeployed, 1)
	assert.False(t, result.IRRFound)
	assert.Zero(t, result.AnnualizedROIPct)
	assert.InDelta(t, 300000, result.FutureValue, 1e-9)
}

func TestAnalyzeBatch_MedianFallbackRatio(t *testing.T) {
	svc := newTestService()
	listings := []models.Listing{
		{ZPID: "1", Price: 100000, RentEstimate: 800},
		{ZPID: "2", Price: 100000, RentEstimate: 900},
		{ZPID: "3", Price: 100000, RentEstimate: 1000},
		{ZPID: "4", Price: 100000, RentEstimate: 1100},
		{ZPID: "5", Price: 100000, RentEstimate: 1200},
		{ZPID: "6", Price: 200000}, // no rent estimate
	}
	params := costFreeParams()
	params.FallbackRentRatio = 0.005

	batch, err := svc.AnalyzeBatch(context.Background(), listings, params)
	require.NoError(t, err)
	require.Len(t, batch.Results, 6)

	// Five real estimates: the median ratio 0.010 supersedes the configured 0.005.
	assert.InDelta(t, 0.010, batch.Summary.FallbackRentRatio, 1e-9)
	missing := batch.Results["6"]
	require.NotNil(t, missing)
	assert.True(t, missing.RentFallback)
	assert.InDelta(t, 2000, missing.MonthlyRent, 1e-9)
}

func TestAnalyzeBatch_TooFewEstimatesUsesConfiguredRatio(t *testing.T) {
	svc := newTestService()
	listings := []models.Listing{
		{ZPID: "1", Price: 100000, RentEstimate: 1500},
		{ZPID: "2", Price: 100000, RentEstimate: 1600},
		{ZPID: "3", Price: 250000},
	}
	params := costFreeParams()

	batch, err := svc.AnalyzeBatch(context.Background(), listings, params)
	require.NoError(t, err)

	assert.InDelta(t, 0.008, batch.Summary.FallbackRentRatio, 1e-9)
	assert.InDelta(t, 2000, batch.Results["3"].MonthlyRent, 1e-9)
}

func TestAnalyzeBatch_SummaryAggregates(t *testing.T) {
	svc := newTestService()
	listings := []models.Listing{
		{ZPID: "1", Price: 100000, RentEstimate: 1500}, // strong cash flow
		{ZPID: "2", Price: 400000, RentEstimate: 1500}, // negative cash flow
	}
	params := costFreeParams()

	batch, err := svc.AnalyzeBatch(context.Background(), listings, params)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Summary.Properties)
	assert.Equal(t, 1, batch.Summary.PositiveCashFlow)
	want := (batch.Results["1"].MonthlyCashFlow + batch.Results["2"].MonthlyCashFlow) / 2
	assert.InDelta(t, want, batch.Summary.AvgMonthlyCashFlow, 1e-9)
}

func TestAnalyzeBatch_Deterministic(t *testing.T) {
	svc := newTestService()
	listings := []models.Listing{
		{ZPID: "a", Price: 180000, RentEstimate: 1500},
		{ZPID: "b", Price: 320000, RentEstimate: 2400},
		{ZPID: "c", Price: 95000},
	}
	params := models.DefaultParams()

	first, err := svc.AnalyzeBatch(context.Background(), listings, params)
	require.NoError(t, err)
	second, err := svc.AnalyzeBatch(context.Background(), listings, params)
	require.NoError(t, err)

	for zpid, r := range first.Results {
		assert.Equal(t, r, second.Results[zpid], zpid)
	}
	assert.Equal(t, first.Summary, second.Summary)
}

func TestAnalyzeBatch_CancelledContext(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeBatch(ctx, []models.Listing{{ZPID: "x", Price: 100000}}, models.DefaultParams())
	assert.Error(t, err)
}
