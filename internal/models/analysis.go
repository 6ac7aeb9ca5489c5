package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// AnalysisParams is the shared set of financial assumptions applied to every
// listing in a batch. All rates are plain percentages (6.5 means 6.5%), except
// FallbackRentRatio which is a monthly rent-to-price fraction (0.008 means
// 0.8% of the purchase price per month).
type AnalysisParams struct {
	InterestRatePct   float64 `json:"interestRatePct" toml:"interest_rate_pct"`
	LoanTermYears     int     `json:"loanTermYears" toml:"loan_term_years"`
	DownPaymentPct    float64 `json:"downPaymentPct" toml:"down_payment_pct"`
	BuyClosingCostPct float64 `json:"buyClosingCostPct" toml:"buy_closing_cost_pct"`
	SellClosingCostPct float64 `json:"sellClosingCostPct" toml:"sell_closing_cost_pct"`
	HoldingYears      int     `json:"holdingYears" toml:"holding_years"`
	AppreciationPct   float64 `json:"appreciationPct" toml:"appreciation_pct"`
	RentGrowthPct     float64 `json:"rentGrowthPct" toml:"rent_growth_pct"`
	MaintenancePct    float64 `json:"maintenancePct" toml:"maintenance_pct"`
	VacancyPct        float64 `json:"vacancyPct" toml:"vacancy_pct"`

	// InsuranceAnnual is a flat yearly premium in dollars. When
	// InsurancePctOfValue is non-zero it takes precedence and the premium is
	// derived from the purchase price instead.
	InsuranceAnnual     float64 `json:"insuranceAnnual" toml:"insurance_annual"`
	InsurancePctOfValue float64 `json:"insurancePctOfValue,omitempty" toml:"insurance_pct_of_value"`

	ManagementFeePct   float64 `json:"managementFeePct" toml:"management_fee_pct"`
	BenchmarkGrowthPct float64 `json:"benchmarkGrowthPct" toml:"benchmark_growth_pct"`
	FallbackRentRatio  float64 `json:"fallbackRentRatio" toml:"fallback_rent_ratio"`
}

// DefaultParams returns the baseline assumptions used when a caller supplies
// none. Values match the original analyzer defaults.
func DefaultParams() AnalysisParams {
	return AnalysisParams{
		InterestRatePct:    6.5,
		LoanTermYears:      30,
		DownPaymentPct:     20,
		BuyClosingCostPct:  3.0,
		SellClosingCostPct: 6.0,
		HoldingYears:       15,
		AppreciationPct:    3.5,
		RentGrowthPct:      3.0,
		MaintenancePct:     1.0,
		VacancyPct:         5,
		InsuranceAnnual:    1200,
		ManagementFeePct:   0,
		BenchmarkGrowthPct: 8.0,
		FallbackRentRatio:  0.008,
	}
}

// Hash returns a stable short digest of the parameter set, used to key
// analysis snapshots by (zpid, params).
func (p AnalysisParams) Hash() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// EquityPoint is one year of the equity schedule.
type EquityPoint struct {
	Year              int     `json:"year"`
	PropertyValue     float64 `json:"propertyValue"`
	RemainingMortgage float64 `json:"remainingMortgage"`
	Equity            float64 `json:"equity"`
}

// Quality flag severities.
const (
	SeverityInfo = "info"
	SeverityWarn = "warn"
)

// QualityFlag marks an input that looked unreliable during analysis.
type QualityFlag struct {
	Code     string `json:"code"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// AnalysisResult is the full investment projection for one listing under one
// parameter set. It is a pure function of (Listing, AnalysisParams); field
// names are read directly by chart and table consumers.
type AnalysisResult struct {
	ZPID         string  `json:"zpid"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	MonthlyRent  float64 `json:"monthlyRent"`
	RentFallback bool    `json:"rentFallback"`
	HoldingYears int     `json:"holdingYears"`

	// Upfront figures
	InitialInvestment float64 `json:"initialInvestment"`
	DownPayment       float64 `json:"downPayment"`
	BuyClosingCosts   float64 `json:"buyClosingCosts"`
	LoanAmount        float64 `json:"loanAmount"`

	// Year-one snapshot
	MonthlyPayment       float64 `json:"monthlyPayment"`
	MonthlyCashFlow      float64 `json:"monthlyCashFlow"`
	AnnualCashFlow       float64 `json:"annualCashFlow"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`
	EffectiveMonthlyRent float64 `json:"effectiveMonthlyRent"`
	CapRatePct           float64 `json:"capRatePct"`
	CashOnCashPct        float64 `json:"cashOnCashPct"`

	// Exit figures
	FutureValue       float64 `json:"futureValue"`
	RemainingMortgage float64 `json:"remainingMortgage"`
	SellClosingCosts  float64 `json:"sellClosingCosts"`
	NetSaleProceeds   float64 `json:"netSaleProceeds"`

	// Aggregates
	TotalProfit      float64 `json:"totalProfit"`
	AnnualizedROIPct float64 `json:"annualizedRoiPct"`

	// IRRPct is only meaningful when IRRFound is true; a found 0% rate is
	// distinct from "no economically meaningful rate".
	IRRPct   float64 `json:"irrPct"`
	IRRFound bool    `json:"irrFound"`

	// Time series. EquityGrowth and AnnualCashFlows have one entry per
	// holding year; the wealth series carry a year-zero baseline and have
	// length holdingYears+1.
	EquityGrowth      []EquityPoint `json:"equityGrowth"`
	AnnualCashFlows   []float64     `json:"annualCashFlows"`
	PropertyWealth    []float64     `json:"propertyWealth"`
	BenchmarkWealth   []float64     `json:"benchmarkWealth"`
	BenchmarkDeployed []float64     `json:"benchmarkDeployed"`

	QualityFlags []QualityFlag `json:"qualityFlags,omitempty"`
}

// SortMetric names a ranking metric supported by the metric registry.
type SortMetric string

// Supported sort metrics.
const (
	MetricMonthlyCashFlow SortMetric = "monthly_cash_flow"
	MetricCapRate         SortMetric = "cap_rate"
	MetricIRR             SortMetric = "irr"
	MetricAnnualizedROI   SortMetric = "annualized_roi"
	MetricCashOnCash      SortMetric = "cash_on_cash"
	MetricTotalProfit     SortMetric = "total_profit"
)

// BatchSummary aggregates a batch of analysis results for the summary strip.
type BatchSummary struct {
	Properties          int     `json:"properties"`
	AvgMonthlyCashFlow  float64 `json:"avgMonthlyCashFlow"`
	AvgAnnualizedROIPct float64 `json:"avgAnnualizedRoiPct"`
	PositiveCashFlow    int     `json:"positiveCashFlow"`

	// FallbackRentRatio is the ratio actually used for listings without a
	// rent estimate: the configured constant, or the batch median when
	// enough listings carry real estimates.
	FallbackRentRatio float64 `json:"fallbackRentRatio"`
}

// BatchResult maps listing identifiers to their analysis results.
type BatchResult struct {
	Results map[string]*AnalysisResult `json:"results"`
	Summary BatchSummary               `json:"summary"`
	Params  AnalysisParams             `json:"params"`
}

// AnalysisSnapshot is a persisted analysis result keyed by (zpid, params).
type AnalysisSnapshot struct {
	ID         string          `json:"id" badgerhold:"key"`
	ZPID       string          `json:"zpid" badgerholdIndex:"ZPID"`
	ParamsHash string          `json:"paramsHash"`
	Params     AnalysisParams  `json:"params"`
	Result     *AnalysisResult `json:"result"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SnapshotKey builds the canonical snapshot identifier.
func SnapshotKey(zpid, paramsHash string) string {
	return zpid + ":" + paramsHash
}
