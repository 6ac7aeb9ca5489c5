package analysis

import (
	"math"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// upfrontFigures are the cash amounts due at purchase.
type upfrontFigures struct {
	DownPayment       float64
	BuyClosingCosts   float64
	InitialInvestment float64
	LoanAmount        float64
}

// computeUpfront derives the purchase cash figures from price and params.
func computeUpfront(price float64, params models.AnalysisParams) upfrontFigures {
	down := price * params.DownPaymentPct / 100
	closing := price * params.BuyClosingCostPct / 100
	return upfrontFigures{
		DownPayment:       down,
		BuyClosingCosts:   closing,
		InitialInvestment: down + closing,
		LoanAmount:        price - down,
	}
}

// yearOneSnapshot holds the first-year monthly economics of a listing.
type yearOneSnapshot struct {
	MonthlyPayment       float64
	MonthlyCashFlow      float64
	AnnualCashFlow       float64
	TotalMonthlyExpenses float64
	EffectiveMonthlyRent float64
	CapRatePct           float64
	CashOnCashPct        float64
}

// schedule is the full holding-horizon projection: one equity point and one
// net cash-flow figure per year, aligned by index (year 1 at index 0).
type schedule struct {
	Equity    []models.EquityPoint
	CashFlows []float64
}

// annualInsurance resolves the insurance premium: a percentage of the
// purchase price when configured, otherwise the flat annual figure. The
// premium does not escalate over the horizon.
func annualInsurance(price float64, params models.AnalysisParams) float64 {
	if params.InsurancePctOfValue > 0 {
		return price * params.InsurancePctOfValue / 100
	}
	return params.InsuranceAnnual
}

// projectYearOne computes the year-one snapshot from base (unescalated) rent
// and value. Ratios degrade to 0 rather than dividing by zero.
func projectYearOne(listing models.Listing, params models.AnalysisParams, monthlyRent float64, up upfrontFigures) yearOneSnapshot {
	price := listing.Price

	payment := MonthlyPayment(up.LoanAmount, params.InterestRatePct, params.LoanTermYears)
	monthlyTax := price * listing.PropertyTaxRatePct / 100 / 12
	monthlyInsurance := annualInsurance(price, params) / 12
	monthlyMaintenance := price * params.MaintenancePct / 100 / 12
	monthlyManagement := monthlyRent * params.ManagementFeePct / 100

	totalExpenses := payment + monthlyTax + listing.MonthlyHOAFee + monthlyInsurance + monthlyMaintenance + monthlyManagement
	effectiveRent := monthlyRent * (1 - params.VacancyPct/100)
	cashFlow := effectiveRent - totalExpenses

	// Cap rate excludes debt service: NOI over purchase price.
	operatingExpenses := monthlyTax + listing.MonthlyHOAFee + monthlyInsurance + monthlyMaintenance + monthlyManagement
	noi := (effectiveRent - operatingExpenses) * 12

	capRate := 0.0
	if price > 0 {
		capRate = noi / price * 100
	}
	cashOnCash := 0.0
	if up.InitialInvestment > 0 {
		cashOnCash = cashFlow * 12 / up.InitialInvestment * 100
	}

	return yearOneSnapshot{
		MonthlyPayment:       payment,
		MonthlyCashFlow:      cashFlow,
		AnnualCashFlow:       cashFlow * 12,
		TotalMonthlyExpenses: totalExpenses,
		EffectiveMonthlyRent: effectiveRent,
		CapRatePct:           capRate,
		CashOnCashPct:        cashOnCash,
	}
}

// projectSchedule builds the year-by-year projection for the holding horizon.
// Rent and value compound annually; property tax and maintenance scale with
// the escalated value; HOA and insurance stay flat; the mortgage payment
// applies only while the loan is alive.
func projectSchedule(listing models.Listing, params models.AnalysisParams, monthlyRent float64, up upfrontFigures) schedule {
	price := listing.Price
	years := params.HoldingYears
	annualPayment := MonthlyPayment(up.LoanAmount, params.InterestRatePct, params.LoanTermYears) * 12
	insurance := annualInsurance(price, params)

	sched := schedule{
		Equity:    make([]models.EquityPoint, 0, years),
		CashFlows: make([]float64, 0, years),
	}

	for year := 1; year <= years; year++ {
		growth := math.Pow(1+params.RentGrowthPct/100, float64(year))
		yearRent := monthlyRent * growth
		effectiveAnnualRent := yearRent * (1 - params.VacancyPct/100) * 12

		yearValue := price * math.Pow(1+params.AppreciationPct/100, float64(year))

		expenses := yearValue*listing.PropertyTaxRatePct/100 +
			listing.MonthlyHOAFee*12 +
			insurance +
			yearValue*params.MaintenancePct/100 +
			yearRent*params.ManagementFeePct/100*12
		if year <= params.LoanTermYears {
			expenses += annualPayment
		}

		sched.CashFlows = append(sched.CashFlows, effectiveAnnualRent-expenses)

		balance := RemainingBalance(up.LoanAmount, params.InterestRatePct, params.LoanTermYears, year)
		sched.Equity = append(sched.Equity, models.EquityPoint{
			Year:              year,
			PropertyValue:     yearValue,
			RemainingMortgage: balance,
			Equity:            yearValue - balance,
		})
	}

	return sched
}

// resolveMonthlyRent returns the listing's rent estimate, or the fallback
// ratio applied to price when no usable estimate exists. The second return
// reports whether the fallback was used.
func resolveMonthlyRent(listing models.Listing, fallbackRatio float64) (float64, bool) {
	if listing.HasRentEstimate() {
		return listing.RentEstimate, false
	}
	return listing.Price * fallbackRatio, true
}
