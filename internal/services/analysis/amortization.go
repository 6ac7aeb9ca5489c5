// Package analysis implements the rental investment projection engine.
package analysis

import "math"

// MonthlyPayment returns the fixed monthly payment that fully amortizes a
// loan of the given principal over termYears at the given annual rate.
// A zero rate degrades to straight-line repayment.
func MonthlyPayment(principal, annualRatePct float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	n := float64(termYears * 12)
	if annualRatePct == 0 {
		return principal / n
	}

	i := annualRatePct / 100 / 12
	factor := math.Pow(1+i, n)
	return principal * i * factor / (factor - 1)
}

// RemainingBalance returns the outstanding principal after yearsElapsed years
// of payments on a termYears loan, clamped to be non-negative.
func RemainingBalance(principal, annualRatePct float64, termYears, yearsElapsed int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	if yearsElapsed >= termYears {
		return 0
	}
	if yearsElapsed <= 0 {
		return principal
	}

	if annualRatePct == 0 {
		return principal * (1 - float64(yearsElapsed)/float64(termYears))
	}

	i := annualRatePct / 100 / 12
	total := math.Pow(1+i, float64(termYears*12))
	paid := math.Pow(1+i, float64(yearsElapsed*12))

	balance := principal * (total - paid) / (total - 1)
	if balance < 0 {
		balance = 0
	}
	return balance
}
