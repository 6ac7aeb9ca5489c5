package analysis

import "github.com/bobmcallan/rentfolio/internal/models"

// Price-to-annual-rent bounds outside which a listing's inputs look suspect.
// Below the floor the rent estimate is implausibly high for the price; above
// the ceiling the property is unlikely to carry itself as a rental.
const (
	priceToRentFloor   = 8.0
	priceToRentCeiling = 30.0
)

// detectQualityFlags raises data-quality flags for inputs that look
// unreliable. Flags never block analysis; consumers use them for badges and
// hide-flagged toggles.
func detectQualityFlags(listing models.Listing, monthlyRent float64, rentFallback bool, up upfrontFigures) []models.QualityFlag {
	var flags []models.QualityFlag

	if listing.Price <= 0 {
		flags = append(flags, models.QualityFlag{
			Code:     "non_positive_price",
			Label:    "Listing price is zero or negative",
			Severity: models.SeverityWarn,
		})
	}

	if rentFallback {
		flags = append(flags, models.QualityFlag{
			Code:     "rent_fallback",
			Label:    "No rent estimate; fallback rent-to-price ratio applied",
			Severity: models.SeverityInfo,
		})
	}

	if listing.Price > 0 && monthlyRent > 0 {
		ratio := listing.Price / (monthlyRent * 12)
		if ratio < priceToRentFloor {
			flags = append(flags, models.QualityFlag{
				Code:     "price_rent_ratio_low",
				Label:    "Price-to-rent ratio implausibly low; rent estimate may be inflated",
				Severity: models.SeverityWarn,
			})
		} else if ratio > priceToRentCeiling {
			flags = append(flags, models.QualityFlag{
				Code:     "price_rent_ratio_high",
				Label:    "Price-to-rent ratio extremely high; weak rental economics",
				Severity: models.SeverityWarn,
			})
		}
	}

	if up.InitialInvestment <= 0 {
		flags = append(flags, models.QualityFlag{
			Code:     "zero_initial_investment",
			Label:    "Initial cash investment is zero; return ratios default to 0",
			Severity: models.SeverityWarn,
		})
	}

	return flags
}
