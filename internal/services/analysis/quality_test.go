package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/rentfolio/internal/models"
)

func flagCodes(flags []models.QualityFlag) []string {
	codes := make([]string, 0, len(flags))
	for _, f := range flags {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestDetectQualityFlags_CleanListing(t *testing.T) {
	listing := models.Listing{ZPID: "q1", Price: 300000, RentEstimate: 2000}
	up := upfrontFigures{InitialInvestment: 69000}

	flags := detectQualityFlags(listing, 2000, false, up)
	assert.Empty(t, flags)
}

func TestDetectQualityFlags_RentFallbackIsInfo(t *testing.T) {
	listing := models.Listing{ZPID: "q2", Price: 300000}
	up := upfrontFigures{InitialInvestment: 69000}

	flags := detectQualityFlags(listing, 2400, true, up)
	require.Len(t, flags, 1)
	assert.Equal(t, "rent_fallback", flags[0].Code)
	assert.Equal(t, models.SeverityInfo, flags[0].Severity)
}

func TestDetectQualityFlags_PriceRentRatioBounds(t *testing.T) {
	up := upfrontFigures{InitialInvestment: 10000}

	// 100000 / (2000*12) = 4.2, below the floor of 8
	low := detectQualityFlags(models.Listing{ZPID: "q3", Price: 100000}, 2000, false, up)
	assert.Contains(t, flagCodes(low), "price_rent_ratio_low")

	// 900000 / (2000*12) = 37.5, above the ceiling of 30
	high := detectQualityFlags(models.Listing{ZPID: "q4", Price: 900000}, 2000, false, up)
	assert.Contains(t, flagCodes(high), "price_rent_ratio_high")

	// 480000 / (2000*12) = 20, inside the band
	mid := detectQualityFlags(models.Listing{ZPID: "q5", Price: 480000}, 2000, false, up)
	assert.NotContains(t, flagCodes(mid), "price_rent_ratio_low")
	assert.NotContains(t, flagCodes(mid), "price_rent_ratio_high")
}

func TestDetectQualityFlags_NonPositivePrice(t *testing.T) {
	flags := detectQualityFlags(models.Listing{ZPID: "q6", Price: 0}, 0, false, upfrontFigures{})

	codes := flagCodes(flags)
	assert.Contains(t, codes, "non_positive_price")
	assert.Contains(t, codes, "zero_initial_investment")
	// Ratio flags need a positive price and rent.
	assert.NotContains(t, codes, "price_rent_ratio_low")
}

func TestDetectQualityFlags_SeveritiesNeverBlock(t *testing.T) {
	flags := detectQualityFlags(models.Listing{ZPID: "q7", Price: -5}, 100, true, upfrontFigures{})
	for _, f := range flags {
		assert.Contains(t, []string{models.SeverityInfo, models.SeverityWarn}, f.Severity)
	}
}
