package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()

	assert.Equal(t, 6.5, params.InterestRatePct)
	assert.Equal(t, 30, params.LoanTermYears)
	assert.Equal(t, 20.0, params.DownPaymentPct)
	assert.Equal(t, 15, params.HoldingYears)
	assert.Equal(t, 0.008, params.FallbackRentRatio)
	assert.Equal(t, 8.0, params.BenchmarkGrowthPct)
}

func TestParamsHash_Stable(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()

	require.NotEmpty(t, a.Hash())
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 16)
}

func TestParamsHash_ChangesWithParams(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	b.InterestRatePct = 7.0

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "12345:abcdef01", SnapshotKey("12345", "abcdef01"))
}

func TestListingJSONShape(t *testing.T) {
	raw := `{
		"listings": [
			{
				"zpid": "2077640279",
				"streetAddress": "1200 Barton Hills Dr",
				"city": "Austin",
				"state": "TX",
				"zipcode": "78704",
				"price": 550000,
				"rentZestimate": 2795,
				"propertyTaxRate": 1.98,
				"monthlyHoaFee": 45,
				"bedrooms": 3,
				"bathrooms": 2
			}
		]
	}`

	var doc ListingDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Listings, 1)

	l := doc.Listings[0]
	assert.Equal(t, "2077640279", l.ZPID)
	assert.Equal(t, 550000.0, l.Price)
	assert.Equal(t, 2795.0, l.RentEstimate)
	assert.Equal(t, 1.98, l.PropertyTaxRatePct)
	assert.Equal(t, 45.0, l.MonthlyHOAFee)
	assert.True(t, l.HasRentEstimate())
	assert.Equal(t, "1200 Barton Hills Dr, Austin, TX 78704", l.FullAddress())
}

func TestListingTaxRateDecoding(t *testing.T) {
	var absent Listing
	require.NoError(t, json.Unmarshal([]byte(`{"zpid":"a","price":100000}`), &absent))
	assert.Equal(t, DefaultPropertyTaxRatePct, absent.PropertyTaxRatePct)

	var zero Listing
	require.NoError(t, json.Unmarshal([]byte(`{"zpid":"z","price":100000,"propertyTaxRate":0}`), &zero))
	assert.Zero(t, zero.PropertyTaxRatePct)
}

func TestListingHasRentEstimate(t *testing.T) {
	withRent := Listing{RentEstimate: 1500}
	assert.True(t, withRent.HasRentEstimate())

	noRent := Listing{}
	assert.False(t, noRent.HasRentEstimate())

	negative := Listing{RentEstimate: -10}
	assert.False(t, negative.HasRentEstimate())
}
