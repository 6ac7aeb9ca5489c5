// Package models defines the data structures used across Rentfolio
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPropertyTaxRatePct is applied when a listing carries no tax rate.
const DefaultPropertyTaxRatePct = 2.15

// Listing is a single property listing as produced by the scraping pipeline.
// Field names follow the Zillow-style JSON documents the collectors emit.
type Listing struct {
	ZPID          string  `json:"zpid"`
	StreetAddress string  `json:"streetAddress,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	Zipcode       string  `json:"zipcode,omitempty"`
	Price         float64 `json:"price"`
	RentEstimate  float64 `json:"rentZestimate,omitempty"`

	// PropertyTaxRatePct is the annual property tax rate as a percentage
	// (e.g. 2.15 means 2.15%). When the field is absent from the source
	// JSON, UnmarshalJSON substitutes DefaultPropertyTaxRatePct; an explicit
	// 0 is kept as a real 0% rate.
	PropertyTaxRatePct float64 `json:"propertyTaxRate"`
	MonthlyHOAFee      float64 `json:"monthlyHoaFee,omitempty"`

	// Descriptive fields, used for display only.
	Bedrooms   float64 `json:"bedrooms,omitempty"`
	Bathrooms  float64 `json:"bathrooms,omitempty"`
	LivingArea float64 `json:"livingArea,omitempty"`
	HomeType   string  `json:"homeType,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// UnmarshalJSON decodes a listing, applying the default property tax rate
// only when the field is absent. A present 0 means a genuine 0% rate.
func (l *Listing) UnmarshalJSON(data []byte) error {
	type alias Listing
	aux := struct {
		*alias
		PropertyTaxRatePct *float64 `json:"propertyTaxRate"`
	}{alias: (*alias)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.PropertyTaxRatePct == nil {
		l.PropertyTaxRatePct = DefaultPropertyTaxRatePct
	} else {
		l.PropertyTaxRatePct = *aux.PropertyTaxRatePct
	}
	return nil
}

// HasRentEstimate reports whether the listing carries a usable rent estimate.
func (l *Listing) HasRentEstimate() bool {
	return l.RentEstimate > 0
}

// FullAddress returns a single-line display address.
func (l *Listing) FullAddress() string {
	street := l.StreetAddress
	if street == "" {
		street = "Unknown"
	}
	addr := fmt.Sprintf("%s, %s, %s %s", street, l.City, l.State, l.Zipcode)
	return strings.TrimSpace(addr)
}

// ListingDocument is the on-disk shape of a scraped listings file.
type ListingDocument struct {
	Listings []Listing `json:"listings"`
}
