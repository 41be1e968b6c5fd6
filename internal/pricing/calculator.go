// Package pricing turns matched products into priced quotes. The local
// calculator is deterministic (base + daily rate per destination country,
// age and destination multipliers) and is used when no external marketplace
// collaborator is wired.
package pricing

import (
	"context"
	"math"
	"strings"

	"insurance-advisor/internal/models"
)

// Marketplace supplies externally priced quotes for a trip. Implementations
// live outside the decision core; a nil Marketplace means local pricing only.
type Marketplace interface {
	Quotes(ctx context.Context, trip *models.TripAttributes) ([]models.Quote, error)
}

type countryRate struct {
	daily float64
	base  float64
}

var baseRates = map[string]countryRate{
	"SG": {daily: 5.0, base: 15.0},
	"IN": {daily: 4.5, base: 12.0},
	"JP": {daily: 6.5, base: 20.0},
	"TH": {daily: 4.0, base: 10.0},
	"CN": {daily: 5.5, base: 15.0},
}

var defaultRate = countryRate{daily: 5.0, base: 15.0}

// classPremiumFactors differentiate local prices by product tier so catalog
// quotes for the same trip do not all cost the same.
var classPremiumFactors = map[models.ProductClass]float64{
	models.ClassBudget:   0.8,
	models.ClassStandard: 1.0,
	models.ClassPreEx:    1.3,
}

var destinationRiskMultipliers = map[string]float64{
	"IN": 0.9,
	"JP": 1.2,
	"TH": 1.0,
	"CN": 1.1,
	"SG": 1.0,
}

// countryCodes maps destination phrases to pricing country codes. List
// order sets precedence when a destination mentions more than one phrase.
// Unknown destinations use the default rate.
var countryCodes = []struct {
	phrase string
	code   string
}{
	{"singapore", "SG"},
	{"china", "CN"},
	{"japan", "JP"},
	{"thailand", "TH"},
	{"malaysia", "MY"},
	{"indonesia", "ID"},
	{"india", "IN"},
	{"coimbatore", "IN"},
	{"chennai", "IN"},
	{"australia", "AU"},
	{"united states", "US"},
	{"usa", "US"},
}

// Calculator prices quotes from the product catalog using fixed rate tables.
// Stateless and safe for concurrent use.
type Calculator struct {
	currency string
}

func NewCalculator(currency string) *Calculator {
	if currency == "" {
		currency = "SGD"
	}
	return &Calculator{currency: currency}
}

// CountryCode extracts the pricing country code from a destination string.
// The first matching phrase in table order wins.
func CountryCode(destination string) string {
	lower := strings.ToLower(destination)
	for _, e := range countryCodes {
		if strings.Contains(lower, e.phrase) {
			return e.code
		}
	}
	return ""
}

// AgeMultiplier returns the age-based premium multiplier.
func AgeMultiplier(age int) float64 {
	switch {
	case age < 18:
		return 0.7
	case age < 30:
		return 1.0
	case age < 50:
		return 1.1
	case age < 65:
		return 1.3
	default:
		return 1.8
	}
}

// Price computes the deterministic premium for one product and trip: per
// traveler, (daily rate x age multiplier x destination multiplier x days)
// plus a one-time base fee, scaled by the product class premium factor.
// Unknown ages price as 30-year-olds; unknown duration prices as 5 days.
func (c *Calculator) Price(product models.InsuranceProduct, trip *models.TripAttributes) float64 {
	duration := trip.DurationDays()
	if duration <= 0 {
		duration = 5
	}

	travelers := trip.TravelerCount
	if travelers <= 0 {
		travelers = 1
	}

	ages := trip.Ages
	if len(ages) == 0 {
		ages = make([]int, travelers)
		for i := range ages {
			ages[i] = 30
		}
	}

	code := CountryCode(trip.Destination)
	rate, ok := baseRates[code]
	if !ok {
		rate = defaultRate
	}
	destMult, ok := destinationRiskMultipliers[code]
	if !ok {
		destMult = 1.0
	}

	var total float64
	for _, age := range ages {
		dailyCost := rate.daily * AgeMultiplier(age) * destMult
		total += dailyCost*float64(duration) + rate.base
	}

	classFactor, ok := classPremiumFactors[product.Class]
	if !ok {
		classFactor = 1.0
	}
	total *= classFactor

	return math.Round(total*100) / 100
}

// QuoteFor builds a priced quote for one product, carrying the product's
// benefit amounts as the quote's coverage map.
func (c *Calculator) QuoteFor(product models.InsuranceProduct, trip *models.TripAttributes) models.Quote {
	coverage := make(map[string]float64, len(product.Benefits))
	for name, benefit := range product.Benefits {
		if benefit.Covered {
			coverage[name] = benefit.Amount
		}
	}
	return models.Quote{
		ProductCode: product.ProductCode,
		PlanName:    product.DisplayName,
		Price:       c.Price(product, trip),
		Currency:    c.currency,
		Coverage:    coverage,
		Source:      models.SourceTaxonomyMatch,
	}
}
