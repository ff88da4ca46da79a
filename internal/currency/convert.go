package currency

import (
	"fmt"
	"log"
)

// Code identifies one of the four supported currencies.
type Code string

const (
	CAD Code = "CAD"
	USD Code = "USD"
	EUR Code = "EUR"
	AUD Code = "AUD"
)

// exchangeRates holds the bilateral rate table (January 2026 curation).
// Each pair carries its own independently curated rate; the table is NOT
// transitively consistent, and round trips are not guaranteed to be
// identities. Do not derive missing pairs by multiplication.
var exchangeRates = map[Code]map[Code]float64{
	CAD: {CAD: 1.0, USD: 0.72, EUR: 0.66, AUD: 1.12},
	USD: {CAD: 1.39, USD: 1.0, EUR: 0.92, AUD: 1.56},
	EUR: {CAD: 1.52, USD: 1.09, EUR: 1.0, AUD: 1.69},
	AUD: {CAD: 0.89, USD: 0.64, EUR: 0.59, AUD: 1.0},
}

var symbols = map[Code]string{
	CAD: "C$",
	USD: "US$",
	EUR: "€",
	AUD: "A$",
}

// Valid reports whether code is one of the supported currencies.
func Valid(code Code) bool {
	_, ok := exchangeRates[code]
	return ok
}

// Supported returns the supported currency codes.
func Supported() []Code {
	return []Code{CAD, USD, EUR, AUD}
}

// Rate returns the curated rate for a pair, or false when the pair is
// unknown. Identity pairs always return 1.
func Rate(from, to Code) (float64, bool) {
	if from == to {
		return 1.0, true
	}
	rates, ok := exchangeRates[from]
	if !ok {
		return 0, false
	}
	rate, ok := rates[to]
	if !ok {
		return 0, false
	}
	return rate, true
}

// Convert converts amount between currencies. Travel costs cannot be
// negative, so non-positive amounts convert to zero. An unknown pair is
// non-fatal: the amount passes through unchanged with a logged warning.
func Convert(amount float64, from, to Code) float64 {
	if amount <= 0 {
		return 0
	}
	if from == to {
		return amount
	}
	rate, ok := Rate(from, to)
	if !ok {
		log.Printf("currency: no conversion rate for %s to %s; returning amount unchanged", from, to)
		return amount
	}
	return amount * rate
}

// Format renders an amount with its currency symbol, falling back to the
// code itself for unknown currencies.
func Format(amount float64, code Code) string {
	symbol, ok := symbols[code]
	if !ok {
		symbol = string(code)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Details describes one applied conversion, for presentation only.
type Details struct {
	OriginalAmount   float64 `json:"originalAmount"`
	OriginalCurrency Code    `json:"originalCurrency"`
	TargetCurrency   Code    `json:"targetCurrency"`
	ExchangeRate     float64 `json:"exchangeRate"`
	ConvertedAmount  float64 `json:"convertedAmount"`

	FormattedOriginal  string `json:"formattedOriginal"`
	FormattedConverted string `json:"formattedConverted"`
	FormattedRate      string `json:"formattedRate"`
}

// ConversionDetails performs a conversion and packages the inputs, the
// applied rate, and display-ready strings. An unknown pair keeps the
// pass-through amount but says so instead of rendering a zero rate.
func ConversionDetails(amount float64, from, to Code) Details {
	rate, ok := Rate(from, to)
	converted := Convert(amount, from, to)

	formattedRate := fmt.Sprintf("1 %s = %v %s", from, rate, to)
	if !ok {
		formattedRate = fmt.Sprintf("no rate available for %s to %s", from, to)
	}

	return Details{
		OriginalAmount:     amount,
		OriginalCurrency:   from,
		TargetCurrency:     to,
		ExchangeRate:       rate,
		ConvertedAmount:    converted,
		FormattedOriginal:  Format(amount, from),
		FormattedConverted: Format(converted, to),
		FormattedRate:      formattedRate,
	}
}
