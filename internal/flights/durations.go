package flights

import (
	"fmt"
	"math"

	"github.com/acdube/govtravel/internal/rates"
)

// BusinessClassThresholdHours is the policy threshold: flights at or
// above it qualify for business class.
const BusinessClassThresholdHours = 9.0

// knownPairDurations holds curated one-way durations in hours for city
// pairs that come up often. Keys are "<origin>|<destination>" in
// normalized form; lookups try both directions.
var knownPairDurations = map[string]float64{
	pairKey("Vancouver", "Toronto"):      4.5,
	pairKey("Toronto", "Vancouver"):      5.0,
	pairKey("Calgary", "Toronto"):        4.0,
	pairKey("Toronto", "Calgary"):        4.5,
	pairKey("Montreal", "Vancouver"):     5.5,
	pairKey("Vancouver", "Montreal"):     6.0,
	pairKey("Halifax", "Vancouver"):      6.5,
	pairKey("Vancouver", "Halifax"):      7.0,
	pairKey("St. John's", "Vancouver"):   7.5,
	pairKey("Vancouver", "St. John's"):   8.0,
	pairKey("Yellowknife", "Toronto"):    5.5,
	pairKey("Toronto", "Yellowknife"):    6.0,
	pairKey("Iqaluit", "Vancouver"):      8.5,
	pairKey("Vancouver", "Iqaluit"):      9.5,
	pairKey("Whitehorse", "Toronto"):     6.5,
	pairKey("Toronto", "Whitehorse"):     7.0,
	pairKey("Halifax", "Calgary"):        5.5,
	pairKey("Calgary", "Halifax"):        6.0,
}

// Coarse duration bands for pairs outside the curated table.
const (
	crossCountryHours = 6.0
	northernHours     = 5.5
	regionalHours     = 3.5
)

var eastCoastCities = cityKeySet("Halifax", "St. John's", "Charlottetown", "Moncton", "Saint John", "Fredericton")
var westCoastCities = cityKeySet("Vancouver", "Victoria", "Surrey", "Burnaby", "Richmond")
var northernCities = cityKeySet("Yellowknife", "Iqaluit", "Whitehorse", "Inuvik")

func pairKey(origin, destination string) string {
	return rates.NormalizeIdentifier(origin) + "|" + rates.NormalizeIdentifier(destination)
}

func cityKeySet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[rates.NormalizeKey(n)] = true
	}
	return set
}

// EstimateDuration returns the one-way flight duration in hours for a
// city pair: the curated table first (either direction), then a coarse
// geographic heuristic.
func EstimateDuration(origin, destination string) float64 {
	if h, ok := knownPairDurations[pairKey(origin, destination)]; ok {
		return h
	}
	if h, ok := knownPairDurations[pairKey(destination, origin)]; ok {
		return h
	}

	o := rates.NormalizeIdentifier(origin)
	d := rates.NormalizeIdentifier(destination)

	eastToWest := (eastCoastCities[o] && westCoastCities[d]) ||
		(westCoastCities[o] && eastCoastCities[d])
	involvesNorth := northernCities[o] || northernCities[d]

	switch {
	case eastToWest:
		return crossCountryHours
	case involvesNorth:
		return northernHours
	default:
		return regionalHours
	}
}

// BusinessClassEligible applies the duration threshold. The boundary is
// inclusive: exactly 9.0 hours qualifies.
func BusinessClassEligible(durationHours float64) bool {
	return durationHours >= BusinessClassThresholdHours
}

// FormatDuration renders fractional hours as "6h 30m".
func FormatDuration(hours float64) string {
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	return fmt.Sprintf("%dh %dm", int(h), int(m))
}
