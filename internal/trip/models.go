package trip

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/flights"
	"github.com/acdube/govtravel/internal/rates/sources"
)

// AccommodationType selects how lodging is costed.
type AccommodationType string

const (
	AccommodationCommercial AccommodationType = "commercial"
	AccommodationPrivate    AccommodationType = "private"
)

// Request is one trip estimation request.
type Request struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DepartureDate time.Time `json:"departureDate"`
	ReturnDate    time.Time `json:"returnDate"`

	Accommodation AccommodationType `json:"accommodation,omitempty"`

	// CustomNightlyRate overrides the resolved nightly rate when
	// positive. For private accommodation a non-positive value falls
	// back to the flat private allowance.
	CustomNightlyRate float64 `json:"customNightlyRate,omitempty"`

	IncludeFlights bool `json:"includeFlights,omitempty"`

	// SelectedFlight is a fare the traveler already picked from quoted
	// options. When set it overrides the estimator entirely.
	SelectedFlight *FlightSelection `json:"selectedFlight,omitempty"`

	// Currency is the presentation currency for the estimate. Empty
	// means CAD.
	Currency currency.Code `json:"currency,omitempty"`
}

// Days returns the inclusive trip length in calendar days. Same-day
// trips count as one day.
func (r Request) Days() int {
	span := r.ReturnDate.Sub(r.DepartureDate).Hours() / 24
	days := int(math.Ceil(math.Abs(span))) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Nights returns the number of nights, one fewer than days and never
// negative.
func (r Request) Nights() int {
	n := r.Days() - 1
	if n < 0 {
		return 0
	}
	return n
}

// FlightSelection is a previously quoted fare the traveler chose. The
// quoted price feeds the trip total as-is; the quoted duration still
// decides business-class eligibility.
type FlightSelection struct {
	Price         float64       `json:"price"`
	DurationHours float64       `json:"durationHours"`
	Currency      currency.Code `json:"currency,omitempty"`
}

// MealBreakdown itemizes the per-diem components over the whole trip.
type MealBreakdown struct {
	Breakfast   float64 `json:"breakfast"`
	Lunch       float64 `json:"lunch"`
	Dinner      float64 `json:"dinner"`
	Incidentals float64 `json:"incidentals"`
}

// PerDiemEstimate is the meals-and-incidentals cost for a trip.
type PerDiemEstimate struct {
	Days          int           `json:"days"`
	DailyRate     float64       `json:"dailyRate"`
	Breakdown     MealBreakdown `json:"breakdown"`
	Total         float64       `json:"total"`
	Currency      currency.Code `json:"currency"`
	Blended       bool          `json:"blended,omitempty"`
	Justification string        `json:"justification"`
}

// AccommodationEstimate is the lodging cost for a trip.
type AccommodationEstimate struct {
	Type          AccommodationType `json:"type"`
	Nights        int               `json:"nights"`
	NightlyRate   float64           `json:"nightlyRate"`
	Total         float64           `json:"total"`
	Currency      currency.Code     `json:"currency"`
	Justification string            `json:"justification"`
}

// Estimate is the full costed trip returned to the caller. All totals
// are in CAD; Converted carries the presentation-currency view when one
// was requested.
type Estimate struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	// Directory details for cities the directory knows about.
	OriginInfo      *sources.CityInfo `json:"originInfo,omitempty"`
	DestinationInfo *sources.CityInfo `json:"destinationInfo,omitempty"`

	DepartureDate time.Time `json:"departureDate"`
	ReturnDate    time.Time `json:"returnDate"`
	Days          int       `json:"days"`
	Nights        int       `json:"nights"`

	PerDiem       PerDiemEstimate       `json:"perDiem"`
	Accommodation AccommodationEstimate `json:"accommodation"`
	Flight        *flights.Result       `json:"flight,omitempty"`

	Total     float64           `json:"total"`
	Currency  currency.Code     `json:"currency"`
	Converted *currency.Details `json:"converted,omitempty"`

	Notes []string `json:"notes,omitempty"`

	GeneratedAt time.Time `json:"generatedAt"`
}

func newEstimateID() string {
	return uuid.NewString()
}
