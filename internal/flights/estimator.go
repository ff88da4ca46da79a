package flights

import (
	"context"
	"log"
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates/sources"
)

// Local pricing model for when no live quote is available: a fixed base
// plus an hourly component, with business class at a fixed multiple.
const (
	baseEconomyFare        = 300.0
	economyFarePerHour     = 50.0
	businessFareMultiplier = 2.5
)

// Result is a flight estimate for one leg of a trip.
type Result struct {
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	DurationHours    float64 `json:"durationHours"`
	DurationDisplay  string  `json:"duration"`
	EconomyPrice     float64 `json:"economyPrice"`
	BusinessPrice    float64 `json:"businessPrice"`
	BusinessEligible bool    `json:"businessEligible"`

	// SelectedPrice is the fare that feeds the trip total: business when
	// the duration qualifies, economy otherwise.
	SelectedPrice float64 `json:"selectedPrice"`

	Currency currency.Code `json:"currency"`
	Stops    int           `json:"stops"`
	Carrier  string        `json:"carrier,omitempty"`
	Live     bool          `json:"live"`
	Note     string        `json:"note,omitempty"`
}

// Estimator prices a flight leg, preferring live quotes and degrading
// to the local model when the pricing service is unavailable.
type Estimator struct {
	pricing PricingService
	timeout time.Duration
}

// NewEstimator creates an estimator. pricing may be nil, in which case
// every estimate comes from the local model.
func NewEstimator(pricing PricingService, timeout time.Duration) *Estimator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Estimator{pricing: pricing, timeout: timeout}
}

// Estimate prices one leg between two cities departing on the given
// date. It never returns an error: when live pricing fails the local
// model answers instead, with the downgrade disclosed in Note.
func (e *Estimator) Estimate(ctx context.Context, origin, destination string, departure time.Time) Result {
	localHours := EstimateDuration(origin, destination)

	res := Result{
		Origin:        origin,
		Destination:   destination,
		DurationHours: localHours,
		Currency:      currency.CAD,
	}

	if e.pricing != nil {
		quote, err := e.liveQuote(ctx, origin, destination, departure)
		switch {
		case err == nil:
			res.DurationHours = quote.DurationHours
			res.EconomyPrice = quote.Price
			res.Currency = quote.Currency
			res.Stops = quote.Stops
			res.Carrier = quote.Carrier
			res.Live = true
		default:
			log.Printf("flight pricing unavailable for %s-%s, using local estimate: %v", origin, destination, err)
		}
	}

	// Every non-live answer discloses the downgrade, including when no
	// pricing service is configured at all.
	if !res.Live {
		res.EconomyPrice = baseEconomyFare + economyFarePerHour*res.DurationHours
		res.Note = "Live flight pricing unavailable; prices are estimated."
	}
	res.BusinessPrice = res.EconomyPrice * businessFareMultiplier
	res.BusinessEligible = BusinessClassEligible(res.DurationHours)
	res.SelectedPrice = res.EconomyPrice
	if res.BusinessEligible {
		res.SelectedPrice = res.BusinessPrice
	}
	res.DurationDisplay = FormatDuration(res.DurationHours)
	return res
}

// FromSelection builds the flight line for a fare the traveler already
// picked from quoted options. No estimation happens: the quoted price
// is the selected price, and only eligibility is derived, from the
// quoted duration.
func FromSelection(origin, destination string, price, durationHours float64, cur currency.Code) Result {
	if cur == "" {
		cur = currency.CAD
	}
	return Result{
		Origin:           origin,
		Destination:      destination,
		DurationHours:    durationHours,
		DurationDisplay:  FormatDuration(durationHours),
		EconomyPrice:     price,
		BusinessPrice:    price * businessFareMultiplier,
		BusinessEligible: BusinessClassEligible(durationHours),
		SelectedPrice:    price,
		Currency:         cur,
		Live:             true,
	}
}

func (e *Estimator) liveQuote(ctx context.Context, origin, destination string, departure time.Time) (Quote, error) {
	originCode := sources.AirportCode(origin)
	destCode := sources.AirportCode(destination)
	if originCode == "" || destCode == "" {
		return Quote{}, errNoFlights
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.pricing.Search(ctx, originCode, destCode, departure)
}
