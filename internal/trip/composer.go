package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/flights"
	"github.com/acdube/govtravel/internal/rates"
	"github.com/acdube/govtravel/internal/rates/sources"
)

// MaxTripDays caps the trip span a single estimate will cost.
const MaxTripDays = 365

// Input validation failures, distinguishable from internal errors so the
// HTTP layer can map them to 400s.
var (
	ErrMissingCity  = errors.New("origin and destination are required")
	ErrInvalidDates = errors.New("return date must not precede departure date")
	ErrTripTooLong  = fmt.Errorf("trip length exceeds %d days", MaxTripDays)
)

// IsInputError reports whether err stems from a bad request rather than
// an internal failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingCity) ||
		errors.Is(err, ErrInvalidDates) ||
		errors.Is(err, ErrTripTooLong)
}

// Composer assembles full trip estimates from the rate store and the
// flight estimator.
type Composer struct {
	store     *rates.Store
	flights   *flights.Estimator
	defRecord *rates.RateRecord
}

// NewComposer creates a composer. flightEstimator may be nil when
// flight estimation is disabled.
func NewComposer(store *rates.Store, flightEstimator *flights.Estimator, defRecord *rates.RateRecord) *Composer {
	return &Composer{
		store:     store,
		flights:   flightEstimator,
		defRecord: defRecord,
	}
}

func validate(req Request) error {
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return ErrMissingCity
	}
	if req.ReturnDate.Before(req.DepartureDate) {
		return ErrInvalidDates
	}
	if req.Days() > MaxTripDays {
		return ErrTripTooLong
	}
	return nil
}

// Estimate costs the full trip: per-diem, accommodation, and optionally
// flights, totalled in CAD with an optional presentation-currency view.
func (c *Composer) Estimate(ctx context.Context, req Request) (*Estimate, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	resolution := c.store.Resolve(req.Destination, c.defRecord)
	rec := resolution.Record

	est := &Estimate{
		ID:            newEstimateID(),
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Days:          req.Days(),
		Nights:        req.Nights(),
		Currency:      currency.CAD,
		GeneratedAt:   time.Now().UTC(),
	}

	if info, ok := sources.LookupCity(req.Origin); ok {
		est.OriginInfo = &info
	}
	if info, ok := sources.LookupCity(req.Destination); ok {
		est.DestinationInfo = &info
	}

	if resolution.UsedDefault {
		est.Notes = append(est.Notes,
			fmt.Sprintf("No rate listing for %q; the standard rate for unlisted cities was applied.", req.Destination))
	}

	est.PerDiem = PerDiem(rec, est.Days)
	est.Accommodation = Accommodation(rec, req.Accommodation, est.Nights, req.CustomNightlyRate, req.DepartureDate.Month())

	total := currency.Convert(est.PerDiem.Total, est.PerDiem.Currency, currency.CAD) +
		currency.Convert(est.Accommodation.Total, est.Accommodation.Currency, currency.CAD)

	switch {
	case req.SelectedFlight != nil:
		flight := flights.FromSelection(req.Origin, req.Destination,
			req.SelectedFlight.Price, req.SelectedFlight.DurationHours, req.SelectedFlight.Currency)
		total += currency.Convert(flight.SelectedPrice, flight.Currency, currency.CAD)
		est.Flight = &flight
	case req.IncludeFlights && c.flights != nil:
		flight := c.flights.Estimate(ctx, req.Origin, req.Destination, req.DepartureDate)
		if flight.Note != "" {
			est.Notes = append(est.Notes, flight.Note)
		}
		total += currency.Convert(flight.SelectedPrice, flight.Currency, currency.CAD)
		est.Flight = &flight
	}

	est.Total = total

	// Conversion is best-effort: an unknown presentation currency is a
	// data gap, not a rejection. The total stays in CAD and the skipped
	// conversion is disclosed.
	if req.Currency != "" && req.Currency != currency.CAD {
		if currency.Valid(req.Currency) {
			details := currency.ConversionDetails(total, currency.CAD, req.Currency)
			est.Converted = &details
		} else {
			est.Notes = append(est.Notes,
				fmt.Sprintf("No conversion rate for %s; the total is shown in CAD.", req.Currency))
		}
	}

	return est, nil
}
