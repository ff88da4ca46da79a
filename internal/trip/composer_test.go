package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/flights"
	"github.com/acdube/govtravel/internal/rates"
	"github.com/acdube/govtravel/internal/rates/sources"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()

	snap, err := rates.Build(sources.All())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	store := rates.NewStore(snap)
	estimator := flights.NewEstimator(nil, time.Second)
	return NewComposer(store, estimator, sources.DefaultRecord())
}

func baseRequest() Request {
	return Request{
		Origin:        "Ottawa",
		Destination:   "Vancouver",
		DepartureDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestEstimateOttawaVancouver(t *testing.T) {
	c := newTestComposer(t)

	est, err := c.Estimate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.Days != 5 || est.Nights != 4 {
		t.Fatalf("days/nights = %d/%d, want 5/4", est.Days, est.Nights)
	}
	// 122.30/day meals and incidentals over 5 days.
	if !almostEqual(est.PerDiem.Total, 611.50) {
		t.Errorf("per-diem = %v, want 611.50", est.PerDiem.Total)
	}
	// 223.00/night over 4 nights.
	if !almostEqual(est.Accommodation.Total, 892.00) {
		t.Errorf("accommodation = %v, want 892.00", est.Accommodation.Total)
	}
	if !almostEqual(est.Total, 1503.50) {
		t.Errorf("total = %v, want 1503.50", est.Total)
	}
	if est.Currency != currency.CAD {
		t.Errorf("currency = %s, want CAD", est.Currency)
	}
	if est.Converted != nil {
		t.Error("CAD request must not carry a conversion block")
	}
	if len(est.Notes) != 0 {
		t.Errorf("clean estimate should carry no notes, got %v", est.Notes)
	}
	if est.ID == "" {
		t.Error("estimate must carry an id")
	}
	if est.DestinationInfo == nil || est.DestinationInfo.IATA != "YVR" {
		t.Errorf("destination info = %+v, want the Vancouver directory entry", est.DestinationInfo)
	}
}

func TestEstimateSameDayTrip(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.ReturnDate = req.DepartureDate

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Days != 1 || est.Nights != 0 {
		t.Fatalf("days/nights = %d/%d, want 1/0", est.Days, est.Nights)
	}
	if est.Accommodation.Total != 0 {
		t.Errorf("same-day trip should have no accommodation cost, got %v", est.Accommodation.Total)
	}
	if !almostEqual(est.PerDiem.Total, 122.30) {
		t.Errorf("same-day per-diem = %v, want one full day 122.30", est.PerDiem.Total)
	}
}

func TestEstimateUnknownCityUsesDefaultWithDisclosure(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.Destination = "Atlantis"

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// DEFAULT tier: 75.00 blended daily, 145.00 nightly.
	if !almostEqual(est.PerDiem.Total, 375.00) {
		t.Errorf("per-diem = %v, want 375.00 from the default tier", est.PerDiem.Total)
	}
	if !est.PerDiem.Blended {
		t.Error("default tier per-diem should be blended")
	}
	if !almostEqual(est.Accommodation.Total, 580.00) {
		t.Errorf("accommodation = %v, want 580.00 from the default tier", est.Accommodation.Total)
	}
	if len(est.Notes) == 0 {
		t.Fatal("default fallback must be disclosed in the notes")
	}
}

func TestEstimateCurrencyConversion(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.Currency = currency.USD

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.Converted == nil {
		t.Fatal("USD request must carry a conversion block")
	}
	if !almostEqual(est.Converted.ConvertedAmount, 1503.50*0.72) {
		t.Errorf("converted = %v, want %v", est.Converted.ConvertedAmount, 1503.50*0.72)
	}
	// The authoritative total stays in CAD.
	if !almostEqual(est.Total, 1503.50) {
		t.Errorf("total = %v, want CAD 1503.50", est.Total)
	}
}

func TestEstimateForeignDestinationConvertsToCAD(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.Destination = "Riga"
	req.ReturnDate = req.DepartureDate.AddDate(0, 0, 2) // 3 days, 2 nights

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.PerDiem.Currency != currency.EUR {
		t.Fatalf("Riga per-diem currency = %s, want EUR", est.PerDiem.Currency)
	}
	// Meals 81.65 + incidentals 12.40 per day, 3 days, March nightly
	// 130.00 over 2 nights, all EUR at the 1.52 curated rate.
	wantEUR := (81.65+12.40)*3 + 130.00*2
	if !almostEqual(est.Total, wantEUR*1.52) {
		t.Errorf("total = %v, want %v CAD", est.Total, wantEUR*1.52)
	}
}

func TestEstimateUnknownCurrencyDegrades(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.Currency = "XYZ"

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// An unlisted presentation currency is a data gap, not a bad
	// request: the estimate still succeeds in CAD with the skipped
	// conversion disclosed.
	if est.Converted != nil {
		t.Errorf("conversion block = %+v, want none for an unlisted currency", est.Converted)
	}
	if !almostEqual(est.Total, 1503.50) {
		t.Errorf("total = %v, want CAD 1503.50", est.Total)
	}
	if est.Currency != currency.CAD {
		t.Errorf("currency = %s, want CAD", est.Currency)
	}
	if len(est.Notes) == 0 {
		t.Fatal("the skipped conversion must be disclosed in the notes")
	}
}

func TestEstimateWithFlights(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.IncludeFlights = true

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.Flight == nil {
		t.Fatal("flight estimate missing")
	}
	if est.Flight.EconomyPrice <= 0 {
		t.Errorf("flight economy price = %v, want positive", est.Flight.EconomyPrice)
	}
	if !almostEqual(est.Total, 1503.50+est.Flight.SelectedPrice) {
		t.Errorf("total = %v, want per-diem and accommodation plus the selected fare", est.Total)
	}
}

func TestEstimateWithSelectedFlight(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.IncludeFlights = true
	req.SelectedFlight = &FlightSelection{Price: 842.37, DurationHours: 9.5}

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.Flight == nil {
		t.Fatal("flight line missing")
	}
	// The quoted fare is used as-is; the estimator never runs.
	if !almostEqual(est.Flight.SelectedPrice, 842.37) {
		t.Errorf("selected price = %v, want the quoted 842.37", est.Flight.SelectedPrice)
	}
	if !est.Flight.BusinessEligible {
		t.Error("a 9.5h quote should be business eligible")
	}
	if !almostEqual(est.Total, 1503.50+842.37) {
		t.Errorf("total = %v, want %v", est.Total, 1503.50+842.37)
	}
	if est.Flight.Note != "" {
		t.Errorf("a traveler-selected fare needs no estimation note, got %q", est.Flight.Note)
	}
}

func TestEstimateWithSelectedFlightShortHaul(t *testing.T) {
	c := newTestComposer(t)

	req := baseRequest()
	req.SelectedFlight = &FlightSelection{Price: 310.00, DurationHours: 2.0, Currency: currency.USD}

	est, err := c.Estimate(context.Background(), req)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if est.Flight == nil {
		t.Fatal("flight line missing")
	}
	if est.Flight.BusinessEligible {
		t.Error("a 2h quote must not be business eligible")
	}
	// The USD quote converts into the CAD total at the curated rate.
	if !almostEqual(est.Total, 1503.50+310.00*1.39) {
		t.Errorf("total = %v, want %v", est.Total, 1503.50+310.00*1.39)
	}
}

func TestEstimateValidation(t *testing.T) {
	c := newTestComposer(t)

	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing origin", func(r *Request) { r.Origin = " " }, ErrMissingCity},
		{"missing destination", func(r *Request) { r.Destination = "" }, ErrMissingCity},
		{"return before departure", func(r *Request) {
			r.ReturnDate = r.DepartureDate.AddDate(0, 0, -1)
		}, ErrInvalidDates},
		{"trip too long", func(r *Request) {
			r.ReturnDate = r.DepartureDate.AddDate(0, 0, 400)
		}, ErrTripTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			tc.mutate(&req)

			_, err := c.Estimate(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !IsInputError(err) {
				t.Error("validation failure must classify as an input error")
			}
		})
	}
}
