package httpapi

import (
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
	"github.com/acdube/govtravel/internal/trip"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, store *rates.Store, composer *trip.Composer) {
	v1 := app.Group("/api/v1")

	v1.Post("/estimate", func(c *fiber.Ctx) error {
		var body estimateBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req, err := body.toRequest()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		estimate, err := composer.Estimate(c.Context(), req)
		if err != nil {
			if trip.IsInputError(err) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to estimate trip")
		}

		return c.JSON(estimate)
	})

	v1.Get("/rates/:city", func(c *fiber.Ctx) error {
		city, err := decodeCityParam(c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city parameter")
		}

		res := store.Resolve(city, nil)
		if res.UsedDefault {
			return fiber.NewError(fiber.StatusNotFound, "no rate listing for requested city")
		}

		return c.JSON(res.Record)
	})

	v1.Get("/rates", func(c *fiber.Ctx) error {
		region, err := parseRegion(c.Query("region"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap := store.Current()
		records := snap.ByRegion(region)

		return c.JSON(fiber.Map{
			"region":  region,
			"builtAt": snap.BuiltAt(),
			"count":   len(records),
			"records": records,
		})
	})
}

// estimateBody is the wire form of a trip estimation request. Dates
// arrive as strings so both date-only and RFC3339 forms are accepted.
type estimateBody struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`

	DepartureDate string `json:"departureDate" validate:"required"`
	ReturnDate    string `json:"returnDate" validate:"required"`

	Accommodation     string  `json:"accommodation" validate:"omitempty,oneof=commercial private"`
	CustomNightlyRate float64 `json:"customNightlyRate" validate:"omitempty,gte=0"`
	IncludeFlights    bool    `json:"includeFlights"`
	Currency          string  `json:"currency" validate:"omitempty,oneof=CAD USD EUR AUD"`

	SelectedFlight *selectedFlightBody `json:"selectedFlight"`
}

// selectedFlightBody is a quote the traveler picked from an earlier
// flight search and wants billed as-is.
type selectedFlightBody struct {
	Price         float64 `json:"price" validate:"required,gt=0"`
	DurationHours float64 `json:"durationHours" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"omitempty,oneof=CAD USD EUR AUD"`
}

func (b estimateBody) toRequest() (trip.Request, error) {
	departure, err := parseDate(b.DepartureDate)
	if err != nil {
		return trip.Request{}, err
	}
	ret, err := parseDate(b.ReturnDate)
	if err != nil {
		return trip.Request{}, err
	}

	req := trip.Request{
		Origin:            b.Origin,
		Destination:       b.Destination,
		DepartureDate:     departure,
		ReturnDate:        ret,
		Accommodation:     trip.AccommodationType(b.Accommodation),
		CustomNightlyRate: b.CustomNightlyRate,
		IncludeFlights:    b.IncludeFlights,
		Currency:          currency.Code(b.Currency),
	}
	if b.SelectedFlight != nil {
		req.SelectedFlight = &trip.FlightSelection{
			Price:         b.SelectedFlight.Price,
			DurationHours: b.SelectedFlight.DurationHours,
			Currency:      currency.Code(b.SelectedFlight.Currency),
		}
	}
	return req, nil
}

// parseDate tries date-only first, then full RFC3339.
func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD or RFC3339")
}

func parseRegion(s string) (rates.Region, error) {
	switch rates.Region(s) {
	case rates.RegionCanada, "":
		return rates.RegionCanada, nil
	case rates.RegionUSA:
		return rates.RegionUSA, nil
	case rates.RegionInternational:
		return rates.RegionInternational, nil
	}
	return "", errors.New("unknown region; use canada, usa, or international")
}

func decodeCityParam(raw string) (string, error) {
	city, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return city, nil
}
