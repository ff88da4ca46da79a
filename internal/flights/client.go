package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/acdube/govtravel/internal/currency"
)

// Quote is one priced flight option from the pricing collaborator.
type Quote struct {
	Price         float64       `json:"price"`
	Currency      currency.Code `json:"currency"`
	Duration      string        `json:"duration"` // ISO-8601, e.g. "PT5H10M"
	DurationHours float64       `json:"durationHours"`
	Stops         int           `json:"stops"`
	StopCodes     []string      `json:"stopCodes,omitempty"`
	Carrier       string        `json:"carrier,omitempty"`
}

// PricingService is the live flight-pricing collaborator. It may be
// slow, rate limited, or down entirely; callers must always have a
// synchronous fallback.
type PricingService interface {
	Search(ctx context.Context, originCode, destinationCode string, departure time.Time) (Quote, error)
}

// BackoffConfig controls retry behaviour for the HTTP client.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
	errNoFlights   = errors.New("no flights found for route")
)

// HTTPPricingService talks to an Amadeus-style flight offers API with
// retries, exponential backoff, and a circuit breaker so a flaky
// collaborator cannot stall trip composition.
type HTTPPricingService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPPricingService creates a pricing client for the given endpoint.
func NewHTTPPricingService(baseURL, apiKey string, client *http.Client) *HTTPPricingService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "flight-pricing",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPPricingService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 300 * time.Millisecond,
			MaxInterval:     3 * time.Second,
		},
		circuit: cb,
	}
}

// Search fetches offers for a one-way route and returns the cheapest.
func (s *HTTPPricingService) Search(ctx context.Context, originCode, destinationCode string, departure time.Time) (Quote, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("originLocationCode", originCode)
		values.Set("destinationLocationCode", destinationCode)
		values.Set("departureDate", departure.Format("2006-01-02"))
		values.Set("currencyCode", string(currency.CAD))
		values.Set("max", "5")

		u := fmt.Sprintf("%s/shopping/flight-offers?%s", s.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
		return req, nil
	}

	resp, err := s.doWithResilience(ctx, buildRequest)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	var payload offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, err
	}
	if len(payload.Data) == 0 {
		return Quote{}, errNoFlights
	}

	best := Quote{}
	for _, offer := range payload.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}
		price, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil || price <= 0 {
			continue
		}

		itin := offer.Itineraries[0]
		minutes, err := ParseISODuration(itin.Duration)
		if err != nil {
			continue
		}

		q := Quote{
			Price:         price,
			Currency:      currency.Code(offer.Price.Currency),
			Duration:      itin.Duration,
			DurationHours: float64(minutes) / 60,
			Stops:         len(itin.Segments) - 1,
		}
		if len(itin.Segments) > 0 {
			q.Carrier = itin.Segments[0].CarrierCode
		}
		for i := 0; i < len(itin.Segments)-1; i++ {
			q.StopCodes = append(q.StopCodes, itin.Segments[i].Arrival.IataCode)
		}

		if best.Price == 0 || q.Price < best.Price {
			best = q
		}
	}

	if best.Price == 0 {
		return Quote{}, errNoFlights
	}
	return best, nil
}

// offersResponse is the subset of the flight-offers payload this client
// consumes.
type offersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string    `json:"duration"`
			Segments []segment `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

type segment struct {
	CarrierCode string `json:"carrierCode"`
	Arrival     struct {
		IataCode string `json:"iataCode"`
	} `json:"arrival"`
}

// doWithResilience executes the request with retries, exponential
// backoff, and the circuit breaker, honouring context cancellation.
func (s *HTTPPricingService) doWithResilience(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := s.circuit.Execute(func() (interface{}, error) {
			resp, execErr := s.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= s.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := s.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if s.backoff.MaxInterval > 0 && delay > s.backoff.MaxInterval {
			delay = s.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// ParseISODuration converts an ISO-8601 duration like "PT10H30M" to
// minutes.
func ParseISODuration(duration string) (int, error) {
	m := isoDurationRe.FindStringSubmatch(duration)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", duration)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}
