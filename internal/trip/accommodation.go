package trip

import (
	"fmt"
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
	"github.com/acdube/govtravel/internal/rates/sources"
)

// Accommodation computes the lodging cost for a stay. Commercial stays
// use the record's nightly rate for the departure month (or the
// caller's override); private stays use the flat private allowance
// unless the caller supplies a positive custom rate. Zero nights means
// zero cost regardless of rate.
func Accommodation(rec *rates.RateRecord, accType AccommodationType, nights int, customNightly float64, month time.Month) AccommodationEstimate {
	if accType == "" {
		accType = AccommodationCommercial
	}
	if nights < 0 {
		nights = 0
	}

	est := AccommodationEstimate{
		Type:     accType,
		Nights:   nights,
		Currency: rec.Currency,
	}

	switch accType {
	case AccommodationPrivate:
		est.NightlyRate = sources.PrivateNightlyAllowance
		if customNightly > 0 {
			est.NightlyRate = customNightly
		}
	default:
		est.NightlyRate = rec.NightlyRate(month)
		if customNightly > 0 {
			est.NightlyRate = customNightly
		}
	}

	est.Total = est.NightlyRate * float64(nights)
	est.Justification = fmt.Sprintf("%s per night (%s) for %d nights",
		currency.Format(est.NightlyRate, est.Currency), accType, nights)
	return est
}
