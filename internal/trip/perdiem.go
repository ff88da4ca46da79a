package trip

import (
	"fmt"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
)

// Blended rates predate the itemized schedule; when only a blended
// daily figure exists it is apportioned into meal lines with the
// directive's standard split.
const (
	blendedBreakfastShare   = 0.20
	blendedLunchShare       = 0.30
	blendedDinnerShare      = 0.40
	blendedIncidentalsShare = 0.10
)

// PerDiem computes the meals-and-incidentals allowance for days of
// travel at the record's rate. Every travel day, including departure and
// return days, accrues a full allowance.
func PerDiem(rec *rates.RateRecord, days int) PerDiemEstimate {
	if days < 0 {
		days = 0
	}
	n := float64(days)

	est := PerDiemEstimate{
		Days:     days,
		Currency: rec.Currency,
	}

	if rec.Itemized() {
		var incidentals float64
		if rec.Incidentals != nil {
			incidentals = *rec.Incidentals
		}
		est.DailyRate = rec.MealTotal + incidentals
		est.Breakdown = MealBreakdown{
			Breakfast:   *rec.Breakfast * n,
			Lunch:       *rec.Lunch * n,
			Dinner:      *rec.Dinner * n,
			Incidentals: incidentals * n,
		}
		est.Total = est.DailyRate * n
		est.Justification = fmt.Sprintf("%s per day (itemized meals and incidentals) for %d days",
			currency.Format(est.DailyRate, rec.Currency), days)
		return est
	}

	daily := rec.DailyAllowance()
	est.Blended = true
	est.DailyRate = daily
	est.Breakdown = MealBreakdown{
		Breakfast:   daily * blendedBreakfastShare * n,
		Lunch:       daily * blendedLunchShare * n,
		Dinner:      daily * blendedDinnerShare * n,
		Incidentals: daily * blendedIncidentalsShare * n,
	}
	est.Total = daily * n
	est.Justification = fmt.Sprintf("%s per day (blended allowance) for %d days",
		currency.Format(daily, rec.Currency), days)
	return est
}
