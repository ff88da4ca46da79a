package rates

import (
	"time"

	"github.com/acdube/govtravel/internal/currency"
)

// Region classifies where a rate record applies. Canadian records use the
// province or territory name; everything else uses one of the broad
// buckets below.
type Region string

const (
	RegionCanada        Region = "canada"
	RegionUSA           Region = "usa"
	RegionInternational Region = "international"
)

// MealPlanType tags the sourced rate tier a raw row was published under.
// It only matters during ingestion conflict resolution and is carried on
// the record for traceability.
type MealPlanType string

const (
	PlanCommercialShort MealPlanType = "C-Day 1-30"
	PlanCommercialMid   MealPlanType = "C-Day 31-120"
	PlanCommercialLong  MealPlanType = "C-Day 121 +"
	PlanPrivateShort    MealPlanType = "P-Day 1-30"
	PlanPrivateMid      MealPlanType = "P-Day 31-120"
	PlanPrivateLong     MealPlanType = "P-Day 121 +"
)

// planRanks defines the total priority order over plan types. Lower is
// better: commercial tiers outrank private ones, and earlier day ranges
// outrank later ones.
var planRanks = map[MealPlanType]int{
	PlanCommercialShort: 0,
	PlanCommercialMid:   1,
	PlanCommercialLong:  2,
	PlanPrivateShort:    3,
	PlanPrivateMid:      4,
	PlanPrivateLong:     5,
}

// Rank returns the priority index of the plan type. Unrecognized types
// are unranked and report ok=false.
func (t MealPlanType) Rank() (rank int, ok bool) {
	rank, ok = planRanks[t]
	return rank, ok
}

// RateRecord is the authoritative per-city rate unit consumed by the
// calculators. Records are built once by ingestion and never mutated at
// request time.
type RateRecord struct {
	Key         string        `json:"key"`
	DisplayName string        `json:"displayName"`
	Province    string        `json:"province,omitempty"`
	Country     string        `json:"country"`
	Region      Region        `json:"region"`
	Currency    currency.Code `json:"currency"`

	// Monthly nightly accommodation rates, January through December.
	// A nil month means the source did not publish that month.
	Monthly [12]*float64 `json:"monthlyAccommodation"`

	// StandardRate is the arithmetic mean of the defined months, used
	// when no month-specific lookup is needed. Nil when every month is
	// nil, which marks the record incomplete.
	StandardRate *float64 `json:"standardRate,omitempty"`

	// Itemized daily meal amounts. Either all three are set or all three
	// are nil; a partial set is an ingestion bug and is rejected.
	Breakfast   *float64 `json:"breakfast,omitempty"`
	Lunch       *float64 `json:"lunch,omitempty"`
	Dinner      *float64 `json:"dinner,omitempty"`
	Incidentals *float64 `json:"incidentals,omitempty"`

	// MealTotal is the derived breakfast+lunch+dinner sum for itemized
	// records.
	MealTotal float64 `json:"mealTotal"`

	// BlendedDaily is the single blended per-diem rate published by the
	// legacy tier table. Used only when no itemized meal figures exist.
	BlendedDaily *float64 `json:"blendedDaily,omitempty"`

	// Tier is the legacy NJC tier (1-3), 0 when not applicable.
	Tier int `json:"tier,omitempty"`

	PlanType      MealPlanType `json:"mealPlanType,omitempty"`
	EffectiveDate time.Time    `json:"effectiveDate,omitempty"`

	// Incomplete marks records with no accommodation figures at all.
	// They stay resolvable but are excluded from region aggregates.
	Incomplete bool `json:"incomplete,omitempty"`

	// reportedMealTotal is the meal total column as published by the
	// source. Ingestion cross-checks it against the derived component
	// sum; the sum is always authoritative.
	reportedMealTotal *float64
}

// Itemized reports whether the record carries per-meal amounts.
func (r *RateRecord) Itemized() bool {
	return r.Breakfast != nil && r.Lunch != nil && r.Dinner != nil
}

// NightlyRate returns the accommodation rate for the given month, falling
// back to the standard rate when the month is unknown (0) or unpublished.
func (r *RateRecord) NightlyRate(month time.Month) float64 {
	if month >= time.January && month <= time.December {
		if v := r.Monthly[month-1]; v != nil {
			return *v
		}
	}
	if r.StandardRate != nil {
		return *r.StandardRate
	}
	return 0
}

// DailyAllowance returns the full daily per-diem (meals plus incidentals)
// for the record, preferring itemized figures over the blended rate.
func (r *RateRecord) DailyAllowance() float64 {
	if r.Itemized() {
		total := r.MealTotal
		if r.Incidentals != nil {
			total += *r.Incidentals
		}
		return total
	}
	if r.BlendedDaily != nil {
		return *r.BlendedDaily
	}
	return 0
}

// Float returns a pointer to v; helper for building records and rows.
func Float(v float64) *float64 {
	return &v
}
