package rates

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/acdube/govtravel/internal/currency"
)

// Source supplies raw rate rows. Sources disagree on field names,
// encodings, and completeness; ingestion is responsible for making sense
// of them.
type Source interface {
	Name() string
	Rows() ([]RawRow, error)
}

// RawRow is one row as published by a source. Fields holds the messy
// free-form columns (meal amounts, plan type) under whatever names the
// source used; structured columns the source publishes cleanly are set
// directly.
type RawRow struct {
	City     string
	Province string
	Country  string
	Region   Region

	// Currency as embedded in the row, if any. Only CAD/EUR values are
	// honoured over the country mapping (see ResolveCurrency).
	Currency currency.Code

	// Monthly nightly accommodation rates, when published per month.
	Monthly [12]*float64

	// Free-form columns keyed by raw field name.
	Fields map[string]string

	// Legacy tier table columns: a single blended daily allowance and a
	// flat nightly accommodation figure.
	BlendedDaily   *float64
	BlendedNightly *float64
	Tier           int
	EffectiveDate  time.Time
}

// Canonical field-name candidates, in lookup order. The typo variants
// exist verbatim in the scraped data.
var fieldCandidates = map[string][]string{
	"breakfast":   {"breakfast"},
	"lunch":       {"lunch"},
	"dinner":      {"dinner"},
	"incidentals": {"incidental amount", "incidentals"},
	"mealtotal":   {"meal total", "meal totall", "meal totaa l"},
	"plantype":    {"type of accommodation", "meal plan type"},
}

// pending accumulates the winning row per city during a build.
type pending struct {
	rec  *RateRecord
	rank int // math-style: lower wins; unrankedRank when no known plan type
}

const unrankedRank = int(^uint(0) >> 1) // max int

// Build merges every source into one immutable snapshot, one RateRecord
// per city key. Conflicts between rows for the same city are settled by
// meal-plan priority; fields the winning row left empty are back-filled
// from previously accepted rows rather than discarded.
func Build(sources []Source) (*Snapshot, error) {
	accepted := make(map[string]*pending)
	var order []string

	for _, src := range sources {
		rows, err := src.Rows()
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name(), err)
		}
		for _, row := range rows {
			if NormalizeKey(row.City) == "" {
				continue
			}
			key := BuildKey(row.Country, row.City)
			candidate, rank := recordFromRow(key, row)

			existing, ok := accepted[key]
			if !ok {
				accepted[key] = &pending{rec: candidate, rank: rank}
				order = append(order, key)
				continue
			}

			// Lowest priority index wins. Ties and unranked rows never
			// overwrite an accepted row; their fields may still fill
			// gaps below.
			if rank < existing.rank {
				backfill(candidate, existing.rec)
				accepted[key] = &pending{rec: candidate, rank: rank}
			} else {
				backfill(existing.rec, candidate)
			}
		}
	}

	snap := newSnapshot()
	for _, key := range order {
		rec := accepted[key].rec
		finalize(rec)
		snap.add(rec)
	}

	log.Printf("rates: built snapshot with %d records from %d sources", len(snap.records), len(sources))
	return snap, nil
}

// recordFromRow converts one raw row into a candidate record plus its
// conflict-resolution rank.
func recordFromRow(key string, row RawRow) (*RateRecord, int) {
	rec := &RateRecord{
		Key:         key,
		DisplayName: row.City,
		Province:    row.Province,
		Country:     row.Country,
		Region:      row.Region,
		// Raw row currency for now; the allow-list resolution against
		// the country mapping happens in finalize, after backfill has
		// had a chance to surface an explicit value from another row.
		Currency:      row.Currency,
		Monthly:       row.Monthly,
		BlendedDaily:  row.BlendedDaily,
		Tier:          row.Tier,
		EffectiveDate: row.EffectiveDate,
	}
	if row.BlendedNightly != nil {
		v := *row.BlendedNightly
		rec.StandardRate = &v
	}

	fields := make(map[string]string, len(row.Fields))
	for name, value := range row.Fields {
		fields[NormalizeFieldName(name)] = value
	}

	rec.Breakfast = fieldFloat(fields, "breakfast")
	rec.Lunch = fieldFloat(fields, "lunch")
	rec.Dinner = fieldFloat(fields, "dinner")
	rec.Incidentals = fieldFloat(fields, "incidentals")
	rec.reportedMealTotal = fieldFloat(fields, "mealtotal")

	rec.PlanType = NormalizePlanType(fieldString(fields, "plantype"))
	rank, ranked := rec.PlanType.Rank()
	if !ranked {
		rank = unrankedRank
	}
	return rec, rank
}

func fieldString(fields map[string]string, canonical string) string {
	for _, name := range fieldCandidates[canonical] {
		if v, ok := fields[name]; ok {
			return v
		}
	}
	return ""
}

func fieldFloat(fields map[string]string, canonical string) *float64 {
	raw := fieldString(fields, canonical)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(stripInvisible(raw), 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

// backfill copies into dst any field it is missing that src has. This is
// field-level fallback: losing rows still contribute the columns the
// winner lacks.
func backfill(dst, src *RateRecord) {
	if dst.Breakfast == nil {
		dst.Breakfast = src.Breakfast
	}
	if dst.Lunch == nil {
		dst.Lunch = src.Lunch
	}
	if dst.Dinner == nil {
		dst.Dinner = src.Dinner
	}
	if dst.Incidentals == nil {
		dst.Incidentals = src.Incidentals
	}
	if dst.reportedMealTotal == nil {
		dst.reportedMealTotal = src.reportedMealTotal
	}
	if dst.BlendedDaily == nil {
		dst.BlendedDaily = src.BlendedDaily
	}
	if dst.StandardRate == nil {
		dst.StandardRate = src.StandardRate
	}
	if dst.Province == "" {
		dst.Province = src.Province
	}
	if dst.Currency == "" {
		dst.Currency = src.Currency
	}
	if dst.Tier == 0 {
		dst.Tier = src.Tier
	}
	for i := range dst.Monthly {
		if dst.Monthly[i] == nil {
			dst.Monthly[i] = src.Monthly[i]
		}
	}
}

// finalize derives the standard rate and meal total and enforces the
// record invariants: meals are all-or-nothing, and a record with no
// accommodation figure at all is flagged incomplete rather than dropped.
func finalize(rec *RateRecord) {
	rec.Currency = ResolveCurrency(rec.Currency, rec.Country)

	var sum float64
	var n int
	for _, m := range rec.Monthly {
		if m != nil {
			sum += *m
			n++
		}
	}
	if n > 0 {
		avg := sum / float64(n)
		rec.StandardRate = &avg
	}

	if rec.StandardRate == nil {
		rec.Incomplete = true
	}

	itemized := rec.Breakfast != nil && rec.Lunch != nil && rec.Dinner != nil
	partial := !itemized && (rec.Breakfast != nil || rec.Lunch != nil || rec.Dinner != nil)
	if partial {
		// A partially populated meal set indicates an ingestion bug
		// upstream; drop the fragment so downstream math never sees it.
		log.Printf("rates: %s has partial meal figures; discarding meals", rec.Key)
		rec.Breakfast, rec.Lunch, rec.Dinner = nil, nil, nil
	}
	if itemized {
		rec.MealTotal = *rec.Breakfast + *rec.Lunch + *rec.Dinner
		if rec.reportedMealTotal != nil && math.Abs(rec.MealTotal-*rec.reportedMealTotal) > 0.01 {
			// The components are authoritative; the published total is
			// only a cross-check.
			log.Printf("rates: %s publishes meal total %.2f but components sum to %.2f; using the sum",
				rec.Key, *rec.reportedMealTotal, rec.MealTotal)
		}
	}
}
