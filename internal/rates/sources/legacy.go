package sources

import (
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
)

// The legacy tier table predates the itemized meal schedule: each city
// carries one blended daily allowance and a flat nightly limit. It is
// still the only coverage for a handful of smaller cities, and its
// DEFAULT row is the conservative fallback tier for unknown cities.
const (
	defaultBlendedDaily = 75.00
	defaultNightly      = 145.00
	defaultTier         = 3

	// PrivateNightlyAllowance is the flat nightly rate for private
	// (non-commercial) accommodation, per the directive.
	PrivateNightlyAllowance = 50.00
)

var legacyEffectiveDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

type legacyTierCity struct {
	name     string
	province string
	perDiem  float64
	nightly  float64
	tier     int
}

// Smaller cities only the legacy table covers, plus the tier-1 majors it
// also lists (those lose the merge to the itemized Canadian rows but
// still contribute their blended rate and tier).
var legacyTierCities = []legacyTierCity{
	{"Toronto", "ON", 95.00, 204.00, 1},
	{"Montreal", "QC", 93.00, 198.00, 1},
	{"Vancouver", "BC", 98.00, 223.00, 1},
	{"Calgary", "AB", 92.00, 195.00, 1},
	{"Ottawa", "ON", 94.00, 205.00, 1},
	{"Edmonton", "AB", 90.00, 188.00, 1},
	{"Brampton", "ON", 88.00, 185.00, 2},
	{"Markham", "ON", 89.00, 190.00, 2},
	{"Vaughan", "ON", 88.00, 188.00, 2},
	{"Richmond Hill", "ON", 87.00, 185.00, 2},
	{"Oakville", "ON", 86.00, 180.00, 2},
	{"Burlington", "ON", 84.00, 170.00, 2},
	{"Oshawa", "ON", 81.00, 162.00, 2},
	{"Barrie", "ON", 82.00, 165.00, 2},
	{"Cambridge", "ON", 81.00, 163.00, 2},
	{"Guelph", "ON", 82.00, 165.00, 2},
	{"Waterloo", "ON", 81.00, 164.00, 2},
	{"Longueuil", "QC", 86.00, 180.00, 2},
	{"Saguenay", "QC", 76.00, 148.00, 2},
	{"Levis", "QC", 82.00, 168.00, 2},
	{"Terrebonne", "QC", 84.00, 172.00, 2},
	{"Richmond", "BC", 91.00, 198.00, 2},
	{"Abbotsford", "BC", 82.00, 165.00, 2},
	{"Coquitlam", "BC", 88.00, 185.00, 2},
	{"Saanich", "BC", 87.00, 180.00, 2},
	{"Nanaimo", "BC", 82.00, 168.00, 2},
	{"Dartmouth", "NS", 83.00, 168.00, 2},
}

// LegacyTierSource publishes the legacy tiered rate table.
type LegacyTierSource struct{}

func (LegacyTierSource) Name() string { return "legacy-tiers" }

func (LegacyTierSource) Rows() ([]rates.RawRow, error) {
	rows := make([]rates.RawRow, 0, len(legacyTierCities))
	for _, c := range legacyTierCities {
		rows = append(rows, rates.RawRow{
			City:           c.name,
			Province:       c.province,
			Country:        "Canada",
			Region:         rates.RegionCanada,
			Currency:       currency.CAD,
			BlendedDaily:   rates.Float(c.perDiem),
			BlendedNightly: rates.Float(c.nightly),
			Tier:           c.tier,
			EffectiveDate:  legacyEffectiveDate,
		})
	}
	return rows, nil
}

// DefaultRecord returns the conservative DEFAULT tier used whenever a
// city cannot be resolved. It is built directly rather than ingested so
// the fallback exists even if every source fails.
func DefaultRecord() *rates.RateRecord {
	return &rates.RateRecord{
		Key:           "default",
		DisplayName:   "Standard rate (unlisted city)",
		Country:       "Canada",
		Region:        rates.RegionCanada,
		Currency:      currency.CAD,
		StandardRate:  rates.Float(defaultNightly),
		BlendedDaily:  rates.Float(defaultBlendedDaily),
		Tier:          defaultTier,
		EffectiveDate: legacyEffectiveDate,
	}
}

// All returns the full source set in merge order: itemized Canadian rows
// first, then the scraped international feeds, then the legacy tiers.
func All() []rates.Source {
	return []rates.Source{
		CanadianSource{},
		InternationalSource{},
		LegacyTierSource{},
	}
}
