// Package sources bundles the raw rate-data feeds the ingestion step
// merges: the Canadian city table, the scraped international rows, and
// the legacy tier table. Each source mimics the shape its upstream
// publishes, messy field names included; cleaning them up here would hide
// exactly the problems ingestion exists to solve.
package sources

import (
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
)

// Canadian per-diem components (NJC Appendix C, 100% rate, CAD). The
// directive publishes one meal schedule for all of Canada; only the
// nightly accommodation limit varies by city.
const (
	canadaBreakfast   = 23.30
	canadaLunch       = 23.60
	canadaDinner      = 57.90
	canadaIncidentals = 17.50
)

var canadianEffectiveDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

type canadianCity struct {
	name     string
	province string
	nightly  float64
}

var canadianCities = []canadianCity{
	{"Toronto", "ON", 204.00},
	{"Montreal", "QC", 198.00},
	{"Vancouver", "BC", 223.00},
	{"Calgary", "AB", 195.00},
	{"Ottawa", "ON", 205.00},
	{"Edmonton", "AB", 188.00},
	{"Quebec City", "QC", 185.00},
	{"Winnipeg", "MB", 175.00},
	{"Halifax", "NS", 178.00},
	{"Victoria", "BC", 192.00},
	{"Mississauga", "ON", 195.00},
	{"Hamilton", "ON", 172.00},
	{"London", "ON", 168.00},
	{"Kitchener", "ON", 165.00},
	{"Windsor", "ON", 160.00},
	{"Kingston", "ON", 168.00},
	{"Sudbury", "ON", 158.00},
	{"Thunder Bay", "ON", 152.00},
	{"St. Catharines", "ON", 155.00},
	{"Laval", "QC", 185.00},
	{"Gatineau", "QC", 182.00},
	{"Sherbrooke", "QC", 155.00},
	{"Trois-Rivières", "QC", 150.00},
	{"Surrey", "BC", 195.00},
	{"Burnaby", "BC", 200.00},
	{"Kelowna", "BC", 175.00},
	{"Kamloops", "BC", 158.00},
	{"Prince George", "BC", 155.00},
	{"Saskatoon", "SK", 168.00},
	{"Regina", "SK", 165.00},
	{"Red Deer", "AB", 160.00},
	{"Lethbridge", "AB", 155.00},
	{"St. John's", "NL", 172.00},
	{"Moncton", "NB", 158.00},
	{"Saint John", "NB", 155.00},
	{"Fredericton", "NB", 152.00},
	{"Charlottetown", "PE", 162.00},
	{"Whitehorse", "YT", 197.00},
	{"Yellowknife", "NT", 214.00},
	{"Iqaluit", "NU", 259.00},
}

// CanadianSource publishes one row per Canadian city: a flat monthly
// accommodation schedule plus the national meal components.
type CanadianSource struct{}

func (CanadianSource) Name() string { return "njc-canada" }

func (CanadianSource) Rows() ([]rates.RawRow, error) {
	rows := make([]rates.RawRow, 0, len(canadianCities))
	for _, c := range canadianCities {
		var monthly [12]*float64
		for i := range monthly {
			monthly[i] = rates.Float(c.nightly)
		}
		rows = append(rows, rates.RawRow{
			City:     c.name,
			Province: c.province,
			Country:  "Canada",
			Region:   rates.RegionCanada,
			Currency: currency.CAD,
			Monthly:  monthly,
			Fields: map[string]string{
				"Breakfast":         floatString(canadaBreakfast),
				"Lunch":             floatString(canadaLunch),
				"Dinner":            floatString(canadaDinner),
				"Incidental Amount": floatString(canadaIncidentals),
			},
			EffectiveDate: canadianEffectiveDate,
		})
	}
	return rows, nil
}
