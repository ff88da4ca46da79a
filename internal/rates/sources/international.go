package sources

import (
	"strconv"
	"time"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
)

func floatString(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var internationalEffectiveDate = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// intlAccommodation mirrors the scraped accommodation feed: monthly
// nightly limits per city, no meal figures, occasionally an explicit
// currency for manually verified cities. A zero month means the source
// left it blank.
type intlAccommodation struct {
	city     string
	country  string
	currency currency.Code // explicit row currency, usually empty
	monthly  [12]float64
}

// intlPerDiem mirrors the scraped per-diem feed: one row per published
// accommodation tier, raw column names preserved (soft hyphens, stray
// spacing, and the "Meal Totall" typo all appear in the real data).
type intlPerDiem struct {
	city    string
	country string
	fields  map[string]string
}

var intlAccommodations = []intlAccommodation{
	{
		city: "London", country: "United Kingdom",
		monthly: [12]float64{285, 285, 290, 295, 300, 310, 315, 315, 305, 295, 290, 285},
	},
	{
		city: "Paris", country: "France", currency: currency.EUR,
		monthly: [12]float64{260, 260, 265, 270, 280, 295, 300, 295, 285, 275, 265, 260},
	},
	{
		city: "Riga", country: "Latvia", currency: currency.EUR,
		monthly: [12]float64{126, 126, 130, 135, 140, 148, 150, 148, 140, 134, 128, 126},
	},
	{
		city: "Tallinn", country: "Estonia", currency: currency.EUR,
		monthly: [12]float64{118, 118, 122, 128, 134, 142, 145, 142, 136, 128, 120, 118},
	},
	{
		city: "Munich", country: "Germany",
		monthly: [12]float64{210, 215, 220, 225, 230, 240, 245, 250, 280, 235, 220, 210},
	},
	{
		city: "New York", country: "United States",
		monthly: [12]float64{385, 385, 395, 405, 415, 425, 425, 420, 415, 410, 400, 390},
	},
	{
		city: "Washington", country: "United States",
		monthly: [12]float64{320, 325, 345, 365, 350, 335, 320, 310, 330, 345, 330, 315},
	},
	{
		city: "Tokyo", country: "Japan",
		monthly: [12]float64{295, 295, 310, 320, 305, 295, 290, 290, 295, 310, 305, 295},
	},
	{
		city: "Canberra", country: "Australia",
		monthly: [12]float64{184, 184, 184, 184, 184, 184, 184, 184, 184, 184, 184, 184},
	},
	{
		// Published with only a partial year; the missing months stay
		// null and the standard rate averages what exists.
		city: "Nuuk", country: "Greenland",
		monthly: [12]float64{0, 0, 0, 0, 245, 250, 255, 250, 240, 0, 0, 0},
	},
}

var intlPerDiems = []intlPerDiem{
	{
		city: "London", country: "United Kingdom",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "28.60",
			"Lunch":                 "32.15",
			"Dinner":                "74.25",
			"Incidental Amount":     "20.25",
			"Meal Total":            "135.00",
		},
	},
	{
		city: "London", country: "United Kingdom",
		fields: map[string]string{
			"Type of Accommodation": "P-Day 1-30",
			"Breakfast":             "21.45",
			"Lunch":                 "24.10",
			"Dinner":                "55.70",
			"Incidental Amount":     "15.20",
		},
	},
	{
		city: "Paris", country: "France",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "26.40",
			"Lunch":                 "30.05",
			"Dinner":                "68.90",
			"Incidental Amount":     "19.10",
		},
	},
	{
		city: "Riga", country: "Latvia",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "17.20",
			"Lunch":                 "19.85",
			"Dinner":                "44.60",
			"Incidental Amount":     "12.40",
			"Meal Totall":           "81.65",
		},
	},
	{
		// The scraped Munich rows arrive private-tier first; the
		// commercial tier below must still win the merge.
		city: "Munich", country: "Germany",
		fields: map[string]string{
			"Type of Accommodation": "P-Day 1-30",
			"Breakfast":             "18.90",
			"Lunch":                 "21.30",
			"Dinner":                "49.95",
			"Incidental Amount":     "13.65",
		},
	},
	{
		city: "Munich", country: "Germany",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "25.20",
			"Lunch":                 "28.40",
			"Dinner":                "66.60",
			"Incidental Amount":     "18.20",
		},
	},
	{
		city: "Munich", country: "Germany",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 31-120",
			"Breakfast":             "18.90",
			"Lunch":                 "21.30",
			"Dinner":                "49.95",
			"Incidental Amount":     "13.65",
		},
	},
	{
		city: "New York", country: "United States",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "31.10",
			"Lunch":                 "35.60",
			"Dinner":                "82.30",
			"Incidental Amount":     "22.40",
		},
	},
	{
		city: "Tokyo", country: "Japan",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "29.75",
			"Lunch":                 "33.20",
			"Dinner":                "77.10",
			"Incidental Amount":     "21.05",
		},
	},
	{
		city: "Canberra", country: "Australia",
		fields: map[string]string{
			"Type of Accommodation": "C-Day 1-30",
			"Breakfast":             "25.45",
			"Lunch":                 "25.90",
			"Dinner":                "62.45",
			"Incidental Amount":     "17.50",
		},
	},
}

// InternationalSource publishes the scraped foreign-city feeds. The
// accommodation rows and per-diem rows describe the same cities through
// different columns; ingestion stitches them together.
type InternationalSource struct{}

func (InternationalSource) Name() string { return "njc-international" }

func (InternationalSource) Rows() ([]rates.RawRow, error) {
	var rows []rates.RawRow

	for _, a := range intlAccommodations {
		var monthly [12]*float64
		for i, v := range a.monthly {
			if v > 0 {
				monthly[i] = rates.Float(v)
			}
		}
		rows = append(rows, rates.RawRow{
			City:          a.city,
			Country:       a.country,
			Region:        regionFor(a.country),
			Currency:      a.currency,
			Monthly:       monthly,
			EffectiveDate: internationalEffectiveDate,
		})
	}

	for _, p := range intlPerDiems {
		rows = append(rows, rates.RawRow{
			City:          p.city,
			Country:       p.country,
			Region:        regionFor(p.country),
			Fields:        p.fields,
			EffectiveDate: internationalEffectiveDate,
		})
	}

	return rows, nil
}

func regionFor(country string) rates.Region {
	switch rates.NormalizeKey(country) {
	case "canada":
		return rates.RegionCanada
	case "united states", "usa":
		return rates.RegionUSA
	default:
		return rates.RegionInternational
	}
}
