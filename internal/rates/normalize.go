package rates

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// dayRangeRe fixes plan-type strings like "Day 121+" to the canonical
// "Day 121 +" spelling used by the priority table.
var dayRangeRe = regexp.MustCompile(`(?i)(Day \d+)\s*\+`)

var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// stripInvisible removes the invisible characters the scraped sources
// carry (soft hyphens, zero widths, BOMs), folds typographic dashes to
// plain hyphens, and turns non-breaking spaces into ordinary ones.
func stripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00ad', '\u200b', '\u200c', '\u200d', '\ufeff':
			// dropped
		case '\u00a0':
			b.WriteByte(' ')
		case '\u2010', '\u2011', '\u2012', '\u2013':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func foldDiacritics(s string) string {
	out, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeFieldName canonicalizes a raw source field name so that
// variants like "Incidental Amount" with stray invisible characters and
// whitespace all match the same canonical key.
func NormalizeFieldName(name string) string {
	cleaned := stripInvisible(name)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// NormalizeKey builds the canonical city key: lowercase, diacritics and
// punctuation stripped, internal whitespace collapsed to single spaces.
func NormalizeKey(name string) string {
	cleaned := foldDiacritics(stripInvisible(name))

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			b.WriteByte(' ')
		default:
			// remaining punctuation dropped ("St. John's" -> "st johns")
		}
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// NormalizeIdentifier prepares a caller-supplied city identifier for
// resolution. Trailing region qualifiers after a comma ("Calgary, AB")
// are dropped before key normalization.
func NormalizeIdentifier(id string) string {
	if i := strings.IndexByte(id, ','); i >= 0 {
		id = id[:i]
	}
	return NormalizeKey(id)
}

// BuildKey derives the unique store key for a city within a country.
func BuildKey(country, city string) string {
	country = NormalizeKey(country)
	city = NormalizeKey(city)
	if country == "" {
		return city
	}
	return country + " " + city
}

// NormalizePlanType canonicalizes a raw "Type of Accommodation" value to
// a MealPlanType. The result may still be unranked if the source used a
// tier outside the known six.
func NormalizePlanType(raw string) MealPlanType {
	cleaned := stripInvisible(raw)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = dayRangeRe.ReplaceAllString(cleaned, "$1 +")
	return MealPlanType(strings.TrimSpace(cleaned))
}
