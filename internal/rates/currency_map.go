package rates

import "github.com/acdube/govtravel/internal/currency"

// countryCurrencies maps a country (normalized key form) to the currency
// its accommodation limits are published in, per NJC Appendix D. Foreign
// limits default to USD; European entries are published in EUR. A few
// country-level oddities (Algeria, Angola in CAD) come straight from the
// source tables.
var countryCurrencies = map[string]currency.Code{
	// EUR countries
	"austria": currency.EUR, "belgium": currency.EUR, "bulgaria": currency.EUR,
	"croatia": currency.EUR, "cyprus": currency.EUR, "czech republic": currency.EUR,
	"denmark": currency.EUR, "estonia": currency.EUR, "finland": currency.EUR,
	"france": currency.EUR, "germany": currency.EUR, "greece": currency.EUR,
	"hungary": currency.EUR, "ireland": currency.EUR, "italy": currency.EUR,
	"latvia": currency.EUR, "lithuania": currency.EUR, "luxembourg": currency.EUR,
	"malta": currency.EUR, "netherlands": currency.EUR, "poland": currency.EUR,
	"portugal": currency.EUR, "romania": currency.EUR, "slovakia": currency.EUR,
	"slovenia": currency.EUR, "spain": currency.EUR, "sweden": currency.EUR,
	"albania": currency.EUR, "andorra": currency.EUR, "bosnia and herzegovina": currency.EUR,
	"kosovo": currency.EUR, "montenegro": currency.EUR, "north macedonia": currency.EUR,
	"serbia": currency.EUR, "ukraine": currency.EUR, "moldova": currency.EUR,
	"iceland": currency.EUR, "norway": currency.EUR, "switzerland": currency.EUR,

	// CAD countries
	"canada": currency.CAD, "algeria": currency.CAD, "angola": currency.CAD,

	// AUD countries
	"australia": currency.AUD,

	// USD countries (everything else also defaults to USD)
	"united states": currency.USD, "usa": currency.USD, "mexico": currency.USD,
	"brazil": currency.USD, "chile": currency.USD, "colombia": currency.USD,
	"peru": currency.USD, "argentina": currency.USD, "japan": currency.USD,
	"china": currency.USD, "south korea": currency.USD, "india": currency.USD,
	"singapore": currency.USD, "thailand": currency.USD, "vietnam": currency.USD,
	"israel": currency.USD, "saudi arabia": currency.USD, "turkey": currency.USD,
	"united arab emirates": currency.USD, "qatar": currency.USD,
	"south africa": currency.USD, "kenya": currency.USD, "nigeria": currency.USD,
	"egypt": currency.USD, "morocco": currency.USD,
}

// CurrencyForCountry returns the publishing currency for a country,
// defaulting to USD for anything unmapped.
func CurrencyForCountry(country string) currency.Code {
	if code, ok := countryCurrencies[NormalizeKey(country)]; ok {
		return code
	}
	return currency.USD
}

// ResolveCurrency decides the currency for a record. The country mapping
// is authoritative; an explicit per-row currency is honoured only for the
// CAD/EUR allow-list, which covers cities whose values were manually
// verified and must not be clobbered by the generic default.
func ResolveCurrency(explicit currency.Code, country string) currency.Code {
	if explicit == currency.EUR || explicit == currency.CAD {
		return explicit
	}
	return CurrencyForCountry(country)
}
