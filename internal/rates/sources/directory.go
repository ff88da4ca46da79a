package sources

import "github.com/acdube/govtravel/internal/rates"

// CityInfo is the directory entry for a known city: where it is and
// which airport serves it. Cities without their own airport map to the
// nearest major one.
type CityInfo struct {
	Name     string `json:"name"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country"`
	IATA     string `json:"iata"`
}

var directory = []CityInfo{
	{"Calgary", "AB", "Canada", "YYC"},
	{"Edmonton", "AB", "Canada", "YEG"},
	{"Red Deer", "AB", "Canada", "YQF"},
	{"Lethbridge", "AB", "Canada", "YQL"},
	{"Vancouver", "BC", "Canada", "YVR"},
	{"Victoria", "BC", "Canada", "YYJ"},
	{"Surrey", "BC", "Canada", "YVR"},
	{"Burnaby", "BC", "Canada", "YVR"},
	{"Richmond", "BC", "Canada", "YVR"},
	{"Kelowna", "BC", "Canada", "YLW"},
	{"Kamloops", "BC", "Canada", "YKA"},
	{"Nanaimo", "BC", "Canada", "YCD"},
	{"Prince George", "BC", "Canada", "YXS"},
	{"Winnipeg", "MB", "Canada", "YWG"},
	{"Moncton", "NB", "Canada", "YQM"},
	{"Saint John", "NB", "Canada", "YSJ"},
	{"Fredericton", "NB", "Canada", "YFC"},
	{"St. John's", "NL", "Canada", "YYT"},
	{"Yellowknife", "NT", "Canada", "YZF"},
	{"Halifax", "NS", "Canada", "YHZ"},
	{"Dartmouth", "NS", "Canada", "YHZ"},
	{"Iqaluit", "NU", "Canada", "YFB"},
	{"Toronto", "ON", "Canada", "YYZ"},
	{"Ottawa", "ON", "Canada", "YOW"},
	{"Mississauga", "ON", "Canada", "YYZ"},
	{"Hamilton", "ON", "Canada", "YHM"},
	{"London", "ON", "Canada", "YXU"},
	{"Kitchener", "ON", "Canada", "YKF"},
	{"Waterloo", "ON", "Canada", "YKF"},
	{"Windsor", "ON", "Canada", "YQG"},
	{"Kingston", "ON", "Canada", "YGK"},
	{"Sudbury", "ON", "Canada", "YSB"},
	{"Thunder Bay", "ON", "Canada", "YQT"},
	{"St. Catharines", "ON", "Canada", "YCM"},
	{"Charlottetown", "PE", "Canada", "YYG"},
	{"Montreal", "QC", "Canada", "YUL"},
	{"Quebec City", "QC", "Canada", "YQB"},
	{"Laval", "QC", "Canada", "YUL"},
	{"Gatineau", "QC", "Canada", "YND"},
	{"Sherbrooke", "QC", "Canada", "YSC"},
	{"Trois-Rivières", "QC", "Canada", "YRQ"},
	{"Saskatoon", "SK", "Canada", "YXE"},
	{"Regina", "SK", "Canada", "YQR"},
	{"Whitehorse", "YT", "Canada", "YXY"},

	{"New York", "", "United States", "JFK"},
	{"Washington", "", "United States", "IAD"},
	{"London", "", "United Kingdom", "LHR"},
	{"Paris", "", "France", "CDG"},
	{"Munich", "", "Germany", "MUC"},
	{"Riga", "", "Latvia", "RIX"},
	{"Tallinn", "", "Estonia", "TLL"},
	{"Tokyo", "", "Japan", "NRT"},
	{"Canberra", "", "Australia", "CBR"},
}

var directoryIndex = buildDirectoryIndex()

func buildDirectoryIndex() map[string]CityInfo {
	idx := make(map[string]CityInfo, len(directory))
	for _, c := range directory {
		key := rates.NormalizeKey(c.Name)
		// Canadian entries claim the bare name; foreign duplicates
		// (London ON vs London UK) stay reachable via country prefix.
		if _, taken := idx[key]; !taken || c.Country == "Canada" {
			idx[key] = c
		}
		idx[rates.BuildKey(c.Country, c.Name)] = c
	}
	return idx
}

// LookupCity finds the directory entry for a free-form city identifier.
func LookupCity(id string) (CityInfo, bool) {
	c, ok := directoryIndex[rates.NormalizeIdentifier(id)]
	return c, ok
}

// AirportCode returns the IATA code serving a city, or empty when the
// city is not in the directory.
func AirportCode(id string) string {
	c, ok := LookupCity(id)
	if !ok {
		return ""
	}
	return c.IATA
}
