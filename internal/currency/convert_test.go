package currency

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConvertIdentity(t *testing.T) {
	if got := Convert(123.45, CAD, CAD); got != 123.45 {
		t.Errorf("identity conversion changed the amount: %v", got)
	}
}

func TestConvertClampsNonPositive(t *testing.T) {
	if got := Convert(-50, CAD, USD); got != 0 {
		t.Errorf("negative amount should convert to 0, got %v", got)
	}
	if got := Convert(0, CAD, USD); got != 0 {
		t.Errorf("zero should convert to 0, got %v", got)
	}
}

func TestConvertUsesCuratedPairRates(t *testing.T) {
	cases := []struct {
		amount   float64
		from, to Code
		want     float64
	}{
		{100, CAD, USD, 72},
		{100, USD, CAD, 139},
		{100, CAD, EUR, 66},
		{100, EUR, CAD, 152},
		{100, AUD, USD, 64},
		{100, CAD, AUD, 112},
	}
	for _, tc := range cases {
		if got := Convert(tc.amount, tc.from, tc.to); !almostEqual(got, tc.want) {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tc.amount, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRoundTripIsNotIdentity(t *testing.T) {
	// Each pair carries its own curated rate; converting there and back
	// is intentionally lossy.
	out := Convert(Convert(100, CAD, USD), USD, CAD)
	if almostEqual(out, 100) {
		t.Error("round trip should not reconstruct the original amount")
	}
	if !almostEqual(out, 100.08) {
		t.Errorf("CAD->USD->CAD round trip of 100 = %v, want 100.08", out)
	}
}

func TestConvertUnknownPairPassesThrough(t *testing.T) {
	if got := Convert(100, Code("GBP"), CAD); got != 100 {
		t.Errorf("unknown pair should pass through unchanged, got %v", got)
	}
}

func TestRate(t *testing.T) {
	if r, ok := Rate(CAD, CAD); !ok || r != 1.0 {
		t.Errorf("identity rate = %v, %v", r, ok)
	}
	if _, ok := Rate(Code("GBP"), CAD); ok {
		t.Error("unknown pair should report ok=false")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		amount float64
		code   Code
		want   string
	}{
		{1503.5, CAD, "C$1503.50"},
		{72, USD, "US$72.00"},
		{66, EUR, "€66.00"},
		{112, AUD, "A$112.00"},
		{10, Code("GBP"), "GBP10.00"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount, tc.code); got != tc.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tc.amount, tc.code, got, tc.want)
		}
	}
}

func TestConversionDetails(t *testing.T) {
	d := ConversionDetails(100, CAD, USD)

	if !almostEqual(d.ConvertedAmount, 72) {
		t.Errorf("converted = %v, want 72", d.ConvertedAmount)
	}
	if d.ExchangeRate != 0.72 {
		t.Errorf("rate = %v, want 0.72", d.ExchangeRate)
	}
	if d.FormattedRate != "1 CAD = 0.72 USD" {
		t.Errorf("formatted rate = %q", d.FormattedRate)
	}
	if d.FormattedConverted != "US$72.00" {
		t.Errorf("formatted converted = %q", d.FormattedConverted)
	}
}

func TestConversionDetailsUnknownPair(t *testing.T) {
	d := ConversionDetails(100, Code("GBP"), CAD)

	if d.ConvertedAmount != 100 {
		t.Errorf("converted = %v, want the pass-through 100", d.ConvertedAmount)
	}
	if d.ExchangeRate != 0 {
		t.Errorf("rate = %v, want 0 for an unknown pair", d.ExchangeRate)
	}
	if d.FormattedRate != "no rate available for GBP to CAD" {
		t.Errorf("formatted rate = %q, must disclose the missing rate", d.FormattedRate)
	}
}
