package sources

import (
	"math"
	"testing"

	"github.com/acdube/govtravel/internal/currency"
	"github.com/acdube/govtravel/internal/rates"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func builtSnapshot(t *testing.T) *rates.Store {
	t.Helper()

	snap, err := rates.Build(All())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rates.NewStore(snap)
}

func TestCanadianRecordsMergeWithLegacyTiers(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("Toronto", nil)
	if res.UsedDefault {
		t.Fatal("Toronto should resolve")
	}
	rec := res.Record

	// Itemized meals from the Canadian table.
	if !rec.Itemized() {
		t.Fatal("Toronto should carry itemized meals")
	}
	if !near(rec.MealTotal, 104.80) {
		t.Errorf("meal total = %v, want 104.80", rec.MealTotal)
	}
	// Tier and blended rate back-filled from the legacy table.
	if rec.Tier != 1 {
		t.Errorf("tier = %d, want 1 from the legacy table", rec.Tier)
	}
	if rec.BlendedDaily == nil || *rec.BlendedDaily != 95.00 {
		t.Errorf("blended daily = %v, want 95.00 from the legacy table", rec.BlendedDaily)
	}
	if rec.Currency != currency.CAD {
		t.Errorf("currency = %s, want CAD", rec.Currency)
	}
}

func TestLegacyOnlyCityResolves(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("Barrie", nil)
	if res.UsedDefault {
		t.Fatal("Barrie is only in the legacy table but must resolve")
	}
	if res.Record.DailyAllowance() != 82.00 {
		t.Errorf("daily allowance = %v, want blended 82.00", res.Record.DailyAllowance())
	}
}

func TestMunichCommercialTierWinsDespiteRowOrder(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("Munich", nil)
	if res.UsedDefault {
		t.Fatal("Munich should resolve")
	}
	if res.Record.PlanType != rates.PlanCommercialShort {
		t.Errorf("plan type = %q, want %q", res.Record.PlanType, rates.PlanCommercialShort)
	}
	if res.Record.Breakfast == nil || *res.Record.Breakfast != 25.20 {
		t.Errorf("breakfast = %v, want the commercial 25.20", res.Record.Breakfast)
	}
	if res.Record.Currency != currency.EUR {
		t.Errorf("currency = %s, want EUR from the country mapping", res.Record.Currency)
	}
}

func TestExplicitCurrencySurvivesMerge(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("Riga", nil)
	if res.UsedDefault {
		t.Fatal("Riga should resolve")
	}
	if res.Record.Currency != currency.EUR {
		t.Errorf("currency = %s, want the explicit EUR", res.Record.Currency)
	}
	// The meal total is derived from the meal figures, not the source's
	// typo'd "Meal Totall" column.
	if !near(res.Record.MealTotal, 81.65) {
		t.Errorf("meal total = %v, want 81.65", res.Record.MealTotal)
	}
}

func TestLondonBareNameIsCanadian(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("London", nil)
	if res.UsedDefault {
		t.Fatal("London should resolve")
	}
	if res.Record.Country != "Canada" {
		t.Errorf("bare London resolved to %s, want Canada", res.Record.Country)
	}

	res = store.Resolve("united kingdom london", nil)
	if res.UsedDefault || res.Record.Country != "United Kingdom" {
		t.Error("London UK should stay reachable via its prefixed key")
	}
}

func TestPartialYearStandardRate(t *testing.T) {
	store := builtSnapshot(t)

	res := store.Resolve("Nuuk", nil)
	if res.UsedDefault {
		t.Fatal("Nuuk should resolve")
	}
	if res.Record.StandardRate == nil || *res.Record.StandardRate != 248.00 {
		t.Errorf("standard rate = %v, want 248.00 (mean of the published months)", res.Record.StandardRate)
	}
	if res.Record.Currency != currency.USD {
		t.Errorf("currency = %s, want the USD default", res.Record.Currency)
	}
}

func TestDefaultRecord(t *testing.T) {
	def := DefaultRecord()

	if def.DailyAllowance() != 75.00 {
		t.Errorf("default daily allowance = %v, want 75.00", def.DailyAllowance())
	}
	if def.StandardRate == nil || *def.StandardRate != 145.00 {
		t.Errorf("default nightly = %v, want 145.00", def.StandardRate)
	}
	if def.Tier != 3 {
		t.Errorf("default tier = %d, want 3", def.Tier)
	}
	if def.Currency != currency.CAD {
		t.Errorf("default currency = %s, want CAD", def.Currency)
	}
}

func TestLookupCity(t *testing.T) {
	c, ok := LookupCity("Vancouver")
	if !ok || c.IATA != "YVR" {
		t.Errorf("Vancouver lookup = %+v, %v", c, ok)
	}

	// Suburbs map to the nearest major airport.
	if got := AirportCode("Surrey"); got != "YVR" {
		t.Errorf("Surrey airport = %q, want YVR", got)
	}

	// Bare London is the Ontario one.
	if got := AirportCode("London"); got != "YXU" {
		t.Errorf("London airport = %q, want YXU", got)
	}
	if got := AirportCode("london, united kingdom"); got != "YXU" {
		// Comma qualifiers are dropped, so this still resolves the bare
		// name. Callers wanting the UK airport use the prefixed key.
		t.Errorf("qualified London airport = %q, want YXU", got)
	}
	if got := AirportCode("united kingdom london"); got != "LHR" {
		t.Errorf("prefixed UK London airport = %q, want LHR", got)
	}

	if _, ok := LookupCity("Atlantis"); ok {
		t.Error("unknown city should not resolve")
	}
}
