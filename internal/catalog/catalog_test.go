package catalog_test

import (
	"testing"

	"github.com/fd1az/remit-aggregator/internal/catalog"
)

func TestDefault_DefaultCurrency(t *testing.T) {
	c := catalog.Default()

	got, err := c.DefaultCurrency("US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "USD" {
		t.Errorf("expected USD, got %s", got)
	}
}

func TestDefault_UnknownCountry(t *testing.T) {
	c := catalog.Default()

	if _, err := c.DefaultCurrency("ZZ"); err == nil {
		t.Error("expected error for unknown country")
	}
}

func TestDefault_IsValidISOCountry(t *testing.T) {
	c := catalog.Default()

	if !c.IsValidISOCountry("MX") {
		t.Error("expected MX to be valid")
	}
	if c.IsValidISOCountry("ZZ") {
		t.Error("expected ZZ to be invalid")
	}
}

func TestDefault_IsValidISOCurrency(t *testing.T) {
	c := catalog.Default()

	if !c.IsValidISOCurrency("MXN") {
		t.Error("expected MXN to be valid")
	}
	if c.IsValidISOCurrency("ZZZ") {
		t.Error("expected ZZZ to be invalid")
	}
}

func TestDefault_CountriesForCurrency(t *testing.T) {
	c := catalog.Default()

	countries := c.CountriesForCurrency("EUR")
	if len(countries) < 3 {
		t.Errorf("expected at least 3 EUR countries, got %d", len(countries))
	}
}

func TestRegisterCountry_DuplicatePanics(t *testing.T) {
	c := catalog.New()
	c.RegisterCountry(catalog.Country{ISO2: "US", ISO3: "USA", DefaultCurrency: "USD"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	c.RegisterCountry(catalog.Country{ISO2: "US", ISO3: "USA", DefaultCurrency: "USD"})
}
