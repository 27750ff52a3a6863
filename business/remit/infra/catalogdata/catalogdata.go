// Package catalogdata embeds the reference country/currency table the
// aggregator validates corridors against, so the process never depends
// on a runtime file path to start.
package catalogdata

import (
	"encoding/csv"
	"fmt"
	"strings"

	_ "embed"

	"github.com/fd1az/remit-aggregator/internal/catalog"
)

//go:embed countries.csv
var countriesCSV string

// Load builds a Catalog pre-populated from the embedded table.
func Load() (*catalog.Catalog, error) {
	c := catalog.New()
	if err := LoadInto(c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto registers the embedded table's entries into c. c must be
// empty; registering a duplicate ISO2/currency panics, matching
// Catalog's process-start-only contract.
func LoadInto(c *catalog.Catalog) error {
	r := csv.NewReader(strings.NewReader(countriesCSV))
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("catalogdata: failed to parse embedded table: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("catalogdata: embedded table is empty")
	}

	seenCurrency := make(map[string]bool)
	for _, row := range records[1:] {
		if len(row) != 3 {
			return fmt.Errorf("catalogdata: malformed row %v", row)
		}
		iso2, iso3, ccy := row[0], row[1], row[2]
		c.RegisterCountry(catalog.Country{ISO2: iso2, ISO3: iso3, DefaultCurrency: ccy})
		if !seenCurrency[ccy] {
			c.RegisterCurrency(catalog.Currency{ISO4217: ccy})
			seenCurrency[ccy] = true
		}
	}
	return nil
}
