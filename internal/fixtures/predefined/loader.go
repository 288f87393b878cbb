// Package predefined holds the currencies, categories and asset types every
// user sees without owning them.
package predefined

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

//go:embed currencies.csv
var currenciesCSV string

//go:embed categories.csv
var categoriesCSV string

//go:embed asset_types.csv
var assetTypesCSV string

// Currency is one predefined currency row.
type Currency struct {
	Code   string
	Name   string
	Symbol string
	Type   string
}

// Category is one predefined category row.
type Category struct {
	Name string
	Type string
}

// Currencies returns the embedded predefined currencies.
func Currencies() ([]Currency, error) {
	return ParseCurrencies(strings.NewReader(currenciesCSV))
}

// Categories returns the embedded predefined categories.
func Categories() ([]Category, error) {
	return ParseCategories(strings.NewReader(categoriesCSV))
}

// AssetTypes returns the embedded predefined asset type names.
func AssetTypes() ([]string, error) {
	records, err := readRecords(strings.NewReader(assetTypesCSV), 1)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec[0])
	}
	return names, nil
}

func ParseCurrencies(r io.Reader) ([]Currency, error) {
	records, err := readRecords(r, 4)
	if err != nil {
		return nil, err
	}
	out := make([]Currency, 0, len(records))
	for _, rec := range records {
		out = append(out, Currency{Code: rec[0], Name: rec[1], Symbol: rec[2], Type: rec[3]})
	}
	return out, nil
}

func ParseCategories(r io.Reader) ([]Category, error) {
	records, err := readRecords(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(records))
	for _, rec := range records {
		out = append(out, Category{Name: rec[0], Type: rec[1]})
	}
	return out, nil
}

// readRecords reads a CSV with a header row and at least columns fields per row.
func readRecords(r io.Reader, columns int) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invalid CSV format: missing header")
	}
	if len(records[0]) < columns {
		return nil, fmt.Errorf(
			"invalid CSV format: expected at least %d columns, got %d",
			columns,
			len(records[0]),
		)
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		// Skip malformed rows
		if len(rec) < columns {
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
