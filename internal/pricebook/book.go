// Package pricebook serves the fixed price table for legacy stationery lines.
// These products are a closed catalog whose totals were published per exact
// quantity, so lookups never interpolate or clamp: an unpublished quantity is
// a miss and the storefront routes the customer to a manual quote instead.
package pricebook

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// FamilyTable maps material/paper variant -> finish option -> published
// quantity -> total price.
type FamilyTable map[string]map[string]map[string]decimal.Decimal

// Book is the loaded legacy price table keyed by product family. It is
// read-only after Load; replacing prices means shipping a new data file.
type Book struct {
	families map[string]FamilyTable
}

// Load reads and parses the price book JSON asset at path.
func Load(path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading price book: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Book from raw JSON.
func Parse(raw []byte) (*Book, error) {
	var families map[string]FamilyTable
	if err := json.Unmarshal(raw, &families); err != nil {
		return nil, fmt.Errorf("parsing price book: %w", err)
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("price book contains no families")
	}
	for family, table := range families {
		for variant, options := range table {
			for option, prices := range options {
				if len(prices) == 0 {
					return nil, fmt.Errorf("price book %s/%s/%s has no quantities", family, variant, option)
				}
				for qty, price := range prices {
					if price.IsNegative() {
						return nil, fmt.Errorf("price book %s/%s/%s qty %s is negative", family, variant, option, qty)
					}
				}
			}
		}
	}
	return &Book{families: families}, nil
}

// Lookup returns the published total for the exact configuration, or false
// when any key (family, variant, option, quantity) is not in the table.
func (b *Book) Lookup(family, variant, option, qty string) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	table, ok := b.families[family]
	if !ok {
		return decimal.Zero, false
	}
	options, ok := table[variant]
	if !ok {
		return decimal.Zero, false
	}
	prices, ok := options[option]
	if !ok {
		return decimal.Zero, false
	}
	price, ok := prices[qty]
	if !ok {
		return decimal.Zero, false
	}
	return price, true
}

// Family returns the full table for one product family.
func (b *Book) Family(family string) (FamilyTable, bool) {
	if b == nil {
		return nil, false
	}
	table, ok := b.families[family]
	return table, ok
}

// Families lists the known product families in sorted order.
func (b *Book) Families() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.families))
	for name := range b.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
