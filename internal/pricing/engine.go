// Package pricing holds the tiered quantity pricing engine. It is pure
// computation with no framework or storage dependencies so the same code path
// produces quotes for the storefront and authoritative totals at checkout.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is a single quantity price break. MaxQty zero marks an open-ended
// final tier.
type Tier struct {
	MinQty       int
	MaxQty       int
	PricePerUnit decimal.Decimal
}

// Contains reports whether qty falls inside the tier's range.
func (t Tier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == 0 || qty <= t.MaxQty
}

// PackagingPolicy is the per-product packaging surcharge: a flat amount plus
// an optional per-unit component, applied once per order line.
type PackagingPolicy struct {
	Flat    decimal.Decimal
	PerUnit decimal.Decimal
}

// Cost resolves the surcharge for the given quantity.
func (p PackagingPolicy) Cost(qty int) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return p.Flat.Add(p.PerUnit.Mul(decimal.NewFromInt(int64(qty))))
}

// Breakdown is the engine's output for one quantity.
type Breakdown struct {
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	FinalPrice    decimal.Decimal `json:"final_price"`
}

// IsZero reports whether no price could be resolved.
func (b Breakdown) IsZero() bool {
	return b.FinalPrice.IsZero() && b.UnitPrice.IsZero()
}

// CalculateFinalPrice resolves the unit price for qty against the ordered tier
// list and derives subtotal, packaging cost and final price.
//
// Quantities below the smallest tier clamp to the smallest tier's price and
// quantities beyond the largest bounded tier clamp to the largest tier's
// price; the caller surfaces minimum-order messaging separately. An empty
// tier list yields a zero breakdown rather than an error so pages can render
// "price unavailable" instead of failing.
func CalculateFinalPrice(qty int, tiers []Tier, policy PackagingPolicy) Breakdown {
	if qty <= 0 || len(tiers) == 0 {
		return Breakdown{
			UnitPrice:     decimal.Zero,
			Subtotal:      decimal.Zero,
			PackagingCost: decimal.Zero,
			FinalPrice:    decimal.Zero,
		}
	}

	unit := resolveUnitPrice(qty, tiers)
	subtotal := unit.Mul(decimal.NewFromInt(int64(qty)))
	packaging := policy.Cost(qty)

	return Breakdown{
		UnitPrice:     unit,
		Subtotal:      subtotal,
		PackagingCost: packaging,
		FinalPrice:    subtotal.Add(packaging),
	}
}

func resolveUnitPrice(qty int, tiers []Tier) decimal.Decimal {
	if qty < tiers[0].MinQty {
		return tiers[0].PricePerUnit
	}
	for _, tier := range tiers {
		if tier.Contains(qty) {
			return tier.PricePerUnit
		}
	}
	// beyond the largest bounded tier
	return tiers[len(tiers)-1].PricePerUnit
}

// ValidateTiers checks that a tier table is usable by the engine: at least one
// tier, MinQty >= 1, non-negative prices, ranges ordered ascending without
// overlap, and an open-ended tier only in last position.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("tier table is empty")
	}
	for i, tier := range tiers {
		if tier.MinQty < 1 {
			return fmt.Errorf("tier %d: min qty must be >= 1", i)
		}
		if tier.PricePerUnit.IsNegative() {
			return fmt.Errorf("tier %d: price per unit must be >= 0", i)
		}
		if tier.MaxQty != 0 && tier.MaxQty < tier.MinQty {
			return fmt.Errorf("tier %d: max qty %d below min qty %d", i, tier.MaxQty, tier.MinQty)
		}
		if tier.MaxQty == 0 && i != len(tiers)-1 {
			return fmt.Errorf("tier %d: only the last tier may be open-ended", i)
		}
		if i > 0 {
			prev := tiers[i-1]
			if prev.MaxQty == 0 || tier.MinQty <= prev.MaxQty {
				return fmt.Errorf("tier %d: range overlaps tier %d", i, i-1)
			}
		}
	}
	return nil
}
