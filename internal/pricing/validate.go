package pricing

import "github.com/shopspring/decimal"

// Tolerance is the absolute slack allowed when comparing a client-submitted
// price against the recomputed one: one cent. It absorbs rounding drift
// between client and server arithmetic; anything larger is treated as
// tampering or a stale tier table.
var Tolerance = decimal.New(1, -2)

// ValidatePricing recomputes the breakdown for qty against the server's tier
// table and reports whether expected matches the recomputed final price
// within Tolerance. The tier table must always be the server's copy; tier
// data submitted by a client is never an input here.
func ValidatePricing(qty int, expected decimal.Decimal, tiers []Tier, policy PackagingPolicy) bool {
	breakdown := CalculateFinalPrice(qty, tiers, policy)
	return WithinTolerance(expected, breakdown.FinalPrice)
}

// WithinTolerance reports whether two prices differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
