package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePricingAccepts(t *testing.T) {
	t.Parallel()

	if !ValidatePricing(150, decimal.RequireFromString("14100"), standardTiers(), PackagingPolicy{}) {
		t.Fatal("expected exact price to validate")
	}
}

func TestValidatePricingRejectsMismatch(t *testing.T) {
	t.Parallel()

	if ValidatePricing(150, decimal.RequireFromString("13000"), standardTiers(), PackagingPolicy{}) {
		t.Fatal("expected mismatched price to be rejected")
	}
}

func TestValidatePricingToleranceBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expected string
		want     bool
	}{
		{"14100", true},
		{"14100.01", true},
		{"14099.99", true},
		{"14100.02", false},
		{"14099.98", false},
	}
	for _, tc := range cases {
		got := ValidatePricing(150, decimal.RequireFromString(tc.expected), standardTiers(), PackagingPolicy{})
		if got != tc.want {
			t.Fatalf("expected %s: got %v, want %v", tc.expected, got, tc.want)
		}
	}
}

func TestValidatePricingEmptyTiers(t *testing.T) {
	t.Parallel()

	// No tier table resolves to a zero price; only an expected price of zero
	// (within tolerance) passes.
	if ValidatePricing(150, decimal.RequireFromString("14100"), nil, PackagingPolicy{}) {
		t.Fatal("expected rejection when no tiers are configured")
	}
	if !ValidatePricing(150, decimal.Zero, nil, PackagingPolicy{}) {
		t.Fatal("expected zero price to validate against empty table")
	}
}
