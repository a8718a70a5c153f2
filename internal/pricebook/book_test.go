package pricebook

import (
	"testing"

	"github.com/shopspring/decimal"
)

const sampleBook = `{
  "visiting_cards": {
    "gloss_250": {
      "basic": { "100": 94, "200": 180, "500": 420 },
      "rounded": { "100": 110 }
    },
    "matte_300": {
      "basic": { "100": 105 }
    }
  },
  "letterheads": {
    "bond_90": {
      "basic": { "100": 320 }
    }
  }
}`

func mustParse(t *testing.T) *Book {
	t.Helper()
	book, err := Parse([]byte(sampleBook))
	if err != nil {
		t.Fatalf("parse price book: %v", err)
	}
	return book
}

func TestLookupPublishedQuantity(t *testing.T) {
	t.Parallel()

	book := mustParse(t)
	price, ok := book.Lookup("visiting_cards", "gloss_250", "basic", "100")
	if !ok {
		t.Fatal("expected published quantity to resolve")
	}
	if !price.Equal(decimal.RequireFromString("94")) {
		t.Fatalf("price = %s, want 94", price)
	}
}

func TestLookupUnpublishedQuantityIsMiss(t *testing.T) {
	t.Parallel()

	book := mustParse(t)
	if _, ok := book.Lookup("visiting_cards", "gloss_250", "basic", "150"); ok {
		t.Fatal("unpublished quantity must be a miss, not a nearest-tier guess")
	}
}

func TestLookupUnknownKeys(t *testing.T) {
	t.Parallel()

	book := mustParse(t)
	cases := [][4]string{
		{"posters", "gloss_250", "basic", "100"},
		{"visiting_cards", "silk_400", "basic", "100"},
		{"visiting_cards", "gloss_250", "embossed", "100"},
	}
	for _, tc := range cases {
		if _, ok := book.Lookup(tc[0], tc[1], tc[2], tc[3]); ok {
			t.Fatalf("expected miss for %v", tc)
		}
	}
}

func TestFamilies(t *testing.T) {
	t.Parallel()

	book := mustParse(t)
	families := book.Families()
	if len(families) != 2 || families[0] != "letterheads" || families[1] != "visiting_cards" {
		t.Fatalf("unexpected families: %v", families)
	}
	if _, ok := book.Family("visiting_cards"); !ok {
		t.Fatal("expected visiting_cards family table")
	}
}

func TestParseRejectsBadBooks(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`{}`)); err == nil {
		t.Fatal("expected error for empty book")
	}
	if _, err := Parse([]byte(`{"cards": {"gloss": {"basic": {}}}}`)); err == nil {
		t.Fatal("expected error for option with no quantities")
	}
	if _, err := Parse([]byte(`{"cards": {"gloss": {"basic": {"100": -1}}}}`)); err == nil {
		t.Fatal("expected error for negative price")
	}
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
