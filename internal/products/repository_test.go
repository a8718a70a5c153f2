package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
)

func mustTestProduct(t *testing.T) *models.Product {
	t.Helper()
	return &models.Product{
		Slug:             fmt.Sprintf("test-cards-%s", uuid.NewString()),
		Name:             "Premium Business Cards",
		Family:           enums.ProductFamilyBusinessCards,
		FinishOptions:    pq.StringArray{"gloss", "matte"},
		MinOrderQty:      100,
		PackagingFlat:    decimal.NewFromInt(25),
		PackagingPerUnit: decimal.RequireFromString("0.1"),
		IsActive:         true,
		Tiers: []models.PricingTier{
			{MinQty: 100, MaxQty: 199, PricePerUnit: decimal.NewFromInt(94), Position: 0},
			{MinQty: 200, MaxQty: 499, PricePerUnit: decimal.RequireFromString("90.5"), Position: 1},
			{MinQty: 500, MaxQty: 0, PricePerUnit: decimal.RequireFromString("83.75"), Position: 2},
		},
	}
}

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	created, err := repo.Create(ctx, mustTestProduct(t))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected product id to be generated")
	}

	detail, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if len(detail.Tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(detail.Tiers))
	}
	if detail.Tiers[0].MinQty != 100 || detail.Tiers[2].MaxQty != 0 {
		t.Fatalf("tiers out of order: %+v", detail.Tiers)
	}

	bySlug, err := repo.FindBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("expected product %s, got %s", created.ID, bySlug.ID)
	}

	detail.Name = "Updated Cards"
	if _, err := repo.Update(ctx, detail); err != nil {
		t.Fatalf("update product: %v", err)
	}

	replacement := []models.PricingTier{
		{ProductID: created.ID, MinQty: 50, MaxQty: 0, PricePerUnit: decimal.NewFromInt(80), Position: 0},
	}
	if err := repo.ReplaceTiers(ctx, created.ID, replacement); err != nil {
		t.Fatalf("replace tiers: %v", err)
	}

	fetched, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find after replace: %v", err)
	}
	if fetched.Name != "Updated Cards" {
		t.Fatalf("expected updated name, got %s", fetched.Name)
	}
	if len(fetched.Tiers) != 1 || fetched.Tiers[0].MinQty != 50 {
		t.Fatalf("expected replaced tier table, got %+v", fetched.Tiers)
	}

	family := enums.ProductFamilyBusinessCards
	list, err := repo.List(ctx, ListFilters{Family: &family, ActiveOnly: true})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected at least one product")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
}
