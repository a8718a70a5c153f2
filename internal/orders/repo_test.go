package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  order_number INTEGER NOT NULL UNIQUE,
  cart_id TEXT NOT NULL,
  email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  packaging_total NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  canceled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItemsTable := `
CREATE TABLE order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  packaging_cost NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(lineItemsTable).Error)
	return db
}

func seedOrder(t *testing.T, repo Repository, number int64, email string) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		ID:             uuid.New(),
		OrderNumber:    number,
		CartID:         uuid.New(),
		Email:          email,
		Status:         enums.OrderStatusPending,
		Subtotal:       decimal.RequireFromString("14100"),
		PackagingTotal: decimal.RequireFromString("40"),
		Total:          decimal.RequireFromString("14140"),
	})
	require.NoError(t, err)
	return order
}

func TestRepositoryCreateAndFindByNumber(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	created := seedOrder(t, repo, 1042, "buyer@example.com")
	require.NoError(t, repo.CreateLineItems(context.Background(), []models.OrderLineItem{
		{
			ID:            uuid.New(),
			OrderID:       created.ID,
			ProductID:     uuid.New(),
			ProductName:   "Premium Business Cards",
			Qty:           150,
			UnitPrice:     decimal.RequireFromString("94"),
			Subtotal:      decimal.RequireFromString("14100"),
			PackagingCost: decimal.RequireFromString("40"),
			Total:         decimal.RequireFromString("14140"),
		},
	}))

	found, err := repo.FindByNumber(context.Background(), 1042)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "buyer@example.com", found.Email)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 150, found.Items[0].Qty)
	assert.True(t, found.Items[0].Total.Equal(decimal.RequireFromString("14140")))
}

func TestRepositoryCreateLeavesOrderNumberToSequence(t *testing.T) {
	db := setupOrdersTestDB(t)

	// Checkout never sets OrderNumber; the column default assigns the next
	// sequence value. The generated insert must omit the column or the zero
	// value would shadow the default.
	stmt := db.Session(&gorm.Session{DryRun: true}).Omit("Items").Create(&models.Order{
		ID:       uuid.New(),
		CartID:   uuid.New(),
		Email:    "buyer@example.com",
		Status:   enums.OrderStatusPending,
		Subtotal: decimal.RequireFromString("14100"),
		Total:    decimal.RequireFromString("14140"),
	}).Statement

	insert, _, found := strings.Cut(stmt.SQL.String(), "VALUES")
	require.True(t, found)
	assert.NotContains(t, insert, "order_number")
}

func TestRepositoryListByEmail(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seedOrder(t, repo, 1001, "buyer@example.com")
	seedOrder(t, repo, 1002, "buyer@example.com")
	seedOrder(t, repo, 1003, "other@example.com")

	rows, err := repo.ListByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	first := seedOrder(t, repo, 1001, "a@example.com")
	seedOrder(t, repo, 1002, "b@example.com")

	require.NoError(t, repo.UpdateStatus(context.Background(), first.ID, enums.OrderStatusInProduction))

	status := enums.OrderStatusInProduction
	rows, err := repo.List(context.Background(), ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)
}

func TestRepositoryUpdateStatusStampsCancellation(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, repo, 1001, "buyer@example.com")
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCanceled))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCanceled, found.Status)
	require.NotNil(t, found.CanceledAt)
}
