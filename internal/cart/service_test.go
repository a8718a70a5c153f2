package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/metrics"
)

func testCatalogProduct() *models.Product {
	return &models.Product{
		ID:               uuid.New(),
		Slug:             "premium-cards",
		Name:             "Premium Business Cards",
		Family:           enums.ProductFamilyBusinessCards,
		FinishOptions:    pq.StringArray{"gloss"},
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

func TestQuoteCartPricesServerSide(t *testing.T) {
	t.Parallel()

	row := testCatalogProduct()
	repo := &stubCartRepo{}
	svc := newTestService(t, repo, row)

	got, err := svc.QuoteCart(context.Background(), QuoteInput{
		Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 150}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token == "" {
		t.Fatal("expected a session token to be generated")
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(got.Items))
	}

	line := got.Items[0]
	if !line.UnitPrice.Equal(decimal.NewFromInt(94)) {
		t.Fatalf("expected unit price 94, got %s", line.UnitPrice)
	}
	if !line.Subtotal.Equal(decimal.NewFromInt(14100)) {
		t.Fatalf("expected subtotal 14100, got %s", line.Subtotal)
	}
	if !line.PackagingCost.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected packaging 40, got %s", line.PackagingCost)
	}
	if !got.Total.Equal(decimal.NewFromInt(14140)) {
		t.Fatalf("expected total 14140, got %s", got.Total)
	}
}

func TestQuoteCartRejectsBadLines(t *testing.T) {
	t.Parallel()

	row := testCatalogProduct()
	svc := newTestService(t, &stubCartRepo{}, row)
	ctx := context.Background()

	cases := []struct {
		name  string
		input QuoteInput
	}{
		{"emptyCart", QuoteInput{}},
		{"zeroQty", QuoteInput{Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 0}}}},
		{"missingProductID", QuoteInput{Lines: []QuoteLineInput{{Qty: 100}}}},
		{"belowMinOrderQty", QuoteInput{Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 50}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.QuoteCart(ctx, tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestQuoteCartRejectsLegacyProduct(t *testing.T) {
	t.Parallel()

	row := testCatalogProduct()
	row.Legacy = true
	svc := newTestService(t, &stubCartRepo{}, row)

	_, err := svc.QuoteCart(context.Background(), QuoteInput{
		Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 150}},
	})
	if err == nil {
		t.Fatal("expected error for legacy product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteCartUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCartRepo{}, testCatalogProduct())

	_, err := svc.QuoteCart(context.Background(), QuoteInput{
		Lines: []QuoteLineInput{{ProductID: uuid.New(), Qty: 150}},
	})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestQuoteCartRejectsConvertedSession(t *testing.T) {
	t.Parallel()

	row := testCatalogProduct()
	repo := &stubCartRepo{record: &models.CartRecord{
		ID:     uuid.New(),
		Token:  "checked-out-token",
		Status: enums.CartStatusConverted,
	}}
	svc := newTestService(t, repo, row)

	_, err := svc.QuoteCart(context.Background(), QuoteInput{
		Token: "checked-out-token",
		Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 150}},
	})
	if err == nil {
		t.Fatal("expected error for a checked-out session token")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestQuoteCartObservesQuoteDuration(t *testing.T) {
	t.Parallel()

	row := testCatalogProduct()
	reg := prometheus.NewRegistry()
	pm := metrics.NewPricingMetrics(reg)

	svc, err := NewService(&stubCartRepo{}, stubTxRunner{}, productLoaderFunc(func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		if id == row.ID {
			return row, nil
		}
		return nil, gorm.ErrRecordNotFound
	}), pm)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.QuoteCart(context.Background(), QuoteInput{
		Lines: []QuoteLineInput{{ProductID: row.ID, Qty: 150}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got := quoteSampleCount(mfs, "cart"); got != 1 {
		t.Fatalf("expected one cart quote observation, got %d", got)
	}
}

func quoteSampleCount(mfs []*dto.MetricFamily, source string) uint64 {
	for _, mf := range mfs {
		if mf.GetName() != "pricing_quote_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "source" && label.GetValue() == source {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestGetCartNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, testCatalogProduct())

	_, err := svc.GetCart(context.Background(), "missing-token")
	if err == nil {
		t.Fatal("expected error for missing cart")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func newTestService(t *testing.T, repo *stubCartRepo, rows ...*models.Product) Service {
	t.Helper()

	catalog := map[uuid.UUID]*models.Product{}
	for _, row := range rows {
		catalog[row.ID] = row
	}

	svc, err := NewService(repo, stubTxRunner{}, productLoaderFunc(func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		if row, ok := catalog[id]; ok {
			return row, nil
		}
		return nil, gorm.ErrRecordNotFound
	}), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubCartRepo struct {
	record  *models.CartRecord
	findErr error
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) CartRepository { return s }

func (s *stubCartRepo) FindActiveByToken(ctx context.Context, token string) (*models.CartRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.record == nil || s.record.Status != enums.CartStatusActive {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubCartRepo) FindByToken(ctx context.Context, token string) (*models.CartRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.record == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubCartRepo) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	record.ID = uuid.New()
	s.record = record
	return record, nil
}

func (s *stubCartRepo) Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	s.record = record
	return record, nil
}

func (s *stubCartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	if s.record != nil && s.record.ID == cartID {
		s.record.Items = items
	}
	return nil
}

func (s *stubCartRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CartStatus) error {
	if s.record != nil && s.record.ID == id {
		s.record.Status = status
	}
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type productLoaderFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)

func (fn productLoaderFunc) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return fn(ctx, id)
}
