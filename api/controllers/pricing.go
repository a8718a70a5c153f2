package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/api/validators"
	"github.com/printcraft/printshop-backend/internal/pricing"
	product "github.com/printcraft/printshop-backend/internal/products"
	"github.com/printcraft/printshop-backend/pkg/db/models"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/logger"
	"github.com/printcraft/printshop-backend/pkg/metrics"
)

type catalogLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type pricingValidateRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	Quantity      int       `json:"quantity" validate:"required,min=1"`
	ExpectedPrice string    `json:"expected_price" validate:"required"`
}

type pricingValidateResponse struct {
	Valid        bool            `json:"valid"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// PricingValidate recomputes the price for a product/quantity pair from the
// server's tier table and checks the client's expected total against it.
// The client never supplies tiers; only the claimed total is accepted.
func PricingValidate(catalog catalogLoader, pm *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var req pricingValidateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			pm.IncValidation(metrics.OutcomeBadRequest)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expected, err := decimal.NewFromString(req.ExpectedPrice)
		if err != nil {
			pm.IncValidation(metrics.OutcomeBadRequest)
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expected_price must be a decimal string"))
			return
		}

		row, err := catalog.FindByID(r.Context(), req.ProductID)
		if err != nil {
			pm.IncValidation(metrics.OutcomeBadRequest)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product"))
			return
		}
		if !row.IsActive || row.Legacy {
			pm.IncValidation(metrics.OutcomeBadRequest)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "product is not priced by tier table"))
			return
		}

		started := time.Now()
		breakdown := pricing.CalculateFinalPrice(req.Quantity, product.TierTable(row), product.PackagingPolicy(row))
		pm.ObserveQuote("tier_table", time.Since(started))

		if breakdown.IsZero() {
			pm.IncValidation(metrics.OutcomeBadRequest)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "no price available for this quantity"))
			return
		}

		result := pricingValidateResponse{
			Valid:        pricing.WithinTolerance(expected, breakdown.FinalPrice),
			CurrentPrice: breakdown.FinalPrice,
			UnitPrice:    breakdown.UnitPrice,
		}
		if !result.Valid {
			pm.IncValidation(metrics.OutcomeMismatch)
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodePriceMismatch, "expected price does not match the current price list").WithDetails(result))
			return
		}

		pm.IncValidation(metrics.OutcomeValid)
		responses.WriteSuccess(w, result)
	}
}
