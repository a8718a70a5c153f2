package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/internal/pricebook"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/logger"
	"github.com/printcraft/printshop-backend/pkg/metrics"
)

type pricebookLookupResponse struct {
	Family  string          `json:"family"`
	Variant string          `json:"variant"`
	Option  string          `json:"option"`
	Qty     string          `json:"qty"`
	Price   decimal.Decimal `json:"price"`
}

// PricebookFamilies lists the legacy product families with published prices.
func PricebookFamilies(book *pricebook.Book) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"families": book.Families()})
	}
}

// PricebookFamily returns the full published table for one legacy family.
func PricebookFamily(book *pricebook.Book, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		family := strings.TrimSpace(chi.URLParam(r, "family"))
		table, ok := book.Family(family)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown price book family"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"family": family, "table": table})
	}
}

// PricebookLookup resolves one exact configuration to its published total.
// Quantities not in the table are a miss, never interpolated.
func PricebookLookup(book *pricebook.Book, pm *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		family := strings.TrimSpace(chi.URLParam(r, "family"))
		variant := strings.TrimSpace(r.URL.Query().Get("variant"))
		option := strings.TrimSpace(r.URL.Query().Get("option"))
		qty := strings.TrimSpace(r.URL.Query().Get("qty"))

		if variant == "" || option == "" || qty == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "variant, option and qty query params are required"))
			return
		}

		price, ok := book.Lookup(family, variant, option, qty)
		if !ok {
			pm.IncLookupMiss(family)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "price unavailable for this configuration, request a manual quote"))
			return
		}

		responses.WriteSuccess(w, pricebookLookupResponse{
			Family:  family,
			Variant: variant,
			Option:  option,
			Qty:     qty,
			Price:   price,
		})
	}
}
