package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/api/validators"
	"github.com/printcraft/printshop-backend/internal/cart"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/logger"
)

type cartQuoteLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
}

type cartQuoteRequest struct {
	Token string          `json:"token,omitempty"`
	Lines []cartQuoteLine `json:"lines" validate:"required,min=1,dive"`
}

// CartQuote prices the requested lines through the tier tables and persists
// the quoted cart. Omitting the token starts a new cart session.
func CartQuote(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := cart.QuoteInput{Token: strings.TrimSpace(req.Token)}
		for _, line := range req.Lines {
			input.Lines = append(input.Lines, cart.QuoteLineInput{
				ProductID: line.ProductID,
				Qty:       line.Qty,
			})
		}

		quoted, err := svc.QuoteCart(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quoted)
	}
}

// CartGet returns the persisted cart for a session token.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(chi.URLParam(r, "token"))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token required"))
			return
		}

		found, err := svc.GetCart(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}
