package controllers

import (
	"net/http"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/api/validators"
	"github.com/printcraft/printshop-backend/internal/checkout"
	"github.com/printcraft/printshop-backend/pkg/logger"
)

type checkoutRequest struct {
	CartToken string `json:"cart_token" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// Checkout converts a quoted cart into an order. Every quoted line is
// revalidated against the current tier tables first; any drift beyond the
// one-cent tolerance aborts the whole transaction.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.Execute(r.Context(), checkout.CheckoutInput{
			CartToken: req.CartToken,
			Email:     req.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}
