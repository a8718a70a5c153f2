package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/internal/orders"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/logger"
)

// OrderByNumber returns one order. The caller must present the buyer email
// used at checkout; a mismatch looks identical to a missing order.
func OrderByNumber(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber, err := strconv.ParseInt(chi.URLParam(r, "orderNumber"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order number"))
			return
		}

		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email query param required"))
			return
		}

		found, err := svc.GetOrder(r.Context(), orderNumber, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// OrdersByEmail lists the orders placed with a buyer email.
func OrdersByEmail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email query param required"))
			return
		}

		listed, err := svc.ListOrdersByEmail(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}
