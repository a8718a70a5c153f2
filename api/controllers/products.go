package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printcraft/printshop-backend/api/responses"
	"github.com/printcraft/printshop-backend/api/validators"
	"github.com/printcraft/printshop-backend/internal/products"
	"github.com/printcraft/printshop-backend/pkg/enums"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
	"github.com/printcraft/printshop-backend/pkg/logger"
)

type tierRequest struct {
	MinQty       int    `json:"min_qty" validate:"min=1"`
	MaxQty       int    `json:"max_qty" validate:"min=0"`
	PricePerUnit string `json:"price_per_unit" validate:"required"`
}

type productCreateRequest struct {
	Slug             string        `json:"slug" validate:"required,min=1"`
	Name             string        `json:"name" validate:"required,min=1"`
	Family           string        `json:"family" validate:"required"`
	Description      *string       `json:"description,omitempty"`
	FinishOptions    []string      `json:"finish_options,omitempty"`
	MinOrderQty      int           `json:"min_order_qty" validate:"min=0"`
	PackagingFlat    string        `json:"packaging_flat,omitempty"`
	PackagingPerUnit string        `json:"packaging_per_unit,omitempty"`
	Legacy           bool          `json:"legacy"`
	IsActive         *bool         `json:"is_active,omitempty"`
	Tiers            []tierRequest `json:"tiers" validate:"dive"`
}

type productUpdateRequest struct {
	Slug             *string        `json:"slug,omitempty" validate:"omitempty,min=1"`
	Name             *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Family           *string        `json:"family,omitempty"`
	Description      *string        `json:"description,omitempty"`
	FinishOptions    *[]string      `json:"finish_options,omitempty"`
	MinOrderQty      *int           `json:"min_order_qty,omitempty" validate:"omitempty,min=1"`
	PackagingFlat    *string        `json:"packaging_flat,omitempty"`
	PackagingPerUnit *string        `json:"packaging_per_unit,omitempty"`
	Legacy           *bool          `json:"legacy,omitempty"`
	IsActive         *bool          `json:"is_active,omitempty"`
	Tiers            *[]tierRequest `json:"tiers,omitempty" validate:"omitempty,dive"`
}

func parseTierInputs(rows []tierRequest) ([]products.TierInput, error) {
	tiers := make([]products.TierInput, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row.PricePerUnit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tier price_per_unit must be a decimal string")
		}
		tiers = append(tiers, products.TierInput{
			MinQty:       row.MinQty,
			MaxQty:       row.MaxQty,
			PricePerUnit: price,
		})
	}
	return tiers, nil
}

func parseMoney(value, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be a decimal string")
	}
	return amount, nil
}

func (req productCreateRequest) toInput() (products.CreateProductInput, error) {
	family, err := enums.ParseProductFamily(req.Family)
	if err != nil {
		return products.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product family")
	}
	flat, err := parseMoney(req.PackagingFlat, "packaging_flat")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	perUnit, err := parseMoney(req.PackagingPerUnit, "packaging_per_unit")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	tiers, err := parseTierInputs(req.Tiers)
	if err != nil {
		return products.CreateProductInput{}, err
	}

	input := products.CreateProductInput{
		Slug:             req.Slug,
		Name:             req.Name,
		Family:           family,
		Description:      req.Description,
		FinishOptions:    req.FinishOptions,
		MinOrderQty:      req.MinOrderQty,
		PackagingFlat:    flat,
		PackagingPerUnit: perUnit,
		Legacy:           req.Legacy,
		IsActive:         true,
		Tiers:            tiers,
	}
	if input.MinOrderQty == 0 {
		input.MinOrderQty = 1
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}
	return input, nil
}

func (req productUpdateRequest) toInput() (products.UpdateProductInput, error) {
	input := products.UpdateProductInput{
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		FinishOptions: req.FinishOptions,
		MinOrderQty:   req.MinOrderQty,
		Legacy:        req.Legacy,
		IsActive:      req.IsActive,
	}
	if req.Family != nil {
		family, err := enums.ParseProductFamily(*req.Family)
		if err != nil {
			return products.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product family")
		}
		input.Family = &family
	}
	if req.PackagingFlat != nil {
		flat, err := parseMoney(*req.PackagingFlat, "packaging_flat")
		if err != nil {
			return products.UpdateProductInput{}, err
		}
		input.PackagingFlat = &flat
	}
	if req.PackagingPerUnit != nil {
		perUnit, err := parseMoney(*req.PackagingPerUnit, "packaging_per_unit")
		if err != nil {
			return products.UpdateProductInput{}, err
		}
		input.PackagingPerUnit = &perUnit
	}
	if req.Tiers != nil {
		tiers, err := parseTierInputs(*req.Tiers)
		if err != nil {
			return products.UpdateProductInput{}, err
		}
		input.Tiers = &tiers
	}
	return input, nil
}

// ProductList returns the storefront catalog, optionally filtered by family.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := products.ListFilters{ActiveOnly: true}
		if raw := strings.TrimSpace(r.URL.Query().Get("family")); raw != "" {
			family, err := enums.ParseProductFamily(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid family filter"))
				return
			}
			filters.Family = &family
		}

		listed, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// ProductBySlug returns one storefront product with its tier table.
func ProductBySlug(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug required"))
			return
		}

		found, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// AdminProductList returns the full catalog including inactive listings.
func AdminProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.ListProducts(r.Context(), products.ListFilters{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// AdminProductCreate adds a product and its tier table in one transaction.
func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminProductUpdate applies a partial update; a tiers payload replaces the
// whole tier table atomically.
func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var req productUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminProductDelete removes a product and its tiers.
func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
