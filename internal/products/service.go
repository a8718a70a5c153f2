package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printcraft/printshop-backend/internal/pricing"
	"github.com/printcraft/printshop-backend/pkg/db"
	"github.com/printcraft/printshop-backend/pkg/db/models"
	"github.com/printcraft/printshop-backend/pkg/enums"
	pkgerrors "github.com/printcraft/printshop-backend/pkg/errors"
)

// Service exposes catalog product management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Slug             string
	Name             string
	Family           enums.ProductFamily
	Description      *string
	FinishOptions    []string
	MinOrderQty      int
	PackagingFlat    decimal.Decimal
	PackagingPerUnit decimal.Decimal
	Legacy           bool
	IsActive         bool
	Tiers            []TierInput
}

// TierInput defines one quantity price break. MaxQty zero marks an
// open-ended final tier.
type TierInput struct {
	MinQty       int
	MaxQty       int
	PricePerUnit decimal.Decimal
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Slug             *string
	Name             *string
	Family           *enums.ProductFamily
	Description      *string
	FinishOptions    *[]string
	MinOrderQty      *int
	PackagingFlat    *decimal.Decimal
	PackagingPerUnit *decimal.Decimal
	Legacy           *bool
	IsActive         *bool
	Tiers            *[]TierInput
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateProduct creates the product together with its tier table.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validatePackaging(input.PackagingFlat, input.PackagingPerUnit); err != nil {
		return nil, err
	}
	if err := validateMinOrderQty(input.MinOrderQty); err != nil {
		return nil, err
	}
	if !input.Legacy {
		if err := pricing.ValidateTiers(toPricingTiers(input.Tiers)); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row := &models.Product{
			Slug:             strings.TrimSpace(input.Slug),
			Name:             strings.TrimSpace(input.Name),
			Family:           input.Family,
			Description:      input.Description,
			FinishOptions:    input.FinishOptions,
			MinOrderQty:      input.MinOrderQty,
			PackagingFlat:    input.PackagingFlat,
			PackagingPerUnit: input.PackagingPerUnit,
			Legacy:           input.Legacy,
			IsActive:         input.IsActive,
		}

		created, err := txRepo.Create(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if err := txRepo.ReplaceTiers(ctx, created.ID, toTierRows(created.ID, input.Tiers)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace pricing tiers")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	created, err := s.repo.FindByID(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct updates an existing product and, when provided, replaces
// its tier table wholesale.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.MinOrderQty != nil {
		if err := validateMinOrderQty(*input.MinOrderQty); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdate(product, input)

	if err := validatePackaging(product.PackagingFlat, product.PackagingPerUnit); err != nil {
		return nil, err
	}
	if input.Tiers != nil && !product.Legacy {
		if err := pricing.ValidateTiers(toPricingTiers(*input.Tiers)); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.Update(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
			}
			return err
		}
		if input.Tiers != nil {
			if err := txRepo.ReplaceTiers(ctx, product.ID, toTierRows(product.ID, *input.Tiers)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a product and relies on FK cascades for tier rows.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProduct returns a single product by ID.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// GetProductBySlug returns a single product by catalog slug.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// ListProducts returns catalog products matching the filters.
func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewProductDTO(&rows[i])
	}
	return dtos, nil
}

func validateMinOrderQty(value int) error {
	if value < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_order_qty must be at least 1")
	}
	return nil
}

func validatePackaging(flat, perUnit decimal.Decimal) error {
	if flat.IsNegative() || perUnit.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "packaging charges must be non-negative")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateProductInput) {
	if input.Slug != nil {
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Family != nil {
		product.Family = *input.Family
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.FinishOptions != nil {
		product.FinishOptions = append([]string(nil), *input.FinishOptions...)
	}
	if input.MinOrderQty != nil {
		product.MinOrderQty = *input.MinOrderQty
	}
	if input.PackagingFlat != nil {
		product.PackagingFlat = *input.PackagingFlat
	}
	if input.PackagingPerUnit != nil {
		product.PackagingPerUnit = *input.PackagingPerUnit
	}
	if input.Legacy != nil {
		product.Legacy = *input.Legacy
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func toPricingTiers(inputs []TierInput) []pricing.Tier {
	tiers := make([]pricing.Tier, len(inputs))
	for i, tier := range inputs {
		tiers[i] = pricing.Tier{
			MinQty:       tier.MinQty,
			MaxQty:       tier.MaxQty,
			PricePerUnit: tier.PricePerUnit,
		}
	}
	return tiers
}

func toTierRows(productID uuid.UUID, inputs []TierInput) []models.PricingTier {
	rows := make([]models.PricingTier, len(inputs))
	for i, tier := range inputs {
		rows[i] = models.PricingTier{
			ProductID:    productID,
			MinQty:       tier.MinQty,
			MaxQty:       tier.MaxQty,
			PricePerUnit: tier.PricePerUnit,
			Position:     i,
		}
	}
	return rows
}
