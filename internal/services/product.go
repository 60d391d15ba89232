package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"

	"storefront-api/internal/cache"
	"storefront-api/internal/logging"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/telemetry"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	productRepo *repository.ProductRepository
	cache       *cache.ProductCache
}

func NewProductService(productRepo *repository.ProductRepository, productCache *cache.ProductCache) *ProductService {
	return &ProductService{productRepo: productRepo, cache: productCache}
}

type VariantInput struct {
	ID        string               `json:"id"`
	SKU       string               `json:"sku" validate:"required"`
	Name      models.LocalizedText `json:"name"`
	Attrs     models.Attributes    `json:"attributes"`
	IsPrimary bool                 `json:"is_primary"`
	Price     decimal.Decimal      `json:"price" validate:"required"`
	ListPrice decimal.NullDecimal  `json:"list_price"`
	Stock     int                  `json:"stock" validate:"gte=0"`
}

type CreateProductInput struct {
	Slug             string               `json:"slug" validate:"required"`
	SKU              string               `json:"sku" validate:"required"`
	Name             models.LocalizedText `json:"name" validate:"required"`
	Description      models.LocalizedText `json:"description"`
	ShortDescription models.LocalizedText `json:"short_description"`
	BasePrice        decimal.NullDecimal  `json:"base_price"`
	Type             models.ProductType   `json:"type" validate:"required,oneof=SIMPLE VARIABLE"`
	Status           models.ProductStatus `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
	IsBestPrice      bool                 `json:"is_best_price"`
	IsExclusive      bool                 `json:"is_exclusive"`
	IsTopSelling     bool                 `json:"is_top_selling"`
	IsNewArrival     bool                 `json:"is_new_arrival"`
	CategoryIDs      []string             `json:"category_ids" validate:"omitempty,dive,uuid"`
	Variants         []VariantInput       `json:"variants" validate:"required,min=1,dive"`
}

func (s *ProductService) Create(ctx context.Context, createdBy string, input CreateProductInput) (*models.Product, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "product.create")
	defer span.End()

	status := input.Status
	if status == "" {
		status = models.ProductStatusDraft
	}

	product := &models.Product{
		ID:               uuid.NewString(),
		Slug:             input.Slug,
		SKU:              input.SKU,
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		BasePrice:        input.BasePrice,
		Type:             input.Type,
		Status:           status,
		IsBestPrice:      input.IsBestPrice,
		IsExclusive:      input.IsExclusive,
		IsTopSelling:     input.IsTopSelling,
		IsNewArrival:     input.IsNewArrival,
		CreatedBy:        createdBy,
	}
	product.Variants = buildVariants(product.ID, input.Variants)

	if err := s.productRepo.Create(ctx, product, input.CategoryIDs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create product")
		logging.Error(ctx, "failed to create product", "error", err)
		return nil, err
	}

	telemetry.ProductsCreated.Add(ctx, 1)
	span.SetStatus(codes.Ok, "product created")
	logging.Info(ctx, "product created", "productId", product.ID, "slug", product.Slug)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input CreateProductInput) (*models.Product, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "product.update")
	defer span.End()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = existing.Status
	}

	product := &models.Product{
		ID:               id,
		Slug:             input.Slug,
		SKU:              input.SKU,
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		BasePrice:        input.BasePrice,
		Type:             input.Type,
		Status:           status,
		IsBestPrice:      input.IsBestPrice,
		IsExclusive:      input.IsExclusive,
		IsTopSelling:     input.IsTopSelling,
		IsNewArrival:     input.IsNewArrival,
		CreatedBy:        existing.CreatedBy,
	}
	product.Variants = buildVariants(id, input.Variants)

	if err := s.productRepo.Update(ctx, product, input.CategoryIDs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update product")
		logging.Error(ctx, "failed to update product", "productId", id, "error", err)
		return nil, err
	}

	s.cache.Invalidate(ctx, id)

	span.SetStatus(codes.Ok, "product updated")
	logging.Info(ctx, "product updated", "productId", id)
	return product, nil
}

func buildVariants(productID string, inputs []VariantInput) []*models.ProductVariant {
	variants := make([]*models.ProductVariant, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		variants[i] = &models.ProductVariant{
			ID:        id,
			ProductID: productID,
			SKU:       in.SKU,
			Name:      in.Name,
			Attrs:     in.Attrs,
			IsPrimary: in.IsPrimary,
			Price:     in.Price,
			ListPrice: in.ListPrice,
			Stock:     in.Stock,
		}
	}
	return variants
}

// Get serves product details through the redis cache; a miss falls through
// to the database and repopulates the cache.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	var cached models.Product
	if err := s.cache.Get(ctx, id, &cached); err == nil {
		return &cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, id, product)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, page, limit int) ([]*models.Product, PageMeta, error) {
	page, limit = NormalizePage(page, limit)

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, PageMeta{}, err
	}

	products, err := s.productRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return products, NewPageMeta(total, page, limit), nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		logging.Error(ctx, "failed to delete product", "productId", id, "error", err)
		return err
	}

	s.cache.Invalidate(ctx, id)
	logging.Info(ctx, "product deleted", "productId", id)
	return nil
}
