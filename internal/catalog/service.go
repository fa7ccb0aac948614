package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service interface {
	CreateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context, category string) ([]Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, product *Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		log.Error().Err(err).Str("name", product.Name).Msg("service: failed to create product")
		return fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", product.ID).Str("name", product.Name).Msg("service: product created")
	return nil
}

func (s *service) ListProducts(ctx context.Context, category string) ([]Product, error) {
	products, err := s.repo.List(ctx, category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to get product")
		return nil, fmt.Errorf("service: failed to get product by id: %w", err)
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to load product for update")
		return nil, fmt.Errorf("service: failed to load product for update: %w", err)
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
		}
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
		}
		product.Price = *params.Price
	}
	if params.Stock != nil {
		if *params.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
		}
		product.Stock = *params.Stock
	}
	if params.Category != nil {
		product.Category = *params.Category
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to update product")
		return nil, fmt.Errorf("service: failed to update product: %w", err)
	}

	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Stringer("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	log.Info().Stringer("product_id", id).Msg("service: product deleted")
	return nil
}
