package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Service interface {
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Item, error)
	GetCart(ctx context.Context, sessionID string) ([]Line, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ClearCart(ctx context.Context, sessionID string) error
}

type service struct {
	repo     Repository
	products catalog.Repository
}

func NewService(repo Repository, products catalog.Repository) Service {
	return &service{repo: repo, products: products}
}

// AddItem checks the product and its stock before touching the cart. The
// check is advisory — stock is only reserved at checkout — but it keeps
// obviously unfulfillable lines out of carts.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		log.Error().Err(err).Stringer("product_id", productID).Msg("service: failed to load product for cart add")
		return nil, fmt.Errorf("service: failed to load product: %w", err)
	}

	if product.Stock < quantity {
		return nil, fmt.Errorf("%w for product %q", ErrInsufficientStock, product.Name)
	}

	item := &Item{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Stringer("product_id", productID).Msg("service: failed to add cart item")
		return nil, fmt.Errorf("service: failed to add cart item: %w", err)
	}

	return item, nil
}

func (s *service) GetCart(ctx context.Context, sessionID string) ([]Line, error) {
	lines, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to load cart")
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return lines, nil
}

func (s *service) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		log.Error().Err(err).Stringer("item_id", itemID).Msg("service: failed to update cart quantity")
		return nil, fmt.Errorf("service: failed to update cart quantity: %w", err)
	}

	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.repo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		log.Error().Err(err).Stringer("item_id", itemID).Msg("service: failed to remove cart item")
		return fmt.Errorf("service: failed to remove cart item: %w", err)
	}
	return nil
}

func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.repo.ClearSession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to clear cart")
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}
