// Package checkout converts a session's cart into a persisted order while
// reserving stock. The whole operation runs as one storage transaction: either
// the order exists, stock is decremented and the cart is empty, or nothing
// changed at all.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrInsufficientStock  = catalog.ErrInsufficientStock
)

// Tx is the set of storage operations checkout needs inside one transaction.
type Tx interface {
	CartItems(ctx context.Context, sessionID string) ([]cart.Item, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	DecreaseStock(ctx context.Context, productID uuid.UUID, quantity int) error
	InsertOrder(ctx context.Context, o *order.Order) error
	ClearCart(ctx context.Context, sessionID string) error
}

// Store opens a transaction and runs fn inside it. A non-nil error from fn
// rolls the transaction back.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

type Service interface {
	Checkout(ctx context.Context, sessionID, customerName, customerEmail string) (*order.Order, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Checkout(ctx context.Context, sessionID, customerName, customerEmail string) (*order.Order, error) {
	var created *order.Order

	err := s.store.InTx(ctx, func(tx Tx) error {
		items, err := tx.CartItems(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Validate every line before applying anything, so client errors
		// name the first offending product rather than a rollback artifact.
		products := make(map[uuid.UUID]*catalog.Product, len(items))
		for _, item := range items {
			product, err := tx.ProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product %q", ErrInsufficientStock, product.Name)
			}
			products[item.ProductID] = product
		}

		o := &order.Order{
			CustomerName:  customerName,
			CustomerEmail: customerEmail,
			Status:        order.StatusCompleted,
			Items:         make([]order.Item, 0, len(items)),
		}

		for _, item := range items {
			product := products[item.ProductID]

			// The conditional decrement re-checks stock at commit time, so a
			// concurrent checkout that won the race is caught here.
			if err := tx.DecreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, catalog.ErrInsufficientStock) {
					return fmt.Errorf("%w for product %q", ErrInsufficientStock, product.Name)
				}
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
				}
				return fmt.Errorf("failed to decrease stock for product %s: %w", item.ProductID, err)
			}

			o.Items = append(o.Items, order.Item{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				Price:       product.Price,
			})
			o.TotalPrice = o.TotalPrice.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		o.TotalPrice = o.TotalPrice.Round(2)

		if err := tx.InsertOrder(ctx, o); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		if err := tx.ClearCart(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		created = o
		return nil
	})
	if err != nil {
		if isClientFault(err) {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("service: checkout rejected")
			return nil, err
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: checkout failed")
		return nil, fmt.Errorf("service: checkout failed: %w", err)
	}

	log.Info().
		Stringer("order_id", created.ID).
		Str("session_id", sessionID).
		Str("total_price", created.TotalPrice.String()).
		Msg("service: checkout completed")

	return created, nil
}

func isClientFault(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrInsufficientStock)
}
