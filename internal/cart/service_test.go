package cart_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
)

type mockCartRepository struct {
	upsertFunc         func(ctx context.Context, item *cart.Item) error
	listBySessionFunc  func(ctx context.Context, sessionID string) ([]cart.Line, error)
	itemsBySessionFunc func(ctx context.Context, sessionID string) ([]cart.Item, error)
	updateQuantityFunc func(ctx context.Context, itemID uuid.UUID, quantity int) (*cart.Item, error)
	deleteFunc         func(ctx context.Context, itemID uuid.UUID) error
	clearSessionFunc   func(ctx context.Context, sessionID string) error
}

func (m *mockCartRepository) Upsert(ctx context.Context, item *cart.Item) error {
	return m.upsertFunc(ctx, item)
}

func (m *mockCartRepository) ListBySession(ctx context.Context, sessionID string) ([]cart.Line, error) {
	return m.listBySessionFunc(ctx, sessionID)
}

func (m *mockCartRepository) ItemsBySession(ctx context.Context, sessionID string) ([]cart.Item, error) {
	return m.itemsBySessionFunc(ctx, sessionID)
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*cart.Item, error) {
	return m.updateQuantityFunc(ctx, itemID, quantity)
}

func (m *mockCartRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	return m.deleteFunc(ctx, itemID)
}

func (m *mockCartRepository) ClearSession(ctx context.Context, sessionID string) error {
	return m.clearSessionFunc(ctx, sessionID)
}

type mockCatalogRepository struct {
	catalog.Repository
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

func (m *mockCatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func TestCartService_AddItem(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())
	product := &catalog.Product{
		ID:    productID,
		Name:  "Wireless Mouse",
		Price: decimal.RequireFromString("39.99"),
		Stock: 5,
	}

	tests := []struct {
		name        string
		quantity    int
		getByIDFunc func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
		wantErrIs   error
	}{
		{
			name:     "zero_quantity_rejected",
			quantity: 0,
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
				t.Fatal("product lookup must not happen for invalid quantity")
				return nil, nil
			},
			wantErrIs: cart.ErrInvalidQuantity,
		},
		{
			name:     "negative_quantity_rejected",
			quantity: -3,
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
				t.Fatal("product lookup must not happen for invalid quantity")
				return nil, nil
			},
			wantErrIs: cart.ErrInvalidQuantity,
		},
		{
			name:     "missing_product",
			quantity: 1,
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
				return nil, catalog.ErrNotFound
			},
			wantErrIs: cart.ErrProductNotFound,
		},
		{
			name:     "quantity_exceeds_stock",
			quantity: 6,
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
				return product, nil
			},
			wantErrIs: cart.ErrInsufficientStock,
		},
		{
			name:     "success",
			quantity: 2,
			getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
				return product, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCartRepository{
				upsertFunc: func(ctx context.Context, item *cart.Item) error {
					item.ID = uuid.Must(uuid.NewV4())
					return nil
				},
			}
			products := &mockCatalogRepository{getByIDFunc: tt.getByIDFunc}
			svc := cart.NewService(repo, products)

			item, err := svc.AddItem(context.Background(), "session-1", productID, tt.quantity)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "session-1", item.SessionID)
			assert.Equal(t, productID, item.ProductID)
			assert.Equal(t, tt.quantity, item.Quantity)
		})
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	itemID := uuid.Must(uuid.NewV4())

	t.Run("quantity_below_one_rejected", func(t *testing.T) {
		repo := &mockCartRepository{
			updateQuantityFunc: func(ctx context.Context, id uuid.UUID, quantity int) (*cart.Item, error) {
				t.Fatal("repository must not be called for invalid quantity")
				return nil, nil
			},
		}
		svc := cart.NewService(repo, &mockCatalogRepository{})

		_, err := svc.UpdateQuantity(context.Background(), itemID, 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})

	t.Run("missing_item", func(t *testing.T) {
		repo := &mockCartRepository{
			updateQuantityFunc: func(ctx context.Context, id uuid.UUID, quantity int) (*cart.Item, error) {
				return nil, cart.ErrItemNotFound
			},
		}
		svc := cart.NewService(repo, &mockCatalogRepository{})

		_, err := svc.UpdateQuantity(context.Background(), itemID, 2)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo := &mockCartRepository{
			updateQuantityFunc: func(ctx context.Context, id uuid.UUID, quantity int) (*cart.Item, error) {
				return &cart.Item{ID: id, Quantity: quantity}, nil
			},
		}
		svc := cart.NewService(repo, &mockCatalogRepository{})

		item, err := svc.UpdateQuantity(context.Background(), itemID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
	})
}
