package catalog_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
)

type mockProductRepository struct {
	createFunc        func(ctx context.Context, p *catalog.Product) error
	listFunc          func(ctx context.Context, category string) ([]catalog.Product, error)
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	updateFunc        func(ctx context.Context, p *catalog.Product) error
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
	decreaseStockFunc func(ctx context.Context, id uuid.UUID, quantity int) error
}

func (m *mockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return m.createFunc(ctx, p)
}

func (m *mockProductRepository) List(ctx context.Context, category string) ([]catalog.Product, error) {
	return m.listFunc(ctx, category)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockProductRepository) DecreaseStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.decreaseStockFunc(ctx, id, quantity)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		product catalog.Product
		wantErr bool
	}{
		{
			name: "empty_name",
			product: catalog.Product{
				Price: decimal.RequireFromString("10.00"),
				Stock: 1,
			},
			wantErr: true,
		},
		{
			name: "negative_price",
			product: catalog.Product{
				Name:  "Widget",
				Price: decimal.RequireFromString("-0.01"),
				Stock: 1,
			},
			wantErr: true,
		},
		{
			name: "negative_stock",
			product: catalog.Product{
				Name:  "Widget",
				Price: decimal.RequireFromString("10.00"),
				Stock: -1,
			},
			wantErr: true,
		},
		{
			name: "zero_price_allowed",
			product: catalog.Product{
				Name:  "Freebie",
				Price: decimal.Zero,
				Stock: 10,
			},
		},
		{
			name: "success",
			product: catalog.Product{
				Name:     "Widget",
				Price:    decimal.RequireFromString("10.00"),
				Stock:    5,
				Category: "Electronics",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProductRepository{
				createFunc: func(ctx context.Context, p *catalog.Product) error {
					p.ID = uuid.Must(uuid.NewV4())
					return nil
				},
			}
			svc := catalog.NewService(repo)

			err := svc.CreateProduct(context.Background(), &tt.product)

			if tt.wantErr {
				assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.product.ID)
			}
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	productID := uuid.Must(uuid.NewV4())
	existing := catalog.Product{
		ID:          productID,
		Name:        "Widget",
		Description: "Original description",
		Price:       decimal.RequireFromString("10.00"),
		Stock:       5,
		Category:    "Electronics",
	}

	newName := "Gadget"
	newPrice := decimal.RequireFromString("15.50")
	negativePrice := decimal.RequireFromString("-1.00")
	emptyName := ""

	tests := []struct {
		name      string
		params    catalog.UpdateParams
		wantErrIs error
		check     func(t *testing.T, p *catalog.Product)
	}{
		{
			name:   "partial_update_keeps_other_fields",
			params: catalog.UpdateParams{Name: &newName},
			check: func(t *testing.T, p *catalog.Product) {
				assert.Equal(t, "Gadget", p.Name)
				assert.Equal(t, "Original description", p.Description)
				assert.True(t, p.Price.Equal(decimal.RequireFromString("10.00")))
				assert.Equal(t, 5, p.Stock)
			},
		},
		{
			name:   "price_update",
			params: catalog.UpdateParams{Price: &newPrice},
			check: func(t *testing.T, p *catalog.Product) {
				assert.True(t, p.Price.Equal(newPrice))
			},
		},
		{
			name:      "negative_price_rejected",
			params:    catalog.UpdateParams{Price: &negativePrice},
			wantErrIs: catalog.ErrInvalidProduct,
		},
		{
			name:      "empty_name_rejected",
			params:    catalog.UpdateParams{Name: &emptyName},
			wantErrIs: catalog.ErrInvalidProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProductRepository{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
					p := existing
					return &p, nil
				},
				updateFunc: func(ctx context.Context, p *catalog.Product) error {
					return nil
				},
			}
			svc := catalog.NewService(repo)

			updated, err := svc.UpdateProduct(context.Background(), productID, tt.params)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			tt.check(t, updated)
		})
	}
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	repo := &mockProductRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
			return nil, catalog.ErrNotFound
		},
	}
	svc := catalog.NewService(repo)

	_, err := svc.UpdateProduct(context.Background(), uuid.Must(uuid.NewV4()), catalog.UpdateParams{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
