package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
)

type mockOrderRepository struct {
	insertFunc       func(ctx context.Context, o *order.Order) error
	listFunc         func(ctx context.Context, email string) ([]order.Order, error)
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status order.Status) error
}

func (m *mockOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	return m.insertFunc(ctx, o)
}

func (m *mockOrderRepository) List(ctx context.Context, email string) ([]order.Order, error) {
	return m.listFunc(ctx, email)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	return m.updateStatusFunc(ctx, id, status)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name          string
		currentStatus order.Status
		newStatus     order.Status
		wantErrIs     error
		wantUpdated   bool
	}{
		{
			name:          "pending_to_completed",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusCompleted,
			wantUpdated:   true,
		},
		{
			name:          "pending_to_cancelled",
			currentStatus: order.StatusPending,
			newStatus:     order.StatusCancelled,
			wantUpdated:   true,
		},
		{
			name:          "completed_is_terminal",
			currentStatus: order.StatusCompleted,
			newStatus:     order.StatusCancelled,
			wantErrIs:     order.ErrInvalidStatusTransition,
		},
		{
			name:          "cancelled_is_terminal",
			currentStatus: order.StatusCancelled,
			newStatus:     order.StatusCompleted,
			wantErrIs:     order.ErrInvalidStatusTransition,
		},
		{
			name:          "same_status_is_noop",
			currentStatus: order.StatusCompleted,
			newStatus:     order.StatusCompleted,
			wantUpdated:   false,
		},
		{
			name:          "unknown_status_rejected",
			currentStatus: order.StatusPending,
			newStatus:     order.Status("shipped"),
			wantErrIs:     order.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			mockRepo := &mockOrderRepository{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
					return &order.Order{
						ID:         orderID,
						Status:     tt.currentStatus,
						TotalPrice: decimal.RequireFromString("30.00"),
						CreatedAt:  time.Now().UTC(),
					}, nil
				},
				updateStatusFunc: func(ctx context.Context, id uuid.UUID, status order.Status) error {
					updated = true
					return nil
				},
			}

			svc := order.NewService(mockRepo)
			o, err := svc.UpdateOrderStatus(context.Background(), orderID, tt.newStatus)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.False(t, updated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.newStatus, o.Status)
			assert.Equal(t, tt.wantUpdated, updated)
		})
	}
}

func TestOrderService_UpdateOrderStatus_NotFound(t *testing.T) {
	mockRepo := &mockOrderRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}

	svc := order.NewService(mockRepo)
	_, err := svc.UpdateOrderStatus(context.Background(), uuid.Must(uuid.NewV4()), order.StatusCompleted)

	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	orderID := uuid.Must(uuid.NewV4())
	want := &order.Order{
		ID:         orderID,
		Status:     order.StatusCompleted,
		TotalPrice: decimal.RequireFromString("129.95"),
		Items: []order.Item{
			{ProductName: "Phone Case", Quantity: 3, Price: decimal.RequireFromString("19.99")},
		},
	}

	mockRepo := &mockOrderRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			assert.Equal(t, orderID, id)
			return want, nil
		},
	}

	svc := order.NewService(mockRepo)
	got, err := svc.GetOrderByID(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
