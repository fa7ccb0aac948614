package checkout

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
)

// PostgresStore runs checkout transactions on a pgx pool, binding the regular
// repositories to the transaction connection.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	pgTx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := pgTx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback checkout transaction after panic")
			}
			panic(p)
		}
		if err != nil {
			if rbErr := pgTx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
			return
		}
		if commitErr := pgTx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(&pgxTx{
		carts:    cart.NewRepository(pgTx),
		products: catalog.NewRepository(pgTx),
		orders:   order.NewRepository(pgTx),
	})
	return err
}

type pgxTx struct {
	carts    cart.Repository
	products catalog.Repository
	orders   order.Repository
}

func (t *pgxTx) CartItems(ctx context.Context, sessionID string) ([]cart.Item, error) {
	return t.carts.ItemsBySession(ctx, sessionID)
}

func (t *pgxTx) ProductByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return t.products.GetByID(ctx, id)
}

func (t *pgxTx) DecreaseStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return t.products.DecreaseStock(ctx, productID, quantity)
}

func (t *pgxTx) InsertOrder(ctx context.Context, o *order.Order) error {
	return t.orders.Insert(ctx, o)
}

func (t *pgxTx) ClearCart(ctx context.Context, sessionID string) error {
	return t.carts.ClearSession(ctx, sessionID)
}
