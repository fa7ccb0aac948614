package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrItemNotFound = errors.New("cart item not found")

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	Upsert(ctx context.Context, item *Item) error
	ListBySession(ctx context.Context, sessionID string) ([]Line, error)
	ItemsBySession(ctx context.Context, sessionID string) ([]Item, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
	ClearSession(ctx context.Context, sessionID string) error
}

type repository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &repository{db: db}
}

// Upsert inserts a cart item or, when the session already holds the product,
// adds the quantity onto the existing line. The (session_id, product_id)
// unique index keeps one line per product per session.
func (r *repository) Upsert(ctx context.Context, item *Item) error {
	if item.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("repository: failed to generate cart item ID: %w", err)
		}
		item.ID = id
	}
	item.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO cart_items (id, session_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, created_at
	`
	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.SessionID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
	).Scan(&item.ID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID string) ([]Line, error) {
	query := `
		SELECT ci.id, ci.session_id, ci.product_id, ci.quantity, ci.created_at,
		       p.name, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.session_id = $1
		ORDER BY ci.created_at
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var l Line
		err := rows.Scan(
			&l.ID, &l.SessionID, &l.ProductID, &l.Quantity, &l.CreatedAt,
			&l.ProductName, &l.ProductPrice, &l.ProductStock,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart lines: %w", err)
	}

	return lines, nil
}

func (r *repository) ItemsBySession(ctx context.Context, sessionID string) ([]Item, error) {
	query := `
		SELECT id, session_id, product_id, quantity, created_at
		FROM cart_items
		WHERE session_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.SessionID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items: %w", err)
	}

	return items, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error) {
	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2
		RETURNING id, session_id, product_id, quantity, created_at
	`

	var it Item
	err := r.db.QueryRow(ctx, query, quantity, itemID).Scan(
		&it.ID, &it.SessionID, &it.ProductID, &it.Quantity, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("repository: failed to update quantity for cart item %s: %w", itemID, err)
	}

	return &it, nil
}

func (r *repository) Delete(ctx context.Context, itemID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete cart item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) ClearSession(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("repository: failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}
