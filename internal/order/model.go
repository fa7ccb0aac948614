package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Item is an order line. ProductName and Price are snapshots captured at
// checkout: a later catalog edit or deletion must not change a recorded order.
type Item struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	CustomerName  string          `json:"customer_name" db:"customer_name"`
	CustomerEmail string          `json:"customer_email" db:"customer_email"`
	TotalPrice    decimal.Decimal `json:"total_price" db:"total_price"`
	Status        Status          `json:"status" db:"status"`
	Items         []Item          `json:"items" db:"-"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
