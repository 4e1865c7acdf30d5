package repository

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their
// line items.
type OrderRepository interface {
	// Create inserts the order row and fills its ID and CreatedAt.
	Create(ctx context.Context, order *model.Order) error
	// AddItems inserts line item rows referencing an existing order.
	AddItems(ctx context.Context, orderID string, items []model.OrderItem) error
	GetDetail(ctx context.Context, orderID string) (*model.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// SelectDueScheduled returns scheduled orders whose fulfillment time
	// has arrived, marked pending inside the same transaction.
	SelectDueScheduled(ctx context.Context, limit int) ([]model.Order, error)
}
