package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// StatusPublisher emits status change notifications to the realtime feed.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, ev model.StatusEvent) error
}

// OrderUseCase encapsulates order reads and status transitions.
type OrderUseCase struct {
	orders    repository.OrderRepository
	publisher StatusPublisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, publisher StatusPublisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, publisher: publisher, logger: logger}
}

// ListByUser returns orders sorted by creation time.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// GetForUser returns the joined order detail, hiding other users' orders.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID string) (*model.OrderDetail, error) {
	detail, err := u.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return detail, nil
}

// RequestTransition moves the order to next if the step is valid, then
// notifies the realtime feed. A publish failure is logged only: the
// pull path reconciles trackers that missed the push.
func (u *OrderUseCase) RequestTransition(ctx context.Context, orderID string, next model.OrderStatus) error {
	detail, err := u.orders.GetDetail(ctx, orderID)
	if err != nil {
		return err
	}
	if !detail.Status.CanTransition(next) {
		return domainErrors.ErrInvalidTransition
	}
	if err := u.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}
	if err := u.NotifyStatus(ctx, orderID, next); err != nil {
		u.logger.Error("status publish failed",
			slog.String("order", orderID),
			slog.String("status", string(next)),
			slog.String("error", err.Error()))
	}
	return nil
}

// DueScheduled marks due scheduled orders pending and returns them; the
// caller is responsible for notifying their trackers.
func (u *OrderUseCase) DueScheduled(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectDueScheduled(ctx, limit)
}

// NotifyStatus publishes a status event to the realtime feed.
func (u *OrderUseCase) NotifyStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	ev := model.StatusEvent{OrderID: orderID, Status: status, OccurredAt: time.Now()}
	return u.publisher.PublishStatus(ctx, ev)
}
