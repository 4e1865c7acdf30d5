package usecase

import (
	"context"
	"log/slog"

	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// StatusFeed delivers realtime status events scoped to a single order.
type StatusFeed interface {
	Subscribe(ctx context.Context, orderID string) (<-chan model.StatusEvent, error)
}

// TrackingUseCase merges the realtime push feed with pull-based fetches
// into a monotonic status stream. The initial fetch and the subscription
// race; whichever carries the more advanced status wins, so a stale
// fetch can never roll a fresher push event back.
type TrackingUseCase struct {
	orders repository.OrderRepository
	feed   StatusFeed
	logger *slog.Logger
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(orders repository.OrderRepository, feed StatusFeed, logger *slog.Logger) *TrackingUseCase {
	return &TrackingUseCase{orders: orders, feed: feed, logger: logger}
}

// Track opens a tracking stream for one order. Updates stop and the
// channel closes when ctx is cancelled; cancelling also tears down the
// underlying subscription.
func (u *TrackingUseCase) Track(ctx context.Context, orderID string) (<-chan model.TrackingUpdate, error) {
	events, err := u.feed.Subscribe(ctx, orderID)
	if err != nil {
		return nil, err
	}
	updates := make(chan model.TrackingUpdate, 8)
	go u.run(ctx, orderID, events, updates)
	return updates, nil
}

func (u *TrackingUseCase) run(ctx context.Context, orderID string, events <-chan model.StatusEvent, updates chan<- model.TrackingUpdate) {
	defer close(updates)

	fetches := make(chan *model.OrderDetail, 1)
	fetch := func() {
		go func() {
			detail, err := u.orders.GetDetail(ctx, orderID)
			if err != nil {
				if ctx.Err() == nil {
					u.logger.Error("order fetch failed",
						slog.String("order", orderID),
						slog.String("error", err.Error()))
				}
				return
			}
			select {
			case fetches <- detail:
			case <-ctx.Done():
			}
		}()
	}
	fetch()

	var current model.OrderStatus
	var detail *model.OrderDetail

	emit := func() {
		update := model.TrackingUpdate{
			Status:   current,
			Progress: current.ProgressIndex(),
			Detail:   detail,
		}
		select {
		case updates <- update:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case fetched := <-fetches:
			current = model.MergeStatus(current, fetched.Status)
			fetched.Order.Status = current
			detail = fetched
			emit()
		case ev, ok := <-events:
			if !ok {
				// Feed dropped; keep serving reconciling fetches.
				events = nil
				continue
			}
			merged := model.MergeStatus(current, ev.Status)
			if merged == current {
				continue
			}
			current = merged
			if detail != nil {
				detail.Order.Status = current
			}
			emit()
			fetch()
		}
	}
}
