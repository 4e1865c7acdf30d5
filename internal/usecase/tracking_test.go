package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
	testhelpers "github.com/nebulaeats/nebula/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func trackingDetail(status model.OrderStatus) *model.OrderDetail {
	return &model.OrderDetail{Order: model.Order{ID: "o-1", UserID: "u-1", Status: status}}
}

func receiveUpdate(t *testing.T, updates <-chan model.TrackingUpdate) model.TrackingUpdate {
	t.Helper()
	select {
	case update, ok := <-updates:
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return update
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for tracking update")
	}
	return model.TrackingUpdate{}
}

func TestTrackEmitsInitialFetch(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Detail: trackingDetail(model.OrderStatusPreparing)}
	feed := testhelpers.NewStatusFeedStub()
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := uc.Track(ctx, "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update := receiveUpdate(t, updates)
	if update.Status != model.OrderStatusPreparing {
		t.Fatalf("expected preparing, got %s", update.Status)
	}
	if update.Progress != 1 {
		t.Fatalf("expected progress 1, got %d", update.Progress)
	}
	if update.Detail == nil {
		t.Fatal("fetch-driven update must carry order detail")
	}
}

func TestTrackPushEventAdvancesStatus(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Detail: trackingDetail(model.OrderStatusPending)}
	feed := testhelpers.NewStatusFeedStub()
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := uc.Track(ctx, "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := receiveUpdate(t, updates)
	if first.Status != model.OrderStatusPending {
		t.Fatalf("expected pending, got %s", first.Status)
	}

	feed.Ch <- model.StatusEvent{OrderID: "o-1", Status: model.OrderStatusPreparing, OccurredAt: time.Now()}

	second := receiveUpdate(t, updates)
	if second.Status != model.OrderStatusPreparing {
		t.Fatalf("expected preparing after push, got %s", second.Status)
	}
}

func TestTrackStaleFetchNeverRollsBackPush(t *testing.T) {
	fetchGate := make(chan struct{})
	orders := &testhelpers.OrderRepositoryStub{
		GetDetailFn: func(context.Context, string) (*model.OrderDetail, error) {
			<-fetchGate
			return trackingDetail(model.OrderStatusPreparing), nil
		},
	}
	feed := testhelpers.NewStatusFeedStub()
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := uc.Track(ctx, "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The push lands while the initial fetch is still in flight.
	feed.Ch <- model.StatusEvent{OrderID: "o-1", Status: model.OrderStatusDelivered, OccurredAt: time.Now()}

	first := receiveUpdate(t, updates)
	if first.Status != model.OrderStatusDelivered {
		t.Fatalf("expected delivered from push, got %s", first.Status)
	}

	// Release the stale fetches; the displayed status must stay delivered.
	close(fetchGate)
	for i := 0; i < 2; i++ {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Status != model.OrderStatusDelivered {
				t.Fatalf("stale fetch rolled status back to %s", update.Status)
			}
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

func TestTrackIgnoresRegressingEvents(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Detail: trackingDetail(model.OrderStatusOutForDelivery)}
	feed := testhelpers.NewStatusFeedStub()
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := uc.Track(ctx, "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := receiveUpdate(t, updates)
	if first.Status != model.OrderStatusOutForDelivery {
		t.Fatalf("expected out_for_delivery, got %s", first.Status)
	}

	feed.Ch <- model.StatusEvent{OrderID: "o-1", Status: model.OrderStatusPending, OccurredAt: time.Now()}
	feed.Ch <- model.StatusEvent{OrderID: "o-1", Status: model.OrderStatusDelivered, OccurredAt: time.Now()}

	next := receiveUpdate(t, updates)
	if next.Status != model.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", next.Status)
	}
}

func TestTrackClosesOnCancel(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Detail: trackingDetail(model.OrderStatusPending)}
	feed := testhelpers.NewStatusFeedStub()
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := uc.Track(ctx, "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	receiveUpdate(t, updates)

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel did not close after cancel")
		}
	}
}

func TestTrackSubscribeErrorPropagates(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	feed := testhelpers.NewStatusFeedStub()
	feed.Err = context.DeadlineExceeded
	uc := NewTrackingUseCase(orders, feed, discardLogger())

	if _, err := uc.Track(context.Background(), "o-1"); err == nil {
		t.Fatal("expected subscribe error to propagate")
	}
}
