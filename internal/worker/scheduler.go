package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// OrderingFacade exposes the subset of application functionality
// required by the scheduler.
type OrderingFacade interface {
	DueScheduledOrders(ctx context.Context, limit int) ([]model.Order, error)
	NotifyOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// Scheduler promotes scheduled orders to pending when their fulfillment
// time arrives and notifies their trackers concurrently.
type Scheduler struct {
	facade       OrderingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewScheduler constructs the scheduled-order promotion worker pool.
func NewScheduler(facade OrderingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Scheduler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *Scheduler) fetchAndDispatch(ctx context.Context) {
	orders, err := s.facade.DueScheduledOrders(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch due scheduled orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- order:
		}
	}
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleOrder(ctx, order)
		}
	}
}

func (s *Scheduler) handleOrder(ctx context.Context, order model.Order) {
	if err := s.facade.NotifyOrderStatus(ctx, order.ID, order.Status); err != nil {
		s.logger.Error("notify promoted order failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled order promoted", slog.String("order", order.ID))
}
