package worker

import (
	"context"
	"log/slog"
	"time"

	"reserve-portal/internal/pkg/clock"
)

type StaleReservationStore interface {
	DeleteStaleRequested(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper is the reconciliation loop for reservations whose outcome
// never arrived: anything still in REQUEST past the timeout is removed,
// mirroring the failure-outcome compensation. Without it a lost outcome
// would park a reservation in REQUEST forever.
type Sweeper struct {
	store    StaleReservationStore
	clock    clock.Clock
	log      *slog.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewSweeper(store StaleReservationStore, clk clock.Clock, log *slog.Logger, interval, timeout time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		clock:    clk,
		log:      log,
		interval: interval,
		timeout:  timeout,
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopping")
			return nil
		case <-t.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.timeout)
	swept, err := s.store.DeleteStaleRequested(ctx, cutoff)
	if err != nil {
		s.log.Error("stale reservation sweep failed", "error", err)
		return
	}
	if swept > 0 {
		s.log.Warn("swept reservations with no outcome", "count", swept, "cutoff", cutoff)
	}
}
