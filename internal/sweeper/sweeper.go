package sweeper

import (
	"context"
	"log/slog"
	"time"
)

const DefaultInterval = time.Minute

// Canceller cancels approved orders whose preservation window has elapsed.
type Canceller interface {
	CancelExpired(ctx context.Context, now time.Time) (int, error)
}

type Sweeper struct {
	Orders   Canceller
	Interval time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	n, err := s.Orders.CancelExpired(ctx, now)
	l := s.logger()
	if err != nil {
		l.Error("order_sweep_failed", "error", err)
		return n, err
	}
	if n > 0 {
		l.Info("order_sweep_cancelled", "count", n)
	}
	return n, nil
}

// Run sweeps every Interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	s.logger().Info("order_sweeper_started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger().Info("order_sweeper_stopped")
			return
		case <-t.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

func (s *Sweeper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
