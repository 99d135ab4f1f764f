package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/lib/logger/sl"
)

const (
	DefaultStaleAfter    = 10 * time.Second
	DefaultSweepInterval = 15 * time.Second
)

// Sweeper drives the periodic staleness sweep and announces each eviction
// with a public leave notice. Eviction and notice are a best-effort pair: a
// failed notice is logged, never rolled back into the presence set.
type Sweeper struct {
	presence   PresenceInteractor
	messages   MessageInteractor
	interval   time.Duration
	staleAfter time.Duration
	log        *slog.Logger
}

func NewSweeper(presence PresenceInteractor, messages MessageInteractor, interval, staleAfter time.Duration, log *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		presence:   presence,
		messages:   messages,
		interval:   interval,
		staleAfter: staleAfter,
		log:        log,
	}
}

// Run loops until ctx is cancelled. Sweeps execute sequentially on this one
// goroutine; a tick that fires while a sweep is still running is absorbed by
// the ticker, so sweeps never overlap.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info("starting presence sweeper",
		slog.Duration("interval", s.interval),
		slog.Duration("stale_after", s.staleAfter),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopping presence sweeper")
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep pass.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	evicted, err := s.presence.Sweep(ctx, time.Now(), s.staleAfter)
	if err != nil {
		s.log.Error("sweep failed", sl.Err(err))
		return
	}

	for _, p := range evicted {
		if _, err := s.messages.AppendStatus(ctx, p.Name, domain.StatusLeft); err != nil {
			s.log.Error("leave notice failed", slog.String("name", p.Name), sl.Err(err))
		}
	}
}
