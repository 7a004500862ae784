package service

import (
	"context"
	"time"

	"noteshare/internal/logger"
	"noteshare/internal/repository"

	"github.com/google/uuid"
)

// DefaultSweepInterval is how often expired items are garbage collected.
const DefaultSweepInterval = time.Hour

// SweeperService periodically deletes items whose expiration has passed.
type SweeperService struct {
	itemRepo repository.Items
	log      *logger.Logger
}

func NewSweeperService(itemRepo repository.Items, log *logger.Logger) *SweeperService {
	return &SweeperService{itemRepo: itemRepo, log: log}
}

// Run sweeps once immediately, then ticks at the given interval until ctx is
// canceled, so rows that expired while the process was down don't linger a
// full interval. Each pass deletes every item with expiration_date <= now in
// one statement; a failed run is logged and skipped, the next tick retries
// against a consistent state.
func (s *SweeperService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s.sweep(ctx, time.Now().UTC())

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now.UTC())
		}
	}
}

// sweep performs a single garbage-collection pass.
func (s *SweeperService) sweep(ctx context.Context, now time.Time) {
	runID := uuid.NewString()
	n, err := s.itemRepo.DeleteExpired(ctx, now)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("sweep_failed", "run_id", runID, "err", err)
		}
		return
	}
	if n > 0 && s.log != nil {
		s.log.Infow("sweep_completed", "run_id", runID, "deleted", n)
	}
}
