package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

const purgeTimeout = 30 * time.Second

// Cleanup evicts expired verification challenges.
type Cleanup struct {
	challenges model.ChallengeStore
	now        Clock
	logger     *logger.Logger
}

func NewCleanup(challenges model.ChallengeStore, logger *logger.Logger) *Cleanup {
	return &Cleanup{
		challenges: challenges,
		now:        utcNow,
		logger:     logger,
	}
}

func (s *Cleanup) PurgeExpiredChallenges(ctx context.Context) (int64, error) {
	n, err := s.challenges.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("Cleanup service: failed to purge challenges",
			"error", err.Error())
		return 0, fmt.Errorf("failed to delete expired challenges: %w", err)
	}

	if n > 0 {
		s.logger.Info("Cleanup service: expired challenges purged",
			"count", n)
	}

	return n, nil
}

// Register schedules PurgeExpiredChallenges on c with a standard five-field
// cron spec.
func (s *Cleanup) Register(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		_, _ = s.PurgeExpiredChallenges(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to schedule challenge cleanup: %w", err)
	}
	return id, nil
}
