package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BerikbaiNurai/Lost-Found/core/logger"
)

// StatsRepo is the persistence surface the stats service relies on.
type StatsRepo interface {
	Increment(ctx context.Context, label string) (int64, error)
}

// StatsService counts menu interactions.
type StatsService struct {
	repo StatsRepo
}

// NewStatsService constructs a StatsService over repo.
func NewStatsService(repo StatsRepo) *StatsService {
	return &StatsService{repo: repo}
}

// Track bumps the click counter for the given action label. Counter
// failures are logged and returned; callers treat them as non-fatal for the
// conversation flow.
func (s *StatsService) Track(ctx context.Context, label string) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, nil
	}
	clicks, err := s.repo.Increment(ctx, label)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCStats, slog.LevelError, "stats.track",
			slog.String("status", "error"),
			slog.String("label", label),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	logger.LogEvent(ctx, logger.SVCStats, slog.LevelDebug, "stats.track",
		slog.String("label", label),
		slog.Int64("clicks", clicks),
	)
	return clicks, nil
}
