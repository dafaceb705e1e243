package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BerikbaiNurai/Lost-Found/core/logger"
)

// UserRepo is the persistence surface the user service relies on.
type UserRepo interface {
	UpsertIfAbsent(ctx context.Context, userID int64, handle string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserService maintains the registry of bot users.
type UserService struct {
	repo UserRepo
}

// NewUserService constructs a UserService over repo.
func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register records the user on first contact. The handle seen first wins;
// repeat calls leave the stored row untouched. Returns whether this was the
// first contact.
func (s *UserService) Register(ctx context.Context, userID int64, handle string) (bool, error) {
	if userID == 0 {
		return false, ErrInvalidUser
	}
	handle = strings.TrimSpace(handle)

	created, err := s.repo.UpsertIfAbsent(ctx, userID, handle)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "user.register",
			slog.String("status", "error"),
			slog.Int64("owner_id", userID),
			slog.String("err", err.Error()),
		)
		return false, err
	}
	if created {
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.register",
			slog.String("status", "ok"),
			slog.Int64("owner_id", userID),
		)
	}
	return created, nil
}

// Count returns the registered user population.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "user.count",
			slog.String("status", "error"),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	return n, nil
}
