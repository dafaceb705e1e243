package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/BerikbaiNurai/Lost-Found/core/logger"
	"github.com/BerikbaiNurai/Lost-Found/storage"
)

// ItemRepo is the persistence surface the item service relies on.
type ItemRepo interface {
	Insert(ctx context.Context, ownerID int64, ownerHandle string, kind storage.Kind, description string, photoFileID *string) (int64, error)
	ListByKind(ctx context.Context, kind storage.Kind, limit int) ([]storage.Item, error)
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]storage.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error)
}

// ItemService validates and records lost-and-found postings.
type ItemService struct {
	repo ItemRepo
}

// NewItemService constructs an ItemService over repo.
func NewItemService(repo ItemRepo) *ItemService {
	return &ItemService{repo: repo}
}

// Create validates and stores a posting, returning the new item id.
func (s *ItemService) Create(ctx context.Context, ownerID int64, ownerHandle string, kind storage.Kind, description string, photoFileID *string) (int64, error) {
	if ownerID == 0 {
		return 0, ErrInvalidUser
	}
	if !kind.Valid() {
		return 0, ErrInvalidKind
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return 0, ErrEmptyDescription
	}

	start := time.Now()
	id, err := s.repo.Insert(ctx, ownerID, ownerHandle, kind, description, photoFileID)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCItems, slog.LevelError, "item.create",
			slog.String("status", "error"),
			slog.Int64("owner_id", ownerID),
			slog.String("kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return 0, err
	}

	logger.LogEvent(ctx, logger.SVCItems, slog.LevelInfo, "item.create",
		slog.String("status", "ok"),
		slog.Int64("item_id", id),
		slog.Int64("owner_id", ownerID),
		slog.String("kind", string(kind)),
		slog.Bool("has_photo", photoFileID != nil),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

// Browse returns the newest postings of the given kind.
func (s *ItemService) Browse(ctx context.Context, kind storage.Kind, limit int) ([]storage.Item, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	items, err := s.repo.ListByKind(ctx, kind, limit)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCItems, slog.LevelError, "item.browse",
			slog.String("status", "error"),
			slog.String("kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	logger.LogEvent(ctx, logger.SVCItems, slog.LevelDebug, "item.browse",
		slog.String("kind", string(kind)),
		slog.Int("shown", len(items)),
	)
	return items, nil
}

// Owned returns the newest postings created by ownerID.
func (s *ItemService) Owned(ctx context.Context, ownerID int64, limit int) ([]storage.Item, error) {
	if ownerID == 0 {
		return nil, ErrInvalidUser
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCItems, slog.LevelError, "item.owned",
			slog.String("status", "error"),
			slog.Int64("owner_id", ownerID),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return items, nil
}

// DeleteOwned removes the posting when it belongs to ownerID. A false
// result without error means the id does not exist or belongs to someone
// else.
func (s *ItemService) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	if ownerID == 0 {
		return false, ErrInvalidUser
	}
	removed, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCItems, slog.LevelError, "item.delete",
			slog.String("status", "error"),
			slog.Int64("item_id", id),
			slog.Int64("owner_id", ownerID),
			slog.String("err", err.Error()),
		)
		return false, err
	}
	status := "ok"
	if !removed {
		status = "denied"
	}
	logger.LogEvent(ctx, logger.SVCItems, slog.LevelInfo, "item.delete",
		slog.String("status", status),
		slog.Int64("item_id", id),
		slog.Int64("owner_id", ownerID),
	)
	return removed, nil
}
