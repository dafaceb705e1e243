package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerikbaiNurai/Lost-Found/storage"
)

type recordingItemRepo struct {
	inserted     int
	lastKind     storage.Kind
	lastDesc     string
	lastPhotoRef *string
}

func (r *recordingItemRepo) Insert(_ context.Context, _ int64, _ string, kind storage.Kind, description string, photoFileID *string) (int64, error) {
	r.inserted++
	r.lastKind = kind
	r.lastDesc = description
	r.lastPhotoRef = photoFileID
	return int64(r.inserted), nil
}

func (r *recordingItemRepo) ListByKind(context.Context, storage.Kind, int) ([]storage.Item, error) {
	return nil, nil
}

func (r *recordingItemRepo) ListByOwner(context.Context, int64, int) ([]storage.Item, error) {
	return nil, nil
}

func (r *recordingItemRepo) DeleteOwned(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func TestCreateRejectsEmptyDescription(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := NewItemService(repo)

	_, err := svc.Create(context.Background(), 1, "alice", storage.KindFound, "   ", nil)
	require.ErrorIs(t, err, ErrEmptyDescription)
	assert.Zero(t, repo.inserted)
}

func TestCreateRejectsInvalidKind(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := NewItemService(repo)

	_, err := svc.Create(context.Background(), 1, "alice", storage.Kind("stolen"), "a wallet", nil)
	require.ErrorIs(t, err, ErrInvalidKind)
	assert.Zero(t, repo.inserted)
}

func TestCreateRejectsMissingOwner(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := NewItemService(repo)

	_, err := svc.Create(context.Background(), 0, "alice", storage.KindLost, "a wallet", nil)
	require.ErrorIs(t, err, ErrInvalidUser)
}

func TestCreateTrimsDescription(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := NewItemService(repo)

	id, err := svc.Create(context.Background(), 1, "alice", storage.KindLost, "  blue umbrella \n", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "blue umbrella", repo.lastDesc)
	assert.Nil(t, repo.lastPhotoRef)
}

func TestBrowseRejectsInvalidKind(t *testing.T) {
	svc := NewItemService(&recordingItemRepo{})
	_, err := svc.Browse(context.Background(), storage.Kind(""), 5)
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestKindValid(t *testing.T) {
	assert.True(t, storage.KindFound.Valid())
	assert.True(t, storage.KindLost.Valid())
	assert.False(t, storage.Kind("other").Valid())
	assert.False(t, storage.Kind("").Valid())
}

type countingStatsRepo struct {
	clicks map[string]int64
}

func (r *countingStatsRepo) Increment(_ context.Context, label string) (int64, error) {
	if r.clicks == nil {
		r.clicks = make(map[string]int64)
	}
	r.clicks[label]++
	return r.clicks[label], nil
}

func TestTrackSkipsBlankLabel(t *testing.T) {
	repo := &countingStatsRepo{}
	svc := NewStatsService(repo)

	clicks, err := svc.Track(context.Background(), "  ")
	require.NoError(t, err)
	assert.Zero(t, clicks)
	assert.Empty(t, repo.clicks)
}

func TestTrackAccumulates(t *testing.T) {
	repo := &countingStatsRepo{}
	svc := NewStatsService(repo)

	for i := int64(1); i <= 3; i++ {
		clicks, err := svc.Track(context.Background(), "report_found")
		require.NoError(t, err)
		assert.Equal(t, i, clicks)
	}
}
