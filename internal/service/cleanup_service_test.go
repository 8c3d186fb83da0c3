package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shortly/internal/mocks"
	"shortly/internal/repository"
	"shortly/internal/service"
)

type cleanupFixture struct {
	store  *fakeStore
	urls   *mocks.MockURLRepository
	clicks *mocks.MockClickRepository
	svc    service.CleanupService
}

func newCleanupFixture(t *testing.T, cfg service.CleanupConfig) *cleanupFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &cleanupFixture{
		store:  &fakeStore{},
		urls:   mocks.NewMockURLRepository(ctrl),
		clicks: mocks.NewMockClickRepository(ctrl),
	}
	f.svc = service.NewCleanupService(f.store, f.urls, f.clicks, cfg, service.WithClock(fixedClock))
	return f
}

func TestCleanupExpiredURLs_Batches(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 2})

	gomock.InOrder(
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(2), nil),
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(2), nil),
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(1), nil),
	)

	res, err := f.svc.CleanupExpiredURLs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Deleted)
	assert.Equal(t, 3, res.Batches)
	assert.EqualValues(t, 3, f.store.txs.Load(), "one transaction per batch")
}

func TestCleanupExpiredURLs_ExactMultiple(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 2})

	gomock.InOrder(
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(2), nil),
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(0), nil),
	)

	res, err := f.svc.CleanupExpiredURLs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Deleted)
	assert.Equal(t, 2, res.Batches)
}

func TestCleanupExpiredURLs_PartialFailure(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 2})

	gomock.InOrder(
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).Return(int64(2), nil),
		f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 2).
			Return(int64(0), &repository.StoreError{Op: "delete", Err: errors.New("lock timeout")}),
	)

	res, err := f.svc.CleanupExpiredURLs(context.Background())
	require.Error(t, err)
	assert.Equal(t, service.KindStore, service.KindOf(err))
	assert.EqualValues(t, 2, res.Deleted, "committed batches are reported")
}

func TestPruneOldAnalytics(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 100})
	cutoff := testNow.AddDate(0, 0, -30)

	f.clicks.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any(), cutoff, 100).Return(int64(42), nil)

	res, err := f.svc.PruneOldAnalytics(context.Background(), 30)
	require.NoError(t, err)
	assert.EqualValues(t, 42, res.Pruned)
	assert.Equal(t, cutoff, res.Cutoff)
}

func TestPruneOldAnalytics_InvalidDays(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{})

	_, err := f.svc.PruneOldAnalytics(context.Background(), 0)
	assert.True(t, service.IsKind(err, service.KindValidation))
}

func TestRunMaintenance(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 10, AnalyticsDays: 90})

	f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), testNow, 10).Return(int64(3), nil)
	f.clicks.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any(), testNow.AddDate(0, 0, -90), 10).Return(int64(7), nil)

	res, err := f.svc.RunMaintenance(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.ExpiredCleanup.Deleted)
	assert.EqualValues(t, 7, res.AnalyticsPruning.Pruned)
	assert.Equal(t, testNow, res.Timestamp)
}

func TestRunMaintenance_PrunesAfterCleanupFailure(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 10, AnalyticsDays: 90})

	f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), &repository.StoreError{Op: "delete", Err: errors.New("boom")})
	f.clicks.EXPECT().DeleteOlderThan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := f.svc.RunMaintenance(context.Background())
	require.Error(t, err)
	require.NotNil(t, res.AnalyticsPruning)
	assert.EqualValues(t, 1, res.AnalyticsPruning.Pruned)
}

func TestRunMaintenance_RetentionDisabled(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{BatchSize: 10})

	f.urls.EXPECT().DeleteExpired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	res, err := f.svc.RunMaintenance(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.AnalyticsPruning)
}

func TestGetCleanupStats(t *testing.T) {
	f := newCleanupFixture(t, service.CleanupConfig{})

	f.urls.EXPECT().CountExpired(gomock.Any(), gomock.Any(), testNow).Return(int64(4), nil)
	f.urls.EXPECT().CountExpiringSoon(gomock.Any(), gomock.Any(), testNow, service.ExpiringSoonWindow).Return(int64(2), nil)

	stats, err := f.svc.GetCleanupStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.ExpiredURLs)
	assert.EqualValues(t, 2, stats.ExpiringSoonURLs)
}
