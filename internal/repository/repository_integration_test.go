package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortly/internal/database"
	"shortly/internal/entities"
	"shortly/internal/repository"
	"shortly/internal/testutil"
)

func newURL(t *testing.T, ctx context.Context, store *database.Store, repo repository.URLRepository, in repository.NewURL) *entities.ShortURL {
	t.Helper()
	var created *entities.ShortURL
	require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		created, err = repo.CreateURL(ctx, q, in)
		return err
	}))
	return created
}

func TestURLRepository_Integration(t *testing.T) {
	pg := testutil.SetupPostgres(t)
	store := pg.Store
	repo := repository.NewURLRepository()
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		pg.Truncate(t)

		created := newURL(t, ctx, store, repo, repository.NewURL{
			OriginalURL: "https://example.com/page",
			ShortCode:   "abc123",
		})
		assert.NotZero(t, created.ID)
		assert.Zero(t, created.ClickCount)
		assert.Nil(t, created.ExpiresAt)
		assert.False(t, created.IsCustom)

		err := store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			got, err := repo.GetByShortCode(ctx, q, "abc123")
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)

			target, err := repo.GetRedirectTarget(ctx, q, "abc123")
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/page", target.OriginalURL)

			_, err = repo.GetByShortCode(ctx, q, "missing")
			assert.ErrorIs(t, err, repository.ErrNotFound)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("duplicate short code is classified and leaves the table unchanged", func(t *testing.T) {
		pg.Truncate(t)

		newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://a.example", ShortCode: "taken", IsCustom: true})

		err := store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			_, err := repo.CreateURL(ctx, q, repository.NewURL{OriginalURL: "https://b.example", ShortCode: "taken", IsCustom: true})
			return err
		})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		var n int64
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			n, err = repo.Count(ctx, q, nil)
			return err
		}))
		assert.Equal(t, int64(1), n)
	})

	t.Run("active lookup treats expiry at now as expired", func(t *testing.T) {
		pg.Truncate(t)

		now := time.Now().UTC().Truncate(time.Microsecond)
		newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://x.example", ShortCode: "edge", ExpiresAt: &now})

		err := store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			_, err := repo.GetActiveByShortCode(ctx, q, "edge", now)
			assert.ErrorIs(t, err, repository.ErrNotFound)

			_, err = repo.GetActiveByShortCode(ctx, q, "edge", now.Add(-time.Second))
			assert.NoError(t, err)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		pg.Truncate(t)

		created := newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://hot.example", ShortCode: "hot"})

		const k = 50
		var wg sync.WaitGroup
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
					_, err := repo.IncrementClickCount(ctx, q, created.ID, 1)
					return err
				}))
			}()
		}
		wg.Wait()

		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			got, err := repo.GetByID(ctx, q, created.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(k), got.ClickCount)
			return nil
		}))
	})

	t.Run("top keyset pages concatenate to the full ordering", func(t *testing.T) {
		pg.Truncate(t)

		rows := make([]repository.Fields, 0, 23)
		for i := 0; i < 23; i++ {
			rows = append(rows, repository.Fields{
				"original_url": fmt.Sprintf("https://example.com/%d", i),
				"short_code":   fmt.Sprintf("code%02d", i),
				"is_custom":    false,
				"expires_at":   nil,
				"click_count":  int64(i % 4), // many ties
			})
		}
		require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			created, err := repo.BulkCreate(ctx, q, rows)
			if err == nil {
				assert.Len(t, created, 23)
			}
			return err
		}))

		now := time.Now()
		var full []*entities.ShortURL
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			full, err = repo.GetAll(ctx, q, repository.Page{Limit: 100}, nil,
				repository.Desc("click_count"), repository.Desc("id"))
			return err
		}))
		require.Len(t, full, 23)

		var paged []*entities.ShortURL
		var cursor *repository.ClickCountCursor
		for {
			var page []*entities.ShortURL
			require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
				var err error
				page, err = repo.GetTopURLsKeyset(ctx, q, 5, cursor, true, now)
				return err
			}))
			if len(page) == 0 {
				break
			}
			paged = append(paged, page...)
			last := page[len(page)-1]
			cursor = &repository.ClickCountCursor{ClickCount: last.ClickCount, ID: last.ID}

			// Rows that sort ahead of the cursor must not shift later pages.
			require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
				_, err := repo.Create(ctx, q, repository.Fields{
					"original_url": "https://late.example",
					"short_code":   fmt.Sprintf("late%d", len(paged)),
					"click_count":  int64(100),
				})
				return err
			}))
		}

		require.Len(t, paged, len(full))
		for i := range full {
			assert.Equal(t, full[i].ID, paged[i].ID, "row %d", i)
		}
	})

	t.Run("recent keyset is idempotent and honours expiry", func(t *testing.T) {
		pg.Truncate(t)

		past := time.Now().Add(-time.Hour)
		for i := 0; i < 6; i++ {
			in := repository.NewURL{OriginalURL: "https://r.example", ShortCode: fmt.Sprintf("r%d", i)}
			if i%2 == 0 {
				in.ExpiresAt = &past
			}
			newURL(t, ctx, store, repo, in)
		}

		now := time.Now()
		var first, second, active []*entities.ShortURL
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			if first, err = repo.GetRecentURLsKeyset(ctx, q, 4, nil, true, now); err != nil {
				return err
			}
			if second, err = repo.GetRecentURLsKeyset(ctx, q, 4, nil, true, now); err != nil {
				return err
			}
			active, err = repo.GetRecentURLsKeyset(ctx, q, 10, nil, false, now)
			return err
		}))

		assert.Equal(t, first, second)
		assert.Len(t, active, 3)
		for _, u := range active {
			assert.False(t, u.IsExpired(now))
		}
	})

	t.Run("bulk update and delete by filter", func(t *testing.T) {
		pg.Truncate(t)

		for i := 0; i < 4; i++ {
			newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://b.example", ShortCode: fmt.Sprintf("b%d", i), IsCustom: i < 2})
		}

		require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			n, err := repo.BulkUpdate(ctx, q, repository.Where(repository.Eq("is_custom", true)),
				repository.Fields{"original_url": "https://updated.example"})
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			exists, err := repo.Exists(ctx, q, repository.Where(repository.Eq("original_url", "https://updated.example")))
			require.NoError(t, err)
			assert.True(t, exists)

			n, err = repo.BulkDelete(ctx, q, repository.Where(repository.Eq("is_custom", false)))
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			_, err = repo.BulkDelete(ctx, q, nil)
			assert.ErrorIs(t, err, repository.ErrInvalidFilter)
			return nil
		}))
	})

	t.Run("expired cleanup in batches", func(t *testing.T) {
		pg.Truncate(t)

		now := time.Now()
		past := now.Add(-time.Minute)
		soon := now.Add(2 * time.Hour)
		for i := 0; i < 5; i++ {
			newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://e.example", ShortCode: fmt.Sprintf("e%d", i), ExpiresAt: &past})
		}
		newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://s.example", ShortCode: "soon", ExpiresAt: &soon})
		newURL(t, ctx, store, repo, repository.NewURL{OriginalURL: "https://f.example", ShortCode: "forever"})

		require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			expired, err := repo.CountExpired(ctx, q, now)
			require.NoError(t, err)
			assert.Equal(t, int64(5), expired)

			expiring, err := repo.CountExpiringSoon(ctx, q, now, 24*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, int64(1), expiring)

			n, err := repo.DeleteExpired(ctx, q, now, 3)
			require.NoError(t, err)
			assert.Equal(t, int64(3), n)

			n, err = repo.DeleteExpired(ctx, q, now, 3)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			total, err := repo.Count(ctx, q, nil)
			require.NoError(t, err)
			assert.Equal(t, int64(2), total)
			return nil
		}))
	})
}

func TestURLRepository_ResolvedCodesBlockDelete(t *testing.T) {
	pg := testutil.SetupPostgres(t)
	urls := repository.NewURLRepository()
	clicks := repository.NewClickRepository()
	ctx := context.Background()

	pg.Truncate(t)
	newURL(t, ctx, pg.Store, urls, repository.NewURL{OriginalURL: "https://l.example", ShortCode: "locked"})

	deleted := make(chan error, 1)
	require.NoError(t, pg.Store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		ids, err := urls.GetIDsByShortCodes(ctx, q, []string{"locked"})
		require.NoError(t, err)
		id := ids["locked"]
		require.NotZero(t, id)

		go func() {
			_, err := pg.DB.ExecContext(ctx, "DELETE FROM short_urls WHERE short_code = 'locked'")
			deleted <- err
		}()

		// The delete waits for this transaction
		select {
		case err := <-deleted:
			t.Fatalf("delete finished while the batch held the row: %v", err)
		case <-time.After(300 * time.Millisecond):
		}

		got, err := urls.IncrementClickCount(ctx, q, id, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ClickCount)

		_, err = clicks.CreateBatch(ctx, q, []repository.NewClick{{URLID: id, ClickedAt: time.Now()}})
		require.NoError(t, err)
		return nil
	}))

	select {
	case err := <-deleted:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("delete did not resume after commit")
	}

	var remaining int
	require.NoError(t, pg.DB.QueryRow("SELECT COUNT(*) FROM click_events").Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestClickRepository_Integration(t *testing.T) {
	pg := testutil.SetupPostgres(t)
	store := pg.Store
	urls := repository.NewURLRepository()
	clicks := repository.NewClickRepository()
	ctx := context.Background()

	pg.Truncate(t)
	target := newURL(t, ctx, store, urls, repository.NewURL{OriginalURL: "https://c.example", ShortCode: "clicky"})
	other := newURL(t, ctx, store, urls, repository.NewURL{OriginalURL: "https://o.example", ShortCode: "other"})

	now := time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)
	ip := "203.0.113.9"
	agent := "test-agent"

	var batch []repository.NewClick
	// Three clicks today at 15h, two 3 days ago at 09h, one 40 days ago, one on another URL.
	for i := 0; i < 3; i++ {
		batch = append(batch, repository.NewClick{URLID: target.ID, ClickedAt: now.Add(-time.Duration(i) * time.Minute), IPAddress: &ip, UserAgent: &agent})
	}
	for i := 0; i < 2; i++ {
		batch = append(batch, repository.NewClick{URLID: target.ID, ClickedAt: now.AddDate(0, 0, -3).Add(-6*time.Hour - time.Duration(i)*time.Minute)})
	}
	batch = append(batch,
		repository.NewClick{URLID: target.ID, ClickedAt: now.AddDate(0, 0, -40)},
		repository.NewClick{URLID: other.ID, ClickedAt: now.Add(-time.Hour)},
	)

	require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		created, err := clicks.CreateBatch(ctx, q, batch)
		if err == nil {
			assert.Len(t, created, len(batch))
		}
		return err
	}))

	t.Run("time based metrics in one query", func(t *testing.T) {
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			m, err := clicks.GetTimeBasedMetrics(ctx, q, &target.ID, []int{1, 7, 30, 365}, now)
			require.NoError(t, err)
			assert.Equal(t, int64(6), m.Total)
			assert.Equal(t, map[int]int64{1: 3, 7: 5, 30: 5, 365: 6}, m.Windows)

			global, err := clicks.GetTimeBasedMetrics(ctx, q, nil, []int{1}, now)
			require.NoError(t, err)
			assert.Equal(t, int64(7), global.Total)
			assert.Equal(t, int64(4), global.Windows[1])
			return nil
		}))
	})

	t.Run("hourly distribution", func(t *testing.T) {
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			hours, err := clicks.GetHourlyDistribution(ctx, q, &target.ID, 7, now)
			require.NoError(t, err)
			assert.Equal(t, map[int]int64{15: 3, 9: 2}, hours)
			return nil
		}))
	})

	t.Run("daily timeline", func(t *testing.T) {
		require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
			timeline, err := clicks.GetClicksByTimeframe(ctx, q, &target.ID, repository.TimeframeDaily, 30, now)
			require.NoError(t, err)
			require.Len(t, timeline, 2)
			assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), timeline[0].Period)
			assert.Equal(t, int64(2), timeline[0].Clicks)
			assert.Equal(t, int64(3), timeline[1].Clicks)
			return nil
		}))
	})

	t.Run("click keyset walks every click once", func(t *testing.T) {
		var seen []int64
		var cursor *repository.ClickCursor
		for {
			var page []*entities.ClickEvent
			require.NoError(t, store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
				var err error
				page, err = clicks.GetClicksForURLKeyset(ctx, q, target.ID, 2, cursor)
				return err
			}))
			if len(page) == 0 {
				break
			}
			for _, c := range page {
				seen = append(seen, c.ID)
			}
			last := page[len(page)-1]
			cursor = &repository.ClickCursor{ClickedAt: last.ClickedAt, ID: last.ID}
		}
		assert.Len(t, seen, 6)
		assert.ElementsMatch(t, seen, uniq(seen))
	})

	t.Run("prune older than cutoff", func(t *testing.T) {
		require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			n, err := clicks.DeleteOlderThan(ctx, q, now.AddDate(0, 0, -30), 100)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			return nil
		}))
	})

	t.Run("deleting a url cascades to its clicks", func(t *testing.T) {
		require.NoError(t, store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			deleted, err := urls.Delete(ctx, q, other.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			exists, err := clicks.Exists(ctx, q, repository.Where(repository.Eq("url_id", other.ID)))
			require.NoError(t, err)
			assert.False(t, exists)
			return nil
		}))
	})
}

func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
