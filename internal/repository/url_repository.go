package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"shortly/internal/database"
	"shortly/internal/entities"
)

// URLRepository defines the database operations on short URLs.
type URLRepository interface {
	GetByID(ctx context.Context, q database.DBTX, id int64) (*entities.ShortURL, error)
	GetAll(ctx context.Context, q database.DBTX, page Page, filter Filter, orders ...Order) ([]*entities.ShortURL, error)
	Create(ctx context.Context, q database.DBTX, fields Fields) (*entities.ShortURL, error)
	Update(ctx context.Context, q database.DBTX, id int64, fields Fields) (*entities.ShortURL, error)
	Delete(ctx context.Context, q database.DBTX, id int64) (bool, error)
	BulkCreate(ctx context.Context, q database.DBTX, rows []Fields) ([]*entities.ShortURL, error)
	BulkUpdate(ctx context.Context, q database.DBTX, filter Filter, fields Fields) (int64, error)
	BulkDelete(ctx context.Context, q database.DBTX, filter Filter) (int64, error)
	Exists(ctx context.Context, q database.DBTX, filter Filter) (bool, error)
	Count(ctx context.Context, q database.DBTX, filter Filter) (int64, error)

	CreateURL(ctx context.Context, q database.DBTX, in NewURL) (*entities.ShortURL, error)
	GetByShortCode(ctx context.Context, q database.DBTX, code string) (*entities.ShortURL, error)
	GetActiveByShortCode(ctx context.Context, q database.DBTX, code string, now time.Time) (*entities.ShortURL, error)
	GetRedirectTarget(ctx context.Context, q database.DBTX, code string) (*entities.RedirectTarget, error)
	GetIDsByShortCodes(ctx context.Context, q database.DBTX, codes []string) (map[string]int64, error)
	IncrementClickCount(ctx context.Context, q database.DBTX, id int64, by int64) (*entities.ShortURL, error)
	ShortCodeExists(ctx context.Context, q database.DBTX, code string) (bool, error)
	GetTopURLsKeyset(ctx context.Context, q database.DBTX, limit int, cursor *ClickCountCursor, includeExpired bool, now time.Time) ([]*entities.ShortURL, error)
	GetRecentURLsKeyset(ctx context.Context, q database.DBTX, limit int, cursor *CreatedAtCursor, includeExpired bool, now time.Time) ([]*entities.ShortURL, error)
	ListURLs(ctx context.Context, q database.DBTX, page Page, includeExpired bool, now time.Time) ([]*entities.ShortURL, error)
	DeleteExpired(ctx context.Context, q database.DBTX, now time.Time, batchSize int) (int64, error)
	CountExpired(ctx context.Context, q database.DBTX, now time.Time) (int64, error)
	CountExpiringSoon(ctx context.Context, q database.DBTX, now time.Time, window time.Duration) (int64, error)
}

// NewURL is the input for CreateURL.
type NewURL struct {
	OriginalURL string
	ShortCode   string
	IsCustom    bool
	ExpiresAt   *time.Time
}

func (n NewURL) fields() Fields {
	var expiresAt any
	if n.ExpiresAt != nil {
		expiresAt = n.ExpiresAt.UTC()
	}
	return Fields{
		"original_url": n.OriginalURL,
		"short_code":   n.ShortCode,
		"is_custom":    n.IsCustom,
		"expires_at":   expiresAt,
	}
}

// ClickCountCursor is the last row of a page ordered by click_count.
type ClickCountCursor struct {
	ClickCount int64
	ID         int64
}

// CreatedAtCursor is the last row of a page ordered by created_at.
type CreatedAtCursor struct {
	CreatedAt time.Time
	ID        int64
}

const activeCondition = "(expires_at IS NULL OR expires_at > $%d)"

var urlSchema = Schema[*entities.ShortURL]{
	Table:    "short_urls",
	Columns:  []string{"id", "original_url", "short_code", "is_custom", "created_at", "expires_at", "click_count"},
	Writable: []string{"original_url", "short_code", "is_custom", "expires_at", "click_count"},
	Scan:     scanURL,
}

func scanURL(row RowScanner) (*entities.ShortURL, error) {
	var url entities.ShortURL
	err := row.Scan(
		&url.ID,
		&url.OriginalURL,
		&url.ShortCode,
		&url.IsCustom,
		&url.CreatedAt,
		&url.ExpiresAt,
		&url.ClickCount,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

type urlRepository struct {
	*Base[*entities.ShortURL]
}

// NewURLRepository creates a new URL repository
func NewURLRepository() URLRepository {
	return &urlRepository{Base: NewBase(urlSchema)}
}

// CreateURL inserts a new short URL. A taken short code surfaces as ErrDuplicate.
func (r *urlRepository) CreateURL(ctx context.Context, q database.DBTX, in NewURL) (*entities.ShortURL, error) {
	return r.Create(ctx, q, in.fields())
}

// GetByShortCode finds a URL by its short code, expired or not.
func (r *urlRepository) GetByShortCode(ctx context.Context, q database.DBTX, code string) (*entities.ShortURL, error) {
	query := fmt.Sprintf(`SELECT %s FROM short_urls WHERE short_code = $1`, r.SelectList())
	url, err := scanURL(q.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, classify("get url by code", err)
	}
	return url, nil
}

// GetActiveByShortCode finds a URL by its short code only if it has not expired.
func (r *urlRepository) GetActiveByShortCode(ctx context.Context, q database.DBTX, code string, now time.Time) (*entities.ShortURL, error) {
	query := fmt.Sprintf(`SELECT %s FROM short_urls WHERE short_code = $1 AND `+activeCondition, r.SelectList(), 2)
	url, err := scanURL(q.QueryRowContext(ctx, query, code, now.UTC()))
	if err != nil {
		return nil, classify("get active url by code", err)
	}
	return url, nil
}

// GetRedirectTarget loads only the columns the redirect path needs.
func (r *urlRepository) GetRedirectTarget(ctx context.Context, q database.DBTX, code string) (*entities.RedirectTarget, error) {
	var target entities.RedirectTarget
	err := q.QueryRowContext(ctx,
		`SELECT id, original_url, expires_at FROM short_urls WHERE short_code = $1`, code,
	).Scan(&target.ID, &target.OriginalURL, &target.ExpiresAt)
	if err != nil {
		return nil, classify("get redirect target", err)
	}
	return &target, nil
}

// GetIDsByShortCodes resolves many codes in one query. Unknown codes are
// absent from the result. The rows stay key-share locked until the
// transaction ends, so they cannot be deleted under a pending click batch.
func (r *urlRepository) GetIDsByShortCodes(ctx context.Context, q database.DBTX, codes []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return ids, nil
	}

	rows, err := q.QueryContext(ctx,
		`SELECT short_code, id FROM short_urls WHERE short_code = ANY($1) ORDER BY id FOR KEY SHARE`, pq.Array(codes))
	if err != nil {
		return nil, classify("resolve short codes", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, classify("resolve short codes", err)
		}
		ids[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, classify("resolve short codes", err)
	}
	return ids, nil
}

// IncrementClickCount adds by to click_count in a single UPDATE and returns
// the updated row, so concurrent redirects never lose an increment.
func (r *urlRepository) IncrementClickCount(ctx context.Context, q database.DBTX, id int64, by int64) (*entities.ShortURL, error) {
	if by < 1 {
		return nil, fmt.Errorf("%w: click increment must be positive, got %d", ErrInvalidFilter, by)
	}
	query := fmt.Sprintf(
		`UPDATE short_urls SET click_count = click_count + $1 WHERE id = $2 RETURNING %s`, r.SelectList())
	url, err := scanURL(q.QueryRowContext(ctx, query, by, id))
	if err != nil {
		return nil, classify("increment click count", err)
	}
	return url, nil
}

// ShortCodeExists reports whether code is taken, including by expired URLs.
func (r *urlRepository) ShortCodeExists(ctx context.Context, q database.DBTX, code string) (bool, error) {
	return r.Exists(ctx, q, Where(Eq("short_code", code)))
}

// GetTopURLsKeyset pages through URLs by click_count descending. Pass the
// last row of the previous page as cursor, or nil for the first page.
func (r *urlRepository) GetTopURLsKeyset(ctx context.Context, q database.DBTX, limit int, cursor *ClickCountCursor, includeExpired bool, now time.Time) ([]*entities.ShortURL, error) {
	var (
		conds []string
		args  []any
	)
	if cursor != nil {
		args = append(args, cursor.ClickCount, cursor.ID)
		conds = append(conds, "(click_count < $1 OR (click_count = $1 AND id < $2))")
	}
	if !includeExpired {
		args = append(args, now.UTC())
		conds = append(conds, fmt.Sprintf(activeCondition, len(args)))
	}

	args = append(args, Page{Limit: limit}.normalized().Limit)
	query := fmt.Sprintf(`SELECT %s FROM short_urls%s ORDER BY click_count DESC, id DESC LIMIT $%d`,
		r.SelectList(), whereAll(conds), len(args))

	return r.Query(ctx, q, "top urls keyset", query, args...)
}

// GetRecentURLsKeyset pages through URLs by created_at descending.
func (r *urlRepository) GetRecentURLsKeyset(ctx context.Context, q database.DBTX, limit int, cursor *CreatedAtCursor, includeExpired bool, now time.Time) ([]*entities.ShortURL, error) {
	var (
		conds []string
		args  []any
	)
	if cursor != nil {
		args = append(args, cursor.CreatedAt.UTC(), cursor.ID)
		conds = append(conds, "(created_at < $1 OR (created_at = $1 AND id < $2))")
	}
	if !includeExpired {
		args = append(args, now.UTC())
		conds = append(conds, fmt.Sprintf(activeCondition, len(args)))
	}

	args = append(args, Page{Limit: limit}.normalized().Limit)
	query := fmt.Sprintf(`SELECT %s FROM short_urls%s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		r.SelectList(), whereAll(conds), len(args))

	return r.Query(ctx, q, "recent urls keyset", query, args...)
}

// ListURLs is the offset variant, newest first.
func (r *urlRepository) ListURLs(ctx context.Context, q database.DBTX, page Page, includeExpired bool, now time.Time) ([]*entities.ShortURL, error) {
	page = page.normalized()

	var (
		conds []string
		args  []any
	)
	if !includeExpired {
		args = append(args, now.UTC())
		conds = append(conds, fmt.Sprintf(activeCondition, len(args)))
	}
	args = append(args, page.Limit, page.Skip)
	query := fmt.Sprintf(`SELECT %s FROM short_urls%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		r.SelectList(), whereAll(conds), len(args)-1, len(args))

	return r.Query(ctx, q, "list urls", query, args...)
}

// DeleteExpired removes at most batchSize expired URLs, oldest id first.
// Their clicks go with them through the foreign key cascade.
func (r *urlRepository) DeleteExpired(ctx context.Context, q database.DBTX, now time.Time, batchSize int) (int64, error) {
	return r.exec(ctx, q, "delete expired urls", `
		DELETE FROM short_urls
		WHERE id IN (
			SELECT id FROM short_urls
			WHERE expires_at IS NOT NULL AND expires_at <= $1
			ORDER BY id
			LIMIT $2
		)`, now.UTC(), batchSize)
}

// CountExpired counts URLs whose expiry has passed.
func (r *urlRepository) CountExpired(ctx context.Context, q database.DBTX, now time.Time) (int64, error) {
	return r.Count(ctx, q, Where(NotNull("expires_at"), Le("expires_at", now.UTC())))
}

// CountExpiringSoon counts live URLs that expire within window.
func (r *urlRepository) CountExpiringSoon(ctx context.Context, q database.DBTX, now time.Time, window time.Duration) (int64, error) {
	return r.Count(ctx, q, Where(
		NotNull("expires_at"),
		Gt("expires_at", now.UTC()),
		Le("expires_at", now.Add(window).UTC()),
	))
}

func whereAll(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	out := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		out += " AND " + c
	}
	return out
}
