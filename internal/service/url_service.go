package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"shortly/internal/cache"
	"shortly/internal/database"
	"shortly/internal/entities"
	"shortly/internal/logger"
	"shortly/internal/repository"
	"shortly/internal/shortcode"
)

// Transactor opens transaction scopes. *database.Store implements it.
type Transactor interface {
	InTx(ctx context.Context, fn database.TxFunc) error
	Read(ctx context.Context, fn database.TxFunc) error
}

// URLService defines the interface for URL business logic
type URLService interface {
	CreateShortURL(ctx context.Context, in CreateURLInput) (*entities.ShortURL, error)
	GetURLByCode(ctx context.Context, code string) (*entities.ShortURL, error)
	GetURLForRedirect(ctx context.Context, code string) (*entities.RedirectTarget, error)
	ListURLs(ctx context.Context, skip, limit int, includeExpired bool) ([]*entities.ShortURL, error)
	ListRecentURLsKeyset(ctx context.Context, limit int, cursor *repository.CreatedAtCursor, includeExpired bool) ([]*entities.ShortURL, error)
	ListTopURLsKeyset(ctx context.Context, limit int, cursor *repository.ClickCountCursor, includeExpired bool) ([]*entities.ShortURL, error)
	UpdateURL(ctx context.Context, code string, in UpdateURLInput) (*entities.ShortURL, error)
	DeleteURL(ctx context.Context, code string) error
}

// CreateURLInput is a shortening request.
type CreateURLInput struct {
	OriginalURL    string
	CustomCode     *string
	ExpirationDays *int
}

// UpdateURLInput changes the target and/or expiry of a URL. ClearExpiry
// removes the expiry and wins over ExpiresAt.
type UpdateURLInput struct {
	OriginalURL *string
	ExpiresAt   *time.Time
	ClearExpiry bool
}

// URLConfig holds the shortening policy.
type URLConfig struct {
	CodeLength            int
	CustomCodeMaxLength   int
	DefaultExpirationDays *int
	CacheTTL              time.Duration
}

const maxURLLength = 2048

var allowedSchemes = map[string]bool{"http": true, "https": true, "ftp": true}

type urlService struct {
	store     Transactor
	repo      repository.URLRepository
	generator *shortcode.Generator
	cache     cache.RedirectCache
	cfg       URLConfig
	validate  *validator.Validate
	now       func() time.Time
	log       zerolog.Logger
}

// Option customises a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewURLService creates a new URL service. redirectCache may be nil.
func NewURLService(store Transactor, repo repository.URLRepository, generator *shortcode.Generator, redirectCache cache.RedirectCache, cfg URLConfig, opts ...Option) URLService {
	o := buildOptions(opts)
	return &urlService{
		store:     store,
		repo:      repo,
		generator: generator,
		cache:     redirectCache,
		cfg:       cfg,
		validate:  validator.New(),
		now:       o.now,
		log:       logger.With("url_service"),
	}
}

// CreateShortURL creates a new short URL
func (s *urlService) CreateShortURL(ctx context.Context, in CreateURLInput) (*entities.ShortURL, error) {
	originalURL, err := s.validateURL(in.OriginalURL)
	if err != nil {
		return nil, err
	}
	if in.ExpirationDays != nil && *in.ExpirationDays < 1 {
		return nil, validationError("expiration_days", "expiration_days must be at least 1")
	}

	// An empty custom code means none was requested
	var customCode string
	if in.CustomCode != nil {
		customCode = strings.TrimSpace(*in.CustomCode)
	}
	if customCode != "" {
		if err := shortcode.ValidateCustom(customCode, s.cfg.CustomCodeMaxLength); err != nil {
			return nil, validationError("custom_code", err.Error())
		}
	}

	expiresAt := s.expiry(in.ExpirationDays)

	var created *entities.ShortURL
	err = s.store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		if customCode != "" {
			exists, err := s.repo.ShortCodeExists(ctx, q, customCode)
			if err != nil {
				return err
			}
			if exists {
				return customCodeTaken(customCode, nil)
			}

			created, err = s.repo.CreateURL(ctx, q, repository.NewURL{
				OriginalURL: originalURL,
				ShortCode:   customCode,
				IsCustom:    true,
				ExpiresAt:   expiresAt,
			})
			if errors.Is(err, repository.ErrDuplicate) {
				// Lost a race with a concurrent create of the same code.
				return customCodeTaken(customCode, err)
			}
			return err
		}

		code, err := s.generator.Generate(ctx, s.cfg.CodeLength, func(ctx context.Context, code string) (bool, error) {
			if shortcode.IsReserved(code) {
				return true, nil
			}
			return s.repo.ShortCodeExists(ctx, q, code)
		})
		if errors.Is(err, shortcode.ErrGenerationExhausted) {
			return newError(KindGeneration, "could not allocate a short code, please retry or supply a custom code", err)
		}
		if err != nil {
			return err
		}

		created, err = s.repo.CreateURL(ctx, q, repository.NewURL{
			OriginalURL: originalURL,
			ShortCode:   code,
			ExpiresAt:   expiresAt,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			return newError(KindGeneration, "generated short code was taken concurrently, please retry", err)
		}
		return err
	})
	if err != nil {
		return nil, fromStore("create short URL", err)
	}

	s.log.Info().
		Str("short_code", created.ShortCode).
		Bool("is_custom", created.IsCustom).
		Msg("short URL created")
	return created, nil
}

func customCodeTaken(code string, err error) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("custom code '%s' is already in use", code),
		Fields:  map[string]string{"custom_code": "already in use"},
		Err:     err,
	}
}

// GetURLByCode returns a live URL.
func (s *urlService) GetURLByCode(ctx context.Context, code string) (*entities.ShortURL, error) {
	var found *entities.ShortURL
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		found, err = s.repo.GetByShortCode(ctx, q, code)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(code)
	}
	if err != nil {
		return nil, fromStore("get URL", err)
	}

	if found.IsExpired(s.now()) {
		return nil, expired(code)
	}
	return found, nil
}

// GetURLForRedirect resolves a code on the redirect hot path, from cache
// when possible.
func (s *urlService) GetURLForRedirect(ctx context.Context, code string) (*entities.RedirectTarget, error) {
	if target := s.cached(ctx, code); target != nil {
		if entities.ExpiredAt(target.ExpiresAt, s.now()) {
			return nil, expired(code)
		}
		return target, nil
	}

	var target *entities.RedirectTarget
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		target, err = s.repo.GetRedirectTarget(ctx, q, code)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(code)
	}
	if err != nil {
		return nil, fromStore("resolve redirect", err)
	}

	if entities.ExpiredAt(target.ExpiresAt, s.now()) {
		return nil, expired(code)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, code, target, s.cfg.CacheTTL); err != nil {
			s.log.Warn().Err(err).Str("short_code", code).Msg("failed to cache redirect target")
		}
	}
	return target, nil
}

func (s *urlService) cached(ctx context.Context, code string) *entities.RedirectTarget {
	if s.cache == nil {
		return nil
	}
	target, err := s.cache.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn().Err(err).Str("short_code", code).Msg("redirect cache unavailable")
		}
		return nil
	}
	return target
}

// ListURLs returns URLs newest first using offset pagination.
func (s *urlService) ListURLs(ctx context.Context, skip, limit int, includeExpired bool) ([]*entities.ShortURL, error) {
	var urls []*entities.ShortURL
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		urls, err = s.repo.ListURLs(ctx, q, repository.Page{Skip: skip, Limit: limit}, includeExpired, s.now())
		return err
	})
	if err != nil {
		return nil, fromStore("list URLs", err)
	}
	return urls, nil
}

// ListRecentURLsKeyset pages through URLs by creation time.
func (s *urlService) ListRecentURLsKeyset(ctx context.Context, limit int, cursor *repository.CreatedAtCursor, includeExpired bool) ([]*entities.ShortURL, error) {
	var urls []*entities.ShortURL
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		urls, err = s.repo.GetRecentURLsKeyset(ctx, q, limit, cursor, includeExpired, s.now())
		return err
	})
	if err != nil {
		return nil, fromStore("list recent URLs", err)
	}
	return urls, nil
}

// ListTopURLsKeyset pages through URLs by click count.
func (s *urlService) ListTopURLsKeyset(ctx context.Context, limit int, cursor *repository.ClickCountCursor, includeExpired bool) ([]*entities.ShortURL, error) {
	var urls []*entities.ShortURL
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		urls, err = s.repo.GetTopURLsKeyset(ctx, q, limit, cursor, includeExpired, s.now())
		return err
	})
	if err != nil {
		return nil, fromStore("list top URLs", err)
	}
	return urls, nil
}

// UpdateURL changes the target or expiry of an existing URL.
func (s *urlService) UpdateURL(ctx context.Context, code string, in UpdateURLInput) (*entities.ShortURL, error) {
	fields := repository.Fields{}
	if in.OriginalURL != nil {
		originalURL, err := s.validateURL(*in.OriginalURL)
		if err != nil {
			return nil, err
		}
		fields["original_url"] = originalURL
	}
	switch {
	case in.ClearExpiry:
		fields["expires_at"] = nil
	case in.ExpiresAt != nil:
		// Allow a 2-second buffer to account for network latency and processing time
		if in.ExpiresAt.Before(s.now().Add(-2 * time.Second)) {
			return nil, validationError("expires_at", "expiration time cannot be in the past")
		}
		fields["expires_at"] = in.ExpiresAt.UTC()
	}

	var updated *entities.ShortURL
	err := s.store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		current, err := s.repo.GetByShortCode(ctx, q, code)
		if err != nil {
			return err
		}
		updated, err = s.repo.Update(ctx, q, current.ID, fields)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(code)
	}
	if err != nil {
		return nil, fromStore("update URL", err)
	}

	s.invalidate(ctx, code)
	return updated, nil
}

// DeleteURL deletes a URL and, through the cascade, its clicks.
func (s *urlService) DeleteURL(ctx context.Context, code string) error {
	err := s.store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		current, err := s.repo.GetByShortCode(ctx, q, code)
		if err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, q, current.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return repository.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(code)
	}
	if err != nil {
		return fromStore("delete URL", err)
	}

	s.invalidate(ctx, code)
	s.log.Info().Str("short_code", code).Msg("short URL deleted")
	return nil
}

func (s *urlService) invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, code); err != nil {
		s.log.Warn().Err(err).Str("short_code", code).Msg("failed to invalidate redirect cache")
	}
}

func (s *urlService) expiry(days *int) *time.Time {
	if days == nil {
		days = s.cfg.DefaultExpirationDays
	}
	if days == nil {
		return nil
	}
	t := s.now().UTC().AddDate(0, 0, *days)
	return &t
}

// validateURL accepts absolute http, https and ftp URLs with a well formed host.
func (s *urlService) validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", validationError("original_url", "URL is required")
	}
	if len(raw) > maxURLLength {
		return "", validationError("original_url", fmt.Sprintf("URL must be at most %d characters", maxURLLength))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", validationError("original_url", "URL is not well formed")
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", validationError("original_url", "URL scheme must be http, https or ftp")
	}

	host := u.Hostname()
	if host == "" {
		return "", validationError("original_url", "URL must include a host")
	}
	if err := s.validate.Var(host, "hostname_rfc1123|ip"); err != nil {
		return "", validationError("original_url", "URL host is not valid")
	}
	return raw, nil
}
