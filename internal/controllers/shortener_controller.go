package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shortly/internal/models"
	"shortly/internal/repository"
	"shortly/internal/service"
)

type ShortenerController struct {
	urlService service.URLService
	baseURL    string
}

func NewShortenerController(urlService service.URLService, baseURL string) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// CreateShortURL handles POST /shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	url, err := sc.urlService.CreateShortURL(c.Request.Context(), service.CreateURLInput{
		OriginalURL:    req.OriginalURL,
		CustomCode:     req.CustomCode,
		ExpirationDays: req.ExpirationDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewURLResponse(url, sc.baseURL))
}

// GetURL handles GET /urls/:short_code
func (sc *ShortenerController) GetURL(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	url, err := sc.urlService.GetURLByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewURLResponse(url, sc.baseURL))
}

// UpdateURL handles PATCH /urls/:short_code
func (sc *ShortenerController) UpdateURL(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	var req models.UpdateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	url, err := sc.urlService.UpdateURL(c.Request.Context(), code, service.UpdateURLInput{
		OriginalURL: req.OriginalURL,
		ExpiresAt:   req.ExpiresAt,
		ClearExpiry: req.ClearExpiry,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewURLResponse(url, sc.baseURL))
}

// DeleteURL handles DELETE /urls/:short_code
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	if err := sc.urlService.DeleteURL(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListURLs handles GET /urls with offset pagination
func (sc *ShortenerController) ListURLs(c *gin.Context) {
	var q models.ListURLsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	urls, err := sc.urlService.ListURLs(c.Request.Context(), q.Skip, q.Limit, q.IncludeExpired)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewURLListResponse(urls, sc.baseURL))
}

// ListRecentURLs handles GET /urls/paginated, newest first
func (sc *ShortenerController) ListRecentURLs(c *gin.Context) {
	var q models.RecentURLsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	var cursor *repository.CreatedAtCursor
	if q.LastCreatedAt != nil && q.LastID != nil {
		cursor = &repository.CreatedAtCursor{CreatedAt: *q.LastCreatedAt, ID: *q.LastID}
	}

	urls, err := sc.urlService.ListRecentURLsKeyset(c.Request.Context(), q.Limit, cursor, q.IncludeExpired)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.NewURLListResponse(urls, sc.baseURL)
	if len(urls) == q.Limit {
		last := urls[len(urls)-1]
		resp.NextCursor = map[string]any{
			"last_created_at": last.CreatedAt.UTC().Format(time.RFC3339Nano),
			"last_id":         last.ID,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListTopURLs handles GET /urls/top/paginated, most clicked first
func (sc *ShortenerController) ListTopURLs(c *gin.Context) {
	var q models.TopURLsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	var cursor *repository.ClickCountCursor
	if q.LastClickCount != nil && q.LastID != nil {
		cursor = &repository.ClickCountCursor{ClickCount: *q.LastClickCount, ID: *q.LastID}
	}

	urls, err := sc.urlService.ListTopURLsKeyset(c.Request.Context(), q.Limit, cursor, q.IncludeExpired)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.NewURLListResponse(urls, sc.baseURL)
	if len(urls) == q.Limit {
		last := urls[len(urls)-1]
		resp.NextCursor = map[string]any{
			"last_click_count": last.ClickCount,
			"last_id":          last.ID,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// bindCode reads the short code path parameter. Malformed codes cannot
// exist and are answered with 404.
func bindCode(c *gin.Context) (string, bool) {
	var uri codeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     fmt.Sprintf("URL with code '%s' not found", c.Param("short_code")),
			ErrorCode: string(service.KindNotFound),
		})
		return "", false
	}
	return uri.ShortCode, true
}
