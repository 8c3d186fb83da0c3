package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shortly/internal/logger"
	"shortly/internal/middleware"
	"shortly/internal/models"
	"shortly/internal/service"
)

// ClickQueue accepts clicks for background recording.
type ClickQueue interface {
	Enqueue(click service.ClickInput) bool
}

type RedirectController struct {
	urlService service.URLService
	clicks     ClickQueue
}

func NewRedirectController(urlService service.URLService, clicks ClickQueue) *RedirectController {
	return &RedirectController{
		urlService: urlService,
		clicks:     clicks,
	}
}

// Redirect handles GET /:short_code. The click is queued after the target
// is resolved and never delays the response.
func (rc *RedirectController) Redirect(c *gin.Context) {
	var uri codeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Short URL not found", ErrorCode: string(service.KindNotFound)})
		return
	}

	target, err := rc.urlService.GetURLForRedirect(c.Request.Context(), uri.ShortCode)
	if err != nil {
		switch service.KindOf(err) {
		case service.KindNotFound:
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Short URL not found", ErrorCode: string(service.KindNotFound)})
		case service.KindExpired:
			c.JSON(http.StatusGone, models.ErrorResponse{Error: "Short URL has expired", ErrorCode: string(service.KindExpired)})
		default:
			logger.Error().Err(err).Str("short_code", uri.ShortCode).Msg("redirect lookup failed")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternal, ErrorCode: codeInternal})
		}
		return
	}

	ip := middleware.GetIP(c)
	click := service.ClickInput{
		ShortCode: uri.ShortCode,
		IPAddress: &ip,
		ClickedAt: time.Now().UTC(),
	}
	if ua := c.Request.UserAgent(); ua != "" {
		click.UserAgent = &ua
	}
	rc.clicks.Enqueue(click)

	c.Redirect(http.StatusTemporaryRedirect, target.OriginalURL)
}
