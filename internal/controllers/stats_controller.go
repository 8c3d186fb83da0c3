package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shortly/internal/models"
	"shortly/internal/repository"
	"shortly/internal/service"
)

type StatsController struct {
	stats service.StatsService
}

func NewStatsController(stats service.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// GetURLStats handles GET /urls/:short_code/stats
func (sc *StatsController) GetURLStats(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	var q models.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	stats, err := sc.stats.GetURLStats(c.Request.Context(), code, repository.Timeframe(q.Timeframe), q.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewURLStatsResponse(stats))
}

// GetClicks handles GET /urls/:short_code/clicks
func (sc *StatsController) GetClicks(c *gin.Context) {
	code, ok := bindCode(c)
	if !ok {
		return
	}

	var q models.ClicksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	var cursor *repository.ClickCursor
	if q.LastClickedAt != nil && q.LastID != nil {
		cursor = &repository.ClickCursor{ClickedAt: *q.LastClickedAt, ID: *q.LastID}
	}

	clicks, err := sc.stats.GetClicks(c.Request.Context(), code, q.Limit, cursor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.ClickListResponse{Clicks: make([]models.ClickData, 0, len(clicks))}
	for _, click := range clicks {
		resp.Clicks = append(resp.Clicks, models.NewClickData(click))
	}
	if len(clicks) == q.Limit {
		last := clicks[len(clicks)-1]
		resp.NextCursor = map[string]any{
			"last_clicked_at": last.ClickedAt.UTC().Format(time.RFC3339Nano),
			"last_id":         last.ID,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetGlobalStats handles GET /stats
func (sc *StatsController) GetGlobalStats(c *gin.Context) {
	var q models.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	stats, err := sc.stats.GetGlobalStats(c.Request.Context(), repository.Timeframe(q.Timeframe), q.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewGlobalStatsResponse(stats))
}
