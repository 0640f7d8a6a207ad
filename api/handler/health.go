package handler

import (
	"net/http"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "MTN CI Scraper API"
	Version     = "1.0.0"
)

// StatsProvider reports browser usage.
type StatsProvider interface {
	Stats() models.BrowserStats
}

// Health returns a handler for GET /health.
//
// Reports browser utilisation and degrades status when > 80% of the browser
// cap is in use.
func Health(sp StatsProvider, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := sp.Stats()

		status := "ok"
		if stats.MaxBrowsers > 0 && stats.ActiveBrowsers > int(float64(stats.MaxBrowsers)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Service:   ServiceName,
			Version:   Version,
			Timestamp: time.Now().UTC().Format(timestampLayout),
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Browsers:  stats,
		})
	}
}
