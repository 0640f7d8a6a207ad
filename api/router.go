package api

import (
	"log/slog"
	"time"

	"github.com/Medy04/MTN-data-scrapping/api/handler"
	"github.com/Medy04/MTN-data-scrapping/api/middleware"
	"github.com/Medy04/MTN-data-scrapping/config"
	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//
// base is the per-lookup configuration that request options are applied to.
func NewRouter(ck handler.Checker, base models.SessionConfig, cfg *config.Config, gatherer prometheus.Gatherer, startTime time.Time, log *slog.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS())

	r.GET("/", handler.Info())
	r.GET("/health", handler.Health(ck, startTime))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.POST("/scrape-mtn", handler.ScrapeBalance(ck, base, log))

	r.NoRoute(handler.NotFound)

	return r
}
