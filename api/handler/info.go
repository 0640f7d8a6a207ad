package handler

import (
	"net/http"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/gin-gonic/gin"
)

// Info returns a handler for GET /, describing the API.
func Info() gin.HandlerFunc {
	resp := models.InfoResponse{
		Message: "API de scraping MTN Côte d'Ivoire",
		Version: Version,
		Endpoints: map[string]string{
			"scrape":  "POST /scrape-mtn",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
		Example: models.InfoExample{
			URL:    "/scrape-mtn",
			Method: http.MethodPost,
			Body: models.BalanceRequest{
				PhoneNumber:    "0707070707",
				Timeout:        30000,
				WaitAfterClick: 3000,
				Retries:        2,
			},
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error:   "endpoint not found",
		Path:    c.Request.URL.Path,
	})
}
