package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/gin-gonic/gin"
)

// timestampLayout is RFC 3339 with milliseconds, as JavaScript's toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Checker runs balance lookups.
type Checker interface {
	Run(ctx context.Context, phone string, cfg models.SessionConfig) *models.AttemptResult
	Stats() models.BrowserStats
}

// ScrapeBalance returns a handler for POST /scrape-mtn.
//
// The request's timeout, waitAfterClick and retries override the matching
// fields of base for this lookup only. A found balance answers 200; any
// other outcome answers 500 with diagnostics under "debug".
func ScrapeBalance(ck Checker, base models.SessionConfig, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.BalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		phone := req.PhoneNumber.Normalize()
		if phone == "" {
			badRequest(c, `the "phone_number" parameter is required`)
			return
		}
		if !models.ValidPhoneNumber(phone) {
			badRequest(c, "invalid phone number format: use 8 to 15 digits")
			return
		}

		log.Info("balance lookup started", "phone_number", phone)
		res := ck.Run(c.Request.Context(), phone, base.WithOptions(req.Options()))
		elapsed := time.Since(start).Milliseconds()
		timestamp := res.Timestamp.Format(timestampLayout)

		if res.Success && res.SoldeData != nil {
			c.JSON(http.StatusOK, models.BalanceResponse{
				Success:          true,
				PhoneNumber:      phone,
				SoldeData:        *res.SoldeData,
				RawValue:         res.RawValue,
				Unit:             res.Unit,
				ExtractionMethod: res.Method,
				Timestamp:        timestamp,
				ExecutionTimeMs:  elapsed,
				Screenshot:       res.Screenshot,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, models.FailureResponse{
			Success: false,
			Error:   res.Error,
			Code:    res.ErrorCode,
			Debug: &models.DebugInfo{
				PageContentPreview: res.PagePreview,
				Screenshot:         res.Screenshot,
				Trace:              res.Trace,
				LayoutFingerprint:  res.LayoutFingerprint,
			},
			PhoneNumber: phone,
			Timestamp:   timestamp,
			Attempts:    res.Attempts,
			ExecutionMs: elapsed,
		})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error:   msg,
		Code:    models.ErrCodeInvalidInput,
	})
}
