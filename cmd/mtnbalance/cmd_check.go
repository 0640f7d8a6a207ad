package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	checkTimeout        time.Duration
	checkWaitAfterClick time.Duration
	checkRetries        int
	checkScreenshot     string
)

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "portal navigation timeout (default from MTN_NAV_TIMEOUT)")
	checkCmd.Flags().DurationVar(&checkWaitAfterClick, "wait-after-click", 0, "wait when submit triggers no navigation (default from MTN_WAIT_AFTER_CLICK)")
	checkCmd.Flags().IntVar(&checkRetries, "retries", 0, "total attempts (default from MTN_RETRIES)")
	checkCmd.Flags().StringVar(&checkScreenshot, "screenshot", "", "write the result page PNG to this path")
}

var checkCmd = &cobra.Command{
	Use:   "check <phone_number>",
	Short: "Look up one balance and print the result as JSON",
	Long: `Runs a single lookup without starting the HTTP API. The JSON printed on
stdout has the same shape as the POST /scrape-mtn response body. Logs go to
stderr. The exit status is non-zero when no balance was read.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	phone := models.PhoneNumber(args[0]).Normalize()
	if !models.ValidPhoneNumber(phone) {
		return fmt.Errorf("invalid phone number %q: use 8 to 15 digits", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := initLogger(cfg.Log, os.Stderr)

	orch := newOrchestrator(cfg, prometheus.NewRegistry(), log)
	sessionCfg := cfg.SessionConfig(scraper.InputCandidates, scraper.ButtonCandidates).WithOptions(models.RunOptions{
		Timeout:        checkTimeout,
		WaitAfterClick: checkWaitAfterClick,
		Retries:        checkRetries,
	})

	start := time.Now()
	res := orch.Run(cmd.Context(), phone, sessionCfg)
	elapsed := time.Since(start)

	if checkScreenshot != "" && len(res.Screenshot) > 0 {
		if err := os.WriteFile(checkScreenshot, res.Screenshot, 0o644); err != nil {
			log.Warn("failed to write screenshot", "path", checkScreenshot, "error", err)
		}
	}

	if err := writeResult(cmd.OutOrStdout(), phone, res, elapsed); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%s: %s", res.ErrorCode, res.Error)
	}
	return nil
}

// writeResult prints res without the screenshot, which --screenshot saves.
func writeResult(w io.Writer, phone string, res *models.AttemptResult, elapsed time.Duration) error {
	timestamp := res.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")
	var out any
	if res.Success && res.SoldeData != nil {
		out = models.BalanceResponse{
			Success:          true,
			PhoneNumber:      phone,
			SoldeData:        *res.SoldeData,
			RawValue:         res.RawValue,
			Unit:             res.Unit,
			ExtractionMethod: res.Method,
			Timestamp:        timestamp,
			ExecutionTimeMs:  elapsed.Milliseconds(),
		}
	} else {
		out = models.FailureResponse{
			Success: false,
			Error:   res.Error,
			Code:    res.ErrorCode,
			Debug: &models.DebugInfo{
				PageContentPreview: res.PagePreview,
				Trace:              res.Trace,
				LayoutFingerprint:  res.LayoutFingerprint,
			},
			PhoneNumber: phone,
			Timestamp:   timestamp,
			Attempts:    res.Attempts,
			ExecutionMs: elapsed.Milliseconds(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
