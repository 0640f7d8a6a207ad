package scraper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Medy04/MTN-data-scrapping/models"
)

// portalWaits are tried in order; the looser DOM-ready wait is the fallback
// for portals that keep long-polling connections open.
var portalWaits = []WaitCondition{WaitNetworkIdle, WaitDOMReady}

// openPortal navigates page to the portal. Each wait condition gets its own
// NavigationTimeout. Both failing is a NAVIGATION_FAILED fault.
func openPortal(ctx context.Context, page Page, cfg models.SessionConfig, log *slog.Logger) error {
	var errs []error
	for _, cond := range portalWaits {
		navCtx, cancel := context.WithTimeout(ctx, cfg.NavigationTimeout)
		err := page.Navigate(navCtx, cfg.PortalURL, cond)
		cancel()
		if err == nil {
			log.Info("portal loaded", "url", cfg.PortalURL, "wait", cond.String())
			return nil
		}
		errs = append(errs, err)
		log.Warn("portal navigation failed", "url", cfg.PortalURL, "wait", cond.String(), "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return models.NewPipelineError(
		models.ErrCodeNavigation,
		StateAcquiring.String(),
		"portal could not be reached",
		errors.Join(errs...),
	)
}

// release terminates a session and logs instead of failing: a release
// error must not mask the attempt's own outcome.
func release(sess Session, log *slog.Logger) {
	if err := sess.Release(); err != nil {
		log.Warn("browser release failed", "error", err)
		return
	}
	log.Debug("browser released")
}
