package scraper

import (
	"context"
	"log/slog"

	"github.com/Medy04/MTN-data-scrapping/models"
)

// Submission paths reported in logs and traces.
const (
	ViaForm = "form"
	ViaNone = "none"
)

// Submission is a submitted form whose result page has not been waited for.
type Submission struct {
	// Via is "button:<selector>", ViaForm or ViaNone.
	Via string

	awaitNavigation func() bool
	cancel          context.CancelFunc
}

// Submitter triggers the lookup and waits for the result page. It never
// fails: every path ends in a settled page that extraction can inspect.
type Submitter struct {
	clock Clock
	log   *slog.Logger
}

func NewSubmitter(clock Clock, log *slog.Logger) *Submitter {
	return &Submitter{clock: clock, log: log}
}

// Submit arms a navigation waiter, then clicks the first visible button
// candidate. When no button can be clicked it submits the form owning the
// phone field directly.
func (s *Submitter) Submit(ctx context.Context, page Page, inputSelector string, cfg models.SessionConfig) *Submission {
	navCtx, cancel := context.WithTimeout(ctx, cfg.SubmitNavigationTimeout)
	sub := &Submission{
		Via:             ViaNone,
		awaitNavigation: page.ExpectNavigation(navCtx),
		cancel:          cancel,
	}

	_, selector, clicked := firstMatch(cfg.ButtonSelectors, func(sel string) (struct{}, bool) {
		return struct{}{}, s.tryClick(ctx, page, sel)
	})
	if clicked {
		sub.Via = "button:" + selector
		s.log.Info("form submitted", "via", sub.Via)
		return sub
	}

	ok, err := page.SubmitForm(ctx, inputSelector)
	switch {
	case err != nil:
		s.log.Warn("form submit failed", "selector", inputSelector, "error", err)
	case ok:
		sub.Via = ViaForm
		s.log.Info("form submitted", "via", sub.Via)
	default:
		s.log.Warn("no submit button and no enclosing form", "selector", inputSelector)
	}
	return sub
}

func (s *Submitter) tryClick(ctx context.Context, page Page, sel string) bool {
	el, found, err := page.Query(ctx, sel)
	if err != nil || !found {
		return false
	}
	visible, err := el.Visible(ctx)
	if err != nil || !visible {
		return false
	}
	if err := el.Click(ctx); err != nil {
		s.log.Debug("submit button click failed", "selector", sel, "error", err)
		return false
	}
	return true
}

// Settle waits for the navigation armed by Submit. If none completes within
// SubmitNavigationTimeout it waits WaitAfterClick instead; either way it then
// waits SettleDelay for late rendering. It reports whether a navigation was
// observed.
func (s *Submitter) Settle(ctx context.Context, sub *Submission, cfg models.SessionConfig) bool {
	defer sub.cancel()

	navigated := sub.awaitNavigation()
	if navigated {
		s.log.Info("result page loaded", "via", sub.Via)
	} else {
		s.log.Warn("no navigation observed after submit", "via", sub.Via, "fallback_wait", cfg.WaitAfterClick)
		_ = s.clock.Sleep(ctx, cfg.WaitAfterClick)
	}
	_ = s.clock.Sleep(ctx, cfg.SettleDelay)
	return navigated
}
