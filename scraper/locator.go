package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
	"golang.org/x/time/rate"
)

// Locate waits for each candidate in turn, up to perSelector each, and
// returns the first element found together with the selector that found it.
// A miss moves on to the next candidate; a hit stops the search.
func Locate(ctx context.Context, page Page, candidates []string, perSelector time.Duration) (Element, string, error) {
	el, selector, ok := firstMatch(candidates, func(sel string) (Element, bool) {
		waitCtx, cancel := context.WithTimeout(ctx, perSelector)
		defer cancel()
		el, err := page.WaitElement(waitCtx, sel)
		return el, err == nil && el != nil
	})
	if !ok {
		return nil, "", models.NewPipelineError(
			models.ErrCodeNoElement,
			StateLocating.String(),
			fmt.Sprintf("phone number field not found (%d selectors tried)", len(candidates)),
			ctx.Err(),
		)
	}
	return el, selector, nil
}

// Fill replaces the element's content with text, one key at a time. The
// portal's own script listens to key events, so the value cannot simply be
// assigned.
func Fill(ctx context.Context, el Element, text string, keystrokeDelay time.Duration) error {
	if err := el.SelectAll(ctx); err != nil {
		return models.NewPipelineError(models.ErrCodeInternal, StateFilling.String(), "failed to select phone field", err)
	}
	cadence := rate.NewLimiter(rate.Every(keystrokeDelay), 1)
	for i, r := range text {
		if err := cadence.Wait(ctx); err != nil {
			return models.NewPipelineError(models.ErrCodeInternal, StateFilling.String(), "typing interrupted", err)
		}
		if err := el.TypeKey(ctx, r); err != nil {
			return models.NewPipelineError(
				models.ErrCodeInternal,
				StateFilling.String(),
				fmt.Sprintf("failed to type character %d", i),
				err,
			)
		}
	}
	return nil
}
