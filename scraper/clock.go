package scraper

import (
	"context"
	"time"
)

// Clock supplies the fixed pauses of the pipeline.
type Clock interface {
	// Sleep pauses for d, returning early with ctx.Err() if ctx ends.
	Sleep(ctx context.Context, d time.Duration) error
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (SystemClock) Now() time.Time { return time.Now() }
