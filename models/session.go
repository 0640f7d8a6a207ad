package models

import "time"

// Viewport is the emulated window size of the browser page.
type Viewport struct {
	Width  int
	Height int
}

// SessionConfig is the read-only configuration of one balance lookup.
// It is built once per request from the process defaults and the caller's
// RunOptions, and never mutated afterwards.
type SessionConfig struct {
	// PortalURL is the page holding the lookup form.
	PortalURL string

	// NavigationTimeout bounds each of the two portal navigation attempts.
	NavigationTimeout time.Duration

	// SelectorTimeout bounds the wait for a single input selector candidate.
	SelectorTimeout time.Duration

	// KeystrokeDelay is the pause between typed characters.
	KeystrokeDelay time.Duration

	// PreSubmitDelay is the pause between typing and submitting.
	PreSubmitDelay time.Duration

	// SubmitNavigationTimeout bounds the wait for a navigation after submit.
	SubmitNavigationTimeout time.Duration

	// WaitAfterClick is the fallback delay when submit triggers no navigation.
	WaitAfterClick time.Duration

	// SettleDelay is always applied after the post-submit wait.
	SettleDelay time.Duration

	// MaxAttempts is the total number of attempts, first one included.
	MaxAttempts int

	// RetryBackoff is the pause between a failed attempt and the next one.
	RetryBackoff time.Duration

	Viewport  Viewport
	UserAgent string

	// BrowserBin overrides the Chromium binary path. Empty means auto-detect.
	BrowserBin string

	// BlockedResourceTypes lists the resource types aborted by the hijack router.
	BlockedResourceTypes []string

	// Stealth injects anti-automation-detection scripts before navigation.
	Stealth bool

	// InputSelectors and ButtonSelectors are the ordered candidate lists.
	InputSelectors  []string
	ButtonSelectors []string
}

// RunOptions are the per-request overrides accepted from callers.
// Zero values keep the configured defaults.
type RunOptions struct {
	Timeout        time.Duration
	WaitAfterClick time.Duration
	Retries        int
}

// WithOptions returns a copy of c with the non-zero fields of o applied.
func (c SessionConfig) WithOptions(o RunOptions) SessionConfig {
	if o.Timeout > 0 {
		c.NavigationTimeout = o.Timeout
	}
	if o.WaitAfterClick > 0 {
		c.WaitAfterClick = o.WaitAfterClick
	}
	if o.Retries > 0 {
		c.MaxAttempts = o.Retries
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	c.BlockedResourceTypes = append([]string(nil), c.BlockedResourceTypes...)
	c.InputSelectors = append([]string(nil), c.InputSelectors...)
	c.ButtonSelectors = append([]string(nil), c.ButtonSelectors...)
	return c
}
