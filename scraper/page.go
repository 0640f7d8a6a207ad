package scraper

import (
	"context"

	"github.com/Medy04/MTN-data-scrapping/models"
)

// WaitCondition selects the page lifecycle event a navigation waits for.
type WaitCondition int

const (
	// WaitNetworkIdle waits until at most two requests are in flight.
	WaitNetworkIdle WaitCondition = iota
	// WaitDOMReady waits for DOMContentLoaded.
	WaitDOMReady
)

func (w WaitCondition) String() string {
	switch w {
	case WaitNetworkIdle:
		return "network-idle"
	case WaitDOMReady:
		return "dom-ready"
	default:
		return "unknown"
	}
}

// Page is the part of a browser tab the pipeline drives. Every method
// blocks until done or until ctx ends.
type Page interface {
	// Navigate loads url and waits for cond.
	Navigate(ctx context.Context, url string, cond WaitCondition) error

	// WaitElement retries until selector matches an element.
	WaitElement(ctx context.Context, selector string) (Element, error)

	// Query looks selector up once, without waiting.
	Query(ctx context.Context, selector string) (Element, bool, error)

	// SubmitForm calls submit() on the form owning the element matched by
	// selector. It reports false when there is no such form.
	SubmitForm(ctx context.Context, selector string) (bool, error)

	// ExpectNavigation arms a navigation waiter. The returned function
	// blocks until a navigation completes or ctx ends, and reports which.
	// It must be armed before the action that may navigate.
	ExpectNavigation(ctx context.Context) func() bool

	// Text returns the body's rendered text.
	Text(ctx context.Context) (string, error)

	// HTML returns the serialized DOM.
	HTML(ctx context.Context) (string, error)

	// Screenshot captures the visible viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}

// Element is a resolved DOM node.
type Element interface {
	// Visible reports whether the element has a rendered layout box.
	Visible(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	// SelectAll focuses the element and selects its whole content.
	SelectAll(ctx context.Context) error
	// TypeKey sends one key press.
	TypeKey(ctx context.Context, r rune) error
}

// Session is one browser process with one configured page.
type Session interface {
	Page() Page
	// Release terminates the browser process. It is safe to call twice.
	Release() error
}

// Launcher starts browser sessions. Launch returns a page with viewport,
// user agent and resource blocking already applied, before any navigation.
type Launcher interface {
	Launch(ctx context.Context, cfg models.SessionConfig) (Session, error)
}
