package scraper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
)

var errNoSuchElement = errors.New("no such element")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() models.SessionConfig {
	return models.SessionConfig{
		PortalURL:               "http://portal.test/",
		NavigationTimeout:       time.Second,
		SelectorTimeout:         time.Second,
		PreSubmitDelay:          500 * time.Millisecond,
		SubmitNavigationTimeout: time.Second,
		WaitAfterClick:          3 * time.Second,
		SettleDelay:             2 * time.Second,
		MaxAttempts:             2,
		RetryBackoff:            2 * time.Second,
		InputSelectors:          InputCandidates,
		ButtonSelectors:         ButtonCandidates,
	}
}

type fakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	return ctx.Err()
}

func (c *fakeClock) Now() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type fakeElement struct {
	visible  bool
	clickErr error

	selected bool
	clicks   int
	typed    []rune
}

func (e *fakeElement) Visible(context.Context) (bool, error) { return e.visible, nil }

func (e *fakeElement) Click(context.Context) error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

func (e *fakeElement) SelectAll(context.Context) error {
	e.selected = true
	return nil
}

func (e *fakeElement) TypeKey(_ context.Context, r rune) error {
	e.typed = append(e.typed, r)
	return nil
}

type fakePage struct {
	navErr     map[WaitCondition]error
	elements   map[string]*fakeElement
	hasForm    bool
	navigates  bool
	text, html string
	textErr    error
	screenshot []byte

	navCalls      []WaitCondition
	waited        []string
	queried       []string
	formSubmitted bool
}

// newPortalPage returns a page with a tel input, a visible submit button and
// body text holding text.
func newPortalPage(text string) *fakePage {
	return &fakePage{
		elements: map[string]*fakeElement{
			`input[type="tel"]`:     {visible: true},
			`button[type="submit"]`: {visible: true},
		},
		hasForm:    true,
		navigates:  true,
		text:       text,
		html:       "<html><body><form><input type=\"tel\"><button type=\"submit\">OK</button></form><p>" + text + "</p></body></html>",
		screenshot: []byte("png"),
	}
}

func (p *fakePage) Navigate(_ context.Context, _ string, cond WaitCondition) error {
	p.navCalls = append(p.navCalls, cond)
	return p.navErr[cond]
}

func (p *fakePage) WaitElement(_ context.Context, selector string) (Element, error) {
	p.waited = append(p.waited, selector)
	if el, ok := p.elements[selector]; ok {
		return el, nil
	}
	return nil, errNoSuchElement
}

func (p *fakePage) Query(_ context.Context, selector string) (Element, bool, error) {
	p.queried = append(p.queried, selector)
	el, ok := p.elements[selector]
	if !ok {
		return nil, false, nil
	}
	return el, true, nil
}

func (p *fakePage) SubmitForm(context.Context, string) (bool, error) {
	p.formSubmitted = p.hasForm
	return p.hasForm, nil
}

func (p *fakePage) ExpectNavigation(context.Context) func() bool {
	return func() bool { return p.navigates }
}

func (p *fakePage) Text(context.Context) (string, error) { return p.text, p.textErr }

func (p *fakePage) HTML(context.Context) (string, error) { return p.html, nil }

func (p *fakePage) Screenshot(context.Context) ([]byte, error) { return p.screenshot, nil }

type fakeSession struct {
	page     *fakePage
	releases int
}

func (s *fakeSession) Page() Page { return s.page }

func (s *fakeSession) Release() error {
	s.releases++
	return nil
}

// fakeLauncher hands out pages[i] on the i-th launch, repeating the last
// one. A non-nil launchErrs[i] fails the i-th launch instead.
type fakeLauncher struct {
	pages      []*fakePage
	launchErrs []error

	mu       sync.Mutex
	sessions []*fakeSession
	launches int
}

func (l *fakeLauncher) Launch(context.Context, models.SessionConfig) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := l.launches
	l.launches++
	if n < len(l.launchErrs) && l.launchErrs[n] != nil {
		return nil, l.launchErrs[n]
	}
	page := l.pages[min(n, len(l.pages)-1)]
	s := &fakeSession{page: page}
	l.sessions = append(l.sessions, s)
	return s, nil
}
