package browser

import (
	"context"

	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

const (
	submitFormJS = `(sel) => {
		const input = document.querySelector(sel);
		if (input && input.form) {
			input.form.submit();
			return true;
		}
		return false;
	}`

	bodyTextJS = `() => document.body ? document.body.innerText : ""`
)

// page adapts a rod page. Every call rebinds the page to the caller's
// context, so a cancelled step never poisons the next one.
type page struct {
	p *rod.Page
}

var _ scraper.Page = (*page)(nil)

func lifecycleEvent(cond scraper.WaitCondition) proto.PageLifecycleEventName {
	if cond == scraper.WaitDOMReady {
		return proto.PageLifecycleEventNameDOMContentLoaded
	}
	return proto.PageLifecycleEventNameNetworkAlmostIdle
}

func (pg *page) Navigate(ctx context.Context, url string, cond scraper.WaitCondition) error {
	p := pg.p.Context(ctx)

	// The waiter must be registered before Navigate or the event is missed.
	wait := p.WaitNavigation(lifecycleEvent(cond))
	if err := p.Navigate(url); err != nil {
		return err
	}
	wait()
	return ctx.Err()
}

func (pg *page) WaitElement(ctx context.Context, selector string) (scraper.Element, error) {
	el, err := pg.p.Context(ctx).Element(selector)
	if err != nil {
		return nil, err
	}
	return &element{el: el}, nil
}

func (pg *page) Query(ctx context.Context, selector string) (scraper.Element, bool, error) {
	has, el, err := pg.p.Context(ctx).Has(selector)
	if err != nil || !has {
		return nil, false, err
	}
	return &element{el: el}, true, nil
}

func (pg *page) SubmitForm(ctx context.Context, selector string) (bool, error) {
	res, err := pg.p.Context(ctx).Eval(submitFormJS, selector)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (pg *page) ExpectNavigation(ctx context.Context) func() bool {
	wait := pg.p.Context(ctx).WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	return func() bool {
		wait()
		return ctx.Err() == nil
	}
}

func (pg *page) Text(ctx context.Context) (string, error) {
	res, err := pg.p.Context(ctx).Eval(bodyTextJS)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (pg *page) HTML(ctx context.Context) (string, error) {
	return pg.p.Context(ctx).HTML()
}

func (pg *page) Screenshot(ctx context.Context) ([]byte, error) {
	return pg.p.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

type element struct {
	el *rod.Element
}

func (e *element) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *element) SelectAll(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.Focus(); err != nil {
		return err
	}
	return el.SelectAllText()
}

func (e *element) TypeKey(ctx context.Context, r rune) error {
	return e.el.Context(ctx).Type(input.Key(r))
}
