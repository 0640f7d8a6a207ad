package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// acceptLanguage matches the portal's audience.
const acceptLanguage = "fr-FR,fr;q=0.9,en;q=0.8"

type session struct {
	browser *rod.Browser
	process *launcher.Launcher
	page    *page
	router  *rod.HijackRouter
	log     *slog.Logger

	once       sync.Once
	releaseErr error
}

func (s *session) Page() scraper.Page { return s.page }

// prepare must run before the first navigation: stealth scripts and request
// interception only apply to documents loaded after they are installed.
func (s *session) prepare(ctx context.Context, cfg models.SessionConfig) error {
	p := s.page.p.Context(ctx)

	if cfg.Stealth {
		if _, err := p.EvalOnNewDocument(stealth.JS); err != nil {
			s.log.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}

	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.Viewport.Width,
			Height:            cfg.Viewport.Height,
			DeviceScaleFactor: 1,
		}); err != nil {
			return err
		}
	}

	if cfg.UserAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      cfg.UserAgent,
			AcceptLanguage: acceptLanguage,
		}); err != nil {
			return err
		}
	}

	if err := (proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{"Accept-Language": acceptLanguage}),
	}).Call(p); err != nil {
		s.log.Warn("failed to set extra headers", "error", err)
	}

	s.router = setupHijack(s.page.p, cfg.BlockedResourceTypes)
	return nil
}

// Release stops request interception, closes the browser and removes its
// profile directory. Only the first call does anything.
func (s *session) Release() error {
	s.once.Do(func() {
		if s.router != nil {
			_ = s.router.Stop()
		}
		s.releaseErr = s.browser.Close()
		s.process.Kill()
		s.process.Cleanup()
	})
	return s.releaseErr
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
