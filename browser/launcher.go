// Package browser implements the scraper's session interfaces on go-rod.
// Every session owns a dedicated Chromium process; nothing is pooled or
// shared between lookups.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Medy04/MTN-data-scrapping/config"
	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// Launcher starts Chromium processes. It is safe for concurrent use.
type Launcher struct {
	cfg config.BrowserConfig
	log *slog.Logger
}

var _ scraper.Launcher = (*Launcher)(nil)

func NewLauncher(cfg config.BrowserConfig, log *slog.Logger) *Launcher {
	return &Launcher{cfg: cfg, log: log}
}

// Launch starts a browser, opens one tab and prepares it per cfg: stealth,
// viewport, user agent, language headers and resource blocking. On any error
// the process is killed before returning.
func (l *Launcher) Launch(ctx context.Context, cfg models.SessionConfig) (scraper.Session, error) {
	ln := l.newProcess(cfg)

	controlURL, err := ln.Launch()
	if err != nil {
		ln.Kill()
		return nil, models.NewPipelineError(models.ErrCodeLaunch, scraper.StateAcquiring.String(), "failed to launch browser", err)
	}
	l.log.Debug("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		ln.Kill()
		ln.Cleanup()
		return nil, models.NewPipelineError(models.ErrCodeLaunch, scraper.StateAcquiring.String(), "failed to connect to browser", err)
	}

	s := &session{browser: b, process: ln, log: l.log}
	p, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Release()
		return nil, models.NewPipelineError(models.ErrCodeLaunch, scraper.StateAcquiring.String(), "failed to open page", err)
	}
	s.page = &page{p: p}

	if err := s.prepare(ctx, cfg); err != nil {
		_ = s.Release()
		return nil, models.NewPipelineError(models.ErrCodeLaunch, scraper.StateAcquiring.String(), "failed to configure page", err)
	}
	return s, nil
}

func (l *Launcher) newProcess(cfg models.SessionConfig) *launcher.Launcher {
	ln := launcher.New().
		Headless(l.cfg.Headless).
		NoSandbox(l.cfg.NoSandbox)

	bin := cfg.BrowserBin
	if bin == "" {
		bin = l.cfg.BrowserBin
	}
	if bin != "" {
		ln = ln.Bin(bin)
	}

	ln.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	ln.Delete(flags.Flag("enable-automation"))
	ln.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	ln.Set(flags.Flag("disable-popup-blocking"))
	ln.Set(flags.Flag("disable-renderer-backgrounding"))
	ln.Set(flags.Flag("disable-background-timer-throttling"))
	ln.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	ln.Set(flags.Flag("disable-component-update"))
	ln.Set(flags.Flag("disable-default-apps"))
	ln.Set(flags.Flag("disable-dev-shm-usage"))
	ln.Set(flags.Flag("disable-extensions"))
	ln.Set(flags.Flag("disable-gpu"))
	ln.Set(flags.Flag("no-first-run"))
	ln.Set(flags.Flag("no-zygote"))
	ln.Set(flags.Flag("hide-scrollbars"))
	ln.Set(flags.Flag("mute-audio"))
	ln.Set(flags.Flag("disable-accelerated-2d-canvas"))
	if l.cfg.NoSandbox {
		ln.Set(flags.Flag("disable-setuid-sandbox"))
	}
	ln.Set(flags.Flag("lang"), "fr-FR")
	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		ln.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", cfg.Viewport.Width, cfg.Viewport.Height))
	}
	return ln
}
