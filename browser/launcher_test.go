package browser

import (
	"io"
	"log/slog"
	"testing"

	"github.com/Medy04/MTN-data-scrapping/config"
	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/stretchr/testify/assert"
)

func TestNewProcess_ContainerFlags(t *testing.T) {
	l := NewLauncher(config.BrowserConfig{Headless: true, NoSandbox: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln := l.newProcess(models.SessionConfig{Viewport: models.Viewport{Width: 1280, Height: 800}})

	for _, name := range []string{
		"no-sandbox",
		"disable-setuid-sandbox",
		"disable-dev-shm-usage",
		"disable-accelerated-2d-canvas",
		"disable-gpu",
		"no-first-run",
		"no-zygote",
		"hide-scrollbars",
		"mute-audio",
	} {
		assert.True(t, ln.Has(flags.Flag(name)), name)
	}
	assert.False(t, ln.Has(flags.Flag("enable-automation")))
	assert.Equal(t, "fr-FR", ln.Get(flags.Flag("lang")))
	assert.Equal(t, "1280,800", ln.Get(flags.Flag("window-size")))
}

func TestNewProcess_SandboxKept(t *testing.T) {
	l := NewLauncher(config.BrowserConfig{Headless: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ln := l.newProcess(models.SessionConfig{})

	assert.False(t, ln.Has(flags.Flag("no-sandbox")))
	assert.False(t, ln.Has(flags.Flag("disable-setuid-sandbox")))
	assert.False(t, ln.Has(flags.Flag("window-size")))
}
