package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MTN_PORT", "PORT", "MTN_NAV_TIMEOUT", "MTN_RETRIES", "MTN_BLOCKED_RESOURCES", "MTN_INPUT_SELECTORS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, 3003, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.True(t, cfg.Browser.Headless)
	assert.True(t, cfg.Browser.NoSandbox)
	assert.Equal(t, 4, cfg.Browser.MaxBrowsers)
	assert.Equal(t, DefaultPortalURL, cfg.Session.PortalURL)
	assert.Equal(t, 30*time.Second, cfg.Session.NavigationTimeout)
	assert.Equal(t, 3*time.Second, cfg.Session.WaitAfterClick)
	assert.Equal(t, 2, cfg.Session.Retries)
	assert.Equal(t, []string{"Image", "Stylesheet", "Font", "Media"}, cfg.Session.BlockedResourceTypes)
	assert.Empty(t, cfg.Session.InputSelectors)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("MTN_PORT", "")
	t.Setenv("PORT", "8081")
	assert.Equal(t, 8081, Load().Server.Port)

	t.Setenv("MTN_PORT", "9000")
	assert.Equal(t, 9000, Load().Server.Port)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MTN_NAV_TIMEOUT", "45000")
	t.Setenv("MTN_WAIT_AFTER_CLICK", "5s")
	t.Setenv("MTN_HEADLESS", "false")
	t.Setenv("MTN_BLOCKED_RESOURCES", "Image, Font")
	t.Setenv("MTN_INPUT_SELECTORS", `input[name="msisdn"]; input.phone, input.tel`)

	cfg := Load()

	assert.Equal(t, 45*time.Second, cfg.Session.NavigationTimeout)
	assert.Equal(t, 5*time.Second, cfg.Session.WaitAfterClick)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, []string{"Image", "Font"}, cfg.Session.BlockedResourceTypes)
	assert.Equal(t, []string{`input[name="msisdn"]`, "input.phone, input.tel"}, cfg.Session.InputSelectors)
}

func TestLoad_IgnoresMalformed(t *testing.T) {
	t.Setenv("MTN_RETRIES", "many")
	t.Setenv("MTN_NAV_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 2, cfg.Session.Retries)
	assert.Equal(t, 30*time.Second, cfg.Session.NavigationTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "no browsers", mutate: func(c *Config) { c.Browser.MaxBrowsers = 0 }, wantErr: "MTN_MAX_BROWSERS"},
		{name: "no attempts", mutate: func(c *Config) { c.Session.Retries = 0 }, wantErr: "MTN_RETRIES"},
		{name: "bad selector", mutate: func(c *Config) { c.Session.ButtonSelectors = []string{"button[type="} }, wantErr: "invalid selector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSessionConfig(t *testing.T) {
	cfg := Load()
	inputs := []string{"input.a", "input.b"}
	buttons := []string{"button.go"}

	sc := cfg.SessionConfig(inputs, buttons)

	assert.Equal(t, inputs, sc.InputSelectors)
	assert.Equal(t, buttons, sc.ButtonSelectors)
	assert.Equal(t, cfg.Session.Retries, sc.MaxAttempts)
	assert.Equal(t, 5*time.Second, sc.SelectorTimeout)
	assert.Equal(t, 15*time.Second, sc.SubmitNavigationTimeout)
	assert.Equal(t, 2*time.Second, sc.SettleDelay)

	sc.InputSelectors[0] = "mutated"
	assert.Equal(t, "input.a", inputs[0])

	cfg.Session.InputSelectors = []string{"input#override"}
	assert.Equal(t, []string{"input#override"}, cfg.SessionConfig(inputs, buttons).InputSelectors)
}
