package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/andybalholm/cascadia"
)

// DefaultPortalURL is the MTN Côte d'Ivoire data balance portal.
const DefaultPortalURL = "http://moninternet.mtn.ci/"

// DefaultUserAgent is a desktop Chrome UA; the portal serves other markup to mobile agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Session SessionDefaults
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: $PORT or 3003
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Chromium processes launched per attempt.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in containers).
	NoSandbox bool // default: true

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects go-rod/stealth evasions into every page.
	Stealth bool // default: true

	// MaxBrowsers caps the number of concurrently running browser processes.
	MaxBrowsers int // default: 4
}

// SessionDefaults are the per-lookup settings callers may partially override.
type SessionDefaults struct {
	PortalURL         string
	NavigationTimeout time.Duration // default: 30s
	WaitAfterClick    time.Duration // default: 3s
	Retries           int           // default: 2
	UserAgent         string

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string

	// InputSelectors and ButtonSelectors replace the built-in candidate
	// lists when set. Order is significant.
	InputSelectors  []string
	ButtonSelectors []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("MTN_HOST", "0.0.0.0"),
			Port: envIntOr("MTN_PORT", envIntOr("PORT", 3003)),
			Mode: envOr("MTN_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:    envBoolOr("MTN_HEADLESS", true),
			NoSandbox:   envBoolOr("MTN_NO_SANDBOX", true),
			BrowserBin:  os.Getenv("MTN_BROWSER_BIN"),
			Stealth:     envBoolOr("MTN_STEALTH", true),
			MaxBrowsers: envIntOr("MTN_MAX_BROWSERS", 4),
		},
		Session: SessionDefaults{
			PortalURL:         envOr("MTN_PORTAL_URL", DefaultPortalURL),
			NavigationTimeout: envDurationOr("MTN_NAV_TIMEOUT", 30*time.Second),
			WaitAfterClick:    envDurationOr("MTN_WAIT_AFTER_CLICK", 3*time.Second),
			Retries:           envIntOr("MTN_RETRIES", 2),
			UserAgent:         envOr("MTN_USER_AGENT", DefaultUserAgent),
			BlockedResourceTypes: envSliceOr("MTN_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
			InputSelectors:  envSliceOr("MTN_INPUT_SELECTORS", nil),
			ButtonSelectors: envSliceOr("MTN_BUTTON_SELECTORS", nil),
		},
		Log: LogConfig{
			Level:  envOr("MTN_LOG_LEVEL", "info"),
			Format: envOr("MTN_LOG_FORMAT", "json"),
		},
	}
}

// Validate checks values that would otherwise only fail mid-lookup.
func (c *Config) Validate() error {
	if c.Browser.MaxBrowsers < 1 {
		return fmt.Errorf("MTN_MAX_BROWSERS must be at least 1, got %d", c.Browser.MaxBrowsers)
	}
	if c.Session.Retries < 1 {
		return fmt.Errorf("MTN_RETRIES must be at least 1, got %d", c.Session.Retries)
	}
	for _, group := range [][]string{c.Session.InputSelectors, c.Session.ButtonSelectors} {
		for _, sel := range group {
			if _, err := cascadia.Compile(sel); err != nil {
				return fmt.Errorf("invalid selector %q: %w", sel, err)
			}
		}
	}
	return nil
}

// SessionConfig builds the immutable per-lookup configuration. Selector
// lists fall back to inputs and buttons when no override is configured.
func (c *Config) SessionConfig(inputs, buttons []string) models.SessionConfig {
	if len(c.Session.InputSelectors) > 0 {
		inputs = c.Session.InputSelectors
	}
	if len(c.Session.ButtonSelectors) > 0 {
		buttons = c.Session.ButtonSelectors
	}
	return models.SessionConfig{
		PortalURL:               c.Session.PortalURL,
		NavigationTimeout:       c.Session.NavigationTimeout,
		SelectorTimeout:         5 * time.Second,
		KeystrokeDelay:          100 * time.Millisecond,
		PreSubmitDelay:          500 * time.Millisecond,
		SubmitNavigationTimeout: 15 * time.Second,
		WaitAfterClick:          c.Session.WaitAfterClick,
		SettleDelay:             2 * time.Second,
		MaxAttempts:             c.Session.Retries,
		RetryBackoff:            2 * time.Second,
		Viewport:                models.Viewport{Width: 1280, Height: 800},
		UserAgent:               c.Session.UserAgent,
		BrowserBin:              c.Browser.BrowserBin,
		BlockedResourceTypes:    append([]string(nil), c.Session.BlockedResourceTypes...),
		Stealth:                 c.Browser.Stealth,
		InputSelectors:          append([]string(nil), inputs...),
		ButtonSelectors:         append([]string(nil), buttons...),
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDurationOr accepts Go durations ("30s") and bare millisecond counts ("30000").
func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if ms, err := strconv.Atoi(v); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

// envSliceOr splits on ";" when present so selectors containing commas survive.
func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		sep := ","
		if strings.Contains(v, ";") {
			sep = ";"
		}
		parts := strings.Split(v, sep)
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
