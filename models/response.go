package models

// BalanceResponse is the 200 response for POST /scrape-mtn.
type BalanceResponse struct {
	Success bool `json:"success"`

	PhoneNumber string `json:"phone_number"`

	// SoldeData is the balance as reported, e.g. "1234.5Mo".
	SoldeData string `json:"solde_data"`

	// RawValue is the numeric part of SoldeData.
	RawValue float64 `json:"raw_value"`

	Unit string `json:"unit"`

	// ExtractionMethod names the strategy that found the balance.
	ExtractionMethod string `json:"extraction_method"`

	// Timestamp is RFC 3339 with milliseconds.
	Timestamp string `json:"timestamp"`

	ExecutionTimeMs int64 `json:"execution_time_ms"`

	// Screenshot is the base64 PNG of the result page viewport.
	Screenshot []byte `json:"screenshot,omitempty"`
}

// FailureResponse is the 500 response for POST /scrape-mtn.
type FailureResponse struct {
	Success     bool       `json:"success"`
	Error       string     `json:"error"`
	Code        string     `json:"code,omitempty"`
	Debug       *DebugInfo `json:"debug,omitempty"`
	PhoneNumber string     `json:"phone_number"`
	Timestamp   string     `json:"timestamp"`
	Attempts    int        `json:"attempts"`
	ExecutionMs int64      `json:"execution_time_ms"`
}

// DebugInfo carries diagnostics for post-hoc analysis of a failed lookup.
type DebugInfo struct {
	PageContentPreview string   `json:"page_content_preview,omitempty"`
	Screenshot         []byte   `json:"screenshot,omitempty"`
	Trace              []string `json:"trace,omitempty"`
	LayoutFingerprint  string   `json:"layout_fingerprint,omitempty"`
}

// ErrorResponse is returned for rejected requests and unknown routes.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Path    string `json:"path,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status    string       `json:"status"` // "ok" or "degraded"
	Service   string       `json:"service"`
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Browsers  BrowserStats `json:"browsers"`
}

// BrowserStats reports how many browser processes are in use.
type BrowserStats struct {
	MaxBrowsers    int `json:"max_browsers"`
	ActiveBrowsers int `json:"active_browsers"`
}

// InfoResponse is the response for GET /.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Example   InfoExample       `json:"example"`
}

// InfoExample documents a sample lookup call.
type InfoExample struct {
	URL    string         `json:"url"`
	Method string         `json:"method"`
	Body   BalanceRequest `json:"body"`
}
