package models

import "time"

// AttemptResult is the outcome of a balance lookup, after retries.
type AttemptResult struct {
	Success bool

	// SoldeData is "<value><unit>", e.g. "1234.5Mo". Nil unless Success.
	SoldeData *string

	RawValue float64
	Unit     string

	// Method names the extraction strategy that matched, or "none".
	Method string

	// Screenshot is a PNG of the visible viewport, when one could be taken.
	Screenshot []byte

	// Error is set when Success is false.
	Error     string
	ErrorCode string

	// Trace has one line per failed attempt: stage, code and cause.
	Trace []string

	// PagePreview is the head of the page's visible text on an extraction miss.
	PagePreview string

	// LayoutFingerprint is the hex SimHash of the final page's tag structure.
	LayoutFingerprint string

	Attempts  int
	Timestamp time.Time
}
