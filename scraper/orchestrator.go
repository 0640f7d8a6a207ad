// Package scraper drives the portal's lookup form through a browser session:
// open the portal, find and fill the phone field, submit, wait for the result
// page and hand it to the extractor. Faults are retried on a fresh session.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Medy04/MTN-data-scrapping/extractor"
	"github.com/Medy04/MTN-data-scrapping/metrics"
	"github.com/Medy04/MTN-data-scrapping/models"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// screenshotTimeout bounds the best-effort capture taken after an attempt.
const screenshotTimeout = 5 * time.Second

// Orchestrator runs balance lookups. It is safe for concurrent use; the
// number of browsers alive at once is capped by MaxBrowsers.
type Orchestrator struct {
	launcher Launcher
	clock    Clock
	log      *slog.Logger
	metrics  *metrics.Recorder

	slots       *semaphore.Weighted
	maxBrowsers int
	active      atomic.Int64

	// lastLayout is the fingerprint of the last page a balance was read from.
	lastLayout atomic.Uint64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithClock(c Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Orchestrator) { o.metrics = r }
}

// WithMaxBrowsers caps concurrent browser sessions. Values below 1 mean 1.
func WithMaxBrowsers(n int) Option {
	return func(o *Orchestrator) { o.maxBrowsers = max(n, 1) }
}

// NewOrchestrator creates an Orchestrator that acquires sessions from l.
func NewOrchestrator(l Launcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		launcher:    l,
		clock:       SystemClock{},
		log:         slog.Default(),
		maxBrowsers: 4,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.slots = semaphore.NewWeighted(int64(o.maxBrowsers))
	return o
}

// Stats reports browser capacity for health checks.
func (o *Orchestrator) Stats() models.BrowserStats {
	return models.BrowserStats{
		MaxBrowsers:    o.maxBrowsers,
		ActiveBrowsers: int(o.active.Load()),
	}
}

// attemptOutput is what one pipeline run hands back, fault or not.
type attemptOutput struct {
	outcome    extractor.Outcome
	layout     uint64
	screenshot []byte
}

// Run looks up the data balance of phone. It never returns nil and never
// panics on pipeline faults: they are retried up to cfg.MaxAttempts times and
// the last one is reported in the result. A page on which no strategy finds
// the balance ends the run without retrying.
func (o *Orchestrator) Run(ctx context.Context, phone string, cfg models.SessionConfig) *models.AttemptResult {
	start := o.clock.Now()
	log := o.log.With("run_id", uuid.NewString(), "phone_number", phone)
	defer func() { o.metrics.RunFinished(o.clock.Now().Sub(start)) }()

	maxAttempts := max(cfg.MaxAttempts, 1)
	result := &models.AttemptResult{Method: extractor.MethodNone, Unit: extractor.UnitMegabytes}

	if err := o.slots.Acquire(ctx, 1); err != nil {
		log.Warn("no browser slot available", "error", err)
		return o.fail(result, models.NewPipelineError(models.ErrCodeBusy, StateIdle.String(), "no browser slot available", err), 0, log)
	}
	defer o.slots.Release(1)
	o.active.Add(1)
	defer o.active.Add(-1)

	var lastErr *models.PipelineError
	for n := 1; n <= maxAttempts; n++ {
		log.Info("attempt started", "attempt", n, "max_attempts", maxAttempts)
		out, err := o.attempt(ctx, phone, cfg, log.With("attempt", n))
		if err == nil {
			o.metrics.Attempt(metrics.OutcomeCompleted)
			return o.complete(result, out, n, log)
		}

		lastErr = asPipelineError(err)
		o.metrics.Attempt(metrics.OutcomeFailed)
		result.Screenshot = out.screenshot
		result.Trace = append(result.Trace, fmt.Sprintf("attempt %d/%d: %s: %v", n, maxAttempts, lastErr.Stage, lastErr))
		log.Warn("attempt failed", "attempt", n, "stage", lastErr.Stage, "code", lastErr.Code, "error", lastErr.Err)

		if n == maxAttempts || ctx.Err() != nil {
			break
		}
		o.transition(log, StateRetrying, "backoff", cfg.RetryBackoff)
		if err := o.clock.Sleep(ctx, cfg.RetryBackoff); err != nil {
			break
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		lastErr = models.NewPipelineError(models.ErrCodeTimeout, lastErr.Stage, "lookup deadline exceeded", lastErr)
	}
	return o.fail(result, lastErr, len(result.Trace), log)
}

func (o *Orchestrator) complete(result *models.AttemptResult, out attemptOutput, attempts int, log *slog.Logger) *models.AttemptResult {
	result.Attempts = attempts
	result.Timestamp = o.clock.Now().UTC()
	result.Screenshot = out.screenshot
	result.Method = out.outcome.Method
	result.Unit = out.outcome.Unit
	result.LayoutFingerprint = extractor.FormatFingerprint(out.layout)
	o.metrics.Extraction(out.outcome.Method)

	if out.outcome.Found {
		solde := out.outcome.SoldeData()
		result.Success = true
		result.SoldeData = &solde
		result.RawValue = out.outcome.Value
		o.lastLayout.Store(out.layout)
		o.transition(log, StateSucceeded, "solde_data", solde, "method", out.outcome.Method)
		return result
	}

	result.Error = "data balance not found on the result page"
	result.ErrorCode = models.ErrCodeNotFound
	result.PagePreview = out.outcome.Preview
	attrs := []any{"code", result.ErrorCode, "layout", result.LayoutFingerprint}
	if prev := o.lastLayout.Load(); prev != 0 {
		attrs = append(attrs, "layout_distance", extractor.LayoutDistance(prev, out.layout))
	}
	o.transition(log, StateFailed, attrs...)
	return result
}

func (o *Orchestrator) fail(result *models.AttemptResult, err *models.PipelineError, attempts int, log *slog.Logger) *models.AttemptResult {
	result.Success = false
	result.Attempts = attempts
	result.Timestamp = o.clock.Now().UTC()
	result.ErrorCode = err.Code
	result.Error = err.Message
	if err.Err != nil {
		result.Error += ": " + err.Err.Error()
	}
	o.transition(log, StateFailed)
	log.Error("balance lookup failed", "code", err.Code, "stage", err.Stage, "attempts", attempts, "error", result.Error)
	return result
}

// attempt runs the pipeline once on a fresh session. The session is released
// on every path, after the diagnostic screenshot.
func (o *Orchestrator) attempt(ctx context.Context, phone string, cfg models.SessionConfig, log *slog.Logger) (attemptOutput, error) {
	var out attemptOutput

	o.transition(log, StateAcquiring)
	sess, err := o.launcher.Launch(ctx, cfg)
	if err != nil {
		return out, stageError(err, models.ErrCodeLaunch, StateAcquiring, "failed to launch browser")
	}
	o.metrics.BrowserStarted()
	defer func() {
		release(sess, log)
		o.metrics.BrowserStopped()
	}()

	page := sess.Page()
	out.outcome, out.layout, err = o.drive(ctx, page, phone, cfg, log)
	out.screenshot = o.screenshot(ctx, page, log)
	return out, err
}

// drive walks page from the portal to an extraction outcome.
func (o *Orchestrator) drive(ctx context.Context, page Page, phone string, cfg models.SessionConfig, log *slog.Logger) (extractor.Outcome, uint64, error) {
	if err := openPortal(ctx, page, cfg, log); err != nil {
		return extractor.Outcome{}, 0, err
	}

	o.transition(log, StateLocating)
	input, selector, err := Locate(ctx, page, cfg.InputSelectors, cfg.SelectorTimeout)
	if err != nil {
		return extractor.Outcome{}, 0, err
	}
	log.Info("phone field found", "selector", selector)

	o.transition(log, StateFilling)
	if err := Fill(ctx, input, phone, cfg.KeystrokeDelay); err != nil {
		return extractor.Outcome{}, 0, err
	}
	if err := o.clock.Sleep(ctx, cfg.PreSubmitDelay); err != nil {
		return extractor.Outcome{}, 0, stageError(err, models.ErrCodeInternal, StateFilling, "interrupted before submit")
	}

	o.transition(log, StateSubmitting)
	submitter := NewSubmitter(o.clock, log)
	sub := submitter.Submit(ctx, page, selector, cfg)

	o.transition(log, StateWaiting, "via", sub.Via)
	submitter.Settle(ctx, sub, cfg)

	o.transition(log, StateExtracting)
	html, err := page.HTML(ctx)
	if err != nil {
		return extractor.Outcome{}, 0, stageError(err, models.ErrCodeInternal, StateExtracting, "failed to read result page")
	}
	text, err := page.Text(ctx)
	if err != nil {
		log.Warn("page text unavailable, deriving it from the DOM", "error", err)
		text = ""
	}
	outcome := extractor.Extract(extractor.NewSnapshot(text, html))
	return outcome, extractor.LayoutFingerprint(html), nil
}

func (o *Orchestrator) screenshot(ctx context.Context, page Page, log *slog.Logger) []byte {
	shotCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), screenshotTimeout)
	defer cancel()
	png, err := page.Screenshot(shotCtx)
	if err != nil {
		log.Warn("screenshot failed", "error", err)
		return nil
	}
	return png
}

func (o *Orchestrator) transition(log *slog.Logger, s State, attrs ...any) {
	log.Info("state "+s.String(), attrs...)
}

// stageError wraps err as a PipelineError of stage unless it already is one.
func stageError(err error, code string, stage State, message string) *models.PipelineError {
	var pe *models.PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return models.NewPipelineError(code, stage.String(), message, err)
}

func asPipelineError(err error) *models.PipelineError {
	return stageError(err, models.ErrCodeInternal, StateIdle, "unexpected failure")
}
