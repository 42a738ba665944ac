// Package bls talks to the Bureau of Labor Statistics public timeseries API:
// chunked, retried series fetches plus typed employment, wage and projection
// fetchers built on top of them.
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/metrics"
)

// Defaults applied by New for zero-valued Config fields. A negative
// ChunkDelay disables the pause between chunks.
const (
	DefaultBaseURL             = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	DefaultSeriesLimit         = 50
	DefaultMaxRetries          = 3
	DefaultBackoffBase         = time.Second
	DefaultRateLimitMultiplier = 10
	DefaultChunkDelay          = 500 * time.Millisecond
	DefaultTimeout             = 30 * time.Second
	DefaultProjectionHorizon   = 10

	maxBodyBytes    = 8 << 20
	maxErrorSnippet = 512
)

// Config holds the statistics API client settings.
type Config struct {
	APIKey              string
	BaseURL             string
	SeriesLimit         int
	MaxRetries          int
	BackoffBase         time.Duration
	RateLimitMultiplier int
	ChunkDelay          time.Duration
	Timeout             time.Duration
	ProjectionHorizon   int
	Catalog             bool
	AnnualAverage       bool
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Clock supplies the current time for year-range calculations.
type Clock interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// Client fetches series from the statistics API.
type Client struct {
	cfg     Config
	http    *http.Client
	retry   RetryPolicy
	sleep   Sleeper
	limiter Waiter
	clock   Clock
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Its timeout is left untouched.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithSleeper overrides the backoff and inter-chunk sleep.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithLimiter paces every outbound request through w.
func WithLimiter(w Waiter) Option {
	return func(c *Client) {
		c.limiter = w
	}
}

// WithClock overrides the clock used to derive year ranges.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.Named("bls")
		}
	}
}

// New builds a Client. A missing API key is not an error here; fetches report it.
func New(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SeriesLimit <= 0 {
		cfg.SeriesLimit = DefaultSeriesLimit
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	if cfg.RateLimitMultiplier <= 0 {
		cfg.RateLimitMultiplier = DefaultRateLimitMultiplier
	}
	switch {
	case cfg.ChunkDelay == 0:
		cfg.ChunkDelay = DefaultChunkDelay
	case cfg.ChunkDelay < 0:
		cfg.ChunkDelay = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ProjectionHorizon <= 0 {
		cfg.ProjectionHorizon = DefaultProjectionHorizon
	}

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		retry:  NewRetryPolicy(cfg.MaxRetries, cfg.BackoffBase, cfg.RateLimitMultiplier),
		sleep:  SleepContext,
		clock:  utcClock{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// FetchSeries fetches seriesIDs for the year range, one request per chunk of
// SeriesLimit IDs. Every failure is an *APIError.
func (c *Client) FetchSeries(ctx context.Context, seriesIDs []string, startYear, endYear string) (SeriesResult, error) {
	if !c.Configured() {
		return SeriesResult{}, &APIError{Kind: KindMissingAPIKey, Err: ErrMissingAPIKey}
	}
	ids := dedupe(seriesIDs)
	if len(ids) == 0 {
		return SeriesResult{}, &APIError{Kind: KindBadRequest, Err: ErrNoSeries}
	}

	var (
		result     SeriesResult
		seenSeries = make(map[string]struct{}, len(ids))
		seenMsg    = make(map[string]struct{})
	)
	for i, chunk := range chunks(ids, c.cfg.SeriesLimit) {
		if i > 0 && c.cfg.ChunkDelay > 0 {
			if err := c.sleep(ctx, c.cfg.ChunkDelay); err != nil {
				return SeriesResult{}, &APIError{Kind: KindRequestFailed, Err: err}
			}
		}
		body, err := c.fetchChunk(ctx, requestBody{
			SeriesID:        chunk,
			StartYear:       startYear,
			EndYear:         endYear,
			RegistrationKey: c.cfg.APIKey,
			Catalog:         c.cfg.Catalog,
			AnnualAverage:   c.cfg.AnnualAverage,
		}, c.retry.MaxAttempts())
		if err != nil {
			return SeriesResult{}, err
		}
		for _, s := range body.Results.Series {
			if _, dup := seenSeries[s.SeriesID]; dup {
				continue
			}
			seenSeries[s.SeriesID] = struct{}{}
			result.Series = append(result.Series, s)
		}
		for _, m := range body.Message {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if _, dup := seenMsg[m]; dup {
				continue
			}
			seenMsg[m] = struct{}{}
			result.Messages = append(result.Messages, m)
		}
	}
	metrics.ObserveBLSSeries(len(result.Series))
	return result, nil
}

// attemptFailure describes one failed attempt.
type attemptFailure struct {
	status      int
	message     string
	rateLimited bool
	fatal       bool
	err         error
}

func (c *Client) fetchChunk(ctx context.Context, req requestBody, maxAttempts int) (responseBody, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return responseBody{}, &APIError{Kind: KindRequestFailed, Message: "encode request", Err: err}
	}

	var last attemptFailure
	for attempt := 0; attempt < maxAttempts; attempt++ {
		start := time.Now()
		body, failure := c.attempt(ctx, payload)
		if failure == nil {
			metrics.ObserveBLSAttempt("success", time.Since(start))
			return body, nil
		}
		last = *failure
		metrics.ObserveBLSAttempt(outcome(failure), time.Since(start))

		if failure.fatal {
			kind := KindRequestFailed
			if failure.status == http.StatusBadRequest {
				kind = KindBadRequest
			}
			return responseBody{}, &APIError{
				Kind:       kind,
				StatusCode: failure.status,
				Message:    failure.message,
				Attempts:   attempt + 1,
				Err:        failure.err,
			}
		}

		if ctx.Err() != nil {
			return responseBody{}, &APIError{Kind: KindRequestFailed, Message: failure.message, Attempts: attempt + 1, Err: ctx.Err()}
		}
		if !c.retry.ShouldRetry(ctx, attempt) {
			break
		}

		delay := c.retry.Backoff(attempt, failure.rateLimited)
		c.logger.Warn("bls attempt failed, backing off",
			zap.Int("attempt", attempt+1),
			zap.Int("status", failure.status),
			zap.Duration("delay", delay),
			zap.String("message", failure.message),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return responseBody{}, &APIError{Kind: KindRequestFailed, Message: failure.message, Attempts: attempt + 1, Err: err}
		}
	}

	kind := KindRetriesExhausted
	if last.rateLimited {
		kind = KindRateLimited
	}
	return responseBody{}, &APIError{
		Kind:       kind,
		StatusCode: last.status,
		Message:    last.message,
		Attempts:   maxAttempts,
		Err:        last.err,
	}
}

// attempt performs one POST. A nil failure means the body reported success.
func (c *Client) attempt(ctx context.Context, payload []byte) (responseBody, *attemptFailure) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.cfg.BaseURL); err != nil {
			return responseBody{}, &attemptFailure{message: "rate limiter", err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return responseBody{}, &attemptFailure{message: "build request", fatal: true, err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return responseBody{}, &attemptFailure{message: "request failed", err: fmt.Errorf("post series: %w", err)}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close response body", zap.Error(cerr))
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: "read body", err: fmt.Errorf("read series body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: providerMessage(raw), fatal: true}
	case resp.StatusCode == http.StatusTooManyRequests:
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: providerMessage(raw), rateLimited: true}
	case resp.StatusCode >= http.StatusInternalServerError:
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: providerMessage(raw)}
	case resp.StatusCode != http.StatusOK:
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: providerMessage(raw), fatal: true}
	}

	var body responseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: "malformed response body", err: fmt.Errorf("decode series body: %w", err)}
	}
	if body.Status != statusSucceeded {
		msg := strings.Join(body.Message, "; ")
		if msg == "" {
			msg = "status " + body.Status
		}
		return responseBody{}, &attemptFailure{status: resp.StatusCode, message: msg}
	}
	return body, nil
}

func outcome(f *attemptFailure) string {
	switch {
	case f.rateLimited:
		return "rate_limited"
	case f.status == http.StatusBadRequest:
		return "bad_request"
	case f.status >= http.StatusInternalServerError:
		return "server_error"
	default:
		return "error"
	}
}

// providerMessage extracts the message list from an error body, falling back to a raw snippet.
func providerMessage(raw []byte) string {
	var body responseBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Message) > 0 {
		return strings.Join(body.Message, "; ")
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorSnippet {
		text = text[:maxErrorSnippet]
	}
	return text
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func chunks(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
