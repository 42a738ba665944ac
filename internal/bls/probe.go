package bls

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/metrics"
)

// ProbeResult reports a single connectivity check.
type ProbeResult struct {
	Reachable bool          `json:"reachable"`
	Latency   time.Duration `json:"latency_ns"`
	Status    int           `json:"status_code,omitempty"`
	Message   string        `json:"message,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Probe issues one request for ConnectivitySeries without retries. It works
// without an API key since the unregistered tier still answers.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	year := strconv.Itoa(c.clock.Now().Year() - 1)
	payload, err := json.Marshal(requestBody{
		SeriesID:        []string{ConnectivitySeries},
		StartYear:       year,
		EndYear:         year,
		RegistrationKey: c.cfg.APIKey,
	})
	checkedAt := c.clock.Now()
	if err != nil {
		return ProbeResult{Message: err.Error(), CheckedAt: checkedAt}
	}

	start := time.Now()
	_, failure := c.attempt(ctx, payload)
	latency := time.Since(start)
	if failure != nil {
		metrics.ObserveBLSAttempt(outcome(failure), latency)
		msg := failure.message
		if failure.err != nil {
			msg = failure.err.Error()
		}
		c.logger.Info("bls connectivity probe failed", zap.Int("status", failure.status), zap.String("message", msg))
		return ProbeResult{Latency: latency, Status: failure.status, Message: msg, CheckedAt: checkedAt}
	}
	metrics.ObserveBLSAttempt("success", latency)
	return ProbeResult{Reachable: true, Latency: latency, Status: http.StatusOK, CheckedAt: checkedAt}
}

// CheckConnectivity reports whether the statistics API answered the probe.
func (c *Client) CheckConnectivity(ctx context.Context) bool {
	return c.Probe(ctx).Reachable
}
