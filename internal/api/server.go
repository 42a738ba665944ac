package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/bls"
	"github.com/JakeFAU/occupation-risk/internal/logging"
	"github.com/JakeFAU/occupation-risk/internal/metrics"
	"github.com/JakeFAU/occupation-risk/internal/pipeline"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
)

// Defaults applied by NewServer for zero-valued Options.
const (
	DefaultRequestTimeout   = 2 * time.Minute
	DefaultMaxCompareTitles = 10
	maxBodyBytes            = 64 << 10
)

// OccupationService is the pipeline surface the handlers call.
type OccupationService interface {
	GetJobData(ctx context.Context, title string, opts ...pipeline.Option) (pipeline.UnifiedRecord, error)
	GetJobsComparisonData(ctx context.Context, titles []string, opts ...pipeline.Option) map[string]pipeline.ComparisonResult
}

// Prober checks statistics API connectivity.
type Prober interface {
	Probe(ctx context.Context) bls.ProbeResult
}

// Pinger reports datastore readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RequestIDGenerator issues per-request IDs.
type RequestIDGenerator interface {
	NewRequestID() string
}

// Options tunes the server.
type Options struct {
	RequestTimeout   time.Duration
	MaxCompareTitles int
	AuthEnabled      bool
	APIKey           string
}

// Server wires HTTP handlers to the occupation pipeline.
type Server struct {
	router  chi.Router
	service OccupationService
	prober  Prober
	pinger  Pinger
	ids     RequestIDGenerator
	opts    Options
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes. prober and pinger may be nil.
func NewServer(
	service OccupationService,
	prober Prober,
	pinger Pinger,
	ids RequestIDGenerator,
	opts Options,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.MaxCompareTitles <= 0 {
		opts.MaxCompareTitles = DefaultMaxCompareTitles
	}
	s := &Server{
		service: service,
		prober:  prober,
		pinger:  pinger,
		ids:     ids,
		opts:    opts,
		logger:  logger.Named("api"),
	}
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(metrics.Middleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(timeoutMiddleware(opts.RequestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if opts.AuthEnabled {
			r.Use(apiKeyMiddleware(opts.APIKey))
		}
		r.Get("/occupations", s.getOccupation)
		r.Post("/occupations/compare", s.compareOccupations)
		r.Get("/bls/status", s.blsStatus)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			logging.FromContext(r.Context(), s.logger).Warn("readiness check failed", zap.Error(err))
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) getOccupation(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		s.writeError(w, http.StatusBadRequest, "title query parameter required")
		return
	}
	opts, err := refreshOptions(r.URL.Query().Get("refresh"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := s.service.GetJobData(r.Context(), title, opts...)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			logging.FromContext(r.Context(), s.logger).Warn("occupation lookup failed", zap.String("title", title), zap.Error(err))
		}
		s.writeJSON(w, status, errorBody(err))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

type compareRequest struct {
	Titles  []string `json:"titles"`
	Refresh bool     `json:"refresh"`
}

type compareEntry struct {
	Status int                     `json:"status"`
	Record *pipeline.UnifiedRecord `json:"record,omitempty"`
	Error  *errorResponse          `json:"error,omitempty"`
}

func (s *Server) compareOccupations(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	titles := make([]string, 0, len(req.Titles))
	for _, t := range req.Titles {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	switch {
	case len(titles) == 0:
		s.writeError(w, http.StatusBadRequest, "titles required")
		return
	case len(titles) > s.opts.MaxCompareTitles:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d titles per comparison", s.opts.MaxCompareTitles))
		return
	}
	var opts []pipeline.Option
	if req.Refresh {
		opts = append(opts, pipeline.WithForceRefresh())
	}

	results := s.service.GetJobsComparisonData(r.Context(), titles, opts...)
	out := make(map[string]compareEntry, len(results))
	for title, res := range results {
		if res.Err != nil {
			out[title] = compareEntry{Status: StatusFor(res.Err), Error: errorBody(res.Err)}
			continue
		}
		out[title] = compareEntry{Status: http.StatusOK, Record: res.Record}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *Server) blsStatus(w http.ResponseWriter, r *http.Request) {
	if s.prober == nil {
		s.writeError(w, http.StatusServiceUnavailable, "statistics client not configured")
		return
	}
	result := s.prober.Probe(r.Context())
	status := http.StatusOK
	if !result.Reachable {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, result)
}

func refreshOptions(raw string) ([]pipeline.Option, error) {
	if raw == "" {
		return nil, nil
	}
	refresh, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh value %q", raw)
	}
	if !refresh {
		return nil, nil
	}
	return []pipeline.Option{pipeline.WithForceRefresh()}, nil
}

// StatusFor maps a pipeline error to an HTTP status code.
func StatusFor(err error) int {
	var fetchErr *pipeline.FetchError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, resolver.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fetchErr):
		if apiErr, ok := fetchErr.APIError(); ok {
			switch apiErr.Kind {
			case bls.KindBadRequest:
				return http.StatusBadRequest
			case bls.KindRateLimited:
				return http.StatusTooManyRequests
			case bls.KindMissingAPIKey:
				return http.StatusServiceUnavailable
			}
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  string `json:"code,omitempty"`
}

func errorBody(err error) *errorResponse {
	body := &errorResponse{Error: err.Error()}
	var fetchErr *pipeline.FetchError
	if errors.As(err, &fetchErr) {
		body.Code = fetchErr.Code
	}
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		body.Kind = "not_found"
	case errors.Is(err, pipeline.ErrNotConfigured):
		body.Kind = "not_configured"
	case errors.Is(err, context.DeadlineExceeded):
		body.Kind = "timeout"
	case errors.Is(err, context.Canceled):
		body.Kind = "canceled"
	case fetchErr != nil:
		body.Kind = "fetch_failed"
		if apiErr, ok := fetchErr.APIError(); ok {
			body.Kind = string(apiErr.Kind)
		} else if errors.Is(err, pipeline.ErrNoData) {
			body.Kind = "no_data"
		}
	}
	return body
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
