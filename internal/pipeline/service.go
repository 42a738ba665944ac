// Package pipeline resolves a job title, serves cached statistics when they
// are fresh, refreshes them from the statistics API when they are not, and
// scores the result.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/bls"
	"github.com/JakeFAU/occupation-risk/internal/cache"
	"github.com/JakeFAU/occupation-risk/internal/metrics"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
	"github.com/JakeFAU/occupation-risk/internal/risk"
)

// Defaults and fixed names.
const (
	DefaultFetchDelay      = time.Second
	DefaultComparisonDelay = time.Second
	DefaultArchivePrefix   = "payloads"
	RefreshEventType       = "occupation.refreshed"
	archiveContentType     = "application/json"
)

// Resolver maps a job title to a SOC code.
type Resolver interface {
	Resolve(ctx context.Context, jobTitle string) (resolver.Resolution, error)
}

// StatsFetcher fetches both statistics families for a code.
type StatsFetcher interface {
	bls.EmploymentFetcher
	bls.ProjectionsFetcher
	Configured() bool
}

// Scorer produces a risk assessment.
type Scorer interface {
	Score(category occupation.Category, code string) risk.Assessment
}

// BlobStore archives raw payloads.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, r io.Reader) (string, error)
}

// Publisher emits refresh events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) (string, error)
}

// Hasher derives archive object names.
type Hasher interface {
	ObjectName(prefix, code string, payload []byte) (string, error)
}

// IDGenerator issues fetch IDs.
type IDGenerator interface {
	NewID() (string, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Config tunes the pipeline. Zero delays select the defaults; negative delays disable them.
type Config struct {
	FetchDelay      time.Duration
	ComparisonDelay time.Duration
	ArchivePrefix   string
}

// Deps are the collaborators of a Service. Resolver, Cache, Fetcher, Scorer
// and Clock are required. Archive needs Hasher.
type Deps struct {
	Resolver  Resolver
	Cache     *cache.Cache
	Fetcher   StatsFetcher
	Scorer    Scorer
	Clock     Clock
	IDs       IDGenerator
	Hasher    Hasher
	Archive   BlobStore
	Publisher Publisher
	Sleep     bls.Sleeper
	Logger    *zap.Logger
}

// Service is the pipeline orchestrator.
type Service struct {
	deps   Deps
	cfg    Config
	logger *zap.Logger
}

// RefreshEvent is published after a refreshed row is written.
type RefreshEvent struct {
	FetchID    string    `json:"fetch_id"`
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	FetchedAt  time.Time `json:"fetched_at"`
	Cached     bool      `json:"cached"`
	ArchiveURI string    `json:"archive_uri,omitempty"`
}

type stage string

const (
	stageResolving stage = "resolving"
	stageCacheHit  stage = "cache-hit"
	stageFetching  stage = "fetching"
	stageScoring   stage = "scoring"
	stageDone      stage = "done"
	stageFailed    stage = "failed"
)

// New validates deps and applies defaults.
func New(deps Deps, cfg Config) (*Service, error) {
	switch {
	case deps.Resolver == nil:
		return nil, errors.New("pipeline: resolver is required")
	case deps.Cache == nil:
		return nil, errors.New("pipeline: cache is required")
	case deps.Fetcher == nil:
		return nil, errors.New("pipeline: fetcher is required")
	case deps.Scorer == nil:
		return nil, errors.New("pipeline: scorer is required")
	case deps.Clock == nil:
		return nil, errors.New("pipeline: clock is required")
	case deps.Archive != nil && deps.Hasher == nil:
		return nil, errors.New("pipeline: archive requires a hasher")
	}
	if deps.Sleep == nil {
		deps.Sleep = bls.SleepContext
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	cfg.FetchDelay = delayOrDefault(cfg.FetchDelay, DefaultFetchDelay)
	cfg.ComparisonDelay = delayOrDefault(cfg.ComparisonDelay, DefaultComparisonDelay)
	cfg.ArchivePrefix = strings.Trim(cfg.ArchivePrefix, "/")
	if cfg.ArchivePrefix == "" {
		cfg.ArchivePrefix = DefaultArchivePrefix
	}
	return &Service{deps: deps, cfg: cfg, logger: deps.Logger.Named("pipeline")}, nil
}

// Option adjusts a single GetJobData call.
type Option func(*request)

type request struct {
	forceRefresh bool
}

// WithForceRefresh skips the cache lookup and always fetches live.
func WithForceRefresh() Option {
	return func(r *request) { r.forceRefresh = true }
}

// GetJobData returns statistics and a risk assessment for title. Resolution
// failures are *resolver.ResolutionError; fetch failures are *FetchError or
// ErrNotConfigured. A failed cache write is logged and reported through
// UnifiedRecord.Cached only.
func (s *Service) GetJobData(ctx context.Context, title string, opts ...Option) (UnifiedRecord, error) {
	var req request
	for _, opt := range opts {
		opt(&req)
	}
	logger := s.logger.With(zap.String("title", title))
	logger.Debug("pipeline stage", zap.String("stage", string(stageResolving)))

	res, err := s.deps.Resolver.Resolve(ctx, title)
	if err != nil {
		metrics.ObservePipeline("none", "unresolved")
		logger.Info("pipeline stage", zap.String("stage", string(stageFailed)), zap.Error(err))
		return UnifiedRecord{}, err
	}
	logger = logger.With(zap.String("code", res.Code))

	state := CacheBypassed
	if !req.forceRefresh {
		entry, err := s.deps.Cache.Lookup(ctx, res.Code)
		switch {
		case err != nil:
			logger.Warn("cache lookup failed, fetching live", zap.Error(err))
			state = CacheAbsent
		case entry.State == cache.Fresh:
			logger.Debug("pipeline stage", zap.String("stage", string(stageCacheHit)))
			out := s.score(entry.Record, res, SourceCache, CacheFresh, logger)
			out.Cached = true
			metrics.ObservePipeline(string(SourceCache), "ok")
			return out, nil
		default:
			state = cacheStateOf(entry.State)
		}
	}

	logger.Debug("pipeline stage", zap.String("stage", string(stageFetching)), zap.String("cache_state", string(state)))
	rec, fetchID, err := s.fetch(ctx, title, res)
	if err != nil {
		metrics.ObservePipeline(string(SourceLiveFetch), "error")
		logger.Warn("pipeline stage", zap.String("stage", string(stageFailed)), zap.Error(err))
		return UnifiedRecord{}, err
	}

	archiveURI := s.archive(ctx, rec, logger)

	cached := true
	written, err := s.deps.Cache.Upsert(ctx, rec)
	if err != nil {
		cached = false
		logger.Error("cache write failed, serving uncached data", zap.Error(err))
		written = rec.Sanitized()
	}

	out := s.score(written, res, SourceLiveFetch, state, logger)
	out.Cached = cached
	out.FetchID = fetchID
	out.ArchiveURI = archiveURI
	if cached {
		s.publish(ctx, out, logger)
	}
	metrics.ObservePipeline(string(SourceLiveFetch), "ok")
	return out, nil
}

func (s *Service) fetch(ctx context.Context, title string, res resolver.Resolution) (occupation.Record, string, error) {
	if !s.deps.Fetcher.Configured() {
		return occupation.Record{}, "", fmt.Errorf("%w: cannot refresh %s", ErrNotConfigured, res.Code)
	}
	fetchID := s.newFetchID()

	employment, err := s.deps.Fetcher.FetchEmploymentWages(ctx, res.Code)
	if err != nil {
		return occupation.Record{}, "", &FetchError{Code: res.Code, Stage: "employment", Err: err}
	}
	if err := s.deps.Sleep(ctx, s.cfg.FetchDelay); err != nil {
		return occupation.Record{}, "", &FetchError{Code: res.Code, Stage: "projections", Err: err}
	}
	projections, err := s.deps.Fetcher.FetchProjections(ctx, res.Code)
	if err != nil {
		return occupation.Record{}, "", &FetchError{Code: res.Code, Stage: "projections", Err: err}
	}
	if employment.Status == bls.StatusError && projections.Status == bls.StatusError {
		detail := strings.Join(append(append([]string(nil), employment.Messages...), projections.Messages...), "; ")
		return occupation.Record{}, "", &FetchError{Code: res.Code, Stage: "merge", Err: fmt.Errorf("%w: %s", ErrNoData, detail)}
	}

	rec, err := merge(title, res, employment, projections, fetchID, s.deps.Clock.Now().UTC())
	if err != nil {
		return occupation.Record{}, "", &FetchError{Code: res.Code, Stage: "merge", Err: err}
	}
	return rec, fetchID, nil
}

type rawPayloads struct {
	FetchID     string          `json:"fetch_id,omitempty"`
	Employment  json.RawMessage `json:"employment"`
	Projections json.RawMessage `json:"projections"`
}

// merge combines both fetch results into one row. Live OEWS employment wins
// over the projection base-year figure.
func merge(
	title string,
	res resolver.Resolution,
	employment bls.EmploymentData,
	projections bls.ProjectionData,
	fetchID string,
	fetchedAt time.Time,
) (occupation.Record, error) {
	rec := occupation.Record{
		Code:                res.Code,
		DisplayTitle:        res.Title,
		RawQueryTitle:       strings.TrimSpace(title),
		NormalizedTitle:     res.NormalizedTitle,
		Category:            res.Category,
		CurrentEmployment:   employment.Employment,
		ProjectedEmployment: projections.ProjectedEmployment,
		PercentChange:       projections.PercentChange,
		AnnualOpenings:      projections.AnnualOpenings,
		MedianWage:          employment.MedianWage,
		MeanWage:            employment.MeanWage,
		DataYear:            employment.DataYear,
		ProjectionBaseYear:  projections.BaseYear,
		ProjectionEndYear:   projections.EndYear,
		LastFetchedAt:       fetchedAt,
	}
	var extra []string
	if rec.CurrentEmployment == nil && projections.BaseEmployment != nil {
		rec.CurrentEmployment = projections.BaseEmployment
		if rec.DataYear == "" {
			rec.DataYear = projections.BaseYear
		}
		extra = append(extra, fmt.Sprintf("current employment taken from the %s projection base year", projections.BaseYear))
	}
	rec.Messages = uniqueMessages(employment.Messages, projections.Messages, extra)

	raw, err := json.Marshal(rawPayloads{FetchID: fetchID, Employment: employment.Raw, Projections: projections.Raw})
	if err != nil {
		return occupation.Record{}, fmt.Errorf("encode raw payloads: %w", err)
	}
	rec.RawPayloads = raw
	return rec, nil
}

func (s *Service) score(
	rec occupation.Record,
	res resolver.Resolution,
	source Source,
	state CacheState,
	logger *zap.Logger,
) UnifiedRecord {
	logger.Debug("pipeline stage", zap.String("stage", string(stageScoring)))
	category := rec.Category
	if !category.Valid() {
		category = res.Category
	}
	out := UnifiedRecord{
		Record:      rec,
		Risk:        s.deps.Scorer.Score(category, rec.Code),
		Source:      source,
		CacheState:  state,
		ResolvedVia: res.Via,
		Trend:       BuildTrend(rec),
	}
	logger.Debug("pipeline stage",
		zap.String("stage", string(stageDone)),
		zap.String("source", string(source)),
		zap.Float64("year5_risk", out.Risk.Year5Risk),
	)
	return out
}

func (s *Service) archive(ctx context.Context, rec occupation.Record, logger *zap.Logger) string {
	if s.deps.Archive == nil || len(rec.RawPayloads) == 0 {
		return ""
	}
	path, err := s.deps.Hasher.ObjectName(s.cfg.ArchivePrefix, rec.Code, rec.RawPayloads)
	if err != nil {
		logger.Warn("name archive object", zap.Error(err))
		return ""
	}
	uri, err := s.deps.Archive.PutObject(ctx, path, archiveContentType, bytes.NewReader(rec.RawPayloads))
	if err != nil {
		logger.Warn("archive raw payloads", zap.String("path", path), zap.Error(err))
		return ""
	}
	logger.Info("raw payloads archived", zap.String("uri", uri))
	return uri
}

func (s *Service) publish(ctx context.Context, out UnifiedRecord, logger *zap.Logger) {
	if s.deps.Publisher == nil {
		return
	}
	event := RefreshEvent{
		FetchID:    out.FetchID,
		Code:       out.Code,
		Title:      out.DisplayTitle,
		FetchedAt:  out.LastFetchedAt,
		Cached:     out.Cached,
		ArchiveURI: out.ArchiveURI,
	}
	id, err := s.deps.Publisher.Publish(ctx, RefreshEventType, event)
	if err != nil {
		logger.Warn("publish refresh event", zap.Error(err))
		return
	}
	logger.Debug("refresh event published", zap.String("message_id", id))
}

func (s *Service) newFetchID() string {
	if s.deps.IDs == nil {
		return ""
	}
	id, err := s.deps.IDs.NewID()
	if err != nil {
		s.logger.Warn("generate fetch id", zap.Error(err))
		return ""
	}
	return id
}

func cacheStateOf(state cache.State) CacheState {
	switch state {
	case cache.Fresh:
		return CacheFresh
	case cache.Stale:
		return CacheStale
	default:
		return CacheAbsent
	}
}

func uniqueMessages(groups ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, m := range group {
			if m == "" {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

func delayOrDefault(d, def time.Duration) time.Duration {
	switch {
	case d == 0:
		return def
	case d < 0:
		return 0
	default:
		return d
	}
}
