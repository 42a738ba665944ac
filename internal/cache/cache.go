// Package cache decides whether a stored occupation row can be served or must
// be refetched, and guards every write to the datastore.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/metrics"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// DefaultFreshnessWindow is how long a fetched row is served without refetching.
const DefaultFreshnessWindow = 90 * 24 * time.Hour

// ErrInvalidRecord is returned by Upsert for rows missing essential fields.
var ErrInvalidRecord = occupation.ErrInvalidRecord

// Repository persists occupation rows keyed by SOC code.
type Repository interface {
	Get(ctx context.Context, code string) (occupation.Record, bool, error)
	Upsert(ctx context.Context, rec occupation.Record) (time.Time, error)
	FindByTitle(ctx context.Context, normalized string) (occupation.Record, bool, error)
	Ping(ctx context.Context) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// State is the freshness of a stored row as observed by Lookup.
type State int

// Lookup states.
const (
	Absent State = iota
	Stale
	Fresh
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "absent"
	}
}

// Entry is the tagged result of a lookup. Record is the zero value when State is Absent.
type Entry struct {
	State  State
	Record occupation.Record
}

// PersistenceError wraps a datastore failure.
type PersistenceError struct {
	Op   string
	Code string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Code, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Cache wraps a Repository with freshness decisions.
type Cache struct {
	repo   Repository
	clock  Clock
	window time.Duration
	logger *zap.Logger
}

// New builds a Cache. A non-positive window falls back to DefaultFreshnessWindow.
func New(repo Repository, clock Clock, window time.Duration, logger *zap.Logger) (*Cache, error) {
	if repo == nil {
		return nil, errors.New("cache: repository is required")
	}
	if clock == nil {
		return nil, errors.New("cache: clock is required")
	}
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{repo: repo, clock: clock, window: window, logger: logger.Named("cache")}, nil
}

// Window returns the configured freshness window.
func (c *Cache) Window() time.Duration { return c.window }

// Lookup reports whether code has a fresh, stale or no stored row.
func (c *Cache) Lookup(ctx context.Context, code string) (Entry, error) {
	rec, ok, err := c.repo.Get(ctx, code)
	if err != nil {
		metrics.ObserveCacheLookup("error")
		return Entry{}, &PersistenceError{Op: "get", Code: code, Err: err}
	}
	entry := Entry{State: Absent}
	if ok {
		entry.Record = rec
		entry.State = Stale
		if rec.Fresh(c.clock.Now(), c.window) {
			entry.State = Fresh
		}
	}
	metrics.ObserveCacheLookup(entry.State.String())
	c.logger.Debug("cache lookup", zap.String("code", code), zap.Stringer("state", entry.State))
	return entry, nil
}

// GetIfFresh returns the stored row only when it is fresh. Stale rows are
// left in place and reported as a miss.
func (c *Cache) GetIfFresh(ctx context.Context, code string) (occupation.Record, bool, error) {
	entry, err := c.Lookup(ctx, code)
	if err != nil {
		return occupation.Record{}, false, err
	}
	if entry.State != Fresh {
		return occupation.Record{}, false, nil
	}
	return entry.Record, true, nil
}

// Upsert validates, sanitizes and stamps rec before writing it. It returns the
// row as written. Invalid rows never reach the repository.
func (c *Cache) Upsert(ctx context.Context, rec occupation.Record) (occupation.Record, error) {
	if err := rec.Validate(); err != nil {
		metrics.ObserveCacheWrite("invalid")
		return occupation.Record{}, err
	}
	out := rec.Sanitized()
	now := c.clock.Now().UTC()
	if now.Before(out.LastFetchedAt) {
		now = out.LastFetchedAt
	}
	out.LastWrittenAt = now

	written, err := c.repo.Upsert(ctx, out)
	if err != nil {
		metrics.ObserveCacheWrite("error")
		return out, &PersistenceError{Op: "upsert", Code: out.Code, Err: err}
	}
	out.LastWrittenAt = written
	metrics.ObserveCacheWrite("ok")
	c.logger.Debug("cache write", zap.String("code", out.Code), zap.Time("written_at", out.LastWrittenAt))
	return out, nil
}

// FindByTitle looks a row up by normalized title.
func (c *Cache) FindByTitle(ctx context.Context, normalized string) (occupation.Record, bool, error) {
	rec, ok, err := c.repo.FindByTitle(ctx, normalized)
	if err != nil {
		return occupation.Record{}, false, &PersistenceError{Op: "find", Code: normalized, Err: err}
	}
	return rec, ok, nil
}

// Ping checks the datastore.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.repo.Ping(ctx); err != nil {
		return &PersistenceError{Op: "ping", Err: err}
	}
	return nil
}
