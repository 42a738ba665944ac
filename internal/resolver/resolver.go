// Package resolver maps free-text job titles to SOC codes. It tries the
// static title table, then titles already stored in the datastore, then an
// external search. It never falls back to a guessed code.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/metrics"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/search"
)

// DefaultSearchLimit is how many candidates are requested from the searcher.
const DefaultSearchLimit = 5

// ErrNotFound reports that no stage could resolve a title.
var ErrNotFound = errors.New("occupation code not found")

// Via names the stage that produced a Resolution.
type Via string

// Resolution stages.
const (
	ViaStatic    Via = "static"
	ViaDatastore Via = "datastore"
	ViaSearch    Via = "search"
)

// Resolution is a resolved title.
type Resolution struct {
	Code            string              `json:"code"`
	Title           string              `json:"title"`
	NormalizedTitle string              `json:"normalized_title"`
	Category        occupation.Category `json:"category"`
	Via             Via                 `json:"via"`
}

// ResolutionError is returned when a title cannot be mapped to a code.
type ResolutionError struct {
	Title string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Title, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// TitleFinder looks up a stored occupation row by normalized title.
type TitleFinder interface {
	FindByTitle(ctx context.Context, normalized string) (occupation.Record, bool, error)
}

// Resolver resolves job titles.
type Resolver struct {
	finder      TitleFinder
	searcher    search.Searcher
	searchLimit int
	logger      *zap.Logger
}

// New builds a Resolver. finder and searcher are optional stages.
func New(finder TitleFinder, searcher search.Searcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		finder:      finder,
		searcher:    searcher,
		searchLimit: DefaultSearchLimit,
		logger:      logger.Named("resolver"),
	}
}

// Resolve maps jobTitle to a SOC code. Failures are *ResolutionError wrapping ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, jobTitle string) (Resolution, error) {
	title := strings.TrimSpace(jobTitle)
	if title == "" {
		metrics.ObserveResolution("miss")
		return Resolution{}, &ResolutionError{Title: jobTitle, Err: fmt.Errorf("%w: title is empty", ErrNotFound)}
	}
	normalized := occupation.NormalizeTitle(title)

	if ref, ok := occupation.LookupTitle(title); ok {
		return r.resolved(title, normalized, ref.Code, ref.Title, ViaStatic), nil
	}

	if res, ok := r.fromDatastore(ctx, title, normalized); ok {
		return res, nil
	}

	if res, ok := r.fromSearch(ctx, title, normalized); ok {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return Resolution{}, &ResolutionError{Title: title, Err: err}
	}
	metrics.ObserveResolution("miss")
	r.logger.Info("title not resolved", zap.String("title", title), zap.String("normalized", normalized))
	return Resolution{}, &ResolutionError{Title: title, Err: ErrNotFound}
}

func (r *Resolver) fromDatastore(ctx context.Context, title, normalized string) (Resolution, bool) {
	if r.finder == nil {
		return Resolution{}, false
	}
	keys := []string{normalized}
	if lowered := strings.ToLower(title); lowered != normalized {
		keys = append(keys, lowered)
	}
	for _, key := range keys {
		rec, ok, err := r.finder.FindByTitle(ctx, key)
		if err != nil {
			r.logger.Warn("datastore title lookup failed", zap.String("title", key), zap.Error(err))
			return Resolution{}, false
		}
		if ok && occupation.ValidCode(rec.Code) {
			display := rec.DisplayTitle
			if std, known := occupation.StandardTitle(rec.Code); known {
				display = std
			}
			return r.resolved(title, normalized, rec.Code, display, ViaDatastore), true
		}
	}
	return Resolution{}, false
}

func (r *Resolver) fromSearch(ctx context.Context, title, normalized string) (Resolution, bool) {
	if r.searcher == nil {
		return Resolution{}, false
	}
	matches, err := r.searcher.Search(ctx, title, r.searchLimit)
	if err != nil {
		r.logger.Warn("title search failed", zap.String("title", title), zap.Error(err))
		return Resolution{}, false
	}
	for _, m := range matches {
		code, err := occupation.NormalizeCode(m.Code)
		if err != nil {
			continue
		}
		display := strings.TrimSpace(m.Title)
		if std, known := occupation.StandardTitle(code); known {
			display = std
		}
		if display == "" {
			continue
		}
		return r.resolved(title, normalized, code, display, ViaSearch), true
	}
	return Resolution{}, false
}

func (r *Resolver) resolved(title, normalized, code, display string, via Via) Resolution {
	metrics.ObserveResolution(string(via))
	r.logger.Debug("title resolved",
		zap.String("title", title),
		zap.String("code", code),
		zap.String("via", string(via)),
	)
	return Resolution{
		Code:            code,
		Title:           display,
		NormalizedTitle: normalized,
		Category:        occupation.CategoryForCode(code),
		Via:             via,
	}
}
