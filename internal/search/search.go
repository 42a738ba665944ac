// Package search defines the external title search used when neither the
// static title table nor the datastore knows a title.
package search

import (
	"context"
	"errors"
	"fmt"
)

// Match is one candidate occupation returned by a Searcher.
type Match struct {
	Code  string  `json:"code"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Searcher finds candidate occupations for a free-text title, best first.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Match, error)
}

// Chain queries searchers in order and returns the first non-empty result.
// Errors are collected and only returned when no searcher produced matches.
type Chain []Searcher

// Search implements Searcher.
func (c Chain) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	var errs []error
	for i, s := range c {
		if s == nil {
			continue
		}
		matches, err := s.Search(ctx, query, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("searcher %d: %w", i, err))
			continue
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, errors.Join(errs...)
}
