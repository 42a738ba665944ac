package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ComparisonResult is the outcome for one title of a comparison.
type ComparisonResult struct {
	Record *UnifiedRecord
	Err    error
}

// GetJobsComparisonData runs GetJobData for each distinct title in order and
// waits ComparisonDelay after every live fetch, failed or not, before the
// next title. A failure for one title does not stop the others.
func (s *Service) GetJobsComparisonData(ctx context.Context, titles []string, opts ...Option) map[string]ComparisonResult {
	results := make(map[string]ComparisonResult, len(titles))
	pause := false
	for _, title := range titles {
		if _, done := results[title]; done {
			continue
		}
		if pause {
			if err := s.deps.Sleep(ctx, s.cfg.ComparisonDelay); err != nil {
				results[title] = ComparisonResult{Err: err}
				continue
			}
		}
		rec, err := s.GetJobData(ctx, title, opts...)
		if err != nil {
			s.logger.Info("comparison title failed", zap.String("title", title), zap.Error(err))
			results[title] = ComparisonResult{Err: err}
			var fetchErr *FetchError
			pause = errors.As(err, &fetchErr)
			continue
		}
		results[title] = ComparisonResult{Record: &rec}
		pause = rec.Source == SourceLiveFetch
	}
	return results
}
