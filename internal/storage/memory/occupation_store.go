package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// OccupationStore keeps occupation rows in memory. It mirrors the Postgres
// repository and is used for tests and offline runs.
type OccupationStore struct {
	mu     sync.RWMutex
	rows   map[string]occupation.Record
	writes int
}

// NewOccupationStore creates an empty store.
func NewOccupationStore() *OccupationStore {
	return &OccupationStore{rows: make(map[string]occupation.Record)}
}

// Get returns the row for code.
func (s *OccupationStore) Get(_ context.Context, code string) (occupation.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[code]
	if !ok {
		return occupation.Record{}, false, nil
	}
	return cloneRecord(rec), true, nil
}

// Upsert inserts or replaces the row keyed by rec.Code. Like the Postgres
// store it keeps the later of the old and new write stamps and returns it.
func (s *OccupationStore) Upsert(_ context.Context, rec occupation.Record) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := cloneRecord(rec)
	if prev, ok := s.rows[rec.Code]; ok && prev.LastWrittenAt.After(row.LastWrittenAt) {
		row.LastWrittenAt = prev.LastWrittenAt
	}
	s.rows[rec.Code] = row
	s.writes++
	return row.LastWrittenAt, nil
}

// FindByTitle matches the stored normalized title or the lowercased display
// and query titles. The most recently fetched match wins.
func (s *OccupationStore) FindByTitle(_ context.Context, normalized string) (occupation.Record, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(normalized))
	if needle == "" {
		return occupation.Record{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  occupation.Record
		found bool
	)
	for _, rec := range s.rows {
		if rec.NormalizedTitle != needle &&
			strings.ToLower(rec.DisplayTitle) != needle &&
			strings.ToLower(rec.RawQueryTitle) != needle {
			continue
		}
		if !found || rec.LastFetchedAt.After(best.LastFetchedAt) {
			best = rec
			found = true
		}
	}
	if !found {
		return occupation.Record{}, false, nil
	}
	return cloneRecord(best), true, nil
}

// Ping always succeeds.
func (s *OccupationStore) Ping(context.Context) error { return nil }

// Len reports how many rows are stored.
func (s *OccupationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Writes reports how many upserts were accepted.
func (s *OccupationStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func cloneRecord(rec occupation.Record) occupation.Record {
	out := rec
	out.CurrentEmployment = cloneInt(rec.CurrentEmployment)
	out.ProjectedEmployment = cloneInt(rec.ProjectedEmployment)
	out.AnnualOpenings = cloneInt(rec.AnnualOpenings)
	out.PercentChange = cloneFloat(rec.PercentChange)
	out.MedianWage = cloneFloat(rec.MedianWage)
	out.MeanWage = cloneFloat(rec.MeanWage)
	if rec.RawPayloads != nil {
		out.RawPayloads = append([]byte(nil), rec.RawPayloads...)
	}
	if rec.Messages != nil {
		out.Messages = append([]string(nil), rec.Messages...)
	}
	return out
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
