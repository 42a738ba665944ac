package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/search"
)

type fakeFinder struct {
	rows  map[string]occupation.Record
	err   error
	calls []string
}

func (f *fakeFinder) FindByTitle(_ context.Context, normalized string) (occupation.Record, bool, error) {
	f.calls = append(f.calls, normalized)
	if f.err != nil {
		return occupation.Record{}, false, f.err
	}
	rec, ok := f.rows[normalized]
	return rec, ok, nil
}

type fakeSearcher struct {
	matches []search.Match
	err     error
	calls   int
}

func (s *fakeSearcher) Search(context.Context, string, int) ([]search.Match, error) {
	s.calls++
	return s.matches, s.err
}

func TestStaticTableBeatsDatastore(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{rows: map[string]occupation.Record{
		"software developer": {Code: "15-1299", DisplayTitle: "Computer Occupations, All Other"},
	}}
	searcher := &fakeSearcher{}
	r := New(finder, searcher, nil)

	res, err := r.Resolve(context.Background(), "Senior Software Developer II")
	require.NoError(t, err)
	assert.Equal(t, "15-1252", res.Code)
	assert.Equal(t, "Software Developers", res.Title)
	assert.Equal(t, occupation.CategoryComputerMath, res.Category)
	assert.Equal(t, ViaStatic, res.Via)
	assert.Equal(t, "software developer", res.NormalizedTitle)
	assert.Empty(t, finder.calls)
	assert.Zero(t, searcher.calls)
}

func TestDatastoreBeatsSearch(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{rows: map[string]occupation.Record{
		"quantum widget whisperer": {Code: "17-2199", DisplayTitle: "Quantum Widget Whisperer"},
	}}
	searcher := &fakeSearcher{matches: []search.Match{{Code: "11-1021", Title: "General and Operations Managers"}}}
	r := New(finder, searcher, nil)

	res, err := r.Resolve(context.Background(), "Quantum Widget Whisperer")
	require.NoError(t, err)
	assert.Equal(t, "17-2199", res.Code)
	assert.Equal(t, ViaDatastore, res.Via)
	assert.Equal(t, occupation.CategoryArchitectureEngineer, res.Category)
	assert.Zero(t, searcher.calls)
}

func TestSearchFallbackSkipsInvalidCodes(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{matches: []search.Match{
		{Code: "not-a-code", Title: "Broken"},
		{Code: "15-1252.00", Title: "Software Developers"},
	}}
	r := New(&fakeFinder{}, searcher, nil)

	res, err := r.Resolve(context.Background(), "Code Wrangler")
	require.NoError(t, err)
	assert.Equal(t, "15-1252", res.Code)
	assert.Equal(t, "Software Developers", res.Title)
	assert.Equal(t, ViaSearch, res.Via)
}

func TestUnresolvableTitle(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{err: errors.New("db down")}
	searcher := &fakeSearcher{err: errors.New("onet down")}
	r := New(finder, searcher, nil)

	_, err := r.Resolve(context.Background(), "zzz-not-a-job-zzz")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "zzz-not-a-job-zzz", resErr.Title)
	assert.Contains(t, err.Error(), "zzz-not-a-job-zzz")
	assert.Len(t, finder.calls, 1, "a failing datastore is not retried with another key")
	assert.Equal(t, 1, searcher.calls)
}

func TestEmptyTitleAndOptionalStages(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)
	_, err := r.Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve(context.Background(), "Quantum Widget Whisperer")
	require.ErrorIs(t, err, ErrNotFound)

	res, err := r.Resolve(context.Background(), "registered nurse")
	require.NoError(t, err)
	assert.Equal(t, "29-1141", res.Code)
}
