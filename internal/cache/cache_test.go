package cache

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/occupation-risk/internal/clock/system"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/storage/memory"
)

var fetchedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func record() occupation.Record {
	return occupation.Record{
		Code:              "15-1252",
		DisplayTitle:      "Software Developers",
		RawQueryTitle:     "Software Developer",
		CurrentEmployment: occupation.Int64Ptr(1693800),
		LastFetchedAt:     fetchedAt,
	}
}

type failingRepo struct {
	memory.OccupationStore
	err error
}

func (f *failingRepo) Get(context.Context, string) (occupation.Record, bool, error) {
	return occupation.Record{}, false, f.err
}

func (f *failingRepo) Upsert(context.Context, occupation.Record) (time.Time, error) {
	return time.Time{}, f.err
}

func (f *failingRepo) Ping(context.Context) error { return f.err }

func newCache(t *testing.T, repo Repository, clk Clock) *Cache {
	t.Helper()
	c, err := New(repo, clk, 0, nil)
	require.NoError(t, err)
	return c
}

func TestLookupFreshnessBoundary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewOccupationStore()
	clk := system.NewManual(fetchedAt)
	c := newCache(t, store, clk)
	assert.Equal(t, DefaultFreshnessWindow, c.Window())

	entry, err := c.Lookup(ctx, "15-1252")
	require.NoError(t, err)
	assert.Equal(t, Absent, entry.State)

	_, err = c.Upsert(ctx, record())
	require.NoError(t, err)

	clk.Set(fetchedAt.Add(DefaultFreshnessWindow - time.Second))
	entry, err = c.Lookup(ctx, "15-1252")
	require.NoError(t, err)
	assert.Equal(t, Fresh, entry.State)
	assert.Equal(t, "Software Developers", entry.Record.DisplayTitle)

	clk.Set(fetchedAt.Add(DefaultFreshnessWindow + time.Second))
	entry, err = c.Lookup(ctx, "15-1252")
	require.NoError(t, err)
	assert.Equal(t, Stale, entry.State)
	assert.Equal(t, "15-1252", entry.Record.Code)

	_, ok, err := c.GetIfFresh(ctx, "15-1252")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len(), "stale rows are kept")
}

func TestUpsertRejectsInvalidRecordsBeforeWriting(t *testing.T) {
	t.Parallel()

	store := memory.NewOccupationStore()
	c := newCache(t, store, system.NewManual(fetchedAt))

	for name, mutate := range map[string]func(*occupation.Record){
		"empty code":     func(r *occupation.Record) { r.Code = "" },
		"malformed code": func(r *occupation.Record) { r.Code = "151252" },
		"no title":       func(r *occupation.Record) { r.DisplayTitle = " " },
		"no query title": func(r *occupation.Record) { r.RawQueryTitle = "" },
		"no fetch stamp": func(r *occupation.Record) { r.LastFetchedAt = time.Time{} },
	} {
		rec := record()
		mutate(&rec)
		_, err := c.Upsert(context.Background(), rec)
		require.ErrorIs(t, err, ErrInvalidRecord, name)
	}
	assert.Zero(t, store.Writes())
}

func TestUpsertSanitizesAndStampsWriteTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewOccupationStore()
	clk := system.NewManual(fetchedAt.Add(time.Minute))
	c := newCache(t, store, clk)

	rec := record()
	rec.ProjectedEmployment = occupation.Int64Ptr(-5)
	rec.PercentChange = occupation.Float64Ptr(math.NaN())
	rec.MeanWage = occupation.Float64Ptr(math.Inf(1))

	written, err := c.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.Nil(t, written.ProjectedEmployment)
	assert.Nil(t, written.PercentChange)
	assert.Nil(t, written.MeanWage)
	assert.Equal(t, occupation.CategoryComputerMath, written.Category)
	assert.Equal(t, "software developer", written.NormalizedTitle)
	assert.Equal(t, fetchedAt.Add(time.Minute), written.LastWrittenAt)

	stored, ok, err := store.Get(ctx, "15-1252")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, written, stored)

	// A clock that steps backwards never moves the write stamp back.
	clk.Set(fetchedAt.Add(-time.Hour))
	written, err = c.Upsert(ctx, record())
	require.NoError(t, err)
	assert.Equal(t, fetchedAt.Add(time.Minute), written.LastWrittenAt)
	stored, _, err = store.Get(ctx, "15-1252")
	require.NoError(t, err)
	assert.Equal(t, fetchedAt.Add(time.Minute), stored.LastWrittenAt)
}

func TestFirstWriteNeverPredatesFetch(t *testing.T) {
	t.Parallel()

	store := memory.NewOccupationStore()
	c := newCache(t, store, system.NewManual(fetchedAt.Add(-time.Hour)))

	written, err := c.Upsert(context.Background(), record())
	require.NoError(t, err)
	assert.Equal(t, fetchedAt, written.LastWrittenAt)
}

func TestRepeatedUpsertKeepsOneRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewOccupationStore()
	clk := system.NewManual(fetchedAt.Add(time.Minute))
	c := newCache(t, store, clk)

	first, err := c.Upsert(ctx, record())
	require.NoError(t, err)
	clk.Advance(time.Hour)
	second, err := c.Upsert(ctx, record())
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.Writes())
	assert.False(t, second.LastWrittenAt.Before(first.LastWrittenAt))
	assert.Equal(t, fetchedAt.Add(time.Minute+time.Hour), second.LastWrittenAt)

	entry, err := c.Lookup(ctx, "15-1252")
	require.NoError(t, err)
	assert.Equal(t, Fresh, entry.State)
	assert.Equal(t, second, entry.Record)
}

func TestPersistenceErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("connection refused")
	c := newCache(t, &failingRepo{err: boom}, system.NewManual(fetchedAt))

	_, err := c.Lookup(ctx, "15-1252")
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "get", perr.Op)
	require.ErrorIs(t, err, boom)

	_, err = c.Upsert(ctx, record())
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "upsert", perr.Op)

	require.ErrorIs(t, c.Ping(ctx), boom)
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, system.New(), 0, nil)
	require.Error(t, err)
	_, err = New(memory.NewOccupationStore(), nil, 0, nil)
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fresh", Fresh.String())
	assert.Equal(t, "stale", Stale.String())
	assert.Equal(t, "absent", Absent.String())
}
