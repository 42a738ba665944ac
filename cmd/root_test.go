package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/api"
	"github.com/JakeFAU/occupation-risk/internal/bls"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/pipeline"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
)

type fakePipeline struct {
	titles  []string
	refresh []bool
}

func (f *fakePipeline) GetJobData(_ context.Context, title string, opts ...pipeline.Option) (pipeline.UnifiedRecord, error) {
	f.titles = append(f.titles, title)
	f.refresh = append(f.refresh, len(opts) > 0)
	if title == "zzz-not-a-job-zzz" {
		return pipeline.UnifiedRecord{}, &resolver.ResolutionError{Title: title, Err: resolver.ErrNotFound}
	}
	return pipeline.UnifiedRecord{
		Record: occupation.Record{Code: "15-1252", DisplayTitle: "Software Developers", RawQueryTitle: title},
		Source: pipeline.SourceCache,
	}, nil
}

func (f *fakePipeline) GetJobsComparisonData(ctx context.Context, titles []string, opts ...pipeline.Option) map[string]pipeline.ComparisonResult {
	out := map[string]pipeline.ComparisonResult{}
	for _, title := range titles {
		rec, err := f.GetJobData(ctx, title, opts...)
		if err != nil {
			out[title] = pipeline.ComparisonResult{Err: err}
			continue
		}
		out[title] = pipeline.ComparisonResult{Record: &rec}
	}
	return out
}

type fakeProber struct{ result bls.ProbeResult }

func (f fakeProber) Probe(context.Context) bls.ProbeResult { return f.result }

type fakeApp struct {
	pipeline   *fakePipeline
	probe      bls.ProbeResult
	migrated   int
	ran        int
	closed     int
	cfgPath    string
	migrateErr error
}

func (f *fakeApp) Logger() *zap.Logger { return zap.NewNop() }

func (f *fakeApp) Pipeline() api.OccupationService { return f.pipeline }

func (f *fakeApp) Prober() api.Prober { return fakeProber{result: f.probe} }

func (f *fakeApp) Migrate(context.Context) error {
	f.migrated++
	return f.migrateErr
}

func (f *fakeApp) Run(context.Context) error {
	f.ran++
	return nil
}

func (f *fakeApp) Close() error {
	f.closed++
	return nil
}

func run(t *testing.T, fake *fakeApp, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func(_ context.Context, cfgPath string) (App, error) {
		fake.cfgPath = cfgPath
		return fake, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newFakeApp() *fakeApp {
	return &fakeApp{pipeline: &fakePipeline{}, probe: bls.ProbeResult{Reachable: true, Status: 200}}
}

func TestLookupJoinsArgsAndPrintsRecord(t *testing.T) {
	t.Parallel()

	fake := newFakeApp()
	out, err := run(t, fake, "--config", "cfg.yaml", "lookup", "Software", "Developer", "--refresh")
	require.NoError(t, err)

	assert.Equal(t, "cfg.yaml", fake.cfgPath)
	assert.Equal(t, []string{"Software Developer"}, fake.pipeline.titles)
	assert.Equal(t, []bool{true}, fake.pipeline.refresh)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "15-1252", rec["code"])
	assert.Equal(t, 1, fake.closed)
}

func TestLookupReportsResolutionFailure(t *testing.T) {
	t.Parallel()

	_, err := run(t, newFakeApp(), "lookup", "zzz-not-a-job-zzz")
	require.ErrorIs(t, err, resolver.ErrNotFound)
}

func TestCompareListsEveryTitle(t *testing.T) {
	t.Parallel()

	fake := newFakeApp()
	out, err := run(t, fake, "compare", "Software Developer", "zzz-not-a-job-zzz")
	require.NoError(t, err)

	var entries []comparisonOutput
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Software Developer", entries[0].Title)
	require.NotNil(t, entries[0].Record)
	assert.Empty(t, entries[0].Error)
	assert.Equal(t, "zzz-not-a-job-zzz", entries[1].Title)
	assert.Contains(t, entries[1].Error, "not found")
	assert.Equal(t, []bool{false, false}, fake.pipeline.refresh)
}

func TestCompareNeedsTwoTitles(t *testing.T) {
	t.Parallel()

	fake := newFakeApp()
	_, err := run(t, fake, "compare", "Software Developer")
	require.Error(t, err)
	assert.Empty(t, fake.pipeline.titles)
}

func TestProbe(t *testing.T) {
	t.Parallel()

	fake := newFakeApp()
	out, err := run(t, fake, "probe")
	require.NoError(t, err)
	assert.Contains(t, out, `"reachable": true`)

	fake.probe = bls.ProbeResult{Status: 503, Message: "down"}
	_, err = run(t, fake, "probe")
	require.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "down")
}

func TestMigrateAndServe(t *testing.T) {
	t.Parallel()

	fake := newFakeApp()
	_, err := run(t, fake, "migrate")
	require.NoError(t, err)
	_, err = run(t, fake, "serve")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.migrated)
	assert.Equal(t, 1, fake.ran)
	assert.Equal(t, 2, fake.closed)

	fake.migrateErr = errors.New("permission denied for schema public")
	_, err = run(t, fake, "migrate")
	require.ErrorContains(t, err, "permission denied")
}

func TestFactoryFailureStopsCommand(t *testing.T) {
	t.Parallel()

	root := newRootCmd(func(context.Context, string) (App, error) {
		return nil, errors.New("db.dsn is required")
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"probe"})
	err := root.ExecuteContext(context.Background())
	require.ErrorContains(t, err, "failed to initialize application services")
}

func TestResolveAppWithoutApp(t *testing.T) {
	t.Parallel()

	_, err := resolveApp(context.Background())
	require.Error(t, err)
}
