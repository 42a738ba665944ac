package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/occupation-risk/internal/bls"
	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
)

func TestBuildTrendInterpolatesLinearly(t *testing.T) {
	t.Parallel()

	rec := occupation.Record{
		CurrentEmployment:   occupation.Int64Ptr(1000),
		ProjectedEmployment: occupation.Int64Ptr(2000),
		ProjectionBaseYear:  "2023",
		ProjectionEndYear:   "2033",
	}
	points := BuildTrend(rec)
	require.Len(t, points, 11)
	assert.Equal(t, TrendPoint{Year: 2023, Employment: 1000}, points[0])
	assert.Equal(t, TrendPoint{Year: 2028, Employment: 1500, Projected: true}, points[5])
	assert.Equal(t, TrendPoint{Year: 2033, Employment: 2000, Projected: true}, points[10])
}

func TestBuildTrendDerivesEndFromPercentChange(t *testing.T) {
	t.Parallel()

	rec := occupation.Record{
		CurrentEmployment: occupation.Int64Ptr(200),
		PercentChange:     occupation.Float64Ptr(-10),
		DataYear:          "2024",
		ProjectionEndYear: "2034",
	}
	points := BuildTrend(rec)
	require.Len(t, points, 11)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, int64(180), points[10].Employment)
}

func TestBuildTrendRejectsUnusableRecords(t *testing.T) {
	t.Parallel()

	cases := map[string]occupation.Record{
		"no years":      {CurrentEmployment: occupation.Int64Ptr(10), ProjectedEmployment: occupation.Int64Ptr(12)},
		"reversed":      {CurrentEmployment: occupation.Int64Ptr(10), ProjectedEmployment: occupation.Int64Ptr(12), ProjectionBaseYear: "2033", ProjectionEndYear: "2023"},
		"no employment": {ProjectedEmployment: occupation.Int64Ptr(12), ProjectionBaseYear: "2023", ProjectionEndYear: "2033"},
		"no target":     {CurrentEmployment: occupation.Int64Ptr(10), ProjectionBaseYear: "2023", ProjectionEndYear: "2033"},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, BuildTrend(rec))
		})
	}
}

func TestMergeFallsBackToProjectionBaseEmployment(t *testing.T) {
	t.Parallel()

	res := resolver.Resolution{
		Code:            "29-1141",
		Title:           "Registered Nurses",
		NormalizedTitle: "registered nurse",
		Category:        occupation.CategoryHealthcarePractitioner,
	}
	employment := bls.EmploymentData{
		Status:   bls.StatusError,
		Messages: []string{"employment: series OEUN000000000000029114101 has no data"},
		Raw:      json.RawMessage(`{"series":[]}`),
	}
	projections := bls.ProjectionData{
		Status:              bls.StatusSuccess,
		BaseYear:            "2023",
		EndYear:             "2033",
		BaseEmployment:      occupation.Int64Ptr(3300000),
		ProjectedEmployment: occupation.Int64Ptr(3500000),
		PercentChange:       occupation.Float64Ptr(6.1),
		Messages:            []string{"employment: series OEUN000000000000029114101 has no data"},
		Raw:                 json.RawMessage(`{"series":[{"seriesID":"EPUEP29114101"}]}`),
	}
	fetchedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rec, err := merge("  Registered Nurse ", res, employment, projections, "fetch-1", fetchedAt)
	require.NoError(t, err)
	require.NoError(t, rec.Validate())
	assert.Equal(t, "Registered Nurse", rec.RawQueryTitle)
	assert.Equal(t, "Registered Nurses", rec.DisplayTitle)
	require.NotNil(t, rec.CurrentEmployment)
	assert.Equal(t, int64(3300000), *rec.CurrentEmployment)
	assert.Equal(t, "2023", rec.DataYear)
	assert.Equal(t, fetchedAt, rec.LastFetchedAt)
	assert.Equal(t, []string{
		"employment: series OEUN000000000000029114101 has no data",
		"current employment taken from the 2023 projection base year",
	}, rec.Messages)

	var raw rawPayloads
	require.NoError(t, json.Unmarshal(rec.RawPayloads, &raw))
	assert.Equal(t, "fetch-1", raw.FetchID)
	assert.JSONEq(t, `{"series":[]}`, string(raw.Employment))
	assert.JSONEq(t, `{"series":[{"seriesID":"EPUEP29114101"}]}`, string(raw.Projections))
}

func TestDelayOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, delayOrDefault(0, time.Second))
	assert.Zero(t, delayOrDefault(-1, time.Second))
	assert.Equal(t, 3*time.Second, delayOrDefault(3*time.Second, time.Second))
}
