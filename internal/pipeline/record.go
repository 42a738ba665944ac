package pipeline

import (
	"math"
	"strconv"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
	"github.com/JakeFAU/occupation-risk/internal/risk"
)

// Source says where a record's statistics came from.
type Source string

// Record sources.
const (
	SourceCache     Source = "cache"
	SourceLiveFetch Source = "live-fetch"
)

// CacheState is the cache state observed before serving a record.
type CacheState string

// Observed cache states.
const (
	CacheFresh    CacheState = "fresh"
	CacheStale    CacheState = "stale"
	CacheAbsent   CacheState = "absent"
	CacheBypassed CacheState = "bypassed"
)

// TrendPoint is one year of the employment trend.
type TrendPoint struct {
	Year       int   `json:"year"`
	Employment int64 `json:"employment"`
	Projected  bool  `json:"projected"`
}

// UnifiedRecord is what consumers receive: the stored statistics, the risk
// assessment and how the data was obtained.
type UnifiedRecord struct {
	occupation.Record
	Risk        risk.Assessment `json:"risk"`
	Source      Source          `json:"source"`
	CacheState  CacheState      `json:"cache_state"`
	ResolvedVia resolver.Via    `json:"resolved_via"`
	Cached      bool            `json:"cached"`
	FetchID     string          `json:"fetch_id,omitempty"`
	ArchiveURI  string          `json:"archive_uri,omitempty"`
	Trend       []TrendPoint    `json:"trend,omitempty"`
}

// BuildTrend interpolates employment linearly from the projection base year to
// the projection end year, one point per year. Current employment anchors the
// base year. Projected employment is derived from percent change when missing.
// It returns nil when the range or the figures are unusable.
func BuildTrend(rec occupation.Record) []TrendPoint {
	startYear, err := strconv.Atoi(firstNonEmpty(rec.ProjectionBaseYear, rec.DataYear))
	if err != nil {
		return nil
	}
	endYear, err := strconv.Atoi(rec.ProjectionEndYear)
	if err != nil || endYear <= startYear || rec.CurrentEmployment == nil {
		return nil
	}
	start := float64(*rec.CurrentEmployment)
	var end float64
	switch {
	case rec.ProjectedEmployment != nil:
		end = float64(*rec.ProjectedEmployment)
	case rec.PercentChange != nil:
		end = start * (1 + *rec.PercentChange/100)
	default:
		return nil
	}

	span := float64(endYear - startYear)
	points := make([]TrendPoint, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		frac := float64(year-startYear) / span
		points = append(points, TrendPoint{
			Year:       year,
			Employment: int64(math.Round(start + (end-start)*frac)),
			Projected:  year > startYear,
		})
	}
	return points
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
