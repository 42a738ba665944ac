package bls

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// projectionLookback is how many years before the current one a projections request spans.
const projectionLookback = 4

// Projections series report employment, change and openings in thousands.
const projectionUnit = 1000

// ProjectionData is the normalized employment projection for one code.
type ProjectionData struct {
	Status              Status          `json:"status"`
	Code                string          `json:"code"`
	BaseYear            string          `json:"base_year"`
	EndYear             string          `json:"end_year"`
	BaseEmployment      *int64          `json:"base_employment"`
	ProjectedEmployment *int64          `json:"projected_employment"`
	NumericChange       *int64          `json:"numeric_change"`
	PercentChange       *float64        `json:"percent_change"`
	AnnualOpenings      *int64          `json:"annual_openings"`
	Messages            []string        `json:"messages,omitempty"`
	Raw                 json.RawMessage `json:"raw,omitempty"`
}

// ProjectionsFetcher fetches employment projections.
type ProjectionsFetcher interface {
	FetchProjections(ctx context.Context, code string) (ProjectionData, error)
}

// FetchProjections fetches base and projected employment, change and annual
// openings for code, scaled from thousands to head counts. Percent change is
// derived from the employment figures when the provider omits it.
func (c *Client) FetchProjections(ctx context.Context, code string) (ProjectionData, error) {
	measures := []string{
		MeasureBaseEmployment,
		MeasureProjectedEmployment,
		MeasureNumericChange,
		MeasurePercentChange,
		MeasureAnnualOpenings,
	}
	ids := make(map[string]string, len(measures))
	ordered := make([]string, 0, len(measures))
	for _, measure := range measures {
		id, err := ProjectionSeriesID(code, measure)
		if err != nil {
			return ProjectionData{Status: StatusError, Code: code, Messages: []string{err.Error()}},
				&APIError{Kind: KindBadRequest, Message: err.Error(), Err: err}
		}
		ids[measure] = id
		ordered = append(ordered, id)
	}

	year := c.clock.Now().Year()
	result, err := c.FetchSeries(ctx, ordered,
		strconv.Itoa(year-projectionLookback), strconv.Itoa(year+c.cfg.ProjectionHorizon))
	if err != nil {
		return ProjectionData{Status: StatusError, Code: code, Messages: []string{err.Error()}}, err
	}

	data := ProjectionData{Code: code, Messages: append([]string(nil), result.Messages...)}

	if s, ok := result.Lookup(ids[MeasureBaseEmployment]); ok {
		if p, ok := s.Earliest(); ok {
			if v, y, ok := pointValue(p, "base-year employment", &data.Messages); ok {
				data.BaseEmployment = occupation.CountFromFloat(v * projectionUnit)
				data.BaseYear = y
			}
		}
	} else {
		data.Messages = append(data.Messages, fmt.Sprintf("base-year employment: series %s not returned", ids[MeasureBaseEmployment]))
	}
	if v, y, ok := latestValue(result, ids[MeasureProjectedEmployment], "projected employment", &data.Messages); ok {
		data.ProjectedEmployment = occupation.CountFromFloat(v * projectionUnit)
		data.EndYear = y
	}
	if v, _, ok := latestValue(result, ids[MeasureNumericChange], "numeric change", &data.Messages); ok {
		if n, ok := occupation.RoundInt64(v * projectionUnit); ok {
			data.NumericChange = &n
		}
	}
	if v, _, ok := latestValue(result, ids[MeasurePercentChange], "percent change", &data.Messages); ok {
		data.PercentChange = occupation.Float64Ptr(v)
	}
	if v, _, ok := latestValue(result, ids[MeasureAnnualOpenings], "annual openings", &data.Messages); ok {
		data.AnnualOpenings = occupation.CountFromFloat(v * projectionUnit)
	}

	if data.PercentChange == nil && data.BaseEmployment != nil && data.ProjectedEmployment != nil && *data.BaseEmployment > 0 {
		pct := PercentChange(*data.BaseEmployment, *data.ProjectedEmployment)
		data.PercentChange = &pct
		data.Messages = append(data.Messages, "percent change derived from base and projected employment")
	}
	if data.NumericChange == nil && data.BaseEmployment != nil && data.ProjectedEmployment != nil {
		n := *data.ProjectedEmployment - *data.BaseEmployment
		data.NumericChange = &n
	}

	data.Status = StatusSuccess
	if data.BaseEmployment == nil && data.ProjectedEmployment == nil && data.PercentChange == nil && data.AnnualOpenings == nil {
		data.Status = StatusError
		data.Messages = append(data.Messages, fmt.Sprintf("no projection data available for %s", code))
	}
	data.Raw = rawResult(result, c.logger)
	c.logger.Debug("fetched projections",
		zap.String("code", code),
		zap.String("status", string(data.Status)),
		zap.String("base_year", data.BaseYear),
		zap.String("end_year", data.EndYear),
	)
	return data, nil
}

// PercentChange returns (projected-base)/base as a percentage rounded to one decimal.
func PercentChange(base, projected int64) float64 {
	if base == 0 {
		return 0
	}
	pct := float64(projected-base) / float64(base) * 100
	return math.Round(pct*10) / 10
}
