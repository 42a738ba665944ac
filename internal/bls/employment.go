package bls

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// Status is the outcome carried by the typed fetch results.
type Status string

// Typed result statuses.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// oewsLookback is how many years before the current one an OEWS request spans.
const oewsLookback = 3

// EmploymentData is the normalized OEWS employment and wage result for one code.
type EmploymentData struct {
	Status     Status          `json:"status"`
	Code       string          `json:"code"`
	Employment *int64          `json:"employment"`
	MeanWage   *float64        `json:"mean_wage"`
	MedianWage *float64        `json:"median_wage"`
	DataYear   string          `json:"data_year"`
	Messages   []string        `json:"messages,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

// EmploymentFetcher fetches OEWS employment and wages.
type EmploymentFetcher interface {
	FetchEmploymentWages(ctx context.Context, code string) (EmploymentData, error)
}

// FetchEmploymentWages fetches national employment, mean wage and median
// wage for code, keeping the most recent data point of each series.
func (c *Client) FetchEmploymentWages(ctx context.Context, code string) (EmploymentData, error) {
	ids := make(map[string]string, 3)
	for _, measure := range []string{MeasureEmployment, MeasureMeanWage, MeasureMedianWage} {
		id, err := OEWSSeriesID(code, measure)
		if err != nil {
			return EmploymentData{Status: StatusError, Code: code, Messages: []string{err.Error()}},
				&APIError{Kind: KindBadRequest, Message: err.Error(), Err: err}
		}
		ids[measure] = id
	}

	year := c.clock.Now().Year()
	result, err := c.FetchSeries(ctx,
		[]string{ids[MeasureEmployment], ids[MeasureMeanWage], ids[MeasureMedianWage]},
		strconv.Itoa(year-oewsLookback), strconv.Itoa(year))
	if err != nil {
		return EmploymentData{Status: StatusError, Code: code, Messages: []string{err.Error()}}, err
	}

	data := EmploymentData{Code: code, Messages: append([]string(nil), result.Messages...)}
	if v, y, ok := latestValue(result, ids[MeasureEmployment], "employment", &data.Messages); ok {
		data.Employment = occupation.CountFromFloat(v)
		data.DataYear = maxYear(data.DataYear, y)
	}
	if v, y, ok := latestValue(result, ids[MeasureMeanWage], "mean wage", &data.Messages); ok {
		data.MeanWage = occupation.SanitizeAmount(occupation.Float64Ptr(v))
		data.DataYear = maxYear(data.DataYear, y)
	}
	if v, y, ok := latestValue(result, ids[MeasureMedianWage], "median wage", &data.Messages); ok {
		data.MedianWage = occupation.SanitizeAmount(occupation.Float64Ptr(v))
		data.DataYear = maxYear(data.DataYear, y)
	}

	data.Status = StatusSuccess
	if data.Employment == nil && data.MeanWage == nil && data.MedianWage == nil {
		data.Status = StatusError
		data.Messages = append(data.Messages, fmt.Sprintf("no employment or wage data available for %s", code))
	}
	data.Raw = rawResult(result, c.logger)
	c.logger.Debug("fetched employment and wages",
		zap.String("code", code),
		zap.String("status", string(data.Status)),
		zap.String("data_year", data.DataYear),
	)
	return data, nil
}

// latestValue reads the most recent point of series id. Missing or suppressed
// values append a message and report ok=false.
func latestValue(result SeriesResult, id, label string, messages *[]string) (float64, string, bool) {
	s, ok := result.Lookup(id)
	if !ok {
		*messages = append(*messages, fmt.Sprintf("%s: series %s not returned", label, id))
		return 0, "", false
	}
	p, ok := s.Latest()
	if !ok {
		*messages = append(*messages, fmt.Sprintf("%s: series %s has no data", label, id))
		return 0, "", false
	}
	return pointValue(p, label, messages)
}

func pointValue(p DataPoint, label string, messages *[]string) (float64, string, bool) {
	v, ok := occupation.ParseNumber(p.Value)
	if !ok {
		msg := fmt.Sprintf("%s for %s is suppressed or unavailable (value %q)", label, p.Year, p.Value)
		if fn := p.FootnoteText(); fn != "" {
			msg += ": " + fn
		}
		*messages = append(*messages, msg)
		return 0, p.Year, false
	}
	return v, p.Year, true
}

func maxYear(a, b string) string {
	if b > a {
		return b
	}
	return a
}

func rawResult(result SeriesResult, logger *zap.Logger) json.RawMessage {
	raw, err := json.Marshal(result)
	if err != nil {
		logger.Warn("encode raw series payload", zap.Error(err))
		return nil
	}
	return raw
}
