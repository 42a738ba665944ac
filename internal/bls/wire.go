package bls

import (
	"sort"
	"strings"
)

// statusSucceeded is the body status BLS uses for a processed request.
const statusSucceeded = "REQUEST_SUCCEEDED"

type requestBody struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
	Catalog         bool     `json:"catalog"`
	AnnualAverage   bool     `json:"annualaverage"`
}

type responseBody struct {
	Status       string   `json:"status"`
	ResponseTime int      `json:"responseTime"`
	Message      []string `json:"message"`
	Results      struct {
		Series []Series `json:"series"`
	} `json:"Results"`
}

// Footnote annotates a data point, typically explaining suppression.
type Footnote struct {
	Code string `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

// DataPoint is one observation of a series.
type DataPoint struct {
	Year       string     `json:"year"`
	Period     string     `json:"period"`
	PeriodName string     `json:"periodName,omitempty"`
	Latest     string     `json:"latest,omitempty"`
	Value      string     `json:"value"`
	Footnotes  []Footnote `json:"footnotes,omitempty"`
}

// Series is a time series returned by the API.
type Series struct {
	SeriesID string      `json:"seriesID"`
	Data     []DataPoint `json:"data"`
}

// SeriesResult aggregates every chunk of a FetchSeries call.
type SeriesResult struct {
	Series   []Series `json:"series"`
	Messages []string `json:"messages,omitempty"`
}

// Lookup returns the series with the given ID.
func (r SeriesResult) Lookup(id string) (Series, bool) {
	for _, s := range r.Series {
		if s.SeriesID == id {
			return s, true
		}
	}
	return Series{}, false
}

// Latest returns the most recent data point by year then period.
func (s Series) Latest() (DataPoint, bool) {
	if len(s.Data) == 0 {
		return DataPoint{}, false
	}
	points := s.sorted()
	return points[len(points)-1], true
}

// Earliest returns the oldest data point by year then period.
func (s Series) Earliest() (DataPoint, bool) {
	if len(s.Data) == 0 {
		return DataPoint{}, false
	}
	return s.sorted()[0], true
}

func (s Series) sorted() []DataPoint {
	points := append([]DataPoint(nil), s.Data...)
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Period < points[j].Period
	})
	return points
}

// FootnoteText joins the non-empty footnote texts of p.
func (p DataPoint) FootnoteText() string {
	var parts []string
	for _, f := range p.Footnotes {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "; ")
}
