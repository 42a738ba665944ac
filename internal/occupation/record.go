package occupation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRecord marks a record that is missing essential fields.
var ErrInvalidRecord = errors.New("invalid occupation record")

// Record is the persisted statistics row for one SOC code.
type Record struct {
	Code                string          `json:"code"`
	DisplayTitle        string          `json:"display_title"`
	RawQueryTitle       string          `json:"raw_query_title"`
	NormalizedTitle     string          `json:"normalized_title"`
	Category            Category        `json:"category"`
	CurrentEmployment   *int64          `json:"current_employment"`
	ProjectedEmployment *int64          `json:"projected_employment"`
	PercentChange       *float64        `json:"percent_change"`
	AnnualOpenings      *int64          `json:"annual_openings"`
	MedianWage          *float64        `json:"median_wage"`
	MeanWage            *float64        `json:"mean_wage"`
	DataYear            string          `json:"data_year"`
	ProjectionBaseYear  string          `json:"projection_base_year"`
	ProjectionEndYear   string          `json:"projection_end_year"`
	RawPayloads         json.RawMessage `json:"raw_source_payloads,omitempty"`
	Messages            []string        `json:"messages,omitempty"`
	LastFetchedAt       time.Time       `json:"last_fetch_timestamp"`
	LastWrittenAt       time.Time       `json:"last_write_timestamp"`
}

// Validate rejects records lacking a well-formed code or title fields.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.Code) == "":
		return fmt.Errorf("%w: code is empty", ErrInvalidRecord)
	case !ValidCode(r.Code):
		return fmt.Errorf("%w: malformed code %q", ErrInvalidRecord, r.Code)
	case strings.TrimSpace(r.DisplayTitle) == "":
		return fmt.Errorf("%w: display title is empty for %s", ErrInvalidRecord, r.Code)
	case strings.TrimSpace(r.RawQueryTitle) == "":
		return fmt.Errorf("%w: raw query title is empty for %s", ErrInvalidRecord, r.Code)
	case r.LastFetchedAt.IsZero():
		return fmt.Errorf("%w: fetch timestamp missing for %s", ErrInvalidRecord, r.Code)
	}
	if len(r.RawPayloads) > 0 && !json.Valid(r.RawPayloads) {
		return fmt.Errorf("%w: raw payloads for %s are not valid JSON", ErrInvalidRecord, r.Code)
	}
	return nil
}

// Sanitized returns a copy with numeric fields coerced to storable values and
// the derived columns (category, normalized title) filled in.
func (r Record) Sanitized() Record {
	out := r
	out.CurrentEmployment = SanitizeCount(r.CurrentEmployment)
	out.ProjectedEmployment = SanitizeCount(r.ProjectedEmployment)
	out.AnnualOpenings = SanitizeCount(r.AnnualOpenings)
	out.PercentChange = SanitizeFloat(r.PercentChange)
	out.MedianWage = SanitizeAmount(r.MedianWage)
	out.MeanWage = SanitizeAmount(r.MeanWage)
	if !out.Category.Valid() || out.Category == CategoryGeneral {
		out.Category = CategoryForCode(out.Code)
	}
	if out.NormalizedTitle == "" {
		out.NormalizedTitle = NormalizeTitle(out.RawQueryTitle)
	}
	if out.Messages != nil {
		out.Messages = append([]string(nil), r.Messages...)
	}
	return out
}

// Fresh reports whether the record was fetched less than window before now.
func (r Record) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.LastFetchedAt) < window
}
