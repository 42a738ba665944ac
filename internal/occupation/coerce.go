package occupation

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder values published in place of suppressed or unavailable figures.
var suppressedMarkers = map[string]struct{}{
	"":     {},
	"-":    {},
	"*":    {},
	"**":   {},
	"#":    {},
	"(NA)": {},
	"N/A":  {},
	"NA":   {},
}

// ParseNumber parses a provider value such as "1,234,567" or "$98,220.50".
// Suppression markers and anything unparseable report ok=false.
func ParseNumber(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if _, suppressed := suppressedMarkers[value]; suppressed {
		return 0, false
	}
	value = strings.NewReplacer(",", "", "$", "", " ", "").Replace(value)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Suppressed reports whether raw is one of the provider's suppression markers.
func Suppressed(raw string) bool {
	_, ok := suppressedMarkers[strings.TrimSpace(raw)]
	return ok
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// RoundInt64 rounds f to the nearest int64. ok is false for non-finite input
// and for values outside the int64 range.
func RoundInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	r := math.Round(f)
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return 0, false
	}
	return int64(r), true
}

// CountFromFloat rounds f to a count. Negative, non-finite or out-of-range
// input yields nil.
func CountFromFloat(f float64) *int64 {
	if f < 0 {
		return nil
	}
	n, ok := RoundInt64(f)
	if !ok {
		return nil
	}
	return &n
}

// SanitizeCount drops negative counts.
func SanitizeCount(v *int64) *int64 {
	if v == nil || *v < 0 {
		return nil
	}
	return Int64Ptr(*v)
}

// SanitizeFloat drops NaN and infinite values. Negative values survive.
func SanitizeFloat(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return Float64Ptr(*v)
}

// SanitizeAmount is SanitizeFloat that also drops negative values.
func SanitizeAmount(v *float64) *float64 {
	v = SanitizeFloat(v)
	if v == nil || *v < 0 {
		return nil
	}
	return v
}
