package occupation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForCode(t *testing.T) {
	t.Parallel()

	tests := map[string]Category{
		"15-1252": CategoryComputerMath,
		"31-9094": CategoryHealthcareSupport,
		"43-9021": CategoryOfficeAdmin,
		"53-3032": CategoryTransportation,
		"99-0000": CategoryGeneral,
		"":        CategoryGeneral,
		"1":       CategoryGeneral,
	}
	for code, want := range tests {
		assert.Equal(t, want, CategoryForCode(code), code)
	}
}

func TestEveryPrefixMapsToKnownCategory(t *testing.T) {
	t.Parallel()

	for prefix, cat := range prefixCategories {
		assert.True(t, cat.Valid(), prefix)
		assert.NotEqual(t, CategoryGeneral, cat, prefix)
	}
	assert.Len(t, Categories(), len(prefixCategories)+1)
}

func TestParseCategoryFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryLegal, ParseCategory(" Legal "))
	assert.Equal(t, CategoryGeneral, ParseCategory("Wizardry"))
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"15-1252", "151252", "15-1252.00", " 15-1252 "} {
		code, err := NormalizeCode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "15-1252", code)
	}
	_, err := NormalizeCode("15-12")
	require.Error(t, err)
	assert.Equal(t, "151252", DigitsOnly("15-1252"))
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Sr. Software Engineer II":  "software engineer",
		"Senior Data Scientist":     "data scientist",
		"  Lead   Line-Cook ":       "line cook",
		"Junior Accountant 2":       "accountant",
		"Registered Nurse III":      "registered nurse",
		"Staff Software Engineer":   "software engineer",
		"Principal":                 "principal",
		"Entry Level Data Analyst":  "data analyst",
		"Police and Sheriff's Unit": "police and sheriffs unit",
		"":                          "",
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeTitle(raw), raw)
	}
}

func TestLookupTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Software Developer":               "15-1252",
		"software developers":              "15-1252",
		"Senior Software Engineer":         "15-1252",
		"Medical Transcriptionist":         "31-9094",
		"Data Entry Clerk":                 "43-9021",
		"Truck Drivers":                    "53-3032",
		"Customer Service Representatives": "43-4051",
		"Assistant Principal":              "11-9032",
		"Chief Executive":                  "11-1011",
		"15-2051":                          "15-2051",
		"Accountants and Auditors":         "13-2011",
		"X-Ray Technician":                 "29-2034",
		"zzz-not-a-job-zzz":                "",
		"Registered Nurses":                "29-1141",
		"Heavy Equipment Operator I":       "47-2073",
	}
	for raw, want := range tests {
		ref, ok := LookupTitle(raw)
		if want == "" {
			assert.False(t, ok, raw)
			continue
		}
		require.True(t, ok, raw)
		assert.Equal(t, want, ref.Code, raw)
		assert.NotEmpty(t, ref.Title, raw)
	}
}

func TestReferenceOccupationsSortedAndComplete(t *testing.T) {
	t.Parallel()

	refs := ReferenceOccupations()
	require.Len(t, refs, len(standardTitles))
	for i := 1; i < len(refs); i++ {
		assert.Less(t, refs[i-1].Code, refs[i].Code)
	}
	refs[0].Title = "mutated"
	assert.NotEqual(t, "mutated", ReferenceOccupations()[0].Title)
	assert.GreaterOrEqual(t, len(Aliases()), 300)
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	v, ok := ParseNumber("1,234,567")
	require.True(t, ok)
	assert.InDelta(t, 1234567, v, 0)

	v, ok = ParseNumber("$98,220.50")
	require.True(t, ok)
	assert.InDelta(t, 98220.5, v, 1e-9)

	for _, raw := range []string{"-", "*", "#", "", "(NA)", "abc", "NaN", "Inf"} {
		_, ok := ParseNumber(raw)
		assert.False(t, ok, raw)
	}
	assert.True(t, Suppressed(" * "))
}

func TestSanitizers(t *testing.T) {
	t.Parallel()

	assert.Nil(t, SanitizeCount(Int64Ptr(-1)))
	assert.Equal(t, int64(5), *SanitizeCount(Int64Ptr(5)))
	assert.Nil(t, SanitizeFloat(Float64Ptr(math.NaN())))
	assert.Nil(t, SanitizeFloat(Float64Ptr(math.Inf(1))))
	assert.InDelta(t, -3.2, *SanitizeFloat(Float64Ptr(-3.2)), 1e-9)
	assert.Nil(t, SanitizeAmount(Float64Ptr(-10)))
	assert.Nil(t, CountFromFloat(math.NaN()))
	assert.Equal(t, int64(3), *CountFromFloat(2.6))
	assert.Nil(t, CountFromFloat(-0.6))
	assert.Nil(t, CountFromFloat(math.Pow(2, 63)))
	assert.Nil(t, CountFromFloat(1e300))
	big := CountFromFloat(math.Pow(2, 62))
	require.NotNil(t, big)
	assert.Equal(t, int64(1)<<62, *big)
}

func TestRoundInt64(t *testing.T) {
	t.Parallel()

	n, ok := RoundInt64(-293.5)
	require.True(t, ok)
	assert.Equal(t, int64(-294), n)

	_, ok = RoundInt64(math.Pow(2, 63))
	assert.False(t, ok)
	_, ok = RoundInt64(-1e19)
	assert.False(t, ok)
	_, ok = RoundInt64(math.Inf(-1))
	assert.False(t, ok)
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	valid := Record{Code: "15-1252", DisplayTitle: "Software Developers", RawQueryTitle: "software developer", LastFetchedAt: now}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*Record){
		"empty code":     func(r *Record) { r.Code = "" },
		"bad code":       func(r *Record) { r.Code = "151252" },
		"no display":     func(r *Record) { r.DisplayTitle = " " },
		"no raw title":   func(r *Record) { r.RawQueryTitle = "" },
		"no fetch stamp": func(r *Record) { r.LastFetchedAt = time.Time{} },
		"bad payload":    func(r *Record) { r.RawPayloads = []byte("{") },
	}
	for name, mutate := range cases {
		rec := valid
		mutate(&rec)
		err := rec.Validate()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidRecord), name)
	}
}

func TestRecordSanitizedFillsDerivedFields(t *testing.T) {
	t.Parallel()

	rec := Record{
		Code:              "15-1252",
		DisplayTitle:      "Software Developers",
		RawQueryTitle:     "Senior Software Developer",
		CurrentEmployment: Int64Ptr(-4),
		MedianWage:        Float64Ptr(math.NaN()),
		PercentChange:     Float64Ptr(-1.5),
	}
	out := rec.Sanitized()
	assert.Nil(t, out.CurrentEmployment)
	assert.Nil(t, out.MedianWage)
	require.NotNil(t, out.PercentChange)
	assert.Equal(t, CategoryComputerMath, out.Category)
	assert.Equal(t, "software developer", out.NormalizedTitle)
}

func TestRecordFreshBoundary(t *testing.T) {
	t.Parallel()

	window := 90 * 24 * time.Hour
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{LastFetchedAt: now.Add(-window)}
	assert.False(t, rec.Fresh(now, window))
	assert.True(t, rec.Fresh(now.Add(-time.Second), window))
	assert.False(t, rec.Fresh(now.Add(time.Second), window))
}
