package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

type fixedJitter float64

func (f fixedJitter) Float64() float64 { return float64(f) }

func TestScoreStaysWithinBoundsForEveryProfile(t *testing.T) {
	t.Parallel()

	draws := []float64{0, 0.25, 0.5, 0.999999}
	codes := []string{"00-0000", "31-9094", "43-9021", "15-1252"}
	for _, cat := range occupation.Categories() {
		for _, d := range draws {
			scorer := NewScorerWithJitter(fixedJitter(d))
			for _, code := range codes {
				a := scorer.Score(cat, code)
				assert.GreaterOrEqual(t, a.Year1Risk, MinRisk, "%s %s %v", cat, code, d)
				assert.LessOrEqual(t, a.Year1Risk, MaxRisk, "%s %s %v", cat, code, d)
				assert.GreaterOrEqual(t, a.Year5Risk, MinRisk, "%s %s %v", cat, code, d)
				assert.LessOrEqual(t, a.Year5Risk, MaxRisk, "%s %s %v", cat, code, d)
			}
		}
	}
}

func TestScoreIsDeterministicAtMidpointJitter(t *testing.T) {
	t.Parallel()

	scorer := NewScorerWithJitter(fixedJitter(0.5))
	a := scorer.Score(occupation.CategoryComputerMath, "15-1252")

	p := ProfileFor(occupation.CategoryComputerMath)
	assert.InDelta(t, p.BaseRisk+p.YearlyIncrease, a.Year1Risk, 1e-9)
	assert.InDelta(t, p.BaseRisk+5*p.YearlyIncrease, a.Year5Risk, 1e-9)
	assert.Equal(t, TierFor(a.Year5Risk), a.Tier)
	assert.Len(t, a.RiskFactors, 3)
	assert.Len(t, a.ProtectiveFactors, 3)
	assert.Contains(t, a.Narrative, string(occupation.CategoryComputerMath))
	assert.Contains(t, a.Narrative, "ai code generation")
}

func TestJitterIsBoundedByHalfVariance(t *testing.T) {
	t.Parallel()

	p := ProfileFor(occupation.CategoryOfficeAdmin)
	low := NewScorerWithJitter(fixedJitter(0)).Score(occupation.CategoryOfficeAdmin, "43-6014")
	high := NewScorerWithJitter(fixedJitter(0.999999)).Score(occupation.CategoryOfficeAdmin, "43-6014")

	assert.InDelta(t, p.BaseRisk+p.YearlyIncrease-p.Variance/2, low.Year1Risk, 1e-9)
	assert.InDelta(t, p.BaseRisk+p.YearlyIncrease+p.Variance/2, high.Year1Risk, 1e-4)
}

func TestOverrideRaisesFloorsAndReplacesTopFactors(t *testing.T) {
	t.Parallel()

	scorer := NewScorerWithJitter(fixedJitter(0.5))
	generic := scorer.Score(occupation.CategoryHealthcareSupport, "31-9092")
	transcription := scorer.Score(occupation.CategoryHealthcareSupport, "31-9094")

	o, ok := OverrideFor("31-9094")
	require.True(t, ok)
	assert.Greater(t, transcription.Year5Risk, generic.Year5Risk)
	assert.InDelta(t, Clamp(o.MinBaseRisk+5*o.MinYearlyIncrease), transcription.Year5Risk, 1e-9)
	assert.Equal(t, o.TopRiskFactor, transcription.RiskFactors[0])
	assert.Equal(t, o.TopProtective, transcription.ProtectiveFactors[0])
	assert.Equal(t, TierVeryHigh, transcription.Tier)

	// the shared profile table is untouched
	assert.NotEqual(t, o.TopRiskFactor, ProfileFor(occupation.CategoryHealthcareSupport).RiskFactors[0])
}

func TestOverrideNeverLowersProfile(t *testing.T) {
	t.Parallel()

	for code, o := range overrides {
		p := effectiveProfile(occupation.CategoryForCode(code), code)
		base := ProfileFor(occupation.CategoryForCode(code))
		assert.GreaterOrEqual(t, p.BaseRisk, base.BaseRisk, code)
		assert.GreaterOrEqual(t, p.BaseRisk, o.MinBaseRisk, code)
		assert.GreaterOrEqual(t, p.YearlyIncrease, base.YearlyIncrease, code)
	}
}

func TestTierThresholds(t *testing.T) {
	t.Parallel()

	tests := map[float64]Tier{
		2:     TierLow,
		29.99: TierLow,
		30:    TierModerate,
		49.99: TierModerate,
		50:    TierHigh,
		69.99: TierHigh,
		70:    TierVeryHigh,
		98:    TierVeryHigh,
	}
	for score, want := range tests {
		assert.Equal(t, want, TierFor(score), "%v", score)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, MinRisk, Clamp(-50), 0)
	assert.InDelta(t, MaxRisk, Clamp(250), 0)
	assert.InDelta(t, 42.5, Clamp(42.5), 0)
}

func TestSeededScorersAgree(t *testing.T) {
	t.Parallel()

	a := NewScorer(42)
	b := NewScorer(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Score(occupation.CategorySales, "41-2011"), b.Score(occupation.CategorySales, "41-2011"))
	}
}

func TestUnknownCategoryUsesGeneralProfile(t *testing.T) {
	t.Parallel()

	a := NewScorerWithJitter(fixedJitter(0.5)).Score(occupation.Category("bogus"), "99-9999")
	assert.Equal(t, occupation.CategoryGeneral, a.Category)
	p := ProfileFor(occupation.CategoryGeneral)
	assert.InDelta(t, p.BaseRisk+p.YearlyIncrease, a.Year1Risk, 1e-9)
}

func TestProfileForReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	p := ProfileFor(occupation.CategoryOfficeAdmin)
	want := p.RiskFactors[0]
	p.RiskFactors[0] = "mutated"
	p.ProtectiveFactors[0] = "mutated"

	again := ProfileFor(occupation.CategoryOfficeAdmin)
	assert.Equal(t, want, again.RiskFactors[0])
	assert.NotEqual(t, "mutated", again.ProtectiveFactors[0])

	a := NewScorerWithJitter(fixedJitter(0.5)).Score(occupation.CategoryOfficeAdmin, "43-9999")
	assert.NotContains(t, a.Narrative, "mutated")
}
