// Package risk scores AI displacement risk from per-category heuristics plus
// bounded jitter.
package risk

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// Score bounds applied to every horizon.
const (
	MinRisk = 2.0
	MaxRisk = 98.0
)

// Tier is the coarse label derived from the five-year risk.
type Tier string

// Tiers in ascending order.
const (
	TierLow      Tier = "Low"
	TierModerate Tier = "Moderate"
	TierHigh     Tier = "High"
	TierVeryHigh Tier = "Very High"
)

const topFactors = 3

// Jitter supplies uniform draws in [0, 1).
type Jitter interface {
	Float64() float64
}

// Assessment is the scored result for one occupation. It is never persisted.
type Assessment struct {
	Code              string              `json:"code"`
	Category          occupation.Category `json:"category"`
	Year1Risk         float64             `json:"year_1_risk"`
	Year5Risk         float64             `json:"year_5_risk"`
	Tier              Tier                `json:"risk_tier"`
	RiskFactors       []string            `json:"risk_factors"`
	ProtectiveFactors []string            `json:"protective_factors"`
	Narrative         string              `json:"narrative"`
}

// Scorer computes assessments. It is safe for concurrent use.
type Scorer struct {
	mu     sync.Mutex
	jitter Jitter
}

// NewScorer returns a scorer backed by a PCG source seeded with seed.
func NewScorer(seed uint64) *Scorer {
	return NewScorerWithJitter(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewScorerWithJitter returns a scorer drawing from j.
func NewScorerWithJitter(j Jitter) *Scorer {
	if j == nil {
		j = rand.New(rand.NewPCG(1, 2))
	}
	return &Scorer{jitter: j}
}

// Score computes the year-1 and year-5 risk for code within category.
func (s *Scorer) Score(category occupation.Category, code string) Assessment {
	if !category.Valid() {
		category = occupation.CategoryGeneral
	}
	p := effectiveProfile(category, code)

	s.mu.Lock()
	j1 := s.draw(p.Variance)
	j5 := s.draw(p.Variance)
	s.mu.Unlock()

	a := Assessment{
		Code:              code,
		Category:          category,
		Year1Risk:         Clamp(p.BaseRisk + p.YearlyIncrease + j1),
		Year5Risk:         Clamp(p.BaseRisk + p.YearlyIncrease*5 + j5),
		RiskFactors:       top(p.RiskFactors),
		ProtectiveFactors: top(p.ProtectiveFactors),
	}
	a.Tier = TierFor(a.Year5Risk)
	a.Narrative = narrative(a)
	return a
}

// draw maps a [0,1) sample to [-variance/2, +variance/2].
func (s *Scorer) draw(variance float64) float64 {
	u := s.jitter.Float64()
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	return (u - 0.5) * variance
}

// Clamp bounds v to [MinRisk, MaxRisk].
func Clamp(v float64) float64 {
	return min(MaxRisk, max(MinRisk, v))
}

// TierFor maps a five-year risk to its tier using thresholds at 30, 50 and 70.
func TierFor(year5 float64) Tier {
	switch {
	case year5 >= 70:
		return TierVeryHigh
	case year5 >= 50:
		return TierHigh
	case year5 >= 30:
		return TierModerate
	default:
		return TierLow
	}
}

func top(factors []string) []string {
	n := min(topFactors, len(factors))
	return append([]string(nil), factors[:n]...)
}

func narrative(a Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s occupations face a %s AI displacement risk, estimated at %.0f%% within one year and %.0f%% within five years.",
		a.Category, strings.ToLower(string(a.Tier)), a.Year1Risk, a.Year5Risk)
	if len(a.RiskFactors) >= 2 {
		fmt.Fprintf(&b, " The main pressures are %s and %s.",
			strings.ToLower(a.RiskFactors[0]), strings.ToLower(a.RiskFactors[1]))
	}
	if len(a.ProtectiveFactors) >= 2 {
		fmt.Fprintf(&b, " %s and %s remain hard to automate.",
			a.ProtectiveFactors[0], strings.ToLower(a.ProtectiveFactors[1]))
	}
	return b.String()
}
