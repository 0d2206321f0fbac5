// Package signal composes the per-month usage multiplier from four
// independent components: onboarding growth, calendar seasonality, the
// long-cycle trend, and the pre-churn decline.
package signal

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/smallbiznis/teleforge/internal/profile"
	"github.com/smallbiznis/teleforge/internal/randstream"
)

// Composer evaluates the signal components for one account. It is a pure
// function of its inputs plus the account's random stream.
type Composer struct {
	p Params
}

// NewComposer fills unset params with defaults. Callers that need strict
// validation run Params.Validate first.
func NewComposer(p Params) Composer {
	return Composer{p: p.withDefaults()}
}

// Params returns the effective (default-filled) parameters.
func (c Composer) Params() Params { return c.p }

// Growth is the onboarding ramp: a sigmoid centered halfway through the
// growth window, floored so a brand-new account still registers activity,
// and exactly 1.0 from the end of the window onward.
func (c Composer) Growth(tenure int) float64 {
	if tenure >= c.p.GrowthMonths {
		return 1.0
	}
	if tenure < 0 {
		return c.p.GrowthFloor
	}
	mid := float64(c.p.GrowthMonths) / 2
	s := 1 / (1 + math.Exp(-c.p.GrowthSteepness*(float64(tenure)-mid)))
	return math.Max(c.p.GrowthFloor, s)
}

// Seasonal depends on the calendar month only. Two cosine terms, equally
// weighted so the combined deviation never exceeds the amplitude: an annual
// wave peaking in December and a semiannual wave whose crests sit on the
// December-January and June-July boundaries (half-month phase offset). The
// annual term breaks both ties, so December is the realized winter maximum
// and July a secondary local maximum, with troughs in spring and around
// September.
func (c Composer) Seasonal(m time.Month) float64 {
	annual := math.Cos(2 * math.Pi * float64(int(m)-12) / 12)
	semi := math.Cos(4 * math.Pi * (float64(int(m)) - 0.5) / 12)
	return 1 + c.p.SeasonalAmplitude*(0.5*annual+0.5*semi)
}

// Trend is the repeating multi-year cycle, measured from onboarding
// completion. It ramps linearly from the trough to the peak over the rise
// fraction of the cycle and back down over the remainder, so consecutive
// cycles join without a jump. Held at exactly 1.0 during onboarding.
func (c Composer) Trend(tenure int) float64 {
	if tenure < c.p.GrowthMonths {
		return 1.0
	}
	cycle := float64(c.p.TrendCycleMonths)
	pos := math.Mod(float64(tenure-c.p.GrowthMonths), cycle)
	rise := cycle * c.p.TrendRiseFraction
	span := c.p.TrendPeak - c.p.TrendTrough

	var level float64
	if pos < rise {
		level = c.p.TrendTrough + span*(pos/rise)
	} else {
		level = c.p.TrendPeak - span*((pos-rise)/(cycle-rise))
	}
	return 1 + level
}

// Decline is the pre-churn decay. monthsToChurn is the calendar distance to
// the scheduled churn month; hasChurn=false disables the component. The
// multiplier decays exponentially from 1.0 at the edge of the window down to
// the floor, and is pinned to the floor at and after the churn month.
func (c Composer) Decline(monthsToChurn int, hasChurn bool) float64 {
	if !hasChurn {
		return 1.0
	}
	if monthsToChurn <= 0 {
		return c.p.DeclineFloor
	}
	window := c.p.DeclineMonths
	if monthsToChurn >= window {
		return 1.0
	}
	frac := float64(window-monthsToChurn) / float64(window)
	return math.Pow(c.p.DeclineFloor, frac)
}

// Multiplier combines the four components and clamps the product to the
// configured floor. It never returns zero or a negative value.
func (c Composer) Multiplier(tenure int, m time.Month, monthsToChurn int, hasChurn bool) float64 {
	mult := c.Growth(tenure) * c.Seasonal(m) * c.Trend(tenure) * c.Decline(monthsToChurn, hasChurn)
	return math.Max(mult, c.p.MinMultiplier)
}

// Totals holds the composed top-level metrics for one account-month.
type Totals struct {
	Calls   int64
	Minutes int64
	MAU     int64
}

// Totals applies the composite multiplier to the profile baseline with
// independent gaussian noise per metric. Every value is rounded and clamped
// to a non-negative integer.
func (c Composer) Totals(b profile.Baseline, mult float64, r *rand.Rand) Totals {
	return Totals{
		Calls:   scale(b.Calls, mult, r, c.p.NoiseSigma),
		Minutes: scale(b.Minutes, mult, r, c.p.NoiseSigma),
		MAU:     scale(b.MAU, mult, r, c.p.NoiseSigma),
	}
}

func scale(base int64, mult float64, r *rand.Rand, sigma float64) int64 {
	v := math.Round(float64(base) * mult * randstream.Gaussian(r, sigma))
	if v < 0 {
		return 0
	}
	return int64(v)
}
