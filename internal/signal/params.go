package signal

import (
	"errors"
	"fmt"
)

// Params carries the tunables of the monthly signal composer. The window
// lengths and amplitude contracts are fixed behavior; the steepness and
// noise values are deliberately configuration, not constants.
type Params struct {
	// onboarding ramp
	GrowthMonths    int     // months before the ramp reaches 1.0
	GrowthSteepness float64 // sigmoid steepness k
	GrowthFloor     float64 // lower bound of the ramp at tenure 0

	// seasonality
	SeasonalAmplitude float64 // peak deviation from baseline

	// long-cycle trend
	TrendCycleMonths  int     // full cycle length, measured from tenure GrowthMonths
	TrendRiseFraction float64 // share of the cycle spent ramping up
	TrendPeak         float64 // relative level at the top of the cycle
	TrendTrough       float64 // relative level at the bottom of the cycle

	// pre-churn decline
	DeclineMonths int     // width of the decay window before the churn month
	DeclineFloor  float64 // multiplier at and after the churn month

	// composition
	MinMultiplier float64 // clamp floor for the composite multiplier
	NoiseSigma    float64 // per-metric gaussian noise on the totals
	RatioSigma    float64 // per-part ratio noise in the decomposer
}

// DefaultParams mirrors the documented contract: 6-month onboarding and
// decline windows, ±15% seasonality, +20%/−10% trend over a 24-month cycle.
func DefaultParams() Params {
	return Params{
		GrowthMonths:      6,
		GrowthSteepness:   1.5,
		GrowthFloor:       0.2,
		SeasonalAmplitude: 0.15,
		TrendCycleMonths:  24,
		TrendRiseFraction: 0.6,
		TrendPeak:         0.20,
		TrendTrough:       -0.10,
		DeclineMonths:     6,
		DeclineFloor:      0.01,
		MinMultiplier:     0.001,
		NoiseSigma:        0.05,
		RatioSigma:        0.03,
	}
}

func (p Params) withDefaults() Params {
	defaults := DefaultParams()
	if p.GrowthMonths <= 0 {
		p.GrowthMonths = defaults.GrowthMonths
	}
	if p.GrowthSteepness <= 0 {
		p.GrowthSteepness = defaults.GrowthSteepness
	}
	if p.GrowthFloor <= 0 {
		p.GrowthFloor = defaults.GrowthFloor
	}
	if p.SeasonalAmplitude <= 0 {
		p.SeasonalAmplitude = defaults.SeasonalAmplitude
	}
	if p.TrendCycleMonths <= 0 {
		p.TrendCycleMonths = defaults.TrendCycleMonths
	}
	if p.TrendRiseFraction <= 0 {
		p.TrendRiseFraction = defaults.TrendRiseFraction
	}
	if p.TrendPeak == 0 {
		p.TrendPeak = defaults.TrendPeak
	}
	if p.TrendTrough == 0 {
		p.TrendTrough = defaults.TrendTrough
	}
	if p.DeclineMonths <= 0 {
		p.DeclineMonths = defaults.DeclineMonths
	}
	if p.DeclineFloor <= 0 {
		p.DeclineFloor = defaults.DeclineFloor
	}
	if p.MinMultiplier <= 0 {
		p.MinMultiplier = defaults.MinMultiplier
	}
	if p.NoiseSigma <= 0 {
		p.NoiseSigma = defaults.NoiseSigma
	}
	if p.RatioSigma <= 0 {
		p.RatioSigma = defaults.RatioSigma
	}
	return p
}

// Validate rejects parameter combinations that would break the composer's
// bound guarantees.
func (p Params) Validate() error {
	switch {
	case p.GrowthFloor >= 1:
		return errors.New("growth floor must be below 1")
	case p.SeasonalAmplitude >= 1:
		return errors.New("seasonal amplitude must be below 1")
	case p.TrendRiseFraction >= 1:
		return errors.New("trend rise fraction must be below 1")
	case p.TrendTrough >= p.TrendPeak:
		return fmt.Errorf("trend trough %.2f must be below peak %.2f", p.TrendTrough, p.TrendPeak)
	case p.TrendTrough <= -1:
		return errors.New("trend trough must stay above -1")
	case p.DeclineFloor >= 1:
		return errors.New("decline floor must be below 1")
	}
	return nil
}
