package signal

import (
	"math"
	"testing"
	"time"

	"github.com/smallbiznis/teleforge/internal/profile"
	"github.com/smallbiznis/teleforge/internal/randstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthRamp(t *testing.T) {
	c := NewComposer(Params{})

	prev := 0.0
	for tenure := 0; tenure < 6; tenure++ {
		g := c.Growth(tenure)
		assert.GreaterOrEqual(t, g, 0.2, "tenure %d", tenure)
		assert.Less(t, g, 1.0, "still onboarding at tenure %d", tenure)
		assert.GreaterOrEqual(t, g, prev, "ramp must be non-decreasing")
		prev = g
	}

	assert.Equal(t, 1.0, c.Growth(6), "exactly 1.0 at the window boundary")
	assert.Equal(t, 1.0, c.Growth(7))
	assert.Equal(t, 1.0, c.Growth(120))
}

func TestGrowthMonotonicityProperty(t *testing.T) {
	// month 5 vs month 0, trend/season/decline isolated away
	c := NewComposer(Params{})
	assert.GreaterOrEqual(t, c.Growth(5), c.Growth(0))
}

func TestSeasonalBound(t *testing.T) {
	c := NewComposer(Params{})
	for m := time.January; m <= time.December; m++ {
		s := c.Seasonal(m)
		assert.GreaterOrEqual(t, s, 0.85, "month %s", m)
		assert.LessOrEqual(t, s, 1.15, "month %s", m)
	}
}

func TestSeasonalPeaksAndTroughs(t *testing.T) {
	c := NewComposer(Params{})

	// December carries the year's maximum, ahead of every other month.
	dec := c.Seasonal(time.December)
	for m := time.January; m <= time.November; m++ {
		assert.Greater(t, dec, c.Seasonal(m), "December must beat %s", m)
	}

	// July is a secondary local maximum.
	assert.Greater(t, c.Seasonal(time.July), c.Seasonal(time.June))
	assert.Greater(t, c.Seasonal(time.July), c.Seasonal(time.August))

	// Troughs land in spring and around September.
	assert.Less(t, c.Seasonal(time.March), 1.0)
	assert.Less(t, c.Seasonal(time.April), 1.0)
	assert.Less(t, c.Seasonal(time.September), c.Seasonal(time.August))
	assert.Less(t, c.Seasonal(time.September), c.Seasonal(time.October))
}

func TestTrendHeldDuringOnboarding(t *testing.T) {
	c := NewComposer(Params{})
	for tenure := 0; tenure < 6; tenure++ {
		assert.Equal(t, 1.0, c.Trend(tenure))
	}
}

func TestTrendCycleShape(t *testing.T) {
	c := NewComposer(Params{})

	// trough at cycle start, peak at the end of the rise segment
	assert.InDelta(t, 0.90, c.Trend(6), 1e-9)
	peakTenure := 6 + int(float64(c.Params().TrendCycleMonths)*c.Params().TrendRiseFraction)
	peak := c.Trend(peakTenure)
	assert.Greater(t, peak, 1.15)
	assert.LessOrEqual(t, peak, 1.20)

	// bounded by the contract everywhere
	for tenure := 6; tenure < 6+72; tenure++ {
		v := c.Trend(tenure)
		assert.GreaterOrEqual(t, v, 0.90-1e-9, "tenure %d", tenure)
		assert.LessOrEqual(t, v, 1.20+1e-9, "tenure %d", tenure)
	}
}

func TestTrendContinuousAtCycleBoundary(t *testing.T) {
	c := NewComposer(Params{})
	// last month of cycle one vs first month of cycle two: the step must be
	// no larger than the steepest in-cycle slope.
	span := 0.30
	downSlope := span / (24 * 0.4)
	step := math.Abs(c.Trend(6+24) - c.Trend(6+23))
	assert.LessOrEqual(t, step, downSlope+1e-9)
}

func TestDeclineMonotoneDecay(t *testing.T) {
	c := NewComposer(Params{})

	assert.Equal(t, 1.0, c.Decline(12, true), "outside the window")
	assert.Equal(t, 1.0, c.Decline(6, true), "window edge")
	assert.Equal(t, 1.0, c.Decline(3, false), "no churn scheduled")

	prev := 1.0
	for u := 6; u >= 1; u-- {
		d := c.Decline(u, true)
		assert.LessOrEqual(t, d, prev, "decay must be non-increasing, u=%d", u)
		assert.Greater(t, d, 0.0)
		prev = d
	}

	// at and after the churn month the floor holds forever
	assert.Equal(t, 0.01, c.Decline(0, true))
	assert.Equal(t, 0.01, c.Decline(-1, true))
	assert.Equal(t, 0.01, c.Decline(-48, true))
}

func TestDeclineStrictlyBelowOneInsideWindow(t *testing.T) {
	// immediate-churn edge: one month before churn is already in decline
	c := NewComposer(Params{})
	assert.Less(t, c.Decline(1, true), 1.0)
}

func TestMultiplierClampFloor(t *testing.T) {
	c := NewComposer(Params{})
	// churned month on a brand-new account: every component at its minimum
	m := c.Multiplier(0, time.March, 0, true)
	assert.GreaterOrEqual(t, m, c.Params().MinMultiplier)
	assert.Greater(t, m, 0.0)
}

func TestSteadyMonth20Bounds(t *testing.T) {
	// 36-month heavy steady account: month 20 composite (before noise) must
	// stay inside the seasonal×trend envelope around baseline.
	c := NewComposer(Params{})
	mult := c.Multiplier(20, time.September, 0, false)
	assert.GreaterOrEqual(t, mult, 0.85*0.90)
	assert.LessOrEqual(t, mult, 1.15*1.20)
}

func TestTotalsNonNegative(t *testing.T) {
	c := NewComposer(Params{})
	r := randstream.ForAccount(1, 1)
	b := profile.Light.Baseline()
	for i := 0; i < 500; i++ {
		tot := c.Totals(b, 0.001, r)
		assert.GreaterOrEqual(t, tot.Calls, int64(0))
		assert.GreaterOrEqual(t, tot.Minutes, int64(0))
		assert.GreaterOrEqual(t, tot.MAU, int64(0))
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	bad := DefaultParams()
	bad.TrendTrough = 0.5
	assert.Error(t, bad.Validate())

	bad = DefaultParams()
	bad.SeasonalAmplitude = 1.2
	assert.Error(t, bad.Validate())
}
