package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateAt(t *testing.T) {
	c := NewComposer(Params{})

	tests := []struct {
		name          string
		tenure        int
		monthsToChurn int
		hasChurn      bool
		want          State
	}{
		{"new account", 0, 0, false, StateOnboarding},
		{"last onboarding month", 5, 0, false, StateOnboarding},
		{"steady boundary", 6, 0, false, StateSteady},
		{"steady years in", 30, 0, false, StateSteady},
		{"churn far away", 12, 10, true, StateSteady},
		{"window edge", 12, 6, true, StateDeclining},
		{"month before churn", 12, 1, true, StateDeclining},
		{"early churn during onboarding", 2, 3, true, StateDeclining},
		{"churn month", 12, 0, true, StateChurned},
		{"long after churn", 12, -24, true, StateChurned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.StateAt(tt.tenure, tt.monthsToChurn, tt.hasChurn))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "onboarding", StateOnboarding.String())
	assert.Equal(t, "churned", StateChurned.String())
	assert.Equal(t, "unknown", State(9).String())
}
