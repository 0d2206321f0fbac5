package signal

// State classifies one account-month. States are derived from the lifecycle
// facts on demand, never stored.
type State int

const (
	StateOnboarding State = iota
	StateSteady
	StateDeclining
	StateChurned
)

var stateNames = [...]string{"onboarding", "steady", "declining", "churned"}

func (s State) String() string {
	if s < StateOnboarding || s > StateChurned {
		return "unknown"
	}
	return stateNames[s]
}

// StateAt derives the lifecycle state for a month with the given tenure and
// distance to the scheduled churn month. Churned is terminal and takes
// precedence; the churn window takes precedence over onboarding so a
// short-lived account that churns early is still marked declining.
func (c Composer) StateAt(tenure, monthsToChurn int, hasChurn bool) State {
	if hasChurn && monthsToChurn <= 0 {
		return StateChurned
	}
	if hasChurn && monthsToChurn <= c.p.DeclineMonths {
		return StateDeclining
	}
	if tenure < c.p.GrowthMonths {
		return StateOnboarding
	}
	return StateSteady
}
