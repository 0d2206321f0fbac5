// Package profile holds the fixed catalog of subscriber usage profiles.
//
// A profile bundles the mature per-month baselines for the top-level metrics
// with the ratio tables used to decompose those totals. Profiles are value
// data selected once per account and never mutated.
package profile

import "errors"

var ErrUnknownProfile = errors.New("unknown_profile")

// Profile is the closed set of usage archetypes.
type Profile int

const (
	Heavy Profile = iota
	Medium
	Light
)

var names = [...]string{"heavy", "medium", "light"}

func (p Profile) String() string {
	if p < Heavy || p > Light {
		return "unknown"
	}
	return names[p]
}

// Valid reports whether p is one of the registered profiles.
func (p Profile) Valid() bool { return p >= Heavy && p <= Light }

// Parse maps a profile name to its Profile, failing with ErrUnknownProfile
// for anything outside the catalog.
func Parse(name string) (Profile, error) {
	switch name {
	case "heavy":
		return Heavy, nil
	case "medium":
		return Medium, nil
	case "light":
		return Light, nil
	default:
		return 0, ErrUnknownProfile
	}
}

// All lists the catalog in declaration order.
func All() []Profile { return []Profile{Heavy, Medium, Light} }

// Baseline is the mature monthly level for each top-level metric.
type Baseline struct {
	Calls   int64
	Minutes int64
	MAU     int64
}

// Ratios are the decomposition targets for one profile. Each group is a
// partition: the shares within a group sum to 1.
type Ratios struct {
	// voice/fax split of calls and minutes
	Voice float64
	Fax   float64

	// inbound/outbound split of calls and minutes
	Inbound  float64
	Outbound float64

	// device split of calls
	Hardphone float64
	Softphone float64
	Mobile    float64

	// OS split of mobile calls
	MobileAndroid float64
	MobileIOS     float64

	// call/fax split of the monthly active user count
	CallMAU float64
	FaxMAU  float64
}

var baselines = map[Profile]Baseline{
	Heavy:  {Calls: 150, Minutes: 450, MAU: 28},
	Medium: {Calls: 80, Minutes: 240, MAU: 20},
	Light:  {Calls: 35, Minutes: 100, MAU: 12},
}

var ratios = map[Profile]Ratios{
	Heavy: {
		Voice: 0.90, Fax: 0.10,
		Inbound: 0.53, Outbound: 0.47,
		Hardphone: 0.55, Softphone: 0.28, Mobile: 0.17,
		MobileAndroid: 0.50, MobileIOS: 0.50,
		CallMAU: 0.86, FaxMAU: 0.14,
	},
	Medium: {
		Voice: 0.92, Fax: 0.08,
		Inbound: 0.56, Outbound: 0.44,
		Hardphone: 0.53, Softphone: 0.31, Mobile: 0.16,
		MobileAndroid: 0.53, MobileIOS: 0.47,
		CallMAU: 0.90, FaxMAU: 0.10,
	},
	Light: {
		Voice: 0.94, Fax: 0.06,
		Inbound: 0.57, Outbound: 0.43,
		Hardphone: 0.50, Softphone: 0.37, Mobile: 0.13,
		MobileAndroid: 0.60, MobileIOS: 0.40,
		CallMAU: 0.91, FaxMAU: 0.09,
	},
}

// Baseline returns the profile's monthly metric targets.
func (p Profile) Baseline() Baseline { return baselines[p] }

// Ratios returns the profile's decomposition targets.
func (p Profile) Ratios() Ratios { return ratios[p] }
