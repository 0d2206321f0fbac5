package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Profile
		wantErr error
	}{
		{"heavy", Heavy, nil},
		{"medium", Medium, nil},
		{"light", Light, nil},
		{"enterprise", 0, ErrUnknownProfile},
		{"", 0, ErrUnknownProfile},
		{"Heavy", 0, ErrUnknownProfile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaselines(t *testing.T) {
	assert.Equal(t, Baseline{Calls: 150, Minutes: 450, MAU: 28}, Heavy.Baseline())
	assert.Equal(t, Baseline{Calls: 80, Minutes: 240, MAU: 20}, Medium.Baseline())
	assert.Equal(t, Baseline{Calls: 35, Minutes: 100, MAU: 12}, Light.Baseline())
}

func TestRatioGroupsPartition(t *testing.T) {
	for _, p := range All() {
		r := p.Ratios()
		groups := map[string][]float64{
			"voice/fax":  {r.Voice, r.Fax},
			"in/out":     {r.Inbound, r.Outbound},
			"device":     {r.Hardphone, r.Softphone, r.Mobile},
			"mobile os":  {r.MobileAndroid, r.MobileIOS},
			"mau":        {r.CallMAU, r.FaxMAU},
		}
		for name, parts := range groups {
			sum := 0.0
			for _, v := range parts {
				assert.Greater(t, v, 0.0, "%s %s share must be positive", p, name)
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "%s %s shares must sum to 1", p, name)
		}
	}
}
