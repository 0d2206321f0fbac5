package randstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForAccountDeterministic(t *testing.T) {
	a := ForAccount(42, 1007)
	b := ForAccount(42, 1007)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestForAccountIndependentStreams(t *testing.T) {
	a := ForAccount(42, 1007)
	b := ForAccount(42, 1008)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Zero(t, same, "adjacent account streams must not collide")
}
