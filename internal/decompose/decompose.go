// Package decompose splits a metric total into sum-consistent integer parts.
//
// Each top-level total is partitioned along several independent dimensions
// (voice/fax, inbound/outbound, device type). The same call is counted once
// per dimension, so every partition must independently sum back to the
// parent total.
package decompose

import (
	"math"
	"math/rand/v2"

	"github.com/smallbiznis/teleforge/internal/randstream"
)

// Split divides total across the target ratios. Each ratio is perturbed by
// independent multiplicative gaussian noise, the perturbed set is
// renormalized, parts are rounded, and the largest part absorbs the rounding
// residual so the parts always sum exactly to total.
//
// A zero total short-circuits to all-zero parts without consuming noise
// draws, so a churned account's record stays cheap and division by zero
// never arises.
func Split(total int64, targets []float64, sigma float64, r *rand.Rand) []int64 {
	parts := make([]int64, len(targets))
	if total == 0 || len(targets) == 0 {
		return parts
	}

	perturbed := make([]float64, len(targets))
	sum := 0.0
	for i, t := range targets {
		w := t * randstream.Gaussian(r, sigma)
		if w < 0 {
			w = 0
		}
		perturbed[i] = w
		sum += w
	}
	if sum <= 0 {
		// degenerate noise outcome: fall back to the unperturbed targets
		copy(perturbed, targets)
		sum = 0
		for _, t := range targets {
			sum += t
		}
	}

	var allocated int64
	for i, w := range perturbed {
		p := int64(math.Round(float64(total) * w / sum))
		parts[i] = p
		allocated += p
	}

	// Largest-remainder correction, applied unconditionally: the largest
	// part absorbs the residual. A negative residual bigger than the
	// largest part spills over to the next largest so no part goes below
	// zero; total >= 0 guarantees termination.
	residual := total - allocated
	for residual != 0 {
		largest := 0
		for i, p := range parts {
			if p > parts[largest] {
				largest = i
			}
		}
		if parts[largest]+residual >= 0 {
			parts[largest] += residual
			residual = 0
		} else {
			residual += parts[largest]
			parts[largest] = 0
		}
	}
	return parts
}

// Pair splits total into exactly two parts with share and 1-share targets.
func Pair(total int64, share, sigma float64, r *rand.Rand) (int64, int64) {
	parts := Split(total, []float64{share, 1 - share}, sigma, r)
	return parts[0], parts[1]
}
