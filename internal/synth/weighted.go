// Package synth implements the synthetic data generators: products, customers,
// and orders with their items. All generators draw from an injected
// *rand.Rand, so a fixed seed reproduces every batch byte for byte.
package synth

import (
	"math/rand"
	"sort"

	"dukacore/pkg/domain"
)

// WeightedChooser draws indices from a fixed positive weight vector with
// replacement. Weights are relative; an index with weight 3 is three times as
// likely as one with weight 1.
type WeightedChooser struct {
	cumulative []int
	total      int
}

// NewWeightedChooser builds a chooser over weights. The vector must be
// non-empty and every weight must be positive.
func NewWeightedChooser(weights []int) (*WeightedChooser, error) {
	if len(weights) == 0 {
		return nil, domain.ConfigError{Field: "weights", Reason: "empty weight vector"}
	}
	cumulative := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return nil, domain.ConfigError{Field: "weights", Reason: "weights must be positive"}
		}
		total += w
		cumulative[i] = total
	}
	return &WeightedChooser{cumulative: cumulative, total: total}, nil
}

// Pick returns a weighted-random index using r.
func (c *WeightedChooser) Pick(r *rand.Rand) int {
	target := r.Intn(c.total)
	return sort.SearchInts(c.cumulative, target+1)
}

// TierWeights builds the staple-tier weight vector for a list of product ids:
// ids at or below cutoff receive stapleWeight, the rest baseWeight. The bias
// models higher-velocity goods without excluding the standard tier.
func TierWeights(productIDs []int, cutoff, stapleWeight, baseWeight int) []int {
	weights := make([]int, len(productIDs))
	for i, id := range productIDs {
		if id <= cutoff {
			weights[i] = stapleWeight
		} else {
			weights[i] = baseWeight
		}
	}
	return weights
}
