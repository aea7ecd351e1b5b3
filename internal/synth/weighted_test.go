package synth

import (
	"errors"
	"math/rand"
	"testing"

	"dukacore/pkg/domain"
)

func TestWeightedChooserRejectsEmptyVector(t *testing.T) {
	if _, err := NewWeightedChooser(nil); err == nil {
		t.Fatal("expected error for empty weight vector")
	}
}

func TestWeightedChooserRejectsNonPositiveWeights(t *testing.T) {
	if _, err := NewWeightedChooser([]int{1, 0, 2}); err == nil {
		t.Fatal("expected error for zero weight")
	}
	var cfgErr domain.ConfigError
	_, err := NewWeightedChooser([]int{-1})
	if err == nil {
		t.Fatal("expected error for negative weight")
	}
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
}

func TestWeightedChooserBiasesTowardHeavierWeights(t *testing.T) {
	chooser, err := NewWeightedChooser([]int{3, 1})
	if err != nil {
		t.Fatalf("new chooser: %v", err)
	}
	rng := rand.New(rand.NewSource(7))
	counts := [2]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[chooser.Pick(rng)]++
	}
	if counts[0]+counts[1] != draws {
		t.Fatalf("picks out of range: %v", counts)
	}
	// Expected ratio 3:1; anything under 2:1 over 10k draws means the
	// cumulative walk is broken, not that we got unlucky.
	if counts[0] < 2*counts[1] {
		t.Fatalf("staple index not favored: %v", counts)
	}
}

func TestWeightedChooserCoversAllIndices(t *testing.T) {
	chooser, err := NewWeightedChooser([]int{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("new chooser: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[chooser.Pick(rng)] = true
	}
	for i := 0; i < 4; i++ {
		if !seen[i] {
			t.Fatalf("index %d never drawn", i)
		}
	}
}

func TestTierWeights(t *testing.T) {
	weights := TierWeights([]int{1, 2, 3, 4, 5}, 3, 3, 1)
	want := []int{3, 3, 3, 1, 1}
	for i, w := range want {
		if weights[i] != w {
			t.Fatalf("weights = %v, want %v", weights, want)
		}
	}
}
