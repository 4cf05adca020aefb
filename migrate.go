// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"

	"golang.org/x/exp/rand"
)

// migrate implements the cross-group migration operator of spec.md
// §4.6. It draws k groups (k uniform over {2,...,len(groups)}),
// chooses one particle to export from each (weighted toward the
// worst), and rotates the exported particles one position around the
// selected groups.
//
// Groups hold pointers into the shared particle arena, so migration
// moves whole particles (identity, accept/lp traces, and RNG included)
// between groups rather than copying theta/weight values; this
// trivially satisfies "migration never re-evaluates weight" and
// "the multiset of particles is unchanged by a migration step", since
// no particle is created, destroyed, or evaluated — only the slot that
// currently holds it changes.
func migrate(groups []group, rng *rand.Rand) {
	n := len(groups)
	if n < 2 {
		return
	}
	k := rng.Intn(n-1) + 2 // uniform over {2, ..., n}
	selected := pickDistinctIndices(n, k, rng)

	type slot struct {
		group, idx int
	}
	slots := make([]slot, k)
	exported := make([]*Particle, k)
	for i, gi := range selected {
		idx := selectExportIndex(groups[gi], rng)
		slots[i] = slot{group: gi, idx: idx}
		exported[i] = groups[gi].particles[idx]
	}

	// Rotate-right by one: the particle at position i moves into the
	// slot originally selected at position i+1 (mod k).
	for i, s := range slots {
		groups[s.group].particles[s.idx] = exported[(i-1+k)%k]
	}
}

// pickDistinctIndices chooses k distinct indices from [0, n) uniformly
// without replacement.
func pickDistinctIndices(n, k int, rng *rand.Rand) []int {
	if k > n {
		panic("demcmc: cannot pick more distinct indices than available")
	}
	chosen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for len(out) < k {
		i := rng.Intn(n)
		if chosen[i] {
			continue
		}
		chosen[i] = true
		out = append(out, i)
	}
	return out
}

// selectExportIndex picks the particle within g to export for
// migration: with probability proportional to exp(-weight) under the
// usual numerically-stabilized softmax, or the single worst
// (lowest-weight) particle if any weight is non-finite or the softmax
// degenerates to NaN (spec.md §4.6).
func selectExportIndex(g group, rng *rand.Rand) int {
	n := len(g.particles)
	worst := 0
	degenerate := false
	for i, p := range g.particles {
		w := p.Weight
		if math.IsInf(w, 0) || math.IsNaN(w) {
			degenerate = true
		}
		if p.Weight < g.particles[worst].Weight {
			worst = i
		}
	}
	if degenerate {
		return worst
	}

	maxNegW := -g.particles[worst].Weight
	probs := make([]float64, n)
	var sum float64
	for i, p := range g.particles {
		e := math.Exp(-p.Weight - maxNegW)
		probs[i] = e
		sum += e
	}
	if sum == 0 || math.IsNaN(sum) {
		return worst
	}

	u := rng.Float64() * sum
	var cum float64
	for i, pr := range probs {
		cum += pr
		if u <= cum {
			return i
		}
	}
	return n - 1
}
