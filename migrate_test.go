// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func newTestArena(nGroups, np int) []*Particle {
	arena := make([]*Particle, nGroups*np)
	for i := range arena {
		arena[i] = &Particle{ID: i, Theta: scalarTheta("x", Real, float64(i)), Weight: -float64(i)}
	}
	return arena
}

func TestMigratePreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	arena := newTestArena(3, 4)
	groups := partitionGroups(arena, 3, 4)

	before := make(map[int]bool, len(arena))
	for _, p := range arena {
		before[p.ID] = true
	}

	migrate(groups, rng)

	after := make(map[int]bool, len(arena))
	for _, g := range groups {
		for _, p := range g.particles {
			after[p.ID] = true
		}
	}
	assert.Equal(t, len(before), len(after), "migrate() must not change population size")
	for id := range before {
		assert.Truef(t, after[id], "migrate() lost particle id %d", id)
	}
}

func TestMigrateMovesAtLeastOneParticle(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	arena := newTestArena(3, 4)
	groups := partitionGroups(arena, 3, 4)

	slotOf := func() map[int]int {
		m := make(map[int]int, len(arena))
		for gi, g := range groups {
			for _, p := range g.particles {
				m[p.ID] = gi
			}
		}
		return m
	}
	before := slotOf()
	migrate(groups, rng)
	after := slotOf()

	moved := false
	for id, g := range before {
		if after[id] != g {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatalf("migrate() left every particle in its original group")
	}
}

func TestMigrateNoopWithFewerThanTwoGroups(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	arena := newTestArena(1, 4)
	groups := partitionGroups(arena, 1, 4)
	before := groups[0].particles[0]
	migrate(groups, rng)
	if groups[0].particles[0] != before {
		t.Fatalf("migrate() changed a single-group population")
	}
}

func TestSelectExportIndexDegenerateWeightsReturnsWorst(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	arena := []*Particle{
		{ID: 0, Weight: -1},
		{ID: 1, Weight: math.Inf(-1)},
		{ID: 2, Weight: -3},
	}
	g := group{particles: arena}
	idx := selectExportIndex(g, rng)
	if idx != 1 {
		t.Fatalf("selectExportIndex() with a degenerate weight = %d, want 1 (the non-finite weight)", idx)
	}
}

func TestPickDistinctIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	idx := pickDistinctIndices(5, 3, rng)
	if len(idx) != 3 {
		t.Fatalf("pickDistinctIndices() returned %d indices, want 3", len(idx))
	}
	seen := map[int]bool{}
	for _, v := range idx {
		if seen[v] {
			t.Fatalf("pickDistinctIndices() returned duplicate index %d", v)
		}
		seen[v] = true
	}
}
