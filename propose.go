// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// fixedGamma returns the canonical DE-MCMC scale 2.38/sqrt(2*dEff)
// (spec.md §4.3).
func fixedGamma(dEff int) float64 {
	return 2.38 / math.Sqrt(2*float64(dEff))
}

// gammaFor draws γ according to policy. GammaVariable multiplies the
// fixed value by Uniform(0.5, 1.0); GammaRandom multiplies it by a
// narrow symmetric Uniform(0.8, 1.2) factor (see SPEC_FULL.md's Open
// Question resolutions for why this range was chosen over
// GammaVariable's wider one).
func gammaFor(policy GammaPolicy, dEff int, rng *rand.Rand) float64 {
	base := fixedGamma(dEff)
	switch policy {
	case GammaVariable:
		u := distuv.Uniform{Min: 0.5, Max: 1.0, Src: rng}
		return u.Rand() * base
	case GammaRandom:
		u := distuv.Uniform{Min: 0.8, Max: 1.2, Src: rng}
		return u.Rand() * base
	default:
		return base
	}
}

// pickDistinctPeers chooses k distinct indices from [0, n) other than
// exclude, uniformly without replacement.
func pickDistinctPeers(n, k int, exclude int, rng *rand.Rand) []int {
	avail := n
	if exclude >= 0 && exclude < n {
		avail--
	}
	if avail < k {
		panic("demcmc: group too small to pick distinct peers")
	}
	chosen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for len(out) < k {
		i := rng.Intn(n)
		if i == exclude || chosen[i] {
			continue
		}
		chosen[i] = true
		out = append(out, i)
	}
	return out
}

// dEffFor returns the number of scalar entries currently eligible to
// change: the size of the active block if blocking is configured, or
// the full flattened dimension otherwise (spec.md §4.3).
func dEffFor(total int, block Block) int {
	if len(block) == 0 {
		return total
	}
	n := 0
	for _, b := range block {
		if b {
			n++
		}
	}
	if n == 0 {
		return total
	}
	return n
}

// differentialMutation builds y = x + γ*(a-b) + ε for peers a, b drawn
// uniformly from the group snapshot (spec.md §4.3).
func differentialMutation(x Theta, peers []Theta, self int, policy GammaPolicy, jitterScale float64, block Block, rng *rand.Rand) Theta {
	idx := pickDistinctPeers(len(peers), 2, self, rng)
	a, b := peers[idx[0]], peers[idx[1]]
	dEff := dEffFor(x.NumScalar(), block)
	gamma := gammaFor(policy, dEff, rng)
	diff := subTheta(a, b)
	y := scaleAddTheta(x, gamma, diff)
	y = addDistTheta(y, uniformJitter{b: jitterScale, rng: rng})
	return y
}

// crossover applies the per-scalar crossover mask of spec.md §4.3:
// each flattened entry independently reverts to x's value with
// probability crossoverProb, with at least one entry forced to retain
// the mutated value y if the mask would otherwise revert everything.
func crossover(x, y Theta, crossoverProb float64, rng *rand.Rand) Theta {
	flatX, flatY := x.Flatten(), y.Flatten()
	n := len(flatX)
	keepMutation := make([]bool, n)
	any := false
	for i := 0; i < n; i++ {
		if rng.Float64() >= crossoverProb {
			keepMutation[i] = true
			any = true
		}
	}
	if !any {
		keepMutation[rng.Intn(n)] = true
	}
	out := make([]float64, n)
	for i := range out {
		if keepMutation[i] {
			out[i] = flatY[i]
		} else {
			out[i] = flatX[i]
		}
	}
	return x.Unflatten(out)
}

// snookerUpdate builds the projection-based proposal of spec.md §4.3.
// ok is false if the drawn direction u = x - z is degenerate
// (DegenerateSnooker); the caller must then fall back to differential
// mutation.
func snookerUpdate(x Theta, peers []Theta, self int, rng *rand.Rand) (y Theta, logAdj float64, ok bool) {
	idx := pickDistinctPeers(len(peers), 3, self, rng)
	z, a, b := peers[idx[0]], peers[idx[1]], peers[idx[2]]

	u := subTheta(x, z)
	un := norm(u)
	if un == 0 {
		return Theta{}, 0, false
	}

	aProj := project(u, a)
	bProj := project(u, b)

	gs := distuv.Uniform{Min: 1.2, Max: 2.2, Src: rng}.Rand()
	diff := subTheta(aProj, bProj)
	y = scaleAddTheta(x, gs, diff)

	d := x.NumScalar()
	yz := norm(subTheta(y, z))
	xz := un
	logAdj = float64(d-1) * (math.Log(yz) - math.Log(xz))
	return y, logAdj, true
}

// applyBlock restores entries outside the active block to x's values,
// so only block-eligible scalar entries vary across a proposal (spec.md
// §4.3's "Blocking").
func applyBlock(x, y Theta, block Block) Theta {
	if len(block) == 0 {
		return y
	}
	flatX, flatY := x.Flatten(), y.Flatten()
	if len(block) != len(flatX) {
		panic("demcmc: block mask length does not match flattened theta dimension")
	}
	out := make([]float64, len(flatX))
	for i := range out {
		if block[i] {
			out[i] = flatY[i]
		} else {
			out[i] = flatX[i]
		}
	}
	return x.Unflatten(out)
}

// buildProposal forms one proposal for particle x against the group
// snapshot peers (spec.md §4.3), choosing the snooker update with
// probability cfg.SnookerProb and differential mutation (with
// crossover) otherwise. logAdj is the snooker Jacobian adjustment, or 0
// for a differential-mutation proposal.
func buildProposal(x Theta, peers []Theta, self int, cfg *Config, block Block, rng *rand.Rand) (y Theta, logAdj float64) {
	if cfg.SnookerProb > 0 && rng.Float64() < cfg.SnookerProb {
		if sy, adj, ok := snookerUpdate(x, peers, self, rng); ok {
			return applyBlock(x, sy, block), adj
		}
		// DegenerateSnooker: zero-length direction, fall back.
	}
	my := differentialMutation(x, peers, self, cfg.GammaPolicy, cfg.jitterScale(), block, rng)
	my = crossover(x, my, cfg.CrossoverProb, rng)
	return applyBlock(x, my, block), 0
}
