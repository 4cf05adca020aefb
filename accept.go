// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"

	"golang.org/x/exp/rand"
)

// acceptProb returns min(1, exp(wNew - wCur + logAdj)), the
// Metropolis-Hastings acceptance probability of spec.md §4.4. Any NaN
// in the exponent yields a probability of 0 (reject), absorbing
// NumericInstability locally per spec.md §7.
func acceptProb(wNew, wCur, logAdj float64) float64 {
	exponent := wNew - wCur + logAdj
	if math.IsNaN(exponent) {
		return 0
	}
	p := math.Exp(exponent)
	if math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// accept draws u ~ Uniform(0,1) and reports whether u <= acceptProb,
// i.e. whether the proposal is accepted.
func accept(wNew, wCur, logAdj float64, rng *rand.Rand) bool {
	p := acceptProb(wNew, wCur, logAdj)
	if p <= 0 {
		return false
	}
	return rng.Float64() <= p
}

// mhUpdate applies the Metropolis-Hastings rule of spec.md §4.4 to
// current, replacing its theta/weight on acceptance and recording the
// iteration's accept/lp trace entries. A particle whose current weight
// is already -Inf never blocks acceptance of a finite proposal, and a
// -Inf proposal is never accepted over a finite current weight, since
// acceptProb naturally evaluates to 0 or 1 in those cases.
func mhUpdate(current *Particle, proposalTheta Theta, proposalWeight, logAdj float64, iter int) {
	ok := accept(proposalWeight, current.Weight, logAdj, current.Rng)
	if ok {
		current.Theta = proposalTheta
		current.Weight = proposalWeight
	}
	if current.Accept != nil {
		current.Accept[iter] = ok
	}
	if current.LP != nil {
		current.LP[iter] = current.Weight
	}
}

// greedyUpdate implements the maximize/minimize update rules of
// spec.md §4.4: the proposal replaces current iff it is strictly
// better under rule. No acceptance trace is recorded (optimization mode
// tracks only the incumbent).
func greedyUpdate(current *Particle, proposalTheta Theta, proposalWeight float64, rule UpdateRule) {
	better := false
	switch rule {
	case UpdateMaximize:
		better = proposalWeight > current.Weight
	case UpdateMinimize:
		better = proposalWeight < current.Weight
	}
	if better {
		current.Theta = proposalTheta
		current.Weight = proposalWeight
	}
}
