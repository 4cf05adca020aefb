// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestAcceptProb(t *testing.T) {
	if got := acceptProb(5, 0, 0); got != 1 {
		t.Errorf("acceptProb(better) = %v, want 1", got)
	}
	if got := acceptProb(0, 0, 0); got != 1 {
		t.Errorf("acceptProb(equal) = %v, want 1", got)
	}
	want := math.Exp(-1)
	if got := acceptProb(-1, 0, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("acceptProb(worse by 1) = %v, want %v", got, want)
	}
	if got := acceptProb(math.NaN(), 0, 0); got != 0 {
		t.Errorf("acceptProb(NaN) = %v, want 0", got)
	}
}

func TestMHUpdateAcceptsBetterProposal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := &Particle{
		Theta:  scalarTheta("x", Real, 0),
		Weight: -10,
		Accept: make([]bool, 1),
		LP:     make([]float64, 1),
		Rng:    rng,
	}
	proposal := scalarTheta("x", Real, 1)
	mhUpdate(p, proposal, 0, 0, 0)
	if !p.Accept[0] {
		t.Fatalf("mhUpdate() did not accept a strictly better proposal")
	}
	if p.Weight != 0 {
		t.Fatalf("mhUpdate() weight = %v, want 0", p.Weight)
	}
	if p.LP[0] != 0 {
		t.Fatalf("mhUpdate() LP[0] = %v, want 0", p.LP[0])
	}
}

func TestMHUpdateRejectsMuchWorseProposal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := &Particle{
		Theta:  scalarTheta("x", Real, 0),
		Weight: 0,
		Accept: make([]bool, 1),
		LP:     make([]float64, 1),
		Rng:    rng,
	}
	proposal := scalarTheta("x", Real, 1)
	mhUpdate(p, proposal, -1e6, 0, 0)
	if p.Accept[0] {
		t.Fatalf("mhUpdate() accepted a vastly worse proposal")
	}
	if p.Weight != 0 {
		t.Fatalf("mhUpdate() mutated weight on rejection: got %v, want 0", p.Weight)
	}
	if p.Theta[0].Data[0] != 0 {
		t.Fatalf("mhUpdate() mutated theta on rejection")
	}
}

func TestGreedyUpdateMaximize(t *testing.T) {
	p := &Particle{Theta: scalarTheta("x", Real, 0), Weight: 1}
	greedyUpdate(p, scalarTheta("x", Real, 5), 2, UpdateMaximize)
	if p.Weight != 2 {
		t.Fatalf("greedyUpdate(maximize, better) did not replace: weight = %v", p.Weight)
	}
	greedyUpdate(p, scalarTheta("x", Real, 9), 1, UpdateMaximize)
	if p.Weight != 2 {
		t.Fatalf("greedyUpdate(maximize, worse) replaced: weight = %v, want 2", p.Weight)
	}
}

func TestGreedyUpdateMinimize(t *testing.T) {
	p := &Particle{Theta: scalarTheta("x", Real, 0), Weight: 1}
	greedyUpdate(p, scalarTheta("x", Real, 5), 0.5, UpdateMinimize)
	if p.Weight != 0.5 {
		t.Fatalf("greedyUpdate(minimize, better) did not replace: weight = %v", p.Weight)
	}
	greedyUpdate(p, scalarTheta("x", Real, 9), 10, UpdateMinimize)
	if p.Weight != 0.5 {
		t.Fatalf("greedyUpdate(minimize, worse) replaced: weight = %v, want 0.5", p.Weight)
	}
}
