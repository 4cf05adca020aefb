// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import "sync"

// group is an ordered collection of particles that propose against each
// other (spec.md §3, §4.5). Particles reference the shared arena by
// pointer; migration (migrate.go) permutes which particle pointer
// occupies which slot rather than moving particle values around.
type group struct {
	particles []*Particle
}

// partitionGroups splits the arena of nGroups*Np particles into
// nGroups contiguous groups, in order, once at the start of a run
// (spec.md §4.5: "The partition is stable across the run").
func partitionGroups(arena []*Particle, nGroups, np int) []group {
	groups := make([]group, nGroups)
	for g := 0; g < nGroups; g++ {
		groups[g] = group{particles: arena[g*np : (g+1)*np]}
	}
	return groups
}

// snapshot captures the group's theta values as of the call, giving
// proposals in the same iteration a consistent view of "peer state as
// of the end of the previous iteration" even when particles within the
// group are updated concurrently (spec.md §5, §9).
func (g group) snapshot() []Theta {
	snap := make([]Theta, len(g.particles))
	for i, p := range g.particles {
		snap[i] = p.Theta
	}
	return snap
}

// runIteration proposes and updates every particle in g for one
// iteration. Proposals read only from snap (the pre-iteration state);
// writes go to each particle's own live state, so particles within a
// group may be updated concurrently. traceIdx is the 0-based index
// into each particle's length-n_iter Accept/LP traces, and also
// selects the active blocking mask (spec.md §4.3). write, if non-nil,
// is called with each particle's post-update theta, accept flag, and
// lp value so the caller can store it into the sample tensor (spec.md
// §4.7: "if iter > burnin: write S[iter, :, x.id]"); the caller is
// responsible for only passing a non-nil write once burnin has
// elapsed. Any error raised by a Model callback is recorded on errs
// and that particle's update for the iteration is abandoned; the
// caller checks errs once every group in the iteration has finished.
//
// Model callbacks are invoked concurrently, once per particle in the
// group, and so must be safe to call from multiple goroutines
// simultaneously.
func (g group) runIteration(model Model, bounds Bounds, cfg *Config, traceIdx int, errs *errCollector, write func(id int, theta Theta, accept bool, lp float64)) {
	snap := g.snapshot()
	block := cfg.blockFor(traceIdx + 1)

	var wg sync.WaitGroup
	wg.Add(len(g.particles))
	for i, p := range g.particles {
		i, p := i, p
		go func() {
			defer wg.Done()
			proposal, logAdj := buildProposal(p.Theta, snap, i, cfg, block, p.Rng)

			switch cfg.UpdateRule {
			case UpdateMH:
				w, err := computePosterior(model, bounds, proposal)
				if err != nil {
					errs.set(err)
					return
				}
				mhUpdate(p, proposal, w, logAdj, traceIdx)
			case UpdateMaximize:
				w, err := evaluateFun(model, bounds, proposal, true)
				if err != nil {
					errs.set(err)
					return
				}
				greedyUpdate(p, proposal, w, UpdateMaximize)
			case UpdateMinimize:
				w, err := evaluateFun(model, bounds, proposal, false)
				if err != nil {
					errs.set(err)
					return
				}
				greedyUpdate(p, proposal, w, UpdateMinimize)
			}

			if write != nil {
				accept, lp := false, p.Weight
				if p.Accept != nil {
					accept = p.Accept[traceIdx]
				}
				if p.LP != nil {
					lp = p.LP[traceIdx]
				}
				write(p.ID, p.Theta, accept, lp)
			}
		}()
	}
	wg.Wait()
}
