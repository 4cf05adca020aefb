// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"context"

	"golang.org/x/exp/rand"
)

// Run drives one DE-MCMC sampling or optimization run (spec.md §4.7),
// following Config.Validate, the up-front prior draws, and the main
// propose/accept/store/migrate loop. Mode is selected by
// cfg.UpdateRule: UpdateMH builds sampling chains, UpdateMaximize and
// UpdateMinimize run the greedy optimization rule. ctx is checked once
// per main-loop iteration (spec.md §5); on cancellation, Run returns
// whatever has been written to the tensor so far with Result.Status
// set to Cancelled.
func Run(ctx context.Context, model Model, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	topSrc := cfg.Src
	if topSrc == nil {
		topSrc = rand.New(rand.NewSource(1))
	}

	n := cfg.NGroups * cfg.Np
	arena := make([]*Particle, n)
	for id := 0; id < n; id++ {
		seed := topSrc.Uint64()
		p := &Particle{ID: id, Rng: rand.New(rand.NewSource(seed))}
		if cfg.UpdateRule == UpdateMH {
			p.Accept = make([]bool, cfg.NIter)
			p.LP = make([]float64, cfg.NIter)
		}
		arena[id] = p
	}

	// Initial prior draws (spec.md §4.7). Only the first draw per
	// particle becomes that chain's actual starting state; any
	// additional NInitial-1 warm-start draws are independent prior
	// samples written only for the caller's inspection. Tensor row 0
	// holds the starting state and rows 1..NInitial-1 the extra draws;
	// with NInitial == 0 no warm-start row is written.
	var flatNames []string
	for _, p := range arena {
		theta, err := drawPrior(model, p.Rng)
		if err != nil {
			return nil, err
		}
		if flatNames == nil {
			flatNames = theta.FlatNames()
		}
		p.Theta = theta
		switch cfg.UpdateRule {
		case UpdateMH:
			w, err := computePosterior(model, cfg.Bounds, theta)
			if err != nil {
				return nil, err
			}
			p.Weight = w
		default:
			w, err := evaluateFun(model, cfg.Bounds, theta, cfg.UpdateRule == UpdateMaximize)
			if err != nil {
				return nil, err
			}
			p.Weight = w
		}
	}

	tensor := newTensor(cfg.NInitial, cfg.NIter, n, flatNames, cfg.Burnin)

	if cfg.NInitial > 0 {
		for _, p := range arena {
			tensor.setTheta(0, p.ID, p.Theta, false, p.Weight)
		}
		for row := 1; row < cfg.NInitial; row++ {
			for _, p := range arena {
				theta, err := drawPrior(model, p.Rng)
				if err != nil {
					return nil, err
				}
				tensor.setTheta(row, p.ID, theta, false, p.Weight)
			}
		}
	}

	groups := partitionGroups(arena, cfg.NGroups, cfg.Np)

	status := Completed
	completed := 0
	for mainIter := 1; mainIter <= cfg.NIter; mainIter++ {
		traceIdx := mainIter - 1
		tensorRow := cfg.NInitial + traceIdx

		var write func(id int, theta Theta, accept bool, lp float64)
		if mainIter > cfg.Burnin {
			write = func(id int, theta Theta, accept bool, lp float64) {
				tensor.setTheta(tensorRow, id, theta, accept, lp)
			}
		}

		errs := &errCollector{}
		for _, g := range groups {
			g.runIteration(model, cfg.Bounds, &cfg, traceIdx, errs, write)
		}
		if err := errs.get(); err != nil {
			return nil, err
		}

		completed = mainIter

		if cfg.MigrationProb > 0 && mainIter%cfg.MigrationInterval == 0 && topSrc.Float64() < cfg.MigrationProb {
			migrate(groups, topSrc)
		}

		if cfg.Progress != nil {
			cfg.Progress(mainIter, cfg.NIter)
		}

		select {
		case <-ctx.Done():
			status = Cancelled
		default:
		}
		if status == Cancelled {
			break
		}
	}

	return &Result{
		Tensor:              tensor,
		Best:                bestParticle(arena, cfg.UpdateRule),
		Status:              status,
		IterationsCompleted: completed,
	}, nil
}

// drawPrior draws one prior sample, converting a panicking Model into
// a *CallbackError (spec.md §7).
func drawPrior(model Model, rng *rand.Rand) (Theta, error) {
	var theta Theta
	_, err := callAndRecover("SamplePrior", nil, func() float64 {
		theta = model.SamplePrior(rng)
		return 0
	})
	if err != nil {
		return nil, err
	}
	return theta, nil
}
