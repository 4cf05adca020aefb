// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

// Status reports how a run concluded.
type Status int

const (
	// Completed indicates every configured iteration ran.
	Completed Status = iota
	// Cancelled indicates the run stopped early because its context
	// was cancelled (spec.md §5).
	Cancelled
)

func (s Status) String() string {
	if s == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// Result is the output surface of a run (spec.md §4.8, §6): the sample
// tensor and parameter names for the sampling case, and the best
// particle found for the optimization case. Both are always populated,
// since the driver builds the tensor regardless of UpdateRule; which
// fields are meaningful depends on the Config.UpdateRule used to
// produce the Result.
type Result struct {
	// Tensor is the full [iter x param x particle] sample array. In
	// optimization mode no acceptance trace is kept (spec.md §9's
	// "implementers may omit" allowance): its "acceptance" column is
	// zero and its "lp" column holds each particle's current objective
	// value.
	Tensor *Tensor

	// Best is the best particle found, by the comparator implied by
	// Config.UpdateRule (strictly greater for UpdateMaximize, strictly
	// less for UpdateMinimize, and the highest-weight particle across
	// the population for UpdateMH).
	Best Particle

	// Status reports whether the run completed or was cancelled.
	Status Status

	// IterationsCompleted is the number of main-loop iterations
	// actually run before completion or cancellation.
	IterationsCompleted int
}

// bestParticle returns a copy of the arena particle most favorable
// under rule (spec.md §4.8).
func bestParticle(arena []*Particle, rule UpdateRule) Particle {
	best := arena[0]
	for _, p := range arena[1:] {
		switch rule {
		case UpdateMinimize:
			if p.Weight < best.Weight {
				best = p
			}
		default: // UpdateMH, UpdateMaximize: higher weight is better.
			if p.Weight > best.Weight {
				best = p
			}
		}
	}
	return best.clone()
}
