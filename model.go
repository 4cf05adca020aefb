// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import "golang.org/x/exp/rand"

// Model is the user-supplied target density and its metadata (spec.md
// §6). SamplePrior's output, drawn once per particle at the start of a
// run, fixes the component shapes used for the rest of that run.
type Model interface {
	// SamplePrior draws an initial point from the prior using rng.
	// Its return value's component shapes are treated as immutable
	// for the remainder of the run.
	SamplePrior(rng *rand.Rand) Theta

	// PriorLogLike returns the log-prior density of theta.
	PriorLogLike(theta Theta) float64

	// LogLike returns the log-likelihood (sampling mode) or objective
	// value (optimization mode) of theta.
	LogLike(theta Theta) float64

	// Names returns the ordered top-level component names, matching
	// the shape of SamplePrior's output.
	Names() []string
}
