// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import "golang.org/x/exp/rand"

// GammaPolicy selects how the differential mutation scale γ is drawn
// each proposal (spec.md §4.3). The zero value, GammaFixed, is a valid,
// explicit policy.
type GammaPolicy int

const (
	// GammaFixed uses γ = 2.38/sqrt(2*d_eff) for every proposal.
	GammaFixed GammaPolicy = iota
	// GammaVariable multiplies the fixed value by Uniform(0.5, 1.0).
	GammaVariable
	// GammaRandom multiplies the fixed value by a narrow symmetric
	// factor, Uniform(0.8, 1.2) (see SPEC_FULL.md's Open Question
	// resolutions).
	GammaRandom
)

func (g GammaPolicy) String() string {
	switch g {
	case GammaFixed:
		return "fixed"
	case GammaVariable:
		return "variable"
	case GammaRandom:
		return "random"
	default:
		return "unknown"
	}
}

// UpdateRule selects how a proposal replaces the current particle
// (spec.md §4.4).
type UpdateRule int

const (
	// UpdateMH uses Metropolis-Hastings acceptance and builds
	// sampling chains.
	UpdateMH UpdateRule = iota
	// UpdateMaximize greedily replaces the current particle whenever
	// the proposal's weight is strictly larger.
	UpdateMaximize
	// UpdateMinimize greedily replaces the current particle whenever
	// the proposal's weight is strictly smaller.
	UpdateMinimize
)

func (u UpdateRule) String() string {
	switch u {
	case UpdateMH:
		return "mh"
	case UpdateMaximize:
		return "maximize"
	case UpdateMinimize:
		return "minimize"
	default:
		return "unknown"
	}
}

// Block is a per-parameter update mask: an entry of true allows the
// corresponding flattened scalar entry to change during a proposal
// (spec.md §4.3's "Blocking"). Its length must equal the flattened
// scalar dimension.
type Block []bool

// Config holds the immutable-once-sampling-starts settings of a
// DE-MCMC run (spec.md §3 "DE config", §6 "Configuration options").
type Config struct {
	// NGroups is the number of groups the population is partitioned
	// into. Must be >= 1, and >= 2 to use migration.
	NGroups int
	// Np is the number of particles per group. Must be >= 4.
	Np int
	// NIter is the number of sampling/optimization iterations. Must
	// be > 0.
	NIter int
	// NInitial is the number of extra leading warm-start draws from
	// the prior, written before the main loop begins.
	NInitial int
	// Burnin is the number of leading main-loop iterations that are
	// not written to the returned sample tensor; their rows stay zero.
	Burnin int

	// Bounds has one (Lo, Hi) pair per top-level theta component.
	Bounds Bounds

	GammaPolicy    GammaPolicy
	CrossoverProb  float64
	MigrationProb  float64
	MigrationInterval int
	SnookerProb    float64

	// Blocking, if non-empty, is cycled round-robin across
	// iterations: the 1-based iteration i uses
	// Blocking[(i-1)%len(Blocking)].
	Blocking []Block

	UpdateRule UpdateRule

	// JitterScale is the half-width b of the Uniform(-b, b) jitter ε
	// added to every differential mutation proposal (spec.md §4.3).
	// Defaults to 1e-3 when zero.
	JitterScale float64

	// Progress, if non-nil, is invoked once per completed iteration
	// with the 1-based iteration index and the total iteration count.
	Progress func(iter, nIter int)

	// Src seeds the run: every chain's private RNG (spec.md §5) is
	// derived from it, and it alone drives migration's group/particle
	// selection. If nil, a fixed default source is used so that a run
	// with no Src is still reproducible, matching the random-number
	// seeding policy being the caller's responsibility (spec.md §1).
	Src *rand.Rand
}

// Validate reports a *ConfigError for the first invalid field
// encountered, or nil if c is a usable configuration (spec.md §7
// "ConfigError").
func (c *Config) Validate() error {
	switch {
	case c.Np < 4:
		return &ConfigError{Field: "Np", Reason: "must be >= 4"}
	case c.NGroups < 1:
		return &ConfigError{Field: "NGroups", Reason: "must be >= 1"}
	case c.NGroups < 2 && c.MigrationProb > 0:
		return &ConfigError{Field: "NGroups", Reason: "must be >= 2 to use migration (MigrationProb > 0)"}
	case c.NIter <= 0:
		return &ConfigError{Field: "NIter", Reason: "must be > 0"}
	case c.NInitial < 0:
		return &ConfigError{Field: "NInitial", Reason: "must be >= 0"}
	case c.Burnin < 0:
		return &ConfigError{Field: "Burnin", Reason: "must be >= 0"}
	case len(c.Bounds) == 0:
		return &ConfigError{Field: "Bounds", Reason: "must not be empty"}
	case c.CrossoverProb < 0 || c.CrossoverProb > 1:
		return &ConfigError{Field: "CrossoverProb", Reason: "must be in [0, 1]"}
	case c.MigrationProb < 0 || c.MigrationProb > 1:
		return &ConfigError{Field: "MigrationProb", Reason: "must be in [0, 1]"}
	case c.SnookerProb < 0 || c.SnookerProb > 1:
		return &ConfigError{Field: "SnookerProb", Reason: "must be in [0, 1]"}
	case c.MigrationProb > 0 && c.MigrationInterval <= 0:
		return &ConfigError{Field: "MigrationInterval", Reason: "must be > 0 when MigrationProb > 0"}
	}
	return nil
}

// jitterScale returns c.JitterScale, or its documented default.
func (c *Config) jitterScale() float64 {
	if c.JitterScale == 0 {
		return 1e-3
	}
	return c.JitterScale
}

// blockFor returns the blocking mask active at the given 1-based
// iteration, or nil if no blocking is configured.
func (c *Config) blockFor(iter int) Block {
	if len(c.Blocking) == 0 {
		return nil
	}
	return c.Blocking[(iter-1)%len(c.Blocking)]
}
