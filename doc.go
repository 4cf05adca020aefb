// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demcmc implements Differential Evolution Markov Chain Monte
// Carlo (DE-MCMC), a population-based sampler for drawing correlated
// samples from a user-supplied target density over a bounded parameter
// space. The same population machinery can also be run in an optimization
// mode that maximizes or minimizes an arbitrary objective over the same
// bounded space.
//
// A population of Np*NGroups chains is partitioned once into NGroups
// groups. Each iteration, every chain in every group proposes a new
// location using differential mutation or a snooker update, the proposal
// is scored against the target density, and a Metropolis-Hastings (or
// greedy, in optimization mode) rule decides whether the chain moves.
// Periodically a migration step swaps chains across groups to encourage
// exploration.
//
// Package demcmc performs no I/O of its own. The caller supplies the
// prior, log-likelihood, and parameter bounds through the Model and
// Config types, and receives back a dense sample Tensor (or, in
// optimization mode, the best Particle found) for downstream
// post-processing.
package demcmc
