// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import "math"

// Bound is a closed interval [Lo, Hi] applied to every scalar entry of
// one top-level theta component (spec.md §3).
type Bound struct {
	Lo, Hi float64
}

// Bounds is an ordered sequence of Bound, one per top-level component
// of theta.
type Bounds []Bound

// InBounds reports whether every scalar entry of every component of t
// lies within its paired [Lo, Hi] interval (spec.md §4.2).
func (b Bounds) InBounds(t Theta) bool {
	if len(b) != len(t) {
		panic("demcmc: bounds/theta component count mismatch")
	}
	for i, c := range t {
		lo, hi := b[i].Lo, b[i].Hi
		for _, v := range c.Data {
			if v < lo || v > hi {
				return false
			}
		}
	}
	return true
}

// computePosterior scores proposal under model in sampling mode: the
// log-prior plus log-likelihood if in bounds, or negative infinity
// otherwise (spec.md §4.2). The user callbacks are invoked through
// callAndRecover so a panicking Model surfaces as a *CallbackError
// rather than crashing the run (spec.md §7 "UserCallbackError").
func computePosterior(model Model, bounds Bounds, theta Theta) (float64, error) {
	if !bounds.InBounds(theta) {
		return math.Inf(-1), nil
	}
	prior, err := callAndRecover("PriorLogLike", theta, func() float64 {
		return model.PriorLogLike(theta)
	})
	if err != nil {
		return 0, err
	}
	like, err := callAndRecover("LogLike", theta, func() float64 {
		return model.LogLike(theta)
	})
	if err != nil {
		return 0, err
	}
	return prior + like, nil
}

// evaluateFun scores proposal under model in optimization mode: the
// objective value if in bounds, or the out-of-bounds sentinel
// appropriate to the direction of optimization otherwise (spec.md
// §4.2). maximize is true for UpdateMaximize and false for
// UpdateMinimize.
func evaluateFun(model Model, bounds Bounds, theta Theta, maximize bool) (float64, error) {
	if !bounds.InBounds(theta) {
		if maximize {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	return callAndRecover("LogLike", theta, func() float64 {
		return model.LogLike(theta)
	})
}
