// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"

	"golang.org/x/exp/rand"
)

// Particle is a single point in parameter space together with the
// bookkeeping a chain needs across a run (spec.md §3): its stable id,
// current log-posterior (or objective, in optimization mode), and
// per-iteration acceptance/weight traces.
type Particle struct {
	Theta  Theta
	Weight float64
	ID     int

	// Accept and LP are length n_iter traces of each iteration's
	// acceptance flag and post-update weight. They are left nil in
	// optimization mode (spec.md §9: "implementers may omit").
	Accept []bool
	LP     []float64

	// Rng is this chain's private random source (spec.md §5: "the RNG
	// is logically per-chain").
	Rng *rand.Rand
}

// clone returns a deep copy of p's Theta and Weight, sharing the same
// id and RNG (used by bestParticle to hand out the best particle; see
// result.go).
func (p *Particle) clone() Particle {
	return Particle{
		Theta:  p.Theta.Clone(),
		Weight: p.Weight,
		ID:     p.ID,
		Rng:    p.Rng,
	}
}

// ScalarSampler draws a vector of independent perturbations shaped to
// match a theta component. It is the single method spec.md §4.1
// requires of the "distribution collaborator" used to jitter proposals.
type ScalarSampler interface {
	Sample(shape []int) []float64
}

// uniformJitter draws each scalar entry independently and uniformly
// from [-b, b]. It is the ε perturbation of spec.md §4.3.
type uniformJitter struct {
	b   float64
	rng *rand.Rand
}

func (u uniformJitter) Sample(shape []int) []float64 {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n == 0 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = u.b * (2*u.rng.Float64() - 1)
	}
	return out
}

// addTheta returns a + b component-wise, rounding to an integer
// wherever either operand's component is integer-typed (spec.md §4.1).
func addTheta(a, b Theta) Theta {
	return combineTheta(a, b, func(x, y float64) float64 { return x + y })
}

// subTheta returns a - b component-wise, with the same type
// preservation as addTheta.
func subTheta(a, b Theta) Theta {
	return combineTheta(a, b, func(x, y float64) float64 { return x - y })
}

// combineTheta applies op to every matching flattened scalar entry of
// a and b and rebuilds a Theta with a's component shapes/names,
// rounding per roundPreserve.
func combineTheta(a, b Theta, op func(x, y float64) float64) Theta {
	if len(a) != len(b) {
		panic("demcmc: theta component count mismatch")
	}
	out := make(Theta, len(a))
	for i := range a {
		ca, cb := a[i], b[i]
		if ca.NumScalar() != cb.NumScalar() {
			panic("demcmc: theta component shape mismatch")
		}
		data := make([]float64, ca.NumScalar())
		kind := ca.Kind
		for j := range data {
			v := op(ca.Data[j], cb.Data[j])
			var k Kind
			v, k = roundPreserve(ca.Kind, cb.Kind, v)
			data[j] = v
			kind = k
		}
		out[i] = Component{Name: ca.Name, Kind: kind, Shape: ca.Shape, Data: data}
	}
	return out
}

// mulTheta returns a * b component-wise, with the same type
// preservation as addTheta.
func mulTheta(a, b Theta) Theta {
	return combineTheta(a, b, func(x, y float64) float64 { return x * y })
}

// scaleAddTheta returns x + gamma*diff, the core of the differential
// mutation proposal (spec.md §4.3).
func scaleAddTheta(x Theta, gamma float64, diff Theta) Theta {
	return combineTheta(x, diff, func(xv, dv float64) float64 {
		return xv + gamma*dv
	})
}

// scalarOpTheta applies op between every flattened entry of t and the
// scalar s, preserving integer-ness of each component independently
// (the (particle, scalar) case of spec.md §4.1).
func scalarOpTheta(t Theta, s float64, op func(v, s float64) float64) Theta {
	out := make(Theta, len(t))
	for i, c := range t {
		data := make([]float64, c.NumScalar())
		for j, v := range c.Data {
			nv, _ := roundPreserve(c.Kind, Real, op(v, s))
			data[j] = nv
		}
		out[i] = Component{Name: c.Name, Kind: c.Kind, Shape: c.Shape, Data: data}
	}
	return out
}

// addScalarTheta adds the scalar s to every flattened entry of t.
func addScalarTheta(t Theta, s float64) Theta {
	return scalarOpTheta(t, s, func(v, s float64) float64 { return v + s })
}

// mulScalarTheta multiplies every flattened entry of t by the scalar s.
func mulScalarTheta(t Theta, s float64) Theta {
	return scalarOpTheta(t, s, func(v, s float64) float64 { return v * s })
}

// vectorOpTheta applies op between t's flattened entries and the
// matching entries of v, a vector-of-scalars the same length as
// t.NumScalar() (the (particle, vector) case of spec.md §4.1).
func vectorOpTheta(t Theta, v []float64, op func(a, b float64) float64) Theta {
	flat := t.Flatten()
	if len(flat) != len(v) {
		panic("demcmc: vector length does not match theta's flattened dimension")
	}
	out := make([]float64, len(flat))
	off := 0
	for _, c := range t {
		for j := 0; j < c.NumScalar(); j++ {
			nv, _ := roundPreserve(c.Kind, Real, op(flat[off], v[off]))
			out[off] = nv
			off++
		}
	}
	return t.Unflatten(out)
}

// addVectorTheta adds the vector-of-scalars v to t's flattened entries.
func addVectorTheta(t Theta, v []float64) Theta {
	return vectorOpTheta(t, v, func(a, b float64) float64 { return a + b })
}

// mulVectorTheta multiplies t's flattened entries by the matching
// entries of v.
func mulVectorTheta(t Theta, v []float64) Theta {
	return vectorOpTheta(t, v, func(a, b float64) float64 { return a * b })
}

// addDistTheta draws a perturbation of matching shape from dist for
// every component of t and adds it with type preservation (spec.md
// §4.1: "addition with a distribution d").
func addDistTheta(t Theta, dist ScalarSampler) Theta {
	out := make(Theta, len(t))
	for i, c := range t {
		perturb := dist.Sample(c.Shape)
		if len(perturb) != len(c.Data) {
			panic("demcmc: distribution sample shape mismatch")
		}
		data := make([]float64, len(c.Data))
		for j, v := range c.Data {
			nv, _ := roundPreserve(c.Kind, Real, v+perturb[j])
			data[j] = nv
		}
		out[i] = Component{Name: c.Name, Kind: c.Kind, Shape: c.Shape, Data: data}
	}
	return out
}

// dot returns the inner product of the flattened scalar entries of a
// and b.
func dot(a, b Theta) float64 {
	fa, fb := a.Flatten(), b.Flatten()
	if len(fa) != len(fb) {
		panic("demcmc: theta dimension mismatch in dot")
	}
	var s float64
	for i := range fa {
		s += fa[i] * fb[i]
	}
	return s
}

// norm returns the Euclidean norm of the flattened scalar entries of t.
func norm(t Theta) float64 {
	return math.Sqrt(dot(t, t))
}

// project returns p2 * (<p1, p2> / <p2, p2>), the vector projection of
// p1 onto p2, used by the snooker update (spec.md §4.1).
func project(p1, p2 Theta) Theta {
	denom := dot(p2, p2)
	var scale float64
	if denom != 0 {
		scale = dot(p1, p2) / denom
	}
	flat := p2.Flatten()
	out := make([]float64, len(flat))
	for i, v := range flat {
		out[i] = v * scale
	}
	return p2.Unflatten(out)
}

// withTheta returns a copy of p with its Theta replaced by t, carrying
// over p's id and RNG but not its weight or traces: the result is a
// freestanding point in parameter space, not yet evaluated under any
// model (spec.md §4.1's arithmetic is defined purely on theta; Weight,
// Accept, and LP only become meaningful again once the caller runs the
// result through computePosterior/evaluateFun).
func (p Particle) withTheta(t Theta) Particle {
	return Particle{Theta: t, ID: p.ID, Rng: p.Rng}
}

// Add returns p.Theta + q.Theta, the (particle, particle) case of
// spec.md §4.1.
func (p Particle) Add(q Particle) Particle {
	return p.withTheta(addTheta(p.Theta, q.Theta))
}

// Sub returns p.Theta - q.Theta, the (particle, particle) case of
// spec.md §4.1.
func (p Particle) Sub(q Particle) Particle {
	return p.withTheta(subTheta(p.Theta, q.Theta))
}

// Mul returns p.Theta * q.Theta component-wise, the (particle,
// particle) case of spec.md §4.1.
func (p Particle) Mul(q Particle) Particle {
	return p.withTheta(mulTheta(p.Theta, q.Theta))
}

// AddScalar returns p.Theta + s applied to every flattened entry, the
// (particle, scalar) case of spec.md §4.1.
func (p Particle) AddScalar(s float64) Particle {
	return p.withTheta(addScalarTheta(p.Theta, s))
}

// SubScalar returns p.Theta - s applied to every flattened entry, the
// (particle, scalar) case of spec.md §4.1.
func (p Particle) SubScalar(s float64) Particle {
	return p.withTheta(addScalarTheta(p.Theta, -s))
}

// MulScalar returns p.Theta * s applied to every flattened entry, the
// (particle, scalar) case of spec.md §4.1.
func (p Particle) MulScalar(s float64) Particle {
	return p.withTheta(mulScalarTheta(p.Theta, s))
}

// AddVector returns p.Theta with v added entry-wise across its
// flattened scalar dimension, the (particle, vector-of-scalars) case
// of spec.md §4.1. len(v) must equal p.Theta.NumScalar().
func (p Particle) AddVector(v []float64) Particle {
	return p.withTheta(addVectorTheta(p.Theta, v))
}

// MulVector returns p.Theta with v multiplied entry-wise across its
// flattened scalar dimension, the (particle, vector-of-scalars) case
// of spec.md §4.1. len(v) must equal p.Theta.NumScalar().
func (p Particle) MulVector(v []float64) Particle {
	return p.withTheta(mulVectorTheta(p.Theta, v))
}

// AddDist returns p.Theta with an independent perturbation drawn from
// dist added to every component, preserving each component's integer-
// ness (spec.md §4.1's "addition with a distribution d").
func (p Particle) AddDist(dist ScalarSampler) Particle {
	return p.withTheta(addDistTheta(p.Theta, dist))
}

// Project returns q.Theta scaled by <p.Theta, q.Theta>/<q.Theta,
// q.Theta>, the vector projection of p onto q used by the snooker
// update (spec.md §4.1).
func (p Particle) Project(q Particle) Particle {
	return p.withTheta(project(p.Theta, q.Theta))
}

// Norm returns the Euclidean norm of p.Theta's flattened scalar
// entries.
func (p Particle) Norm() float64 {
	return norm(p.Theta)
}

// Dot returns the inner product of p.Theta and q.Theta's flattened
// scalar entries.
func (p Particle) Dot(q Particle) float64 {
	return dot(p.Theta, q.Theta)
}
