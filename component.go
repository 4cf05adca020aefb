// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"math"
	"strconv"
)

// Kind distinguishes the scalar type of a theta component. Integer
// components remain integer-valued after every arithmetic operation
// performed on them (round-half-away-from-zero, see roundPreserve).
type Kind int

const (
	// Real marks a component whose scalar entries are continuous.
	Real Kind = iota
	// Integer marks a component whose scalar entries must stay
	// integer-valued across proposals.
	Integer
)

func (k Kind) String() string {
	if k == Integer {
		return "Integer"
	}
	return "Real"
}

// Component is one top-level element of a particle's theta vector: a
// scalar, or a (possibly multi-dimensional) array, of either real or
// integer-valued entries. Data holds the flattened scalar entries in
// column-major order; Shape is nil or empty for a scalar component.
type Component struct {
	Name  string
	Kind  Kind
	Shape []int
	Data  []float64
}

// NumScalar returns the number of flattened scalar entries in c.
func (c Component) NumScalar() int {
	return len(c.Data)
}

// Clone returns a deep copy of c.
func (c Component) Clone() Component {
	d := make([]float64, len(c.Data))
	copy(d, c.Data)
	var shape []int
	if len(c.Shape) > 0 {
		shape = make([]int, len(c.Shape))
		copy(shape, c.Shape)
	}
	return Component{Name: c.Name, Kind: c.Kind, Shape: shape, Data: d}
}

// Theta is the full parameter vector of a particle: an ordered sequence
// of components whose shapes are fixed at construction by the first
// prior draw (spec.md §3) and never change afterward.
type Theta []Component

// Clone returns a deep copy of t.
func (t Theta) Clone() Theta {
	out := make(Theta, len(t))
	for i, c := range t {
		out[i] = c.Clone()
	}
	return out
}

// NumScalar returns the total number of flattened scalar entries across
// every component of t.
func (t Theta) NumScalar() int {
	n := 0
	for _, c := range t {
		n += c.NumScalar()
	}
	return n
}

// Flatten returns the concatenation of every component's Data, in
// component order, each already column-major within its own shape. This
// is the "flattened scalar entries" view used by project, norm, and the
// sample tensor's parameter axis.
func (t Theta) Flatten() []float64 {
	flat := make([]float64, 0, t.NumScalar())
	for _, c := range t {
		flat = append(flat, c.Data...)
	}
	return flat
}

// Unflatten rebuilds a Theta with the same shapes/kinds/names as t but
// with scalar entries taken from flat, which must have length
// t.NumScalar().
func (t Theta) Unflatten(flat []float64) Theta {
	if len(flat) != t.NumScalar() {
		panic("demcmc: flat vector length does not match theta shape")
	}
	out := make(Theta, len(t))
	off := 0
	for i, c := range t {
		n := c.NumScalar()
		d := make([]float64, n)
		copy(d, flat[off:off+n])
		off += n
		var shape []int
		if len(c.Shape) > 0 {
			shape = append([]int(nil), c.Shape...)
		}
		out[i] = Component{Name: c.Name, Kind: c.Kind, Shape: shape, Data: d}
	}
	return out
}

// FlatNames returns one name per flattened scalar entry: the component's
// own Name for a scalar component, or "name[i,j,...]" (column-major
// indices) for each entry of an array component, matching spec.md §4.8.
func (t Theta) FlatNames() []string {
	names := make([]string, 0, t.NumScalar())
	for _, c := range t {
		if len(c.Shape) == 0 {
			names = append(names, c.Name)
			continue
		}
		idx := make([]int, len(c.Shape))
		for n := 0; n < c.NumScalar(); n++ {
			names = append(names, c.Name+formatIndex(idx))
			incrementColumnMajor(idx, c.Shape)
		}
	}
	return names
}

func incrementColumnMajor(idx, shape []int) {
	for d := 0; d < len(shape); d++ {
		idx[d]++
		if idx[d] < shape[d] {
			return
		}
		idx[d] = 0
	}
}

func formatIndex(idx []int) string {
	s := "["
	for i, v := range idx {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(v)
	}
	return s + "]"
}

// roundPreserve combines a and b under op, rounding the result to the
// nearest integer (ties away from zero) whenever either operand is
// integer-typed. This is the type-preservation rule of spec.md §4.1: it
// is what allows continuous and discrete parameters to be mixed in a
// single theta vector. Half-away-from-zero was chosen over
// round-to-even because it is the simpler rule to document once and
// apply uniformly, and ties are vanishingly rare for continuous
// proposal arithmetic.
func roundPreserve(aKind, bKind Kind, v float64) (float64, Kind) {
	if aKind == Integer || bKind == Integer {
		return math.Round(v), Integer
	}
	return v, Real
}
