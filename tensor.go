// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import "gonum.org/v1/gonum/mat"

// Tensor is the dense 3-D sample array S[iter, param, particle] of
// spec.md §3, backed by a gonum *mat.Dense whose rows interleave the
// iteration and parameter axes (row = iter*nParam + param) and whose
// columns are particle ids. The flattened parameter axis has length
// equal to the total scalar count across theta components, plus the
// two trailing "acceptance" and "lp" columns (spec.md §4.8).
type Tensor struct {
	dense *mat.Dense

	nRows      int // NInitial + NIter
	nParam     int // flattened theta scalars + 2
	nParticles int

	names  []string
	burnin int
	initial int // NInitial, the number of leading warm-start rows
}

// newTensor allocates a Tensor with nRows = nInitial+nIter rows, one
// column per flattened scalar parameter plus "acceptance" and "lp",
// and one column per particle.
func newTensor(nInitial, nIter, nParticles int, flatNames []string, burnin int) *Tensor {
	nRows := nInitial + nIter
	names := make([]string, 0, len(flatNames)+2)
	names = append(names, flatNames...)
	names = append(names, "acceptance", "lp")
	nParam := len(names)
	return &Tensor{
		dense:      mat.NewDense(nRows*nParam, nParticles, nil),
		nRows:      nRows,
		nParam:     nParam,
		nParticles: nParticles,
		names:      names,
		burnin:     burnin,
		initial:    nInitial,
	}
}

func (t *Tensor) row(iter, param int) int { return iter*t.nParam + param }

// setTheta writes theta's flattened scalar entries, plus the
// acceptance flag and lp value, into row iter for particle id.
func (t *Tensor) setTheta(iter, id int, theta Theta, accept bool, lp float64) {
	flat := theta.Flatten()
	for p, v := range flat {
		t.dense.Set(t.row(iter, p), id, v)
	}
	a := 0.0
	if accept {
		a = 1.0
	}
	t.dense.Set(t.row(iter, len(flat)), id, a)
	t.dense.Set(t.row(iter, len(flat)+1), id, lp)
}

// At returns S[iter, param, id].
func (t *Tensor) At(iter, param, id int) float64 {
	return t.dense.At(t.row(iter, param), id)
}

// NIter returns the number of rows reserved for the main sampling loop
// (excluding the leading warm-start rows).
func (t *Tensor) NIter() int { return t.nRows - t.initial }

// NInitial returns the number of leading warm-start rows.
func (t *Tensor) NInitial() int { return t.initial }

// Burnin returns the number of leading main-loop iterations excluded
// from (left zeroed in) the tensor, per spec.md §4.7.
func (t *Tensor) Burnin() int { return t.burnin }

// NParticles returns the number of chains (the tensor's third axis
// length).
func (t *Tensor) NParticles() int { return t.nParticles }

// ColumnNames returns the flattened parameter names, with the two
// trailing names "acceptance" and "lp" (spec.md §4.8).
func (t *Tensor) ColumnNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Param returns the [iteration][particle] slice for the named column
// (a flattened parameter name, "acceptance", or "lp"), for handing to
// an external post-processing collaborator (spec.md §1).
func (t *Tensor) Param(name string) [][]float64 {
	idx := -1
	for i, n := range t.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([][]float64, t.nRows)
	for i := 0; i < t.nRows; i++ {
		row := make([]float64, t.nParticles)
		for p := 0; p < t.nParticles; p++ {
			row[p] = t.dense.At(t.row(i, idx), p)
		}
		out[i] = row
	}
	return out
}
