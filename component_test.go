// Copyright ©2026 The demcmc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demcmc

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func simpleTheta() Theta {
	return Theta{
		{Name: "mu", Kind: Real, Data: []float64{1.5}},
		{Name: "n", Kind: Integer, Data: []float64{3}},
		{Name: "x", Kind: Real, Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}},
	}
}

func TestThetaFlattenUnflatten(t *testing.T) {
	theta := simpleTheta()
	flat := theta.Flatten()
	want := []float64{1.5, 3, 1, 2, 3, 4}
	if !floats.Equal(flat, want) {
		t.Fatalf("Flatten() = %v, want %v", flat, want)
	}

	rebuilt := theta.Unflatten(flat)
	if !floats.Equal(rebuilt.Flatten(), flat) {
		t.Fatalf("Unflatten round-trip = %v, want %v", rebuilt.Flatten(), flat)
	}
	if rebuilt[1].Kind != Integer {
		t.Fatalf("Unflatten lost integer kind on component 1")
	}
}

func TestThetaNumScalar(t *testing.T) {
	theta := simpleTheta()
	if got, want := theta.NumScalar(), 6; got != want {
		t.Fatalf("NumScalar() = %d, want %d", got, want)
	}
}

func TestThetaClone(t *testing.T) {
	theta := simpleTheta()
	clone := theta.Clone()
	clone[0].Data[0] = 99
	if theta[0].Data[0] == 99 {
		t.Fatalf("Clone did not deep-copy component data")
	}
}

func TestFlatNames(t *testing.T) {
	theta := simpleTheta()
	names := theta.FlatNames()
	want := []string{"mu", "n", "x[0,0]", "x[1,0]", "x[0,1]", "x[1,1]"}
	if len(names) != len(want) {
		t.Fatalf("FlatNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("FlatNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRoundPreserve(t *testing.T) {
	cases := []struct {
		aKind, bKind Kind
		v            float64
		want         float64
		wantKind     Kind
	}{
		{Real, Real, 1.6, 1.6, Real},
		{Integer, Real, 1.5, 2, Integer},
		{Real, Integer, -1.5, -2, Integer},
		{Integer, Integer, 2.4, 2, Integer},
	}
	for _, c := range cases {
		got, kind := roundPreserve(c.aKind, c.bKind, c.v)
		if got != c.want || kind != c.wantKind {
			t.Errorf("roundPreserve(%v, %v, %v) = (%v, %v), want (%v, %v)",
				c.aKind, c.bKind, c.v, got, kind, c.want, c.wantKind)
		}
	}
}
