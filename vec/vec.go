// Package vec implements elementary operations on fixed-dimension vectors.
//
// Every function is pure: it allocates its result and never modifies its
// arguments. Operations on two vectors require them to have the same length;
// a mismatch is a programming error and panics with an error wrapping
// ErrDimension. Callers accepting vectors from outside should validate them
// with Check first.
package vec

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimension reports vectors of mismatched dimensionality.
var ErrDimension = errors.New("dimension mismatch")

// A Vec is a vector of arbitrary but fixed dimension.
type Vec []float64

// Check returns an error if a and b do not have the same length.
func Check(a, b Vec) error {
	if len(a) != len(b) {
		return fmt.Errorf("vec: %w: %d != %d", ErrDimension, len(a), len(b))
	}
	return nil
}

func mustMatch(a, b Vec) {
	if err := Check(a, b); err != nil {
		panic(err)
	}
}

// Zero returns the zero vector of dimension n.
func Zero(n int) Vec {
	return make(Vec, n)
}

// Clone returns a copy of v.
func Clone(v Vec) Vec {
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

// Sum returns a + b.
func Sum(a, b Vec) Vec {
	mustMatch(a, b)
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Sub returns a - b.
func Sub(a, b Vec) Vec {
	mustMatch(a, b)
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Length returns the Euclidean norm of v.
func Length(v Vec) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// Scale returns v multiplied by s.
func Scale(v Vec, s float64) Vec {
	out := make(Vec, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

// Unit returns v scaled to a length of 1,
// or the zero vector if v has zero length.
func Unit(v Vec) Vec {
	l := Length(v)
	if l == 0 {
		return Zero(len(v))
	}
	return Scale(v, 1/l)
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 {
	mustMatch(a, b)
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// Project returns the projection of a onto b.
func Project(a, b Vec) Vec {
	u := Unit(b)
	return Scale(u, Dot(a, u))
}

// Equal compares two vectors by value.
func Equal(a, b Vec) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func IsFinite(v Vec) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
