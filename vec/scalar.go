// Package vec implements small 3D vectors over any number type that
// satisfies [Scalar], so the same geometry code can run on [fixed.Fixed]
// in deterministic builds and on [Float] everywhere else.
package vec

import (
	"fmt"
	"math"

	"github.com/govalues/fixed"
)

// Scalar is the contract a number type must satisfy to be used in a vector.
// Fallible operations return errors matching the sentinel errors of
// package fixed.
type Scalar[T any] interface {
	Add(T) (T, error)
	Sub(T) (T, error)
	Mul(T) (T, error)
	Quo(T) (T, error)
	Neg() T
	Sqrt() (T, error)
	Cmp(T) int
	IsZero() bool
}

var (
	_ Scalar[fixed.Fixed] = fixed.Fixed{}
	_ Scalar[Float]       = Float(0)
)

// Float is a float64 that satisfies [Scalar].
// Results that would be infinite or NaN are reported as errors instead.
type Float float64

func checkFloat(f float64, op string, x, y Float) (Float, error) {
	switch {
	case math.IsNaN(f):
		return 0, fmt.Errorf("computing [%v %v %v]: %w", x, op, y, fixed.ErrInvalidOperation)
	case math.IsInf(f, 0):
		return 0, fmt.Errorf("computing [%v %v %v]: %w", x, op, y, fixed.ErrOverflow)
	}
	return Float(f), nil
}

func (x Float) Add(y Float) (Float, error) {
	return checkFloat(float64(x)+float64(y), "+", x, y)
}

func (x Float) Sub(y Float) (Float, error) {
	return checkFloat(float64(x)-float64(y), "-", x, y)
}

func (x Float) Mul(y Float) (Float, error) {
	return checkFloat(float64(x)*float64(y), "*", x, y)
}

// Quo returns an error matching [fixed.ErrDivisionByZero] if y is 0.
func (x Float) Quo(y Float) (Float, error) {
	if y == 0 {
		return 0, fmt.Errorf("computing [%v / %v]: %w", x, y, fixed.ErrDivisionByZero)
	}
	return checkFloat(float64(x)/float64(y), "/", x, y)
}

func (x Float) Neg() Float {
	return -x
}

// Sqrt returns an error matching [fixed.ErrInvalidOperation] if x is negative
// or NaN.
func (x Float) Sqrt() (Float, error) {
	f := math.Sqrt(float64(x))
	if x < 0 || math.IsNaN(f) {
		return 0, fmt.Errorf("computing sqrt(%v): %w", x, fixed.ErrInvalidOperation)
	}
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("computing sqrt(%v): %w", x, fixed.ErrOverflow)
	}
	return Float(f), nil
}

func (x Float) Cmp(y Float) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (x Float) IsZero() bool {
	return x == 0
}

// Approximately returns true if |x - y| <= epsilon.
// Floating-point results should be compared with this method instead of ==.
func (x Float) Approximately(y, epsilon Float) bool {
	return math.Abs(float64(x)-float64(y)) <= float64(epsilon)
}
