package vec

import (
	"fmt"

	"github.com/govalues/fixed"
)

// Vector3 is a vector in 3D space.
// The zero value is the zero vector.
type Vector3[T Scalar[T]] struct {
	X, Y, Z T
}

// New returns a vector with the given components.
func New[T Scalar[T]](x, y, z T) Vector3[T] {
	return Vector3[T]{X: x, Y: y, Z: z}
}

func (a Vector3[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", a.X, a.Y, a.Z)
}

// IsZero returns true if all components of a are zero.
func (a Vector3[T]) IsZero() bool {
	return a.X.IsZero() && a.Y.IsZero() && a.Z.IsZero()
}

// Add returns a + b.
func (a Vector3[T]) Add(b Vector3[T]) (Vector3[T], error) {
	x, err := a.X.Add(b.X)
	if err != nil {
		return Vector3[T]{}, err
	}
	y, err := a.Y.Add(b.Y)
	if err != nil {
		return Vector3[T]{}, err
	}
	z, err := a.Z.Add(b.Z)
	if err != nil {
		return Vector3[T]{}, err
	}
	return Vector3[T]{x, y, z}, nil
}

// Sub returns a - b.
func (a Vector3[T]) Sub(b Vector3[T]) (Vector3[T], error) {
	x, err := a.X.Sub(b.X)
	if err != nil {
		return Vector3[T]{}, err
	}
	y, err := a.Y.Sub(b.Y)
	if err != nil {
		return Vector3[T]{}, err
	}
	z, err := a.Z.Sub(b.Z)
	if err != nil {
		return Vector3[T]{}, err
	}
	return Vector3[T]{x, y, z}, nil
}

// Neg returns -a.
func (a Vector3[T]) Neg() Vector3[T] {
	return Vector3[T]{a.X.Neg(), a.Y.Neg(), a.Z.Neg()}
}

// Scale returns a multiplied by the scalar m.
func (a Vector3[T]) Scale(m T) (Vector3[T], error) {
	x, err := a.X.Mul(m)
	if err != nil {
		return Vector3[T]{}, err
	}
	y, err := a.Y.Mul(m)
	if err != nil {
		return Vector3[T]{}, err
	}
	z, err := a.Z.Mul(m)
	if err != nil {
		return Vector3[T]{}, err
	}
	return Vector3[T]{x, y, z}, nil
}

// Dot returns the dot product of a and b.
// Products are summed in X, Y, Z order, so the result is reproducible
// for deterministic scalars.
func (a Vector3[T]) Dot(b Vector3[T]) (T, error) {
	var zero T
	x, err := a.X.Mul(b.X)
	if err != nil {
		return zero, err
	}
	y, err := a.Y.Mul(b.Y)
	if err != nil {
		return zero, err
	}
	z, err := a.Z.Mul(b.Z)
	if err != nil {
		return zero, err
	}
	s, err := x.Add(y)
	if err != nil {
		return zero, err
	}
	return s.Add(z)
}

// cross returns p*q - r*s.
func cross[T Scalar[T]](p, q, r, s T) (T, error) {
	var zero T
	pq, err := p.Mul(q)
	if err != nil {
		return zero, err
	}
	rs, err := r.Mul(s)
	if err != nil {
		return zero, err
	}
	return pq.Sub(rs)
}

// Cross returns the cross product of a and b.
func (a Vector3[T]) Cross(b Vector3[T]) (Vector3[T], error) {
	x, err := cross(a.Y, b.Z, a.Z, b.Y)
	if err != nil {
		return Vector3[T]{}, err
	}
	y, err := cross(a.Z, b.X, a.X, b.Z)
	if err != nil {
		return Vector3[T]{}, err
	}
	z, err := cross(a.X, b.Y, a.Y, b.X)
	if err != nil {
		return Vector3[T]{}, err
	}
	return Vector3[T]{x, y, z}, nil
}

// LengthSquared returns the squared Euclidean length of a.
func (a Vector3[T]) LengthSquared() (T, error) {
	return a.Dot(a)
}

// Length returns the Euclidean length of a.
func (a Vector3[T]) Length() (T, error) {
	var zero T
	l, err := a.LengthSquared()
	if err != nil {
		return zero, fmt.Errorf("computing length of %v: %w", a, err)
	}
	return l.Sqrt()
}

// Normalize returns a unit vector in the same direction as a.
//
// Normalize returns an error matching [fixed.ErrDivisionByZero] if a is
// the zero vector, or if its length rounds to zero.
func (a Vector3[T]) Normalize() (Vector3[T], error) {
	if a.IsZero() {
		return Vector3[T]{}, fmt.Errorf("normalizing %v: %w", a, fixed.ErrDivisionByZero)
	}
	l, err := a.Length()
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("normalizing %v: %w", a, err)
	}
	x, err := a.X.Quo(l)
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("normalizing %v: %w", a, err)
	}
	y, err := a.Y.Quo(l)
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("normalizing %v: %w", a, err)
	}
	z, err := a.Z.Quo(l)
	if err != nil {
		return Vector3[T]{}, fmt.Errorf("normalizing %v: %w", a, err)
	}
	return Vector3[T]{x, y, z}, nil
}
