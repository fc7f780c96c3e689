package fixed

import (
	"fmt"
	"math"
)

// The functions in this file convert the operand to float64 with
// [Fixed.Float64], call the corresponding function of the math package and
// convert the result back with [NewFromFloat64].
// Their results depend on the floating-point implementation of the platform
// and are not guaranteed to be bit-for-bit reproducible, unlike
// [Fixed.Add], [Fixed.Sub], [Fixed.Mul], [Fixed.Quo] and [Fixed.Pow].

// fromFloat64 converts the result of a floating-point function back to
// a fixed-point number.
func fromFloat64(f float64) (Fixed, error) {
	switch {
	case math.IsNaN(f):
		return Fixed{}, ErrInvalidOperation
	case math.IsInf(f, 0):
		return Fixed{}, ErrOverflow
	}
	r := math.Round(f * Scale)
	if r >= 0x1p63 || r <= -0x1p63 {
		return Fixed{}, ErrOverflow
	}
	return Fixed{raw: int64(r)}, nil
}

// Sqrt returns the (possibly rounded) square root of d.
//
// Sqrt returns an error if d is negative.
func (d Fixed) Sqrt() (Fixed, error) {
	if d.IsNeg() {
		return Fixed{}, fmt.Errorf("computing sqrt(%v): %w", d, ErrInvalidOperation)
	}
	f, err := fromFloat64(math.Sqrt(d.Float64()))
	if err != nil {
		panic(fmt.Sprintf("%v.Sqrt() failed: %v", d, err)) // unexpected by design
	}
	return f, nil
}

// Sin returns the (possibly rounded) sine of the radian argument d.
func (d Fixed) Sin() Fixed {
	f, err := fromFloat64(math.Sin(d.Float64()))
	if err != nil {
		panic(fmt.Sprintf("%v.Sin() failed: %v", d, err)) // unexpected by design
	}
	return f
}

// Cos returns the (possibly rounded) cosine of the radian argument d.
func (d Fixed) Cos() Fixed {
	f, err := fromFloat64(math.Cos(d.Float64()))
	if err != nil {
		panic(fmt.Sprintf("%v.Cos() failed: %v", d, err)) // unexpected by design
	}
	return f
}

// Tan returns the (possibly rounded) tangent of the radian argument d.
//
// Tan returns an overflow error if the tangent is outside of the range [Min, Max].
func (d Fixed) Tan() (Fixed, error) {
	f, err := fromFloat64(math.Tan(d.Float64()))
	if err != nil {
		return Fixed{}, fmt.Errorf("computing tan(%v): %w", d, err)
	}
	return f, nil
}

// Acos returns the (possibly rounded) arccosine, in radians, of d.
//
// Acos returns an error if d is less than -1 or greater than 1.
func (d Fixed) Acos() (Fixed, error) {
	if d.Cmp(NegOne) < 0 || d.Cmp(One) > 0 {
		return Fixed{}, fmt.Errorf("computing acos(%v): %w", d, ErrInvalidOperation)
	}
	f, err := fromFloat64(math.Acos(d.Float64()))
	if err != nil {
		panic(fmt.Sprintf("%v.Acos() failed: %v", d, err)) // unexpected by design
	}
	return f, nil
}

// Powf returns the (possibly rounded) d raised to the fractional power e.
// Use [Fixed.Pow] for integer exponents, it does not leave fixed point.
//
// Powf returns an error if:
//   - d is negative and e is not an integer;
//   - d is 0 and e is negative;
//   - the result is outside of the range [Min, Max].
func (d Fixed) Powf(e Fixed) (Fixed, error) {
	if d.IsZero() && e.IsNeg() {
		return Fixed{}, fmt.Errorf("computing [%v^%v]: %w", d, e, ErrDivisionByZero)
	}
	f, err := fromFloat64(math.Pow(d.Float64(), e.Float64()))
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v^%v]: %w", d, e, err)
	}
	return f, nil
}
