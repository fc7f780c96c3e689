package fixed

import (
	"errors"
	"fmt"
	"math"
)

// Fixed type is a representation of a fixed-point decimal number with
// exactly [Digits] digits after the decimal point.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A fixed-point number stores a single signed 64-bit integer, the raw value,
// and its numeric value is equal to raw / [Scale].
// For example, a raw value of 13211390 represents the value 132.11390.
// Unlike floating-point numbers, every fixed-point number has the same
// absolute precision, which is equal to [ULP], across the whole range.
//
// Two fixed-point numbers are equal if and only if their raw values are equal,
// so the == operator can be used to compare them.
type Fixed struct {
	raw int64 // the numeric value multiplied by Scale
}

const (
	Digits   = 5       // number of digits after the decimal point
	Scale    = 100_000 // 10^Digits, the denominator of the raw value
	MaxScale = 19      // maximum scale accepted by [New]
	maxRaw   = math.MaxInt64
	minRaw   = -math.MaxInt64 // the range is symmetric, math.MinInt64 is never stored
)

var (
	ErrOverflow         = errors.New("fixed-point overflow")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidFixed     = errors.New("invalid fixed-point number")
	errScaleRange       = errors.New("scale out of range")
)

var (
	Zero    = Fixed{raw: 0}         // 0.00000
	One     = Fixed{raw: Scale}     // 1.00000
	NegOne  = Fixed{raw: -Scale}    // -1.00000
	Two     = Fixed{raw: 2 * Scale} // 2.00000
	Ten     = Fixed{raw: 10 * Scale}
	ULP     = Fixed{raw: 1} // 0.00001
	Epsilon = Fixed{raw: 3} // default tolerance for [Fixed.Approximately]
	Max     = Fixed{raw: maxRaw}
	Min     = Fixed{raw: minRaw}
	Pi      = Fixed{raw: 314_159}   // 3.14159
	E       = Fixed{raw: 271_828}   // 2.71828
	Phi     = Fixed{raw: 161_803}   // 1.61803
	Deg2Rad = Fixed{raw: 1_745}     // 0.01745
	Rad2Deg = Fixed{raw: 5_729_578} // 57.29578
)

// pow10 is a cache of powers of 10, where pow10[x] = 10^x.
var pow10 = [...]int64{
	1,                         // 10^0
	10,                        // 10^1
	100,                       // 10^2
	1_000,                     // 10^3
	10_000,                    // 10^4
	100_000,                   // 10^5
	1_000_000,                 // 10^6
	10_000_000,                // 10^7
	100_000_000,               // 10^8
	1_000_000_000,             // 10^9
	10_000_000_000,            // 10^10
	100_000_000_000,           // 10^11
	1_000_000_000_000,         // 10^12
	10_000_000_000_000,        // 10^13
	100_000_000_000_000,       // 10^14
	1_000_000_000_000_000,     // 10^15
	10_000_000_000_000_000,    // 10^16
	100_000_000_000_000_000,   // 10^17
	1_000_000_000_000_000_000, // 10^18
}

// newFixedFromWint narrows x to a fixed-point number and checks overflow.
// This is the only place where a wide intermediate result becomes a [Fixed].
func newFixedFromWint(x wint) (Fixed, error) {
	raw, ok := x.int64()
	if !ok || raw < minRaw {
		return Fixed{}, ErrOverflow
	}
	return Fixed{raw: raw}, nil
}

// quoHalfAway calculates x / y and rounds result using "half away from zero" rule.
// y must be positive.
func quoHalfAway(x, y wint) wint {
	q, r, ok := x.quoRem(y)
	if !ok {
		panic("quoHalfAway: zero divisor") // unexpected by design
	}
	if r = r.abs(); r.add(r).cmp(y) >= 0 {
		if x.sign() < 0 {
			q = q.sub(widen(1))
		} else {
			q = q.add(widen(1))
		}
	}
	return q
}

// New returns a fixed-point number equal to coef / 10^scale.
// If the scale is greater than [Digits], the result is rounded to [Digits]
// digits after the decimal point using "half away from zero" rule.
//
// New returns an error if:
//   - the scale is less than 0 or greater than [MaxScale];
//   - the result is outside of the range [Min, Max].
func New(coef int64, scale int) (Fixed, error) {
	if scale < 0 || MaxScale < scale {
		return Fixed{}, fmt.Errorf("New(%v, %v) failed: %w", coef, scale, errScaleRange)
	}
	x := widen(coef)
	switch {
	case scale < Digits:
		x = x.mul(widen(pow10[Digits-scale]))
	case scale > Digits:
		x = quoHalfAway(x, widen(pow10[scale-Digits]))
	}
	d, err := newFixedFromWint(x)
	if err != nil {
		return Fixed{}, fmt.Errorf("New(%v, %v) failed: %w", coef, scale, err)
	}
	return d, nil
}

// FromRaw returns a fixed-point number with the given raw value,
// that is raw / [Scale].
// Also see method [Fixed.Raw].
//
// FromRaw returns an error if raw is math.MinInt64, which has no
// positive counterpart and is therefore outside of the range [Min, Max].
func FromRaw(raw int64) (Fixed, error) {
	if raw < minRaw {
		return Fixed{}, fmt.Errorf("FromRaw(%v) failed: %w", raw, ErrOverflow)
	}
	return Fixed{raw: raw}, nil
}

// NewFromInt64 converts an integer to a fixed-point number.
// The conversion is exact: it multiplies n by [Scale] using integer arithmetic.
//
// NewFromInt64 returns an error if |n| is greater than [Max].Int64().
func NewFromInt64(n int64) (Fixed, error) {
	d, err := newFixedFromWint(widen(n).mul(wideScale))
	if err != nil {
		return Fixed{}, fmt.Errorf("converting %v: %w", n, err)
	}
	return d, nil
}

// NewFromFloat64 converts a float to a (possibly rounded) fixed-point number.
// It computes round(f * [Scale]) using "half away from zero" rule.
//
// NewFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the result is outside of the range [Min, Max].
func NewFromFloat64(f float64) (Fixed, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Fixed{}, fmt.Errorf("converting %v: special value: %w", f, ErrInvalidOperation)
	}
	d, err := fromFloat64(f)
	if err != nil {
		return Fixed{}, fmt.Errorf("converting %v: %w", f, err)
	}
	return d, nil
}

// Raw returns the stored integer of d, which is equal to d * [Scale].
func (d Fixed) Raw() int64 {
	return d.raw
}

// Float64 returns the nearest binary floating-point number to d.
// The integer and fractional parts are converted separately, so integers
// are always converted exactly.
// This is the only lossy conversion to floating point, and it is the
// conversion used by the transcendental functions.
func (d Fixed) Float64() float64 {
	q, r := d.raw/Scale, d.raw%Scale
	return float64(q) + float64(r)/Scale
}

// Int64 returns the integer part of d truncated towards zero.
func (d Fixed) Int64() int64 {
	return d.raw / Scale
}

// Parse converts a string to a (possibly rounded) fixed-point number.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	.5
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	numeric-string ::= [sign] significand
//
// Digits beyond [Digits] after the decimal point are rounded using
// "half away from zero" rule.
//
// Parse returns an error if the string does not represent a valid number or
// if the number is outside of the range [Min, Max].
func Parse(s string) (Fixed, error) {
	d, err := parse(s)
	if err != nil {
		return Fixed{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return d, nil
}

func parse(s string) (Fixed, error) {
	var (
		pos     int
		width   int
		neg     bool
		coef    wint
		scale   int
		hascoef bool
		ten     wint
		limit   wint
	)

	width = len(s)
	ten = widen(10)
	limit = widen(maxRaw)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		coef = coef.mul(ten).add(widen(int64(s[pos] - '0')))
		if coef.cmp(limit) > 0 {
			return Fixed{}, ErrOverflow
		}
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			// One extra digit is enough to round half away from zero.
			if scale <= Digits {
				coef = coef.mul(ten).add(widen(int64(s[pos] - '0')))
				scale++
			}
			pos++
		}
	}

	if pos != width || !hascoef {
		return Fixed{}, ErrInvalidFixed
	}

	// Rescaling
	switch {
	case scale < Digits:
		coef = coef.mul(widen(pow10[Digits-scale]))
	case scale > Digits:
		coef = quoHalfAway(coef, ten)
	}

	if neg {
		coef = coef.neg()
	}
	return newFixedFromWint(coef)
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of a fixed-point number.
// The returned string always has exactly [Digits] digits after the decimal
// point and is formatted according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits
//	numeric-string ::= [sign] significand
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Fixed) String() string {
	var (
		buf   [24]byte
		pos   int
		coef  uint64
		scale int
	)

	pos = len(buf) - 1
	coef = uint64(d.Abs().raw)
	scale = Digits

	// Coefficient
	for {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
		if scale > 0 {
			scale--
			// Decimal point
			if scale == 0 {
				buf[pos] = '.'
				pos--
				// Leading 0
				if coef == 0 {
					buf[pos] = '0'
					pos--
				}
			}
		}
		if coef == 0 && scale == 0 {
			break
		}
	}

	// Sign
	if d.IsNeg() {
		buf[pos] = '-'
		pos--
	}

	return string(buf[pos+1:])
}

// IsZero returns true if d == 0.
func (d Fixed) IsZero() bool {
	return d.raw == 0
}

// IsPos returns true if d > 0.
func (d Fixed) IsPos() bool {
	return d.raw > 0
}

// IsNeg returns true if d < 0.
func (d Fixed) IsNeg() bool {
	return d.raw < 0
}

// IsInt returns true if fractional part of d is zero.
func (d Fixed) IsInt() bool {
	return d.raw%Scale == 0
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Fixed) Sign() int {
	switch {
	case d.raw < 0:
		return -1
	case d.raw > 0:
		return 1
	}
	return 0
}

// Signum returns [NegOne] if d < 0 and [One] otherwise.
// Unlike [Fixed.Sign], the result is a fixed-point number and can be used
// as a multiplier without conversion.
func (d Fixed) Signum() Fixed {
	if d.raw < 0 {
		return NegOne
	}
	return One
}

// Neg returns d with opposite sign.
// Neg is exact for every fixed-point number because the range is symmetric.
func (d Fixed) Neg() Fixed {
	return Fixed{raw: -d.raw}
}

// Abs returns absolute value of d.
func (d Fixed) Abs() Fixed {
	if d.raw < 0 {
		return d.Neg()
	}
	return d
}

// CopySign returns d with the same sign as e.
// If e is zero, sign of the result remains unchanged.
func (d Fixed) CopySign(e Fixed) Fixed {
	switch {
	case e.IsZero():
		return d
	case d.IsNeg() != e.IsNeg():
		return d.Neg()
	default:
		return d
	}
}

// Add returns the exact sum of d and e.
//
// Add returns an overflow error if the sum is outside of the range [Min, Max].
func (d Fixed) Add(e Fixed) (Fixed, error) {
	f, err := add(d, e)
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v + %v]: %w", d, e, err)
	}
	return f, nil
}

func add(d, e Fixed) (Fixed, error) {
	return newFixedFromWint(widen(d.raw).add(widen(e.raw)))
}

// Sub returns the exact difference of d and e.
//
// Sub returns an overflow error if the difference is outside of the range [Min, Max].
func (d Fixed) Sub(e Fixed) (Fixed, error) {
	f, err := sub(d, e)
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v - %v]: %w", d, e, err)
	}
	return f, nil
}

func sub(d, e Fixed) (Fixed, error) {
	return newFixedFromWint(widen(d.raw).sub(widen(e.raw)))
}

// Mul returns the (possibly truncated) product of d and e.
// The exact product is computed with 128-bit integers and then truncated
// towards zero to [Digits] digits after the decimal point.
// This truncation is the only rounding step of the multiplication.
//
// Mul returns an overflow error if the product is outside of the range [Min, Max].
func (d Fixed) Mul(e Fixed) (Fixed, error) {
	f, err := mul(d, e)
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v * %v]: %w", d, e, err)
	}
	return f, nil
}

func mul(d, e Fixed) (Fixed, error) {
	p, ok := widen(d.raw).mul(widen(e.raw)).quo(wideScale)
	if !ok {
		panic("mul: zero scale") // unexpected by design
	}
	return newFixedFromWint(p)
}

// Quo returns the (possibly truncated) quotient of d and e.
// The dividend is scaled by [Scale] with 128-bit integers, divided by the
// divisor and truncated towards zero.
// This truncation is the only rounding step of the division.
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the quotient is outside of the range [Min, Max].
func (d Fixed) Quo(e Fixed) (Fixed, error) {
	f, err := quo(d, e)
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v / %v]: %w", d, e, err)
	}
	return f, nil
}

func quo(d, e Fixed) (Fixed, error) {
	q, ok := widen(d.raw).mul(wideScale).quo(widen(e.raw))
	if !ok {
		return Fixed{}, ErrDivisionByZero
	}
	return newFixedFromWint(q)
}

// QuoRem returns the quotient q and remainder r of d and e such that
// d = e * q + r, where q is an integer truncated towards zero and the sign
// of r is the same as the sign of d. Both q and r are exact.
//
// QuoRem returns an error if:
//   - the divisor is 0;
//   - the quotient is outside of the range [Min, Max].
func (d Fixed) QuoRem(e Fixed) (q, r Fixed, err error) {
	qw, rw, ok := widen(d.raw).quoRem(widen(e.raw))
	if !ok {
		return Fixed{}, Fixed{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", d, e, d, e, ErrDivisionByZero)
	}
	q, err = newFixedFromWint(qw.mul(wideScale))
	if err != nil {
		return Fixed{}, Fixed{}, fmt.Errorf("computing [%v div %v] and [%v mod %v]: %w", d, e, d, e, err)
	}
	r, err = newFixedFromWint(rw)
	if err != nil {
		panic(fmt.Sprintf("%v.QuoRem(%v) failed: %v", d, e, err)) // unexpected by design
	}
	return q, r, nil
}

// Pow returns d raised to the integer power exp.
// The power is computed by repeated multiplication in fixed point, so the
// result is truncated once per multiplication, exactly as [Fixed.Mul] does.
// For negative exponents, d is inverted first and the inverse is raised to |exp|.
// Pow takes O(|exp|) multiplications, unless the result reaches zero earlier.
//
// Pow returns an error if:
//   - d is 0 and exp is negative;
//   - the result is outside of the range [Min, Max].
func (d Fixed) Pow(exp int) (Fixed, error) {
	f, err := pow(d, exp)
	if err != nil {
		return Fixed{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, err)
	}
	return f, nil
}

func pow(d Fixed, exp int) (Fixed, error) {
	// Special cases
	switch {
	case exp == 0:
		return One, nil
	case d == One:
		return One, nil
	case d == NegOne:
		if exp%2 == 0 {
			return One, nil
		}
		return NegOne, nil
	}

	// Inversion
	n := uint64(exp)
	if exp < 0 {
		inv, err := quo(One, d)
		if err != nil {
			return Fixed{}, err
		}
		d = inv
		n = -n
	}

	// General case
	f := d
	for i := uint64(1); i < n && !f.IsZero(); i++ {
		var err error
		f, err = mul(f, d)
		if err != nil {
			return Fixed{}, err
		}
	}
	return f, nil
}

type rounding int

const (
	roundHalfAway rounding = iota // to nearest, ties away from zero
	roundDown                     // towards zero
	roundFloor                    // towards negative infinity
	roundCeil                     // towards positive infinity
)

// quantize rounds d to the specified number of digits after the decimal point.
// The rounding is performed on the raw value, without floating-point arithmetic.
func (d Fixed) quantize(scale int, mode rounding) (Fixed, error) {
	if scale < 0 || Digits < scale {
		return Fixed{}, errScaleRange
	}
	if scale == Digits {
		return d, nil
	}
	unit := pow10[Digits-scale]
	q, r := d.raw/unit, d.raw%unit
	switch mode {
	case roundHalfAway:
		switch {
		case 2*r >= unit:
			q++
		case 2*r <= -unit:
			q--
		}
	case roundFloor:
		if r < 0 {
			q--
		}
	case roundCeil:
		if r > 0 {
			q++
		}
	}
	return newFixedFromWint(widen(q).mul(widen(unit)))
}

// Round returns d that is rounded to the specified number of digits after
// the decimal point using "half away from zero" rule.
// Round(0) rounds d to the nearest integer.
// Also see methods [Fixed.Trunc], [Fixed.Floor], [Fixed.Ceil].
//
// Round panics if the scale is less than 0 or greater than [Digits].
// Round returns an overflow error if rounding away from zero
// leaves the range [Min, Max].
func (d Fixed) Round(scale int) (Fixed, error) {
	f, err := d.quantize(scale, roundHalfAway)
	if err != nil {
		if errors.Is(err, errScaleRange) {
			panic(fmt.Sprintf("%v.Round(%v) failed: %v", d, scale, err))
		}
		return Fixed{}, fmt.Errorf("rounding %v to %v digit(s): %w", d, scale, err)
	}
	return f, nil
}

// Trunc returns d that is truncated towards zero to the specified number of
// digits after the decimal point.
//
// Trunc panics if the scale is less than 0 or greater than [Digits].
func (d Fixed) Trunc(scale int) Fixed {
	f, err := d.quantize(scale, roundDown)
	if err != nil {
		panic(fmt.Sprintf("%v.Trunc(%v) failed: %v", d, scale, err))
	}
	return f
}

// Floor returns d that is rounded down to the specified number of digits
// after the decimal point.
// Also see method [Fixed.Ceil].
//
// Floor panics if the scale is less than 0 or greater than [Digits].
// Floor returns an overflow error if the result is less than [Min].
func (d Fixed) Floor(scale int) (Fixed, error) {
	f, err := d.quantize(scale, roundFloor)
	if err != nil {
		if errors.Is(err, errScaleRange) {
			panic(fmt.Sprintf("%v.Floor(%v) failed: %v", d, scale, err))
		}
		return Fixed{}, fmt.Errorf("rounding %v down to %v digit(s): %w", d, scale, err)
	}
	return f, nil
}

// Ceil returns d that is rounded up to the specified number of digits
// after the decimal point.
// Also see method [Fixed.Floor].
//
// Ceil panics if the scale is less than 0 or greater than [Digits].
// Ceil returns an overflow error if the result is greater than [Max].
func (d Fixed) Ceil(scale int) (Fixed, error) {
	f, err := d.quantize(scale, roundCeil)
	if err != nil {
		if errors.Is(err, errScaleRange) {
			panic(fmt.Sprintf("%v.Ceil(%v) failed: %v", d, scale, err))
		}
		return Fixed{}, fmt.Errorf("rounding %v up to %v digit(s): %w", d, scale, err)
	}
	return f, nil
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
func (d Fixed) Cmp(e Fixed) int {
	switch {
	case d.raw < e.raw:
		return -1
	case d.raw > e.raw:
		return 1
	}
	return 0
}

// Approximately returns true if |d - e| <= epsilon.
// The distance is computed without overflow for any pair of fixed-point numbers.
// A negative epsilon never matches.
// Also see variable [Epsilon].
func (d Fixed) Approximately(e, epsilon Fixed) bool {
	dist := widen(d.raw).sub(widen(e.raw)).abs()
	return dist.cmp(widen(epsilon.raw)) <= 0
}

// Max returns maximum of d and e.
func (d Fixed) Max(e Fixed) Fixed {
	if d.raw >= e.raw {
		return d
	}
	return e
}

// Min returns minimum of d and e.
func (d Fixed) Min(e Fixed) Fixed {
	if d.raw <= e.raw {
		return d
	}
	return e
}

// Clamp compares d with min and max and returns:
//
//	min if d < min
//	max if d > max
//	  d otherwise
//
// Clamp panics if min > max.
func (d Fixed) Clamp(min, max Fixed) Fixed {
	if min.raw > max.raw {
		panic(fmt.Sprintf("%v.Clamp(%v, %v) failed: invalid range", d, min, max))
	}
	return d.Max(min).Min(max)
}
