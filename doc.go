/*
Package fixed implements deterministic fixed-point decimal numbers.
It is specifically designed as a drop-in scalar for simulations that must
produce bit-identical results on every platform, such as lockstep networked
games and replayable physics.

# Representation

[Fixed] is a struct with a single field, a signed 64-bit integer called
the raw value.
The numerical value of a fixed-point number is calculated as:

  - Raw / [Scale], where [Scale] is equal to 100000.

In other words, every fixed-point number has exactly [Digits] (5) digits
after the decimal point.
For example, a fixed-point number with a raw value of 13211390 represents
the value 132.11390.
Each value has exactly one representation, so two fixed-point numbers are
equal if and only if their raw values are equal.

# Constraints

The range of a fixed-point number is symmetric:

	| Minimum                    | Maximum                   |
	| -------------------------- | ------------------------- |
	| -92,233,720,368,547.75807  | 92,233,720,368,547.75807  |

The raw value math.MinInt64, which has no positive counterpart, is never
produced, so [Fixed.Neg] and [Fixed.Abs] are exact for every fixed-point number.
This precision of 0.00001 over ±9.2×10^13 is enough to represent positions of
10μm within a radius of 616 astronomical units.

Special values such as NaN, Infinity, or negative zeros are not supported.
This ensures that arithmetic operations always produce either valid
fixed-point numbers or errors.

# Conversions

The package provides methods for converting fixed-point numbers:

  - from/to string:
    [Parse], [Fixed.String].
  - from/to float64:
    [NewFromFloat64], [Fixed.Float64].
  - from/to int64:
    [New], [NewFromInt64], [Fixed.Int64], [FromRaw], [Fixed.Raw].

Conversions from float64 round half away from zero.
Conversions from int64 are exact and never use floating-point arithmetic.

# Operations

Each arithmetic operation is carried out in three steps:

 1. Both operands are widened to 128-bit integers.
    The widening is lossless and never changes the denominator.

 2. The operation is performed with 128-bit integer arithmetic.
    No 128-bit operation can overflow for any pair of fixed-point operands.

 3. The result is narrowed back to 64 bits.
    If the result is outside of the range, an overflow error is returned.

[Fixed.Add] and [Fixed.Sub] are exact.
[Fixed.Mul] and [Fixed.Quo] round exactly once, by truncating the wide result
towards zero.
[Fixed.Pow] multiplies repeatedly and truncates once per multiplication.
Because all of these steps are integer operations, their results are
reproducible bit-for-bit across platforms, compilers and architectures.

# Transcendental functions

[Fixed.Sqrt], [Fixed.Sin], [Fixed.Cos], [Fixed.Tan], [Fixed.Acos] and
[Fixed.Powf] convert their operand to float64, call the corresponding
function of the math package, and convert the result back.
While these results are accurate to about one unit in the last place,
they are not guaranteed to be reproducible across platforms with different
floating-point implementations.
Code that requires strict determinism should avoid these functions in
simulation state.

# Rounding

In addition to the truncation performed by multiplication and division,
the package provides methods for explicit rounding:

  - half away from zero:
    [Fixed.Round].
  - towards positive infinity:
    [Fixed.Ceil].
  - towards negative infinity:
    [Fixed.Floor].
  - towards zero:
    [Fixed.Trunc].

These methods operate on the raw value and never use floating point.

# Encoding

Text encodings ([Fixed.MarshalText], JSON) use the decimal form of [Fixed.String].
Binary encodings ([Fixed.MarshalBinary], [Fixed.MarshalCBOR]) and the SQL
driver value carry the raw value only, as a big-endian int64 or a CBOR integer.
[NullFixed] represents a nullable SQL column.

# Errors

Errors are returned in the following cases:

  - Division by Zero.
    Unlike the standard library, [Fixed.Quo] and [Fixed.QuoRem] do not panic
    when dividing by 0.
    Instead, they return an error matching [ErrDivisionByZero].

  - Invalid Operation.
    [Fixed.Sqrt] of a negative number, [Fixed.Acos] outside of [-1, 1] and
    conversions from NaN or Infinity return an error matching
    [ErrInvalidOperation].

  - Overflow.
    Unlike standard integers, there is no "wrap around" for fixed-point
    numbers.
    For out-of-range values, arithmetic operations return an error matching
    [ErrOverflow].

Errors are not returned in case of precision loss.
Every multiplication and division loses at most one unit in the last place,
which is documented rather than signaled.
*/
package fixed
