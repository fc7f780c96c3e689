package fixed

import "fmt"

// MustNew is like [New] but panics if the fixed-point number cannot be constructed.
// It simplifies safe initialization of global variables holding fixed-point numbers.
func MustNew(coef int64, scale int) Fixed {
	d, err := New(coef, scale)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %v) failed: %v", coef, scale, err))
	}
	return d
}

// MustNewFromInt64 is like [NewFromInt64] but panics if the integer is out of range.
func MustNewFromInt64(n int64) Fixed {
	d, err := NewFromInt64(n)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromInt64(%v) failed: %v", n, err))
	}
	return d
}

// MustNewFromFloat64 is like [NewFromFloat64] but panics if the float cannot be converted.
func MustNewFromFloat64(f float64) Fixed {
	d, err := NewFromFloat64(f)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromFloat64(%v) failed: %v", f, err))
	}
	return d
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding fixed-point numbers.
func MustParse(s string) Fixed {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// MustAdd is like [Fixed.Add] but panics if computing error.
func (d Fixed) MustAdd(e Fixed) Fixed {
	f, err := d.Add(e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", d, err))
	}
	return f
}

// MustSub is like [Fixed.Sub] but panics if computing error.
func (d Fixed) MustSub(e Fixed) Fixed {
	f, err := d.Sub(e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", d, err))
	}
	return f
}

// MustMul is like [Fixed.Mul] but panics if computing error.
func (d Fixed) MustMul(e Fixed) Fixed {
	f, err := d.Mul(e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", d, err))
	}
	return f
}

// MustQuo is like [Fixed.Quo] but panics if computing error.
func (d Fixed) MustQuo(e Fixed) Fixed {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", d, err))
	}
	return f
}
