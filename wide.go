package fixed

import (
	num "github.com/shabbyrobe/go-num"
)

// wint (Wide INTeger) is a wrapper around num.I128.
// It holds intermediate results of a single arithmetic operation and is never
// returned to callers.
type wint struct {
	v num.I128
}

// wideScale is the scale of a fixed-point number as a wint.
var wideScale = widen(Scale)

// widen converts x to wint.
// The conversion is lossless.
func widen(x int64) wint {
	return wint{v: num.I128From64(x)}
}

// add calculates x + y.
func (x wint) add(y wint) wint {
	return wint{v: x.v.Add(y.v)}
}

// sub calculates x - y.
func (x wint) sub(y wint) wint {
	return wint{v: x.v.Sub(y.v)}
}

// mul calculates x * y.
func (x wint) mul(y wint) wint {
	return wint{v: x.v.Mul(y.v)}
}

// quo calculates x / y truncated towards zero and checks division by zero.
func (x wint) quo(y wint) (z wint, ok bool) {
	if y.v.IsZero() {
		return wint{}, false
	}
	return wint{v: x.v.Quo(y.v)}, true
}

// quoRem calculates q = x / y truncated towards zero, r = x - y * q.
func (x wint) quoRem(y wint) (q, r wint, ok bool) {
	if y.v.IsZero() {
		return wint{}, wint{}, false
	}
	qv, rv := x.v.QuoRem(y.v)
	return wint{v: qv}, wint{v: rv}, true
}

// neg calculates -x.
func (x wint) neg() wint {
	return wint{v: x.v.Neg()}
}

// abs calculates |x|.
func (x wint) abs() wint {
	if x.sign() < 0 {
		return x.neg()
	}
	return x
}

// sign returns -1, 0 or +1 depending on the sign of x.
func (x wint) sign() int {
	return x.v.Sign()
}

// cmp compares x and y and returns -1, 0 or +1.
func (x wint) cmp(y wint) int {
	return x.v.Cmp(y.v)
}

// int64 returns x as int64 and reports whether the conversion was lossless.
func (x wint) int64() (z int64, ok bool) {
	if !x.v.IsInt64() {
		return 0, false
	}
	return x.v.AsInt64(), true
}

func (x wint) String() string {
	return x.v.String()
}
