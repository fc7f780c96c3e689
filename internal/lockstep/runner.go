package lockstep

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/govalues/fixed"
	"github.com/rs/zerolog"
)

// ErrDigestMismatch is returned when a digest differs from the expected one.
var ErrDigestMismatch = errors.New("digest mismatch")

// Result is the outcome of a scenario run.
type Result struct {
	Name       string
	Iterations int
	Vars       map[string]fixed.Fixed

	// Digest is the xxhash of the binary form of every step result in
	// execution order.
	Digest uint64
}

// DigestHex returns the digest in the form used by [Scenario.Expect].
func (r Result) DigestHex() string {
	return fmt.Sprintf("%016x", r.Digest)
}

// Run executes the scenario.
// It returns an error matching [ErrDigestMismatch] if the scenario has an
// expected digest and the run produced a different one.
func Run(ctx context.Context, logger zerolog.Logger, s *Scenario) (Result, error) {
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	vars, err := s.initialVars()
	if err != nil {
		return Result{}, err
	}

	logger = logger.With().Str("scenario", s.Name).Logger()
	logger.Info().Int("iterations", s.Iterations).Int("steps", len(s.Steps)).Msg("running scenario")

	h := xxhash.New()
	buf := make([]byte, 0, 8)
	for i := 0; i < s.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for j, step := range s.Steps {
			d, err := evaluate(vars, step)
			if err != nil {
				return Result{}, fmt.Errorf("iteration %v, step %v (%v): %w", i, j, step.Op, err)
			}
			vars[step.Dst] = d
			buf = d.AppendBinary(buf[:0])
			_, _ = h.Write(buf)
		}
		logger.Debug().Int("iteration", i).Str("digest", fmt.Sprintf("%016x", h.Sum64())).Msg("iteration done")
	}

	res := Result{
		Name:       s.Name,
		Iterations: s.Iterations,
		Vars:       vars,
		Digest:     h.Sum64(),
	}
	logger.Info().Str("digest", res.DigestHex()).Msg("scenario done")

	if s.Expect != "" && s.Expect != res.DigestHex() {
		return res, fmt.Errorf("%v: got %v, want %v: %w", s.Name, res.DigestHex(), s.Expect, ErrDigestMismatch)
	}
	return res, nil
}

// operand resolves a variable name or a decimal literal.
func operand(vars map[string]fixed.Fixed, s string) (fixed.Fixed, error) {
	if d, ok := vars[s]; ok {
		return d, nil
	}
	d, err := fixed.Parse(s)
	if err != nil {
		return fixed.Fixed{}, fmt.Errorf("operand %q is neither a variable nor a number: %w", s, err)
	}
	return d, nil
}

// integer resolves an operand that must hold an integer, such as an exponent.
func integer(vars map[string]fixed.Fixed, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := operand(vars, s)
	if err != nil {
		return 0, err
	}
	if !d.IsInt() {
		return 0, fmt.Errorf("operand %q = %v is not an integer: %w", s, d, fixed.ErrInvalidOperation)
	}
	return int(d.Int64()), nil
}

func evaluate(vars map[string]fixed.Fixed, step Step) (fixed.Fixed, error) {
	a, err := operand(vars, step.A)
	if err != nil {
		return fixed.Fixed{}, err
	}

	switch step.Op {
	case OpNeg:
		return a.Neg(), nil
	case OpAbs:
		return a.Abs(), nil
	case OpSqrt:
		return a.Sqrt()
	case OpSin:
		return a.Sin(), nil
	case OpCos:
		return a.Cos(), nil
	case OpPow:
		n, err := integer(vars, step.B)
		if err != nil {
			return fixed.Fixed{}, err
		}
		return a.Pow(n)
	case OpRound:
		n, err := integer(vars, step.B)
		if err != nil {
			return fixed.Fixed{}, err
		}
		if n < 0 || n > fixed.Digits {
			return fixed.Fixed{}, fmt.Errorf("rounding to %v digit(s): %w", n, fixed.ErrInvalidOperation)
		}
		return a.Round(n)
	}

	b, err := operand(vars, step.B)
	if err != nil {
		return fixed.Fixed{}, err
	}
	switch step.Op {
	case OpAdd:
		return a.Add(b)
	case OpSub:
		return a.Sub(b)
	case OpMul:
		return a.Mul(b)
	case OpQuo:
		return a.Quo(b)
	}
	panic(fmt.Sprintf("evaluate(%v) failed: unknown operation", step.Op)) // unexpected by design
}
