// Package lockstep replays simulation scenarios in fixed-point arithmetic and
// fingerprints every intermediate result, so that runs on different machines
// can be compared by a single digest.
package lockstep

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/govalues/fixed"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned for scenarios that cannot be run.
var ErrInvalidScenario = errors.New("invalid scenario")

// Op is the name of a step operation.
type Op string

const (
	OpAdd   Op = "add"
	OpSub   Op = "sub"
	OpMul   Op = "mul"
	OpQuo   Op = "quo"
	OpPow   Op = "pow"   // b is an integer exponent
	OpRound Op = "round" // b is the number of digits to keep
	OpSqrt  Op = "sqrt"
	OpSin   Op = "sin"
	OpCos   Op = "cos"
	OpNeg   Op = "neg"
	OpAbs   Op = "abs"
)

// binary reports whether the operation needs the second operand.
func (o Op) binary() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpQuo, OpPow, OpRound:
		return true
	}
	return false
}

func (o Op) valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpQuo, OpPow, OpRound,
		OpSqrt, OpSin, OpCos, OpNeg, OpAbs:
		return true
	}
	return false
}

// Step computes dst = op(a, b).
// Operands are variable names or decimal literals.
type Step struct {
	Op  Op     `yaml:"op"`
	Dst string `yaml:"dst"`
	A   string `yaml:"a"`
	B   string `yaml:"b,omitempty"`
}

// Scenario is a sequence of steps repeated for a number of iterations.
type Scenario struct {
	Name       string            `yaml:"name"`
	Iterations int               `yaml:"iterations"`
	Vars       map[string]string `yaml:"vars"`
	Steps      []Step            `yaml:"steps"`

	// Expect is the hex digest the run must produce, if set.
	Expect string `yaml:"expect,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML scenario.
// A missing iteration count defaults to 1.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScenario)
	}
	if s.Iterations == 0 {
		s.Iterations = 1
	}
	if s.Iterations < 0 {
		return fmt.Errorf("%w: %v iterations", ErrInvalidScenario, s.Iterations)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}

	if _, err := s.initialVars(); err != nil {
		return err
	}

	for i, step := range s.Steps {
		switch {
		case !step.Op.valid():
			return fmt.Errorf("%w: step %v: unknown operation %q", ErrInvalidScenario, i, step.Op)
		case step.Dst == "":
			return fmt.Errorf("%w: step %v: missing dst", ErrInvalidScenario, i)
		case step.A == "":
			return fmt.Errorf("%w: step %v: missing operand a", ErrInvalidScenario, i)
		case step.Op.binary() && step.B == "":
			return fmt.Errorf("%w: step %v: %v needs operand b", ErrInvalidScenario, i, step.Op)
		case !step.Op.binary() && step.B != "":
			return fmt.Errorf("%w: step %v: %v takes one operand", ErrInvalidScenario, i, step.Op)
		}
	}
	return nil
}

// initialVars parses the initial values of the variables.
func (s *Scenario) initialVars() (map[string]fixed.Fixed, error) {
	vars := make(map[string]fixed.Fixed, len(s.Vars))
	for _, name := range s.VarNames() {
		d, err := fixed.Parse(s.Vars[name])
		if err != nil {
			return nil, fmt.Errorf("%w: variable %q: %w", ErrInvalidScenario, name, err)
		}
		vars[name] = d
	}
	return vars, nil
}

// VarNames returns the names of the initial variables in sorted order.
func (s *Scenario) VarNames() []string {
	names := make([]string, 0, len(s.Vars))
	for name := range s.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
