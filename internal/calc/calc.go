// Package calc evaluates arithmetic expressions over fixed-point numbers
// written in prefix (Polish) notation, such as "* 10 + 1.23 4.56".
package calc

import (
	"fmt"
	"strings"

	"github.com/govalues/fixed"
)

// Evaluate parses and evaluates the expression.
// Tokens are separated by white space.
// Binary operators are "+", "-", "*" and "/".
// Unary operators are "neg", "abs" and "sqrt".
// Operands are parsed with [fixed.Parse].
func Evaluate(input string) (fixed.Fixed, error) {
	return EvaluateTokens(strings.Fields(input))
}

// EvaluateTokens is like [Evaluate] but accepts tokens that are already split.
func EvaluateTokens(tokens []string) (fixed.Fixed, error) {
	if len(tokens) == 0 {
		return fixed.Fixed{}, fmt.Errorf("parsing tokens: no tokens")
	}
	stack, err := processTokens(tokens)
	if err != nil {
		return fixed.Fixed{}, fmt.Errorf("processing tokens: %w", err)
	}
	if len(stack) != 1 {
		return fixed.Fixed{}, fmt.Errorf("post-processed stack contains %v, expected exactly one item", stack)
	}
	return stack[0], nil
}

func processTokens(tokens []string) ([]fixed.Fixed, error) {
	stack := make([]fixed.Fixed, 0, len(tokens))
	var err error
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		switch token {
		case "+", "-", "*", "/":
			stack, err = processOperator(stack, token)
		case "neg", "abs", "sqrt":
			stack, err = processFunction(stack, token)
		default:
			stack, err = processOperand(stack, token)
		}
		if err != nil {
			return nil, fmt.Errorf("processing token %q: %w", token, err)
		}
	}
	return stack, nil
}

func processOperator(stack []fixed.Fixed, token string) ([]fixed.Fixed, error) {
	if len(stack) < 2 {
		return nil, fmt.Errorf("not enough operands")
	}
	right := stack[len(stack)-2]
	left := stack[len(stack)-1]
	stack = stack[:len(stack)-2]
	var result fixed.Fixed
	var err error
	switch token {
	case "+":
		result, err = left.Add(right)
	case "-":
		result, err = left.Sub(right)
	case "*":
		result, err = left.Mul(right)
	case "/":
		result, err = left.Quo(right)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating \"%s %s %s\": %w", left, token, right, err)
	}
	return append(stack, result), nil
}

func processFunction(stack []fixed.Fixed, token string) ([]fixed.Fixed, error) {
	if len(stack) < 1 {
		return nil, fmt.Errorf("not enough operands")
	}
	arg := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	var result fixed.Fixed
	var err error
	switch token {
	case "neg":
		result = arg.Neg()
	case "abs":
		result = arg.Abs()
	case "sqrt":
		result, err = arg.Sqrt()
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating \"%s %s\": %w", token, arg, err)
	}
	return append(stack, result), nil
}

func processOperand(stack []fixed.Fixed, token string) ([]fixed.Fixed, error) {
	d, err := fixed.Parse(token)
	if err != nil {
		return nil, err
	}
	return append(stack, d), nil
}
