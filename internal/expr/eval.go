package expr

import (
	"fmt"
	"math"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
)

// Env resolves an identifier to a value during evaluation. Implementations
// (see Resolver in resolver.go) exclude in-flight parameters from the
// environment to give the cycle-surfacing behavior spec §4.1 requires.
type Env interface {
	Lookup(name string) (any, bool)
}

type mapEnv map[string]any

func (m mapEnv) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// unknownNameErr builds the UnknownName BuildError for a missing identifier.
func unknownNameErr(exprText, name string) error {
	return builderrors.New(builderrors.UnknownName, exprText).WithCause(fmt.Errorf("unknown identifier %q", name))
}

// divisionByZeroErr builds the DivisionByZero BuildError.
func divisionByZeroErr(exprText string) error {
	return builderrors.New(builderrors.DivisionByZero, exprText)
}

// evalErr builds a generic EvalError BuildError wrapping cause.
func evalErr(exprText string, cause error) error {
	return builderrors.New(builderrors.EvalError, exprText).WithCause(cause)
}

var functions = map[string]func(args []float64) (float64, error){
	"min": func(a []float64) (float64, error) {
		if len(a) == 0 {
			return 0, fmt.Errorf("min requires at least one argument")
		}
		m := a[0]
		for _, v := range a[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	},
	"max": func(a []float64) (float64, error) {
		if len(a) == 0 {
			return 0, fmt.Errorf("max requires at least one argument")
		}
		m := a[0]
		for _, v := range a[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	},
	"abs":   unary1(math.Abs),
	"sqrt":  unary1(math.Sqrt),
	"floor": unary1(math.Floor),
	"ceil":  unary1(math.Ceil),
	"sin":   unary1(math.Sin),
	"cos":   unary1(math.Cos),
	"tan":   unary1(math.Tan),
	"round": func(a []float64) (float64, error) {
		if len(a) != 1 {
			return 0, fmt.Errorf("round requires exactly one argument")
		}
		return math.Round(a[0]), nil
	},
	"pow": func(a []float64) (float64, error) {
		if len(a) != 2 {
			return 0, fmt.Errorf("pow requires exactly two arguments")
		}
		return math.Pow(a[0], a[1]), nil
	},
}

func unary1(f func(float64) float64) func([]float64) (float64, error) {
	return func(a []float64) (float64, error) {
		if len(a) != 1 {
			return 0, fmt.Errorf("expected exactly one argument, got %d", len(a))
		}
		return f(a[0]), nil
	}
}

// evalResult is the dynamically typed result of evaluating a node: a
// float64 or a bool (comparison/boolean nodes), matching the "resolves to
// the expression's evaluated result preserving its runtime type" policy
// from spec §4.1.
type evalResult struct {
	num    float64
	b      bool
	isBool bool
}

func num(v float64) evalResult  { return evalResult{num: v} }
func boolean(v bool) evalResult { return evalResult{b: v, isBool: true} }

func (r evalResult) asFloat() float64 {
	if r.isBool {
		if r.b {
			return 1
		}
		return 0
	}
	return r.num
}

// Any returns r as an int, float64, or bool matching Python-ish ergonomics:
// whole-valued floats collapse to int, matching the original
// parameter_resolver.py behavior of returning native numeric types.
func (r evalResult) Any() any {
	if r.isBool {
		return r.b
	}
	if r.num == math.Trunc(r.num) && !math.IsInf(r.num, 0) {
		return int(r.num)
	}
	return r.num
}

func evalNode(n node, exprText string, env Env) (evalResult, error) {
	switch v := n.(type) {
	case numberNode:
		return num(v.value), nil
	case identNode:
		if v.name == "pi" {
			return num(math.Pi), nil
		}
		val, ok := env.Lookup(v.name)
		if !ok {
			return evalResult{}, unknownNameErr(exprText, v.name)
		}
		f, err := toFloat(val)
		if err != nil {
			return evalResult{}, evalErr(exprText, err)
		}
		return num(f), nil
	case unaryNode:
		operand, err := evalNode(v.operand, exprText, env)
		if err != nil {
			return evalResult{}, err
		}
		switch v.op {
		case "-":
			return num(-operand.asFloat()), nil
		case "!":
			return boolean(operand.asFloat() == 0), nil
		default:
			return evalResult{}, evalErr(exprText, fmt.Errorf("unknown unary operator %s", v.op))
		}
	case binaryNode:
		return evalBinary(v, exprText, env)
	case callNode:
		fn, ok := functions[v.fn]
		if !ok {
			return evalResult{}, evalErr(exprText, fmt.Errorf("unknown function %s", v.fn))
		}
		args := make([]float64, len(v.args))
		for i, a := range v.args {
			r, err := evalNode(a, exprText, env)
			if err != nil {
				return evalResult{}, err
			}
			args[i] = r.asFloat()
		}
		result, err := fn(args)
		if err != nil {
			return evalResult{}, evalErr(exprText, err)
		}
		return num(result), nil
	default:
		return evalResult{}, evalErr(exprText, fmt.Errorf("unrecognized expression node"))
	}
}

func evalBinary(v binaryNode, exprText string, env Env) (evalResult, error) {
	left, err := evalNode(v.left, exprText, env)
	if err != nil {
		return evalResult{}, err
	}

	// Short-circuit boolean operators.
	if v.op == "&&" && left.asFloat() == 0 {
		return boolean(false), nil
	}
	if v.op == "||" && left.asFloat() != 0 {
		return boolean(true), nil
	}

	right, err := evalNode(v.right, exprText, env)
	if err != nil {
		return evalResult{}, err
	}

	lf, rf := left.asFloat(), right.asFloat()

	switch v.op {
	case "+":
		return num(lf + rf), nil
	case "-":
		return num(lf - rf), nil
	case "*":
		return num(lf * rf), nil
	case "/":
		if rf == 0 {
			return evalResult{}, divisionByZeroErr(exprText)
		}
		return num(lf / rf), nil
	case "%":
		if rf == 0 {
			return evalResult{}, divisionByZeroErr(exprText)
		}
		return num(math.Mod(lf, rf)), nil
	case "**":
		return num(math.Pow(lf, rf)), nil
	case "<":
		return boolean(lf < rf), nil
	case "<=":
		return boolean(lf <= rf), nil
	case ">":
		return boolean(lf > rf), nil
	case ">=":
		return boolean(lf >= rf), nil
	case "==":
		return boolean(lf == rf), nil
	case "!=":
		return boolean(lf != rf), nil
	case "&&":
		return boolean(lf != 0 && rf != 0), nil
	case "||":
		return boolean(lf != 0 || rf != 0), nil
	default:
		return evalResult{}, evalErr(exprText, fmt.Errorf("unknown operator %s", v.op))
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", v)
	}
}

// Eval parses and evaluates a bare expression (without the ${...} wrapper)
// against env, returning a typed result (spec §4.1).
func Eval(exprText string, env Env) (any, error) {
	ast, err := parse(exprText)
	if err != nil {
		return nil, err
	}
	result, err := evalNode(ast, exprText, env)
	if err != nil {
		return nil, err
	}
	return result.Any(), nil
}
