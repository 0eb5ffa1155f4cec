package main

import (
	"fmt"

	"github.com/zephyrtronium/infix"
)

// evaluator parses expressions in one of the command's modes.
type evaluator struct {
	parse   func(src string) (func(vars map[string]float64) string, error)
	explain func(src string) (string, error)
}

// newEvaluator creates an evaluator for a mode: math for numbers, logic for
// booleans, or any for either. Results are formatted with verb.
func newEvaluator(mode, verb string, opts ...infix.ParseOption) (*evaluator, error) {
	switch mode {
	case "math":
		return build[float64](verb, opts)
	case "logic":
		return build[bool](verb, opts)
	case "any", "":
		return build[infix.Value](verb, opts)
	default:
		return nil, fmt.Errorf("unknown mode %q (want math, logic, or any)", mode)
	}
}

func build[R infix.Result](verb string, opts []infix.ParseOption) (*evaluator, error) {
	p, err := infix.NewParser1[map[string]float64, R](infix.MapParam("v"), opts...)
	if err != nil {
		return nil, err
	}
	e := evaluator{
		parse: func(src string) (func(map[string]float64) string, error) {
			f, err := p.Parse(src)
			if err != nil {
				return nil, err
			}
			return func(vars map[string]float64) string {
				return fmt.Sprintf(verb, f(vars))
			}, nil
		},
		explain: p.Explain,
	}
	return &e, nil
}
