package infix

import "strconv"

// Type is the type of an expression.
type Type int8

const (
	// TypeNone is the zero Type. No expression has this type.
	TypeNone Type = iota
	// TypeNumber is the type of float64 expressions.
	TypeNumber
	// TypeBool is the type of boolean expressions.
	TypeBool
	// TypeAny is a declared result type which accepts either numbers or
	// booleans.
	TypeAny
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeAny:
		return "any"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is the result of an expression parsed in open mode.
type Value struct {
	// Type is TypeNumber or TypeBool.
	Type Type
	// Num is the value of a number.
	Num float64
	// Bool is the value of a boolean.
	Bool bool
}

// Number creates a number Value.
func Number(x float64) Value {
	return Value{Type: TypeNumber, Num: x}
}

// Boolean creates a boolean Value.
func Boolean(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

// Interface returns the value as a float64 or bool.
func (v Value) Interface() any {
	if v.Type == TypeBool {
		return v.Bool
	}
	return v.Num
}

func (v Value) String() string {
	if v.Type == TypeBool {
		return strconv.FormatBool(v.Bool)
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// Result is the set of result types of compiled expressions.
type Result interface {
	float64 | bool | Value
}

// resultType gets the declared Type for a result type parameter.
func resultType[R Result]() Type {
	var r R
	switch any(r).(type) {
	case float64:
		return TypeNumber
	case bool:
		return TypeBool
	default:
		return TypeAny
	}
}
