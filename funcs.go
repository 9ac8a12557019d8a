package sciexpr

import (
	"math"
	"strconv"
)

// angleUse describes how a function relates to the angle mode.
type angleUse int8

const (
	// angleNone functions ignore the angle mode.
	angleNone angleUse = iota
	// angleIn functions take an angle, converted to radians before the call.
	angleIn
	// angleOut functions return an angle, converted from radians after the
	// call.
	angleOut
)

// function is an entry in the function registry. The parser checks arity
// against it and the evaluator calls it.
type function struct {
	name  string
	arity int
	angle angleUse
	// poles marks functions undefined at odd multiples of a quarter turn.
	// Only exact arguments in degrees or gradians can land on one.
	poles bool
	// call computes the function. Arguments of angleIn functions are in
	// radians, as are results of angleOut functions. call may return
	// non-finite values; the evaluator reports those as errors.
	call func(args []float64) (float64, error)
}

var globalfuncs = map[string]*function{}

var globalconsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func init() {
	for _, f := range []*function{
		monadic("sin", angleIn, math.Sin),
		monadic("cos", angleIn, math.Cos),
		monadic("tan", angleIn, math.Tan).withPoles(),
		guarded("asin", angleOut, math.Asin, unitInterval),
		guarded("acos", angleOut, math.Acos, unitInterval),
		monadic("atan", angleOut, math.Atan),

		monadic("sinh", angleNone, math.Sinh),
		monadic("cosh", angleNone, math.Cosh),
		monadic("tanh", angleNone, math.Tanh),
		monadic("asinh", angleNone, math.Asinh),
		guarded("acosh", angleNone, math.Acosh, func(x float64) bool { return x >= 1 }),
		guarded("atanh", angleNone, math.Atanh, func(x float64) bool { return -1 < x && x < 1 }),

		guarded("log10", angleNone, math.Log10, positive),
		guarded("log", angleNone, math.Log10, positive),
		guarded("ln", angleNone, math.Log, positive),
		guarded("log2", angleNone, math.Log2, positive),
		monadic("exp", angleNone, math.Exp),

		guarded("sqrt", angleNone, math.Sqrt, func(x float64) bool { return x >= 0 }),
		monadic("cbrt", angleNone, math.Cbrt),
		monadic("abs", angleNone, math.Abs),
		{name: "root", arity: 2, call: root},
	} {
		globalfuncs[f.name] = f
	}
}

// registered reports whether name is a known function or constant.
func registered(name string) bool {
	if _, ok := globalfuncs[name]; ok {
		return true
	}
	_, ok := globalconsts[name]
	return ok
}

// monadic wraps a function of one variable that is defined on all reals.
func monadic(name string, angle angleUse, f func(float64) float64) *function {
	return &function{
		name:  name,
		arity: 1,
		angle: angle,
		call: func(args []float64) (float64, error) {
			return f(args[0]), nil
		},
	}
}

// guarded wraps a function of one variable that is defined where ok is true.
func guarded(name string, angle angleUse, f func(float64) float64, ok func(float64) bool) *function {
	return &function{
		name:  name,
		arity: 1,
		angle: angle,
		call: func(args []float64) (float64, error) {
			if !ok(args[0]) {
				return 0, &DomainError{Kind: OutOfDomain, Func: name, X: args[0], Arg: 1}
			}
			return f(args[0]), nil
		},
	}
}

func (f *function) withPoles() *function {
	f.poles = true
	return f
}

func unitInterval(x float64) bool {
	return -1 <= x && x <= 1
}

func positive(x float64) bool {
	return x > 0
}

// root computes the x-th root of y. Negative y has a real root only for odd
// integer x.
func root(args []float64) (float64, error) {
	x, y := args[0], args[1]
	switch {
	case x == 0:
		return 0, &DomainError{Kind: InvalidPower, Func: "root", X: x, Arg: 1}
	case y == 0 && x < 0:
		return 0, &DomainError{Kind: DivisionByZero, Func: "root", X: y, Arg: 2}
	case y < 0:
		if !isOddInt(x) {
			return 0, &DomainError{Kind: InvalidPower, Func: "root", X: y, Arg: 2}
		}
		return -math.Pow(-y, 1/x), nil
	}
	return math.Pow(y, 1/x), nil
}

func isInt(x float64) bool {
	return x == math.Trunc(x) && !math.IsInf(x, 0)
}

func isOddInt(x float64) bool {
	return isInt(x) && math.Mod(x, 2) != 0
}

// maxFactorial is the largest n for which n! is within the range of integers
// a float64 holds exactly, 2^53.
const maxFactorial = 18

var factorials [maxFactorial + 1]float64

func init() {
	factorials[0] = 1
	for i := 1; i < len(factorials); i++ {
		factorials[i] = factorials[i-1] * float64(i)
	}
}

func factorial(x float64) (float64, error) {
	if x < 0 || !isInt(x) {
		return 0, &DomainError{Kind: InvalidFactorial, Func: "!", X: x}
	}
	if x > maxFactorial {
		return 0, &DomainError{Kind: Overflow, Func: "!", X: x}
	}
	return factorials[int(x)], nil
}

// DomainKind classifies a DomainError.
type DomainKind int8

const (
	// DivisionByZero is division by zero, including zero to a negative power.
	DivisionByZero DomainKind = iota + 1
	// InvalidPower is a non-integer power of a negative number or a zeroth
	// root.
	InvalidPower
	// InvalidFactorial is a factorial of a negative or non-integer value.
	InvalidFactorial
	// OutOfDomain is a function argument outside the function's domain.
	OutOfDomain
	// Overflow is a result too large to represent as a float64.
	Overflow
)

func (k DomainKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case InvalidPower:
		return "invalid power"
	case InvalidFactorial:
		return "invalid factorial"
	case OutOfDomain:
		return "outside domain"
	case Overflow:
		return "overflow"
	default:
		return "DomainKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DomainError is an error returned when an operation is undefined for its
// operands or its result is not representable.
type DomainError struct {
	// Kind is the class of error.
	Kind DomainKind
	// X is the offending operand.
	X float64
	// Arg is the 1-based index of the argument, if Func is a function.
	Arg int
	// Func is the function or operator name.
	Func string
}

func (err *DomainError) Error() string {
	r := err.Kind.String()
	if err.Func != "" {
		r += " in " + err.Func
	}
	r += ": " + strconv.FormatFloat(err.X, 'g', -1, 64)
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
