package sciexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AngleMode is the unit of angles taken by trigonometric functions and
// returned by their inverses.
type AngleMode int8

const (
	// Degrees measure a full turn as 360.
	Degrees AngleMode = iota
	// Radians measure a full turn as 2π.
	Radians
	// Gradians measure a full turn as 400.
	Gradians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	case Gradians:
		return "grad"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseAngleMode parses the name of an angle mode. It accepts the String
// forms as well as the full unit names, in any case.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	case "grad", "gradian", "gradians", "gon":
		return Gradians, nil
	}
	return 0, fmt.Errorf("unknown angle mode %q", s)
}

// toRadians converts an angle in m to radians.
func (m AngleMode) toRadians(x float64) float64 {
	switch m {
	case Degrees:
		return x * (math.Pi / 180)
	case Gradians:
		return x * (math.Pi / 200)
	default:
		return x
	}
}

// fromRadians converts an angle in radians to m.
func (m AngleMode) fromRadians(x float64) float64 {
	switch m {
	case Degrees:
		return x * (180 / math.Pi)
	case Gradians:
		return x * (200 / math.Pi)
	default:
		return x
	}
}

// quarter is the size of a quarter turn in m.
func (m AngleMode) quarter() float64 {
	switch m {
	case Degrees:
		return 90
	case Gradians:
		return 100
	default:
		return math.Pi / 2
	}
}

// Context is a context for evaluating expressions. A Context is never
// modified once created, so it is safe to use concurrently. The zero Context
// evaluates in degrees with the default depth limit.
type Context struct {
	mode  AngleMode
	depth int
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	angleopt     AngleMode
	evaldepthopt int
)

func (angleopt) ctxOption()     {}
func (evaldepthopt) ctxOption() {}

// Angle sets the angle mode of the context.
func Angle(mode AngleMode) ContextOption {
	return angleopt(mode)
}

// EvalDepth sets the maximum depth of expressions the context evaluates.
// Panics if n is not positive.
func EvalDepth(n int) ContextOption {
	if n <= 0 {
		panic("sciexpr: invalid eval depth " + strconv.Itoa(n))
	}
	return evaldepthopt(n)
}

// NewContext creates a new evaluation context. If no angle mode is given,
// the default is Degrees.
func NewContext(opts ...ContextOption) Context {
	return Context{depth: DefaultMaxDepth}.Clone(opts...)
}

// Clone returns a copy of the context with options applied.
func (ctx Context) Clone(opts ...ContextOption) Context {
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case angleopt:
			ctx.mode = AngleMode(opt)
		case evaldepthopt:
			ctx.depth = int(opt)
		default:
			panic("sciexpr: unknown option type")
		}
	}
	return ctx
}

// Mode returns the angle mode of the context.
func (ctx Context) Mode() AngleMode {
	return ctx.mode
}

// Eval evaluates an expression and returns the result. The first error
// encountered stops evaluation; it is a *DomainError, or a *SyntaxError if
// the expression is deeper than the context allows.
func (ctx Context) Eval(e *Expr) (float64, error) {
	if ctx.depth <= 0 {
		ctx.depth = DefaultMaxDepth
	}
	return e.n.eval(&ctx, 1)
}

// eval computes the node's value. depth is the depth of n in the tree.
func (n *node) eval(ctx *Context, depth int) (float64, error) {
	if depth > ctx.depth {
		return 0, &SyntaxError{Reason: TooDeep, Len: ctx.depth}
	}
	switch n.kind {
	case nodeNum:
		if math.IsInf(n.num, 0) {
			return 0, &DomainError{Kind: Overflow, X: n.num}
		}
		return n.num, nil
	case nodeConst:
		return globalconsts[n.name], nil
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			x, err := a.eval(ctx, depth+1)
			if err != nil {
				return 0, err
			}
			args[i] = x
		}
		return call(ctx, n.fn, args)
	case nodeNeg:
		x, err := n.left.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case nodeFact:
		x, err := n.left.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		return factorial(x)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return n.evalbinary(ctx, depth)
	default:
		panic("sciexpr: invalid AST node " + n.kind.String())
	}
}

// evalbinary evaluates a binary operator node. The left spine of a chain of
// left-associative operators is walked in a loop at n's depth, matching the
// height computed by newnode.
func (n *node) evalbinary(ctx *Context, depth int) (float64, error) {
	var buf [16]*node
	spine := append(buf[:0], n)
	for n.kind.chains() && n.left.kind.chains() {
		n = n.left
		spine = append(spine, n)
	}
	l, err := n.left.eval(ctx, depth+1)
	if err != nil {
		return 0, err
	}
	for i := len(spine) - 1; i >= 0; i-- {
		op := spine[i]
		r, err := op.right.eval(ctx, depth+1)
		if err != nil {
			return 0, err
		}
		if l, err = arith(op.kind, l, r); err != nil {
			return 0, err
		}
	}
	return l, nil
}

// arith applies a binary operator to finite operands.
func arith(op nodeKind, l, r float64) (float64, error) {
	var v float64
	var name string
	switch op {
	case nodeAdd:
		v, name = l+r, "+"
	case nodeSub:
		v, name = l-r, "-"
	case nodeMul:
		v, name = l*r, "*"
	case nodeDiv:
		if r == 0 {
			return 0, &DomainError{Kind: DivisionByZero, Func: "/", X: l}
		}
		v, name = l/r, "/"
	case nodePow:
		// Guard against invalid exponentiations. A negative base allows only
		// integer exponents.
		if l < 0 && !isInt(r) {
			return 0, &DomainError{Kind: InvalidPower, Func: "^", X: r}
		}
		if l == 0 && r < 0 {
			return 0, &DomainError{Kind: DivisionByZero, Func: "^", X: r}
		}
		v, name = math.Pow(l, r), "^"
	default:
		panic("sciexpr: arith on " + op.String())
	}
	if math.IsInf(v, 0) {
		return 0, &DomainError{Kind: Overflow, Func: name, X: l}
	}
	return v, nil
}

// call applies fn to args, converting angles to and from ctx's mode.
func call(ctx *Context, fn *function, args []float64) (float64, error) {
	x := args[0]
	if fn.angle == angleIn {
		if fn.poles && ctx.mode != Radians && isOddInt(x/ctx.mode.quarter()) {
			return 0, &DomainError{Kind: OutOfDomain, Func: fn.name, X: x, Arg: 1}
		}
		args[0] = ctx.mode.toRadians(x)
	}
	v, err := fn.call(args)
	if err != nil {
		return 0, err
	}
	if fn.angle == angleOut {
		v = ctx.mode.fromRadians(v)
	}
	switch {
	case math.IsInf(v, 0):
		return 0, &DomainError{Kind: Overflow, Func: fn.name, X: x, Arg: 1}
	case math.IsNaN(v):
		return 0, &DomainError{Kind: OutOfDomain, Func: fn.name, X: x, Arg: 1}
	}
	return v, nil
}

// Evaluate normalizes, parses, and evaluates an expression in the given angle
// mode.
func Evaluate(expression string, mode AngleMode) (float64, error) {
	e, err := Parse(Normalize(expression))
	if err != nil {
		return 0, err
	}
	return NewContext(Angle(mode)).Eval(e)
}

// EvaluateString is a shortcut to evaluate an expression and format its
// result for display.
func EvaluateString(expression string, mode AngleMode) (string, error) {
	v, err := Evaluate(expression, mode)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}
