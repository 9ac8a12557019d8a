package sciexpr

import "strconv"

// SyntaxReason classifies a SyntaxError.
type SyntaxReason int8

const (
	// Unbalanced is an open parenthesis with no close or vice versa.
	Unbalanced SyntaxReason = iota + 1
	// MissingOperand is an operator or bracket with nothing to apply to,
	// including empty input.
	MissingOperand
	// MissingOperator is two operands next to each other. Multiplication is
	// never implied.
	MissingOperator
	// Arity is a function call with the wrong number of arguments.
	Arity
	// EmptyArgument is a function call with an empty argument, as in
	// "sin()" or "root(2,)".
	EmptyArgument
	// Separator is a comma outside a function argument list.
	Separator
	// NotCalled is a function name without an argument list.
	NotCalled
	// TooDeep is an expression nested beyond the configured limit.
	TooDeep
)

func (r SyntaxReason) String() string {
	switch r {
	case Unbalanced:
		return "unbalanced parenthesis"
	case MissingOperand:
		return "missing operand"
	case MissingOperator:
		return "missing operator"
	case Arity:
		return "wrong number of arguments"
	case EmptyArgument:
		return "empty argument"
	case Separator:
		return "misplaced separator"
	case NotCalled:
		return "function without arguments"
	case TooDeep:
		return "nested too deeply"
	default:
		return "SyntaxReason(" + strconv.Itoa(int(r)) + ")"
	}
}

// SyntaxError is an error indicating input that does not form an expression.
// It implements InputError.
type SyntaxError struct {
	// Col is the position of the offending token.
	Col int
	// Reason is the class of error.
	Reason SyntaxReason
	// Text is the offending token. It is empty at the end of input.
	Text string
	// Func is the function being called, for Arity, EmptyArgument, and
	// NotCalled.
	Func string
	// Len is the number of arguments given, for Arity, or the nesting
	// limit, for TooDeep.
	Len int
}

func (err *SyntaxError) Error() string {
	switch err.Reason {
	case Unbalanced:
		if err.Text == ")" {
			return errpos(err.Col, "close bracket ) with no open bracket")
		}
		return errpos(err.Col, "open bracket ( with no close bracket")
	case MissingOperand:
		if err.Text == "" {
			if err.Col <= 1 {
				return errpos(err.Col, "no expression")
			}
			return errpos(err.Col, "no expression at end")
		}
		return errpos(err.Col, "no expression up to "+strconv.Quote(err.Text))
	case MissingOperator:
		return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
	case Arity:
		return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
	case EmptyArgument:
		return errpos(err.Col, "empty argument to "+err.Func)
	case Separator:
		return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Text))
	case NotCalled:
		return errpos(err.Col, "expected ( after "+err.Func)
	case TooDeep:
		return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Len))
	default:
		return errpos(err.Col, err.Reason.String())
	}
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input syntax implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*LexError)(nil)
)
