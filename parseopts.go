package sciexpr

import "strconv"

// DefaultMaxDepth is the nesting limit used when parsing or evaluating
// without an explicit limit.
const DefaultMaxDepth = 1024

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds general data for parsing.
type parsectx struct {
	// maxdepth bounds the parser's recursion and the height of the tree.
	maxdepth int
}

type depthopt int

// MaxDepth sets the maximum nesting depth of a parsed expression. Each
// parenthesis, function call, and unary or postfix operator counts toward the
// depth, as does each right operand. A chain of left-associative operators
// at one level, as in 1+2-3*4, counts once regardless of its length. Panics
// if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("sciexpr: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
