package sciexpr

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node owns
// its children.
type node struct {
	kind nodeKind

	// name is the source text of a number, or the name of a constant or
	// function.
	name string
	num  float64
	fn   *function

	left  *node
	right *node
	args  []*node
	// height is the number of nodes on the longest path to a leaf, counting
	// this one.
	height int
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // num
	nodeConst // lookup(name)
	nodeCall  // fn(args...)

	nodeNeg  // -left
	nodeAdd  // left + right
	nodeSub  // left - right
	nodeMul  // left * right
	nodeDiv  // left / right
	nodePow  // left ^ right
	nodeFact // left!
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

// newnode creates an interior node and computes its height. A chain of
// left-associative operators like 1+2-3 evaluates in a loop, so the left
// operand of a chained node adds no height.
func newnode(kind nodeKind, left, right *node) *node {
	n := &node{kind: kind, left: left, right: right}
	if kind.chains() && left.kind.chains() {
		n.height = left.height
		if h := 1 + right.height; h > n.height {
			n.height = h
		}
		return n
	}
	n.height = 1 + maxheight(left, right)
	return n
}

// chains reports whether k is a left-associative binary operator.
func (k nodeKind) chains() bool {
	switch k {
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		return true
	}
	return false
}

func maxheight(ns ...*node) int {
	h := 0
	for _, n := range ns {
		if n != nil && n.height > h {
			h = n.height
		}
	}
	return h
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeConst:
		b.WriteString(n.name)
		return
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeAdd:
		n.binfmt(b, " + ")
	case nodeSub:
		n.binfmt(b, " - ")
	case nodeMul:
		n.binfmt(b, " * ")
	case nodeDiv:
		n.binfmt(b, " / ")
	case nodePow:
		n.binfmt(b, " ^ ")
	case nodeFact:
		n.left.fmt(b)
		b.WriteByte('!')
	default:
		panic("sciexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) binfmt(b *strings.Builder, op string) {
	n.left.fmt(b)
	b.WriteString(op)
	n.right.fmt(b)
}
