package sciexpr

import (
	"errors"
	"strconv"
)

// Expr = num | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | Fact | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
// Fact = Expr '!'

// Expr is a parsed expression that can be evaluated with a context. An Expr
// is never modified after parsing.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// parser walks a token list. The last token is always EOF, and next never
// advances past it.
type parser struct {
	toks []lexToken
	i    int
	// depth is the current recursion depth of parseterm.
	depth int
	p     parsectx
}

func (ps *parser) peek() lexToken {
	return ps.toks[ps.i]
}

func (ps *parser) next() lexToken {
	tok := ps.toks[ps.i]
	if tok.kind != tokenEOF {
		ps.i++
	}
	return tok
}

// Parse parses an expression so it can be evaluated with a context. src must
// already be in plain spelling; see Normalize. The given options are applied
// in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	ps := parser{toks: toks, p: p}
	n, err := ps.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := ps.next(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	return &Expr{n: n}, nil
}

// parseterm parses operators until one binds less tightly than until. If
// there is no error, then the next token is one that ends the term: EOF, a
// close bracket, a separator, or an operator the caller must handle.
func (ps *parser) parseterm(until operator) (*node, error) {
	ps.depth++
	defer func() { ps.depth-- }()
	if ps.depth > ps.p.maxdepth {
		return nil, ps.toodeep(ps.peek())
	}
	n, err := ps.parselhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok := ps.peek()
		switch tok.kind {
		case tokenOp:
			if tok.text == "!" {
				if !factprec.moreBinding(until) {
					return n, nil
				}
				ps.next()
				n = newnode(nodeFact, n, nil)
				if err := ps.checkheight(n, tok); err != nil {
					return nil, err
				}
				continue
			}
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				return n, nil
			}
			ps.next()
			// The exponent of ^ keeps factorials, so 2^3! is 2^(3!), but
			// stops at every other binary operator.
			rhsprec := prec
			if prec.op == nodePow {
				rhsprec = exponentprec
			}
			rhs, err := ps.parseterm(rhsprec)
			if err != nil {
				return nil, err
			}
			n = newnode(prec.op, n, rhs)
			if err := ps.checkheight(n, tok); err != nil {
				return nil, err
			}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			return n, nil
		case tokenNum, tokenIdent, tokenOpen:
			// Multiplication is never implied, so "2pi" and "2(3)" are
			// errors.
			return nil, &SyntaxError{Col: tok.pos, Reason: MissingOperator, Text: tok.text}
		default:
			panic("sciexpr: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func (ps *parser) parselhs(until operator) (*node, error) {
	tok := ps.next()
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			panic("sciexpr: lexer produced invalid number " + strconv.Quote(tok.text))
		}
		// An out of range literal parses as ±Inf, which evaluation reports.
		return &node{kind: nodeNum, name: tok.text, num: v, height: 1}, nil
	case tokenIdent:
		if _, ok := globalconsts[tok.text]; ok {
			return &node{kind: nodeConst, name: tok.text, height: 1}, nil
		}
		fn := globalfuncs[tok.text]
		if fn == nil {
			panic("sciexpr: lexer produced unregistered identifier " + strconv.Quote(tok.text))
		}
		return ps.parsecall(tok, fn)
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &SyntaxError{Col: tok.pos, Reason: MissingOperand, Text: tok.text}
		}
		if !prec.moreBinding(until) {
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := ps.parseterm(prec)
		if err != nil {
			return nil, err
		}
		if prec.op == nodeNop {
			return rhs, nil
		}
		n := newnode(nodeNeg, rhs, nil)
		if err := ps.checkheight(n, tok); err != nil {
			return nil, err
		}
		return n, nil
	case tokenOpen:
		rhs, err := ps.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		end := ps.next()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end)
		}
		return rhs, nil
	case tokenClose, tokenSep:
		return nil, &SyntaxError{Col: tok.pos, Reason: MissingOperand, Text: tok.text}
	case tokenEOF:
		return nil, &SyntaxError{Col: tok.pos, Reason: MissingOperand}
	default:
		panic("sciexpr: unknown token: " + tok.String())
	}
}

// parsecall parses the parenthesized argument list of a call to fn, named by
// tok.
func (ps *parser) parsecall(tok lexToken, fn *function) (*node, error) {
	if open := ps.next(); open.kind != tokenOpen {
		return nil, &SyntaxError{Col: open.pos, Reason: NotCalled, Text: open.text, Func: fn.name}
	}
	var args []*node
	for {
		if t := ps.peek(); t.kind == tokenSep || t.kind == tokenClose {
			return nil, &SyntaxError{Col: t.pos, Reason: EmptyArgument, Text: t.text, Func: fn.name}
		}
		arg, err := ps.parseterm(exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		end := ps.next()
		switch end.kind {
		case tokenSep:
			continue
		case tokenClose:
			// done
		case tokenEOF:
			return nil, &SyntaxError{Col: end.pos, Reason: Unbalanced, Text: "("}
		default:
			panic("sciexpr: parseterm ended on non-end token " + end.String())
		}
		break
	}
	if len(args) != fn.arity {
		return nil, &SyntaxError{Col: tok.pos, Reason: Arity, Text: tok.text, Func: fn.name, Len: len(args)}
	}
	n := &node{kind: nodeCall, name: fn.name, fn: fn, args: args}
	n.height = 1 + maxheight(args...)
	if err := ps.checkheight(n, tok); err != nil {
		return nil, err
	}
	return n, nil
}

// checkheight returns a TooDeep error at tok if n is taller than the limit.
func (ps *parser) checkheight(n *node, tok lexToken) error {
	if n.height > ps.p.maxdepth {
		return ps.toodeep(tok)
	}
	return nil
}

func (ps *parser) toodeep(tok lexToken) error {
	return &SyntaxError{Col: tok.pos, Reason: TooDeep, Text: tok.text, Len: ps.p.maxdepth}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &SyntaxError{Col: tok.pos, Reason: Unbalanced, Text: "("}
	case tokenClose:
		// A close bracket at the end of an input has no open bracket.
		return &SyntaxError{Col: tok.pos, Reason: Unbalanced, Text: ")"}
	case tokenSep:
		// Separator outside a function call.
		return &SyntaxError{Col: tok.pos, Reason: Separator, Text: tok.text}
	default:
		panic("sciexpr: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression with every
// operation parenthesized. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// nodeNop marks unary plus, which the parser discards.
const nodeNop = nodeKind(-1)

var (
	// factprec is the precedence of postfix factorial. It binds tighter than
	// multiplication but looser than negation, so -1! is (-1)!.
	factprec = operator{7, false, nodeFact}
	// exponentprec is the precedence for parsing the right side of ^. It sits
	// between multiplication and factorial.
	exponentprec = operator{6, true, nodeNone}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
