package sciexpr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.num != m.num {
			return n, m
		}
	case nodeConst:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name || len(n.args) != len(m.args) {
			return n, m
		}
		for i := range n.args {
			if d, e := n.args[i].diff(m.args[i]); d != nil || e != nil {
				return d, e
			}
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeFact:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		if r == '!' {
			continue
		}
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestPrecOrder(t *testing.T) {
	order := []struct {
		name string
		op   operator
	}{
		{"+", binop("+")},
		{"*", binop("*")},
		{"exponent", exponentprec},
		{"!", factprec},
		{"neg", unop("-")},
		{"^", binop("^")},
	}
	for i := 1; i < len(order); i++ {
		if order[i].op.prec <= order[i-1].op.prec {
			t.Errorf("%s has prec %d, not more than %s with %d", order[i].name, order[i].op.prec, order[i-1].name, order[i-1].op.prec)
		}
	}
	if p, q := binop("-").prec, binop("+").prec; p != q {
		t.Errorf("- has prec %d but + has prec %d", p, q)
	}
	if p, q := binop("/").prec, binop("*").prec; p != q {
		t.Errorf("/ has prec %d but * has prec %d", p, q)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(2)", "2"},
		{"multi", "((((2))))", "2"},
		{"plus", "+2", "2"},
		{"neg", "-2", "(-(2))"},
		{"number", "2.0", "2"},

		{"muladd", "1*2+3", "(1*2)+3"},
		{"addmul", "1+2*3", "1+(2*3)"},
		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"pow4", "1^2^3^4", "1^(2^(3^4))"},
		{"desc", "2^3*4+5", "((2^3)*4)+5"},
		{"asc", "2+3*4^5", "2+(3*(4^5))"},
		{"powmul", "2^3*4", "(2^3)*4"},

		{"negpow", "-2^2", "-(2^2)"},
		{"powneg", "2^-1", "2^(-1)"},
		{"pownegpow", "2^-3^-4", "2^(-(3^(-4)))"},
		{"negneg", "--2", "-(-2)"},
		{"negsub", "-2-2", "(-2)-2"},
		{"mulneg", "2*-3", "2*(-3)"},

		{"fact", "3!", "(3)!"},
		{"factchain", "3!!", "(3!)!"},
		{"negfact", "-1!", "(-1)!"},
		{"mulfact", "2*3!", "2*(3!)"},
		{"addfact", "1+3!", "1+(3!)"},
		{"powfact", "2^3!", "2^(3!)"},
		{"factpow", "3!^2", "(3!)^2"},
		{"negpowfact", "-2^3!", "-(2^(3!))"},

		{"const", "2*pi", "2*(pi)"},
		{"call", "sin(1+2)", "sin((1+2))"},
		{"callargs", "root(1+2, 3*4)", "root((1+2), (3*4))"},
		{"callfact", "sqrt(4)!", "(sqrt(4))!"},
		{"callpow", "abs(2)^3", "(abs(2))^3"},
		{"nestedcall", "sin(cos(tan(1)))", "sin((cos((tan((1))))))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "root",
			src:  "root(3, e)",
			n: &node{
				kind: nodeCall,
				name: "root",
				args: []*node{
					{kind: nodeNum, num: 3},
					{kind: nodeConst, name: "e"},
				},
			},
		},
		{
			name: "negfact",
			src:  "-4!",
			n: &node{
				kind: nodeFact,
				left: &node{
					kind: nodeNeg,
					left: &node{kind: nodeNum, num: 4},
				},
			},
		},
		{
			name: "sub",
			src:  "pi - .5",
			n: &node{
				kind:  nodeSub,
				left:  &node{kind: nodeConst, name: "pi"},
				right: &node{kind: nodeNum, num: 0.5},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestParseHeight(t *testing.T) {
	cases := []struct {
		src    string
		height int
	}{
		{"1", 1},
		{"(((1)))", 1},
		{"1+2", 2},
		{"1+2*3", 3},
		{"-1", 2},
		{"3!!", 3},
		{"root(1, 2+3)", 3},
		{"1+2+3+4", 2},
		{"1+2+3*4", 3},
		{"1*2-3/4+5", 3},
		{"(1+2)^3", 3},
		{"2^3^4", 3},
	}
	for _, c := range cases {
		a, err := Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if a.n.height != c.height {
			t.Errorf("%q has height %d, want %d", c.src, a.n.height, c.height)
		}
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"paren", "(2)"},
		{"neg", "-2"},
		{"add", "1+2"},
		{"sub", "1-2"},
		{"mul", "1*2"},
		{"div", "1/2"},
		{"pow", "1^2"},
		{"add4", "1+2+3+4"},
		{"pow4", "1^2^3^4"},
		{"descasc", "1^2*3+4+5*6^7"},
		{"negpow", "-1^2"},
		{"powneg", "2^-1"},
		{"negfact", "-1!"},
		{"powfact", "2^3!"},
		{"factpow", "3!^2"},
		{"call", "root(2, sin(pi/2))"},
		{"consts", "e^pi"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := Parse(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		reason SyntaxReason
		col    int
		res    []string
	}{
		{"empty", "", MissingOperand, 1, []string{`(?i)\bno expression\b`}},
		{"emptyparen", "()", MissingOperand, 2, []string{`(?i)\bno expression\b`, `\)`}},
		{"dangling", "2+", MissingOperand, 3, []string{`(?i)\bno expression\b`, `(?i)\bend\b`}},
		{"danglingneg", "2*-", MissingOperand, 4, []string{`(?i)\bend\b`}},
		{"leading", "*2", MissingOperand, 1, []string{`\*`}},
		{"leadingfact", "!2", MissingOperand, 1, []string{`!`}},
		{"doubleop", "2**3", MissingOperand, 3, []string{`\*`}},
		{"left", "(2", Unbalanced, 3, []string{`(?i)\bbracket\b`, `\(`}},
		{"right", "2)", Unbalanced, 2, []string{`(?i)\bbracket\b`, `\)`}},
		{"nestedleft", "((2)", Unbalanced, 5, []string{`\(`}},
		{"callleft", "sin(2", Unbalanced, 6, []string{`\(`}},
		{"adjacent", "2 3", MissingOperator, 3, []string{`(?i)\boperator\b`, `"3"`}},
		{"implicit-const", "2pi", MissingOperator, 2, []string{`"pi"`}},
		{"implicit-paren", "2(3)", MissingOperator, 2, []string{`"\("`}},
		{"implicit-groups", "(1)(2)", MissingOperator, 4, []string{`"\("`}},
		{"constcall", "pi(2)", MissingOperator, 3, nil},
		{"sep", "1, 2", Separator, 2, []string{`","`}},
		{"sepparen", "(1, 2)", Separator, 3, []string{`","`}},
		{"arity1", "sin(1, 2)", Arity, 1, []string{`(?i)\bcall\b`, `\bsin\b`, `\b2\b`}},
		{"arity2", "root(8)", Arity, 1, []string{`\broot\b`, `\b1\b`}},
		{"emptyarg", "sin()", EmptyArgument, 5, []string{`(?i)\bempty\b`, `\bsin\b`}},
		{"emptyarg-last", "root(2,)", EmptyArgument, 8, []string{`\broot\b`}},
		{"emptyarg-first", "root(,2)", EmptyArgument, 6, []string{`\broot\b`}},
		{"notcalled", "sqrt 4", NotCalled, 6, []string{`\(`, `\bsqrt\b`}},
		{"notcalled-eof", "pi+sqrt", NotCalled, 8, []string{`\bsqrt\b`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("wrong error type from %q: want *SyntaxError, got %#v", c.src, err)
			}
			if serr.Reason != c.reason {
				t.Errorf("wrong reason from %q: want %v, got %v", c.src, c.reason, serr.Reason)
			}
			if serr.Pos() != c.col {
				t.Errorf("wrong position from %q: want %d, got %d", c.src, c.col, serr.Pos())
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestParseLexError(t *testing.T) {
	_, err := Parse("2^sin(-$)")
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("wrong error type: want *LexError, got %#v", err)
	}
	if !regexp.MustCompile(`\$`).MatchString(err.Error()) {
		t.Errorf("error message %q does not mention $", err)
	}
}

func TestMaxDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}
	cases := []struct {
		name string
		src  string
		max  int
		ok   bool
	}{
		{"parens-under", nest(9), 10, true},
		{"parens-over", nest(10), 10, false},
		{"neg-under", strings.Repeat("-", 9) + "1", 10, true},
		{"neg-over", strings.Repeat("-", 10) + "1", 10, false},
		{"sum-flat", "1" + strings.Repeat("+1", 5000), 3, true},
		{"mixed-flat", strings.Repeat("2*3-4/", 1000) + "5", 3, true},
		{"pow-under", "2" + strings.Repeat("^1", 9), 10, true},
		{"pow-over", "2" + strings.Repeat("^1", 10), 10, false},
		{"sum-parens-over", strings.Repeat("1+(", 9) + "1" + strings.Repeat(")", 9), 10, false},
		{"calls-over", strings.Repeat("abs(", 10) + "1" + strings.Repeat(")", 10), 10, false},
		{"default-under", nest(1000), 0, true},
		{"default-over", nest(5000), 0, false},
		{"unclosed-over", strings.Repeat("(", 100000), 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var opts []ParseOption
			want := DefaultMaxDepth
			if c.max > 0 {
				opts = append(opts, MaxDepth(c.max))
				want = c.max
			}
			_, err := Parse(c.src, opts...)
			if c.ok {
				if err != nil {
					t.Errorf("failed to parse: %v", err)
				}
				return
			}
			serr, _ := err.(*SyntaxError)
			if serr == nil || serr.Reason != TooDeep {
				t.Fatalf("wrong error: want TooDeep, got %#v", err)
			}
			if serr.Len != want {
				t.Errorf("wrong limit in error: want %d, got %d", want, serr.Len)
			}
		})
	}
}

func TestMaxDepthPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MaxDepth(0) did not panic")
		}
	}()
	MaxDepth(0)
}

func TestParseDoesNotNormalize(t *testing.T) {
	_, err := Parse("2×3")
	if _, ok := err.(*LexError); !ok {
		t.Errorf("wrong error type: want *LexError, got %#v", err)
	}
	if e, err := Parse(Normalize("2×3")); err != nil || e.String() != "(2 * 3)" {
		t.Errorf("normalized parse gave %v, %v", e, err)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "2^3*4+5+6*7^8"},
		{"descasc-parens", "(((2^3)*4)+5)+6*(7^8)"},
		{"calls", "sin(30)+cos(60)*tan(45)"},
		{"root", "root(3, 27)!"},
		{"nested", strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(c.src)
			}
		})
	}
}
