package sciexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an unsigned decimal number.
	tokenNum
	// tokenIdent is a function or constant name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is a function arguments separator.
	tokenSep
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

// Operators contains the runes which are considered to be operators. "!" is
// the only postfix operator.
const Operators = "+-*/^!"

var operstrs = byteidcs(Operators)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// tokenize scans all of src. The last token of a successful scan is always
// an EOF token.
func tokenize(src string) ([]lexToken, error) {
	scan := lex(strings.NewReader(src))
	var toks []lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent times,
// the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.pos); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.text = l.buf.String()
			if !registered(tok.text) {
				return tok, l.error("identifier", tok.pos)
			}
			tok.kind = tokenIdent
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = operstrs[k]
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("", tok.pos)
		}
	}
}

// scanNum scans digits with at most one decimal point. start is the column
// of the first rune of the number.
func (l *lexer) scanNum(start int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return l.error("number", start)
			}
			dot = true
		default:
			l.unreadRune()
			if !dig {
				return l.error("number", start)
			}
			return nil
		}
		l.buf.WriteRune(r)
	}
	if !dig {
		return l.error("number", start)
	}
	return nil
}

func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune. A
			// strings.Reader never fails with anything but EOF.
			return
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "identifier", or the empty string (if a token kind hadn't been
	// decided).
	Kind string
	// Col is the column of the first rune of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	}
	if err.Kind == "identifier" {
		return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
