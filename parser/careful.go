package parser

import (
	"strconv"

	"github.com/solverlab/aspen/term"
)

// ParseCareful parses one solver output line with the full ground-term
// grammar:
//
//	answer := atom*
//	atom   := ['-'] predicate ['(' arglist ')']
//	arglist:= arg (',' arg)*
//	arg    := atom | tuple | integer | quoted-string
//	tuple  := '(' arglist? [','] ')'
//
// It additionally accepts escaped quotes inside strings, underscore-prefixed
// predicates, '#'-prefixed solver symbols, and bare numeric or string
// literals as produced by #show directives, which parse to zero-predicate
// literal terms. Its output is authoritative whenever the fast parser
// disagrees.
func ParseCareful(line string) ([]term.Term, error) {
	p := &carefulParser{src: line}
	var terms []term.Term
	p.skipSpace()
	for !p.eof() {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		p.skipSpace()
	}
	return terms, nil
}

type carefulParser struct {
	src string
	pos int
}

func (p *carefulParser) eof() bool { return p.pos >= len(p.src) }

func (p *carefulParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *carefulParser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *carefulParser) errorf(msg string) *ParseError {
	return NewSyntaxError(msg).WithLine(p.src).WithOffset(p.pos)
}

func (p *carefulParser) parseTerm() (term.Term, error) {
	switch c := p.peek(); {
	case c == '-':
		// Either a negative integer literal or a default-negated atom.
		if p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1]) {
			return p.parseNumber()
		}
		p.pos++
		if !isIdentStart(p.peek()) {
			return term.Term{}, p.errorf("expected predicate after negation marker")
		}
		t, err := p.parseAtom()
		if err != nil {
			return term.Term{}, err
		}
		t.Negated = true
		return t, nil
	case c == '"':
		return p.parseString()
	case c == '(':
		return p.parseTuple()
	case isDigit(c):
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseAtom()
	case p.eof():
		return term.Term{}, p.errorf("unexpected end of line")
	default:
		return term.Term{}, p.errorf("unexpected character " + strconv.QuoteRune(rune(c)))
	}
}

func (p *carefulParser) parseNumber() (term.Term, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && isDigit(p.src[p.pos]) {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		p.pos = start
		return term.Term{}, p.errorf("invalid integer literal")
	}
	return term.NewNumber(n), nil
}

// parseString consumes a quoted string literal, preserving escape sequences
// verbatim in the term text.
func (p *carefulParser) parseString() (term.Term, error) {
	start := p.pos
	p.pos++ // opening quote
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2 // escape sequence kept as-is
		case '"':
			content := p.src[start+1 : p.pos]
			p.pos++
			return term.NewString(content), nil
		default:
			p.pos++
		}
	}
	p.pos = start
	return term.Term{}, p.errorf("unterminated string literal").
		WithSuggestion("add a closing quote")
}

func (p *carefulParser) parseTuple() (term.Term, error) {
	p.pos++ // opening paren
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return term.NewTuple(), nil
	}
	args, trailing, err := p.parseArgList(true)
	if err != nil {
		return term.Term{}, err
	}
	if p.peek() != ')' {
		return term.Term{}, p.errorf("expected ')' to close tuple").
			WithSuggestion("check for unbalanced parentheses")
	}
	p.pos++
	t := term.NewTuple(args...)
	t.Trailing = trailing && len(args) == 1
	return t, nil
}

func (p *carefulParser) parseAtom() (term.Term, error) {
	start := p.pos
	if p.peek() == '#' {
		p.pos++ // solver symbol such as #inf / #sup, kept opaque
	}
	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	predicate := p.src[start:p.pos]
	if p.peek() != '(' {
		return term.NewAtom(predicate), nil
	}
	p.pos++
	p.skipSpace()
	if p.peek() == ')' {
		return term.Term{}, p.errorf("empty argument list").
			WithSuggestion("zero-arity atoms are written without parentheses")
	}
	args, _, err := p.parseArgList(false)
	if err != nil {
		return term.Term{}, err
	}
	if p.peek() != ')' {
		return term.Term{}, p.errorf("expected ')' to close argument list").
			WithSuggestion("check for unbalanced parentheses")
	}
	p.pos++
	return term.NewAtom(predicate, args...), nil
}

// parseArgList parses one or more comma-separated arguments, stopping before
// the closing parenthesis. A trailing comma is grammatical only inside
// tuples, where it marks one-element tuple spelling.
func (p *carefulParser) parseArgList(inTuple bool) ([]term.Term, bool, error) {
	var args []term.Term
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.peek() != ',' {
			return args, false, nil
		}
		p.pos++
		p.skipSpace()
		if p.peek() == ')' {
			if !inTuple {
				return nil, false, p.errorf("trailing comma in argument list")
			}
			return args, true, nil
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '#' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '\'' || isDigit(c) ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
