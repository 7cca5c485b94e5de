package parser

import (
	"strconv"
	"strings"

	"github.com/solverlab/aspen/term"
)

// ParseFast parses one solver output line with a single-pass delimiter
// splitter: atoms are separated at top-level whitespace while tracking
// parenthesis depth and quote state, then each token is decomposed at its
// first parenthesis and on top-level commas.
//
// It is optimized for the common case of simple, unambiguous syntax. When a
// construct could misalign the depth counting (a quoted comma or
// parenthesis, an escape sequence, a token it cannot confidently classify)
// it signals ambiguity instead of guessing; the parser selector then
// retries the line with ParseCareful.
func ParseFast(line string) ([]term.Term, error) {
	tokens, err := splitTopLevel(line)
	if err != nil {
		return nil, err
	}
	var terms []term.Term
	for _, tok := range tokens {
		t, err := fastTerm(tok, line)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// splitTopLevel splits a line into atom tokens at whitespace outside any
// parenthesis nesting or quoted string. A single depth counter and a quote
// toggle are the only state.
func splitTopLevel(line string) ([]string, error) {
	var tokens []string
	depth := 0
	inQuote := false
	start := -1
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' {
			return nil, NewAmbiguousError("escape sequence requires careful parsing").
				WithLine(line).WithOffset(i)
		}
		if inQuote {
			switch c {
			case '"':
				inQuote = false
			case ',', '(', ')':
				// Would misalign depth counting if mis-attributed.
				return nil, NewAmbiguousError("quoted delimiter requires careful parsing").
					WithLine(line).WithOffset(i)
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
			if start < 0 {
				start = i
			}
		case '(':
			depth++
			if start < 0 {
				start = i
			}
		case ')':
			depth--
			if depth < 0 {
				return nil, NewAmbiguousError("unbalanced parenthesis").
					WithLine(line).WithOffset(i)
			}
		case ' ', '\t':
			if depth == 0 {
				if start >= 0 {
					tokens = append(tokens, line[start:i])
					start = -1
				}
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if inQuote || depth != 0 {
		return nil, NewAmbiguousError("unbalanced construct at end of line").
			WithLine(line).WithOffset(len(line))
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens, nil
}

func fastTerm(tok, line string) (term.Term, error) {
	if n, ok := fastInteger(tok); ok {
		return term.NewNumber(n), nil
	}
	negated := false
	rest := tok
	if strings.HasPrefix(rest, "-") {
		negated = true
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, `"`) {
		// Bare string literal, e.g. #show output. Quote content is known
		// simple here: delimiters inside quotes already escalated.
		if negated || len(rest) < 2 || !strings.HasSuffix(rest, `"`) ||
			strings.Count(rest, `"`) != 2 {
			return term.Term{}, ambiguousToken(tok, line)
		}
		return term.NewString(rest[1 : len(rest)-1]), nil
	}
	if strings.HasPrefix(rest, "(") {
		if negated || !strings.HasSuffix(rest, ")") {
			return term.Term{}, ambiguousToken(tok, line)
		}
		return fastTuple(rest, line)
	}
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		if !fastSymbol(rest) {
			return term.Term{}, ambiguousToken(tok, line)
		}
		t := term.NewAtom(rest)
		t.Negated = negated
		return t, nil
	}
	predicate := rest[:open]
	if !fastSymbol(predicate) || !strings.HasSuffix(rest, ")") {
		return term.Term{}, ambiguousToken(tok, line)
	}
	args, err := fastArgs(rest[open+1:len(rest)-1], line)
	if err != nil {
		return term.Term{}, err
	}
	if len(args) == 0 {
		return term.Term{}, ambiguousToken(tok, line)
	}
	t := term.NewAtom(predicate, args...)
	t.Negated = negated
	return t, nil
}

func fastTuple(tok, line string) (term.Term, error) {
	inner := tok[1 : len(tok)-1]
	if inner == "" {
		return term.NewTuple(), nil
	}
	parts := splitArgs(inner)
	trailing := false
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
		trailing = true
	}
	args := make([]term.Term, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return term.Term{}, ambiguousToken(tok, line)
		}
		arg, err := fastTerm(part, line)
		if err != nil {
			return term.Term{}, err
		}
		args = append(args, arg)
	}
	if trailing && len(args) != 1 {
		return term.Term{}, ambiguousToken(tok, line)
	}
	t := term.NewTuple(args...)
	t.Trailing = trailing
	return t, nil
}

func fastArgs(inner, line string) ([]term.Term, error) {
	if inner == "" {
		return nil, nil
	}
	parts := splitArgs(inner)
	args := make([]term.Term, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, NewAmbiguousError("empty argument").WithLine(line)
		}
		arg, err := fastTerm(part, line)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// splitArgs splits on top-level commas using the same depth/quote tracking
// as splitTopLevel. Input is known balanced and quote-simple by the time it
// reaches here.
func splitArgs(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func fastInteger(tok string) (int, bool) {
	body := strings.TrimPrefix(tok, "-")
	if body == "" {
		return 0, false
	}
	for i := 0; i < len(body); i++ {
		if !isDigit(body[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// fastSymbol reports whether s is a plain identifier the fast parser can
// classify without the grammar. '#'-prefixed solver constructs deliberately
// fail this check so they escalate to the careful parser.
func fastSymbol(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func ambiguousToken(tok, line string) *ParseError {
	return NewAmbiguousError("cannot confidently classify " + strconv.Quote(tok)).
		WithLine(line)
}
