// Package term defines the value representation for ground atoms and their
// arguments as reported by an ASP solver.
//
// A Term is immutable once built by a parser. Terms are plain values: they
// can be compared structurally, rendered back to their canonical text form,
// and shared freely between pipeline views without copying.
package term

import "strconv"

// Kind discriminates the shapes a Term can take.
type Kind uint8

const (
	// Atom is a predicate with zero or more arguments. A bare symbol is an
	// Atom of arity zero.
	Atom Kind = iota
	// Tuple is a bare parenthesized argument list with no predicate.
	Tuple
	// Number is a signed integer literal.
	Number
	// String is a quoted string literal. Text holds the inner content
	// exactly as it appeared in the source, without the surrounding quotes.
	String
)

// Term represents one ground atom or sub-argument.
//
// Exactly one shape is populated depending on Kind:
//
//	Atom:   Predicate, Negated, Args
//	Tuple:  Args, Trailing
//	Number: Int
//	String: Text
type Term struct {
	Kind      Kind
	Predicate string
	Negated   bool
	Args      []Term
	Int       int
	Text      string
	// Trailing records whether a one-element tuple was written with a
	// trailing comma in the source, so rendering reproduces the input
	// byte for byte. It does not participate in structural equality.
	Trailing bool
}

// NewAtom builds an atom term. A nil or empty args slice yields a bare
// symbol of arity zero.
func NewAtom(predicate string, args ...Term) Term {
	return Term{Kind: Atom, Predicate: predicate, Args: args}
}

// NewNegatedAtom builds an atom carrying the default negation marker.
func NewNegatedAtom(predicate string, args ...Term) Term {
	return Term{Kind: Atom, Predicate: predicate, Negated: true, Args: args}
}

// NewTuple builds a bare tuple term.
func NewTuple(args ...Term) Term {
	return Term{Kind: Tuple, Args: args}
}

// NewNumber builds an integer literal term.
func NewNumber(n int) Term {
	return Term{Kind: Number, Int: n}
}

// NewString builds a quoted-string literal term. text is the content
// between the quotes, escapes untouched.
func NewString(text string) Term {
	return Term{Kind: String, Text: text}
}

// Arity returns the number of arguments. Literals have arity zero.
func (t Term) Arity() int {
	return len(t.Args)
}

// IsLiteral reports whether the term is a number or string literal, such as
// the zero-predicate values produced by #show directives.
func (t Term) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// Equal reports structural equality: same kind, same predicate and negation,
// same literal value, and pairwise-equal arguments in the same order.
// Tuple trailing-comma spelling is ignored.
func (t Term) Equal(o Term) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Number:
		return t.Int == o.Int
	case String:
		return t.Text == o.Text
	case Atom:
		if t.Predicate != o.Predicate || t.Negated != o.Negated {
			return false
		}
	}
	if len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical text form usable as a map key for set semantics.
// Unlike String, one-element tuples are always spelled with a trailing
// comma, so structurally equal terms share a key regardless of source
// spelling.
func (t Term) Key() string {
	var b []byte
	b = t.appendCanon(b)
	return string(b)
}

func (t Term) appendCanon(b []byte) []byte {
	switch t.Kind {
	case Number:
		return strconv.AppendInt(b, int64(t.Int), 10)
	case String:
		b = append(b, '"')
		b = append(b, t.Text...)
		return append(b, '"')
	case Tuple:
		b = append(b, '(')
		for i, a := range t.Args {
			if i > 0 {
				b = append(b, ',')
			}
			b = a.appendCanon(b)
		}
		if len(t.Args) == 1 {
			b = append(b, ',')
		}
		return append(b, ')')
	default: // Atom
		if t.Negated {
			b = append(b, '-')
		}
		b = append(b, t.Predicate...)
		if len(t.Args) > 0 {
			b = append(b, '(')
			for i, a := range t.Args {
				if i > 0 {
					b = append(b, ',')
				}
				b = a.appendCanon(b)
			}
			b = append(b, ')')
		}
		return b
	}
}
