package term

import "strconv"

// String renders the term in its canonical text form:
// predicate, '(', comma-joined arguments, ')'; parentheses omitted for
// arity zero; quoted strings keep their quote markers; negation renders as
// a leading '-'. Tuple trailing-comma spelling from the source is
// preserved, so a parsed term stringifies back to its original text.
func (t Term) String() string {
	var b []byte
	b = t.appendTo(b)
	return string(b)
}

func (t Term) appendTo(b []byte) []byte {
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
			b = a.appendTo(b)
		}
		if len(t.Args) == 1 && t.Trailing {
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
				b = a.appendTo(b)
			}
			b = append(b, ')')
		}
		return b
	}
}

// StripQuotes returns a copy of t with quoted string literals replaced by
// bare symbols holding the unquoted content, applied recursively through
// arguments. Non-string terms are returned with their arguments rewritten.
func StripQuotes(t Term) Term {
	if t.Kind == String {
		return Term{Kind: Atom, Predicate: t.Text}
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = StripQuotes(a)
	}
	out := t
	out.Args = args
	return out
}

// CoerceLiterals returns a copy of t with integer-looking symbols and
// quoted strings converted to Number literals, applied recursively.
func CoerceLiterals(t Term) Term {
	switch t.Kind {
	case String:
		if n, err := strconv.Atoi(t.Text); err == nil {
			return Term{Kind: Number, Int: n}
		}
		return t
	case Atom:
		if len(t.Args) == 0 && !t.Negated {
			if n, err := strconv.Atoi(t.Predicate); err == nil {
				return Term{Kind: Number, Int: n}
			}
			return t
		}
	case Number:
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = CoerceLiterals(a)
	}
	out := t
	out.Args = args
	return out
}
