// Package answers turns raw solver output lines into a lazy, composable
// stream of answer sets.
//
// An Answers value is a pull-based pipeline: no line is parsed before the
// consumer asks for it, and every configured view re-derives its
// reinterpretation on each pull. View methods return a new pipeline value
// wrapping the same underlying stream, so chains like
//
//	answers.FromText(out).ByPredicate().FirstArgOnly()
//
// compose without mutating the original.
package answers

import (
	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/parser"
)

// Answers is a lazy pipeline of answer sets with a stack of configured
// views. The zero value is not usable; build one with FromText, FromLines,
// FromMetaLines, or FromSource.
type Answers struct {
	s    *stream
	mode parser.Mode
	view viewConfig
}

// stream is the shared pull state behind every view of one pipeline.
type stream struct {
	src    Source
	number int
	parsed int
}

// WithMode selects the parsing strategy for subsequent pulls. The default
// is fast parsing with automatic escalation.
func (a *Answers) WithMode(m parser.Mode) *Answers {
	c := *a
	c.mode = m
	return &c
}

// Parsed returns how many lines have actually been parsed so far. Because
// the pipeline is lazy this equals the number of answer sets pulled, not
// the number available.
func (a *Answers) Parsed() int { return a.s.parsed }

// Next parses the next line and returns its model with all configured
// views applied. It returns (nil, nil) when the stream is exhausted.
//
// A failing line does not abort the stream: the error is returned for that
// line and the following Next call moves on to the next one.
func (a *Answers) Next() (*Model, error) {
	line, ok := a.s.src()
	if !ok {
		return nil, nil
	}
	a.s.number++
	a.s.parsed++

	mode := a.mode
	if a.view.coerce {
		// Literal coercion needs the typed literals only the careful
		// parser guarantees.
		mode = parser.ModeCareful
	}

	terms, err := parser.ParseLineOpts(line.Text, parser.Options{Mode: mode})
	if err != nil {
		return nil, errors.Wrapf(err, "answer %d", a.s.number)
	}

	set := newAnswerSet(a.s.number, terms, line)
	return deriveModel(set, a.view)
}

// All eagerly collects every remaining model. It stops at the first
// failing line; use Next directly to keep iterating past per-line errors.
func (a *Answers) All() ([]*Model, error) {
	var models []*Model
	for {
		m, err := a.Next()
		if err != nil {
			return models, err
		}
		if m == nil {
			return models, nil
		}
		models = append(models, m)
	}
}

// ByPredicate groups each model's terms by predicate name, mapping to the
// ordered sequence of argument-tuples in first-seen order.
func (a *Answers) ByPredicate() *Answers {
	c := *a
	c.view.group = groupByPredicate
	return &c
}

// ByPredicateArity groups by (predicate, arity), disambiguating overloaded
// predicate names.
func (a *Answers) ByPredicateArity() *Answers {
	c := *a
	c.view.group = groupByPredicateArity
	return &c
}

// FirstArgOnly collapses each argument-tuple to its first element. A
// zero-arity term fails the pull with a view application error.
func (a *Answers) FirstArgOnly() *Answers {
	c := *a
	c.view.firstArg = true
	return &c
}

// StripQuotes removes surrounding quote markers from string literals,
// recursively through nested arguments.
func (a *Answers) StripQuotes() *Answers {
	c := *a
	c.view.stripQuotes = true
	return &c
}

// CoerceLiterals parses integer-looking literals into numbers. Enabling it
// forces the careful parser for every subsequent pull.
func (a *Answers) CoerceLiterals() *Answers {
	c := *a
	c.view.coerce = true
	return &c
}

// WithMetadata projects the solver metadata (optimization vector,
// optimality flag, answer number) onto each model.
func (a *Answers) WithMetadata() *Answers {
	c := *a
	c.view.meta = true
	return &c
}

// AsLegacyAtoms exposes each model's terms through the legacy atom
// accessors. A relabeling only; no data changes.
func (a *Answers) AsLegacyAtoms() *Answers {
	c := *a
	c.view.legacy = true
	return &c
}

// Sorted orders each model's derived terms by their canonical text form
// instead of first-seen order.
func (a *Answers) Sorted() *Answers {
	c := *a
	c.view.sorted = true
	return &c
}
