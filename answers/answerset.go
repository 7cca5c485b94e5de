package answers

import (
	"strings"

	"github.com/solverlab/aspen/term"
)

// AnswerSet is one parsed solver model: a set of ground terms plus the
// solver-reported metadata for that model. Terms are unique by structural
// equality; the slice retains first-seen order so derived views stay
// deterministic. An AnswerSet is frozen once built and safe to share
// read-only across pipeline views.
type AnswerSet struct {
	// Number is the 1-based answer index within the run.
	Number int
	// Terms holds the distinct ground terms in first-seen order.
	Terms []term.Term
	// Optimization is the solver's optimization vector, nil when absent.
	Optimization []int
	// Optimal reports solver-confirmed optimality, nil when unreported.
	Optimal *bool

	index map[string]struct{}
}

// newAnswerSet freezes parsed terms into a set, dropping structural
// duplicates while keeping first-seen order.
func newAnswerSet(number int, terms []term.Term, meta Line) *AnswerSet {
	set := &AnswerSet{
		Number:       number,
		Optimization: meta.Optimization,
		Optimal:      meta.Optimal,
		index:        make(map[string]struct{}, len(terms)),
	}
	for _, t := range terms {
		k := t.Key()
		if _, dup := set.index[k]; dup {
			continue
		}
		set.index[k] = struct{}{}
		set.Terms = append(set.Terms, t)
	}
	return set
}

// Len returns the number of distinct terms.
func (a *AnswerSet) Len() int { return len(a.Terms) }

// Contains reports whether a structurally equal term is in the set.
func (a *AnswerSet) Contains(t term.Term) bool {
	_, ok := a.index[t.Key()]
	return ok
}

// EqualSet reports set equality with another answer set, ignoring term
// order and metadata.
func (a *AnswerSet) EqualSet(b *AnswerSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k := range a.index {
		if _, ok := b.index[k]; !ok {
			return false
		}
	}
	return true
}

// String renders the terms in first-seen order, space-separated, matching
// the solver's own model line format.
func (a *AnswerSet) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
