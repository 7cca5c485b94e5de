package answers

import (
	"fmt"
	"sort"

	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/term"
)

// viewConfig is the accumulated stack of views for one pipeline. Views are
// pure functions of an answer set's terms; the derivation order below makes
// composition associative regardless of the order methods were chained.
type viewConfig struct {
	group       grouping
	firstArg    bool
	stripQuotes bool
	coerce      bool
	meta        bool
	legacy      bool
	sorted      bool
}

type grouping uint8

const (
	groupNone grouping = iota
	groupByPredicate
	groupByPredicateArity
)

// GroupKey identifies one bucket of a grouped view. Arity is -1 when the
// view groups by predicate name alone.
type GroupKey struct {
	Predicate string
	Arity     int
}

func (k GroupKey) String() string {
	if k.Arity < 0 {
		return k.Predicate
	}
	return fmt.Sprintf("%s/%d", k.Predicate, k.Arity)
}

// Grouping is the derived, non-owning reinterpretation of an answer set's
// terms as a mapping from group key to its argument-tuples. Keys and
// tuples are in first-seen order.
type Grouping struct {
	Keys    []GroupKey
	Entries map[GroupKey][][]term.Term
}

// Tuples returns the argument-tuples grouped under a predicate name,
// or nil when absent.
func (g *Grouping) Tuples(predicate string) [][]term.Term {
	return g.Entries[GroupKey{Predicate: predicate, Arity: -1}]
}

// TuplesN returns the argument-tuples grouped under (predicate, arity).
func (g *Grouping) TuplesN(predicate string, arity int) [][]term.Term {
	return g.Entries[GroupKey{Predicate: predicate, Arity: arity}]
}

// LegacyAtom exposes a term through the accessor shape of an earlier atom
// ecosystem. It is purely a relabeling of the underlying term.
type LegacyAtom struct {
	t term.Term
}

// Predicate returns the atom's predicate name.
func (a LegacyAtom) Predicate() string { return a.t.Predicate }

// Arguments returns the atom's argument terms.
func (a LegacyAtom) Arguments() []term.Term { return a.t.Args }

// Term returns the underlying term value.
func (a LegacyAtom) Term() term.Term { return a.t }

func (a LegacyAtom) String() string { return a.t.String() }

// Model is one pulled element of the pipeline: the frozen answer set plus
// the reinterpretations the configured views derived from it.
type Model struct {
	// Number is the 1-based answer index.
	Number int
	// Set is the underlying parsed answer set.
	Set *AnswerSet
	// Terms holds the derived term view (after quote stripping, literal
	// coercion, first-argument collapse, and sorting, as configured).
	Terms []term.Term
	// Groups is populated by the group-by views.
	Groups *Grouping
	// Atoms is populated by the legacy-object view.
	Atoms []LegacyAtom
	// Optimization and Optimal are projected by the metadata view.
	Optimization []int
	Optimal      *bool
}

// ViewApplicationError reports a view precondition violated by a specific
// term of a specific answer set.
type ViewApplicationError struct {
	View   string
	Term   term.Term
	Answer int
}

func (e *ViewApplicationError) Error() string {
	return fmt.Sprintf("view %s not applicable to term %s in answer %d",
		e.View, e.Term, e.Answer)
}

func (e *ViewApplicationError) Unwrap() error { return errors.ErrView }

// deriveModel applies the configured views to one frozen answer set. It is
// called once per pull; nothing is persisted back onto the set.
func deriveModel(set *AnswerSet, view viewConfig) (*Model, error) {
	terms := set.Terms

	if view.stripQuotes || view.coerce {
		mapped := make([]term.Term, 0, len(terms))
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if view.stripQuotes {
				t = term.StripQuotes(t)
			}
			if view.coerce {
				t = term.CoerceLiterals(t)
			}
			// Transforms can merge formerly distinct terms; keep set
			// semantics by deduplicating again.
			k := t.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			mapped = append(mapped, t)
		}
		terms = mapped
	}

	if view.firstArg && view.group == groupNone {
		collapsed := make([]term.Term, 0, len(terms))
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if t.Arity() == 0 {
				return nil, &ViewApplicationError{View: "first-argument-only", Term: t, Answer: set.Number}
			}
			c := t
			c.Args = t.Args[:1]
			k := c.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			collapsed = append(collapsed, c)
		}
		terms = collapsed
	}

	if view.sorted {
		ordered := make([]term.Term, len(terms))
		copy(ordered, terms)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Key() < ordered[j].Key()
		})
		terms = ordered
	}

	m := &Model{Number: set.Number, Set: set, Terms: terms}

	if view.group != groupNone {
		groups, err := deriveGrouping(set, terms, view)
		if err != nil {
			return nil, err
		}
		m.Groups = groups
	}

	if view.legacy {
		m.Atoms = make([]LegacyAtom, len(terms))
		for i, t := range terms {
			m.Atoms[i] = LegacyAtom{t: t}
		}
	}

	if view.meta {
		m.Optimization = set.Optimization
		m.Optimal = set.Optimal
	}

	return m, nil
}

func deriveGrouping(set *AnswerSet, terms []term.Term, view viewConfig) (*Grouping, error) {
	g := &Grouping{Entries: make(map[GroupKey][][]term.Term)}
	// First-argument collapse can merge tuples within a bucket; keep set
	// semantics per key.
	seen := make(map[GroupKey]map[string]struct{})
	for _, t := range terms {
		key := GroupKey{Predicate: groupName(t), Arity: -1}
		if view.group == groupByPredicateArity {
			key.Arity = t.Arity()
		}
		tuple := t.Args
		if view.firstArg {
			if t.Arity() == 0 {
				return nil, &ViewApplicationError{View: "first-argument-only", Term: t, Answer: set.Number}
			}
			tuple = t.Args[:1]
		}
		if _, ok := g.Entries[key]; !ok {
			g.Keys = append(g.Keys, key)
			seen[key] = make(map[string]struct{})
		}
		k := term.NewTuple(tuple...).Key()
		if _, dup := seen[key][k]; dup {
			continue
		}
		seen[key][k] = struct{}{}
		g.Entries[key] = append(g.Entries[key], tuple)
	}
	return g, nil
}

// groupName keys atoms by predicate, keeping the negation marker so a
// negated atom never merges with its positive form. Zero-predicate
// literals group under their rendered text so #show output stays
// addressable.
func groupName(t term.Term) string {
	if t.Kind == term.Atom {
		if t.Negated {
			return "-" + t.Predicate
		}
		return t.Predicate
	}
	return t.String()
}
