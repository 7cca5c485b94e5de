// Package decode reconstructs typed application objects from the grouped
// terms of one answer set.
//
// A Spec declares which predicates feed an object and with what
// cardinality. The engine groups exactly-one terms by their first argument
// (the object identifier), so several object instances can be encoded in a
// single model, then calls the supplied constructor once per identifier
// with the collected argument-tuples.
package decode

import (
	"fmt"

	"github.com/solverlab/aspen/answers"
	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/term"
)

// Cardinality states how many atoms of a predicate must associate with one
// decoded object.
type Cardinality int

const (
	// ExactlyOne requires a single matching term per object identifier.
	ExactlyOne Cardinality = iota
	// All collects every matching term sharing the object identifier.
	All
)

func (c Cardinality) String() string {
	if c == ExactlyOne {
		return "exactly-one"
	}
	return "all"
}

// Requirement binds one predicate to a cardinality.
type Requirement struct {
	Predicate   string
	Cardinality Cardinality
}

// Spec is the static table of requirements for one object constructor,
// the declarative replacement for annotation-driven binding.
type Spec struct {
	Require []Requirement
}

// One and Many are shorthands for building specs.
func One(predicate string) Requirement {
	return Requirement{Predicate: predicate, Cardinality: ExactlyOne}
}

func Many(predicate string) Requirement {
	return Requirement{Predicate: predicate, Cardinality: All}
}

// Object is the collected material for one identifier, handed to the
// constructor.
type Object struct {
	// ID is the object identifier: the first argument of the exactly-one
	// predicates. Zero value when the spec has no exactly-one requirement.
	ID term.Term
	// Single maps each exactly-one predicate to its argument-tuple.
	Single map[string][]term.Term
	// Matching maps each all-matching predicate to the argument-tuples
	// sharing the identifier, in first-seen order.
	Matching map[string][][]term.Term
}

// MismatchError reports a cardinality violation for an exactly-one
// predicate and identifier.
type MismatchError struct {
	Predicate string
	ID        term.Term
	Count     int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("predicate %s: expected exactly one term for identifier %s, found %d",
		e.Predicate, e.ID, e.Count)
}

func (e *MismatchError) Unwrap() error { return errors.ErrDecoderMismatch }

// Decode reconstructs objects of type T from one answer set. The
// constructor may return errors.ErrRejected (possibly wrapped) to discard
// a candidate identifier without aborting the decode; any other error
// aborts.
func Decode[T any](set *answers.AnswerSet, spec Spec, build func(Object) (T, error)) ([]T, error) {
	byPred := groupByPredicate(set)

	for _, req := range spec.Require {
		if len(byPred[req.Predicate]) == 0 {
			return nil, errors.Wrapf(errors.ErrDecoderMismatch,
				"required predicate %s absent from answer %d", req.Predicate, set.Number)
		}
	}

	if !hasExactlyOne(spec) {
		// No identifier predicate: the whole model is one object.
		obj := Object{
			Single:   map[string][]term.Term{},
			Matching: map[string][][]term.Term{},
		}
		for _, req := range spec.Require {
			obj.Matching[req.Predicate] = byPred[req.Predicate]
		}
		out, err := build(obj)
		if err != nil {
			if errors.IsRejected(err) {
				return nil, nil
			}
			return nil, err
		}
		return []T{out}, nil
	}

	ids, err := collectIdentifiers(spec, byPred)
	if err != nil {
		return nil, err
	}

	var objects []T
	for _, id := range ids {
		obj, err := collectObject(spec, byPred, id)
		if err != nil {
			return nil, err
		}
		out, err := build(obj)
		if err != nil {
			if errors.IsRejected(err) {
				continue
			}
			return nil, errors.Wrapf(err, "constructing object %s", id)
		}
		objects = append(objects, out)
	}
	return objects, nil
}

// DecodeEach runs Decode over every answer set of a pipeline, yielding one
// object slice per model.
func DecodeEach[T any](a *answers.Answers, spec Spec, build func(Object) (T, error)) ([][]T, error) {
	var all [][]T
	for {
		m, err := a.Next()
		if err != nil {
			return all, err
		}
		if m == nil {
			return all, nil
		}
		objects, err := Decode(m.Set, spec, build)
		if err != nil {
			return all, err
		}
		all = append(all, objects)
	}
}

// groupByPredicate maps positive atoms to their argument-tuples in
// first-seen order. Negated atoms and bare literals never satisfy a
// requirement.
func groupByPredicate(set *answers.AnswerSet) map[string][][]term.Term {
	byPred := make(map[string][][]term.Term)
	for _, t := range set.Terms {
		if t.Kind != term.Atom || t.Negated {
			continue
		}
		byPred[t.Predicate] = append(byPred[t.Predicate], t.Args)
	}
	return byPred
}

func hasExactlyOne(spec Spec) bool {
	for _, req := range spec.Require {
		if req.Cardinality == ExactlyOne {
			return true
		}
	}
	return false
}

// collectIdentifiers gathers the distinct first arguments of every
// exactly-one predicate, in first-seen order.
func collectIdentifiers(spec Spec, byPred map[string][][]term.Term) ([]term.Term, error) {
	var ids []term.Term
	seen := make(map[string]struct{})
	for _, req := range spec.Require {
		if req.Cardinality != ExactlyOne {
			continue
		}
		for _, tuple := range byPred[req.Predicate] {
			if len(tuple) == 0 {
				return nil, errors.Wrapf(errors.ErrDecoderMismatch,
					"predicate %s has no arguments to identify objects by", req.Predicate)
			}
			id := tuple[0]
			k := id.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// collectObject gathers one identifier's material, enforcing exactly-one
// cardinality.
func collectObject(spec Spec, byPred map[string][][]term.Term, id term.Term) (Object, error) {
	obj := Object{
		ID:       id,
		Single:   map[string][]term.Term{},
		Matching: map[string][][]term.Term{},
	}
	idKey := id.Key()
	for _, req := range spec.Require {
		var matching [][]term.Term
		for _, tuple := range byPred[req.Predicate] {
			if len(tuple) > 0 && tuple[0].Key() == idKey {
				matching = append(matching, tuple)
			}
		}
		switch req.Cardinality {
		case ExactlyOne:
			if len(matching) != 1 {
				return Object{}, &MismatchError{Predicate: req.Predicate, ID: id, Count: len(matching)}
			}
			obj.Single[req.Predicate] = matching[0]
		case All:
			obj.Matching[req.Predicate] = matching
		}
	}
	return obj, nil
}
