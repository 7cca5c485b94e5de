package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solverlab/aspen/errors"
	"github.com/solverlab/aspen/parser"
	"github.com/solverlab/aspen/term"
)

func mustNext(t *testing.T, a *Answers) *Model {
	t.Helper()
	m, err := a.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func TestSetSemantics(t *testing.T) {
	m := mustNext(t, FromLines([]string{"obj(a) obj(b) att(c) att(d)"}))
	assert.Equal(t, 4, m.Set.Len())

	// Re-ordering the input tokens yields an equal set.
	reordered := mustNext(t, FromLines([]string{"att(d) obj(b) att(c) obj(a)"}))
	assert.True(t, m.Set.EqualSet(reordered.Set))

	// Duplicated atoms collapse.
	duped := mustNext(t, FromLines([]string{"obj(a) obj(a) obj(b)"}))
	assert.Equal(t, 2, duped.Set.Len())
	assert.True(t, duped.Set.Contains(term.NewAtom("obj", term.NewAtom("a"))))
	assert.False(t, duped.Set.Contains(term.NewAtom("obj", term.NewAtom("c"))))
}

func TestByPredicate(t *testing.T) {
	m := mustNext(t, FromLines([]string{"obj(a) obj(b) att(c) att(d)"}).ByPredicate())
	require.NotNil(t, m.Groups)

	// Keys in first-seen order.
	require.Equal(t, []GroupKey{
		{Predicate: "obj", Arity: -1},
		{Predicate: "att", Arity: -1},
	}, m.Groups.Keys)

	obj := m.Groups.Tuples("obj")
	require.Len(t, obj, 2)
	assert.True(t, obj[0][0].Equal(term.NewAtom("a")))
	assert.True(t, obj[1][0].Equal(term.NewAtom("b")))

	att := m.Groups.Tuples("att")
	require.Len(t, att, 2)
	assert.True(t, att[0][0].Equal(term.NewAtom("c")))
	assert.True(t, att[1][0].Equal(term.NewAtom("d")))
}

func TestByPredicateArity(t *testing.T) {
	// vv appears both bare and with one argument.
	m := mustNext(t, FromLines([]string{"a b(4) b(3) a(1) vv(1) vv v(a) v(b)"}).ByPredicateArity())

	require.Len(t, m.Groups.TuplesN("vv", 0), 1)
	require.Len(t, m.Groups.TuplesN("vv", 1), 1)
	require.Len(t, m.Groups.TuplesN("b", 1), 2)
	assert.Nil(t, m.Groups.TuplesN("b", 2))
}

func TestZeroArityGroupsToEmptyTuple(t *testing.T) {
	m := mustNext(t, FromLines([]string{"d e f"}).ByPredicate())
	for _, pred := range []string{"d", "e", "f"} {
		tuples := m.Groups.Tuples(pred)
		require.Len(t, tuples, 1)
		assert.Empty(t, tuples[0])
	}
}

func TestFirstArgOnly(t *testing.T) {
	m := mustNext(t, FromLines([]string{"edge(1,2) edge(1,3) edge(2,4)"}).ByPredicate().FirstArgOnly())
	tuples := m.Groups.Tuples("edge")
	// (1,) (1,) (2,) with set semantics per key.
	require.Len(t, tuples, 2)
	assert.True(t, tuples[0][0].Equal(term.NewNumber(1)))
	assert.True(t, tuples[1][0].Equal(term.NewNumber(2)))
}

func TestFirstArgOnlyZeroArityFails(t *testing.T) {
	_, err := FromLines([]string{"a(1) bare"}).FirstArgOnly().Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrView))

	var ve *ViewApplicationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "first-argument-only", ve.View)
	assert.Equal(t, "bare", ve.Term.Predicate)
	assert.Equal(t, 1, ve.Answer)
}

func TestStripQuotes(t *testing.T) {
	m := mustNext(t, FromLines([]string{`a("c") b("d","e")`}).StripQuotes())
	require.Len(t, m.Terms, 2)
	assert.Equal(t, "a(c)", m.Terms[0].String())
	assert.Equal(t, "b(d,e)", m.Terms[1].String())

	// Underlying set keeps the quote markers.
	assert.Equal(t, `a("c") b("d","e")`, m.Set.String())
}

func TestStripQuotesMergesDuplicates(t *testing.T) {
	// a("c") and a(c) are distinct terms that merge once quotes go.
	m := mustNext(t, FromLines([]string{`a("c") a(c)`}).StripQuotes())
	assert.Len(t, m.Terms, 1)
	assert.Equal(t, 2, m.Set.Len())
}

func TestCoerceLiteralsForcesCareful(t *testing.T) {
	// The quoted comma would trip the fast parser; literal coercion forces
	// careful parsing, so this parses in one pass and "12" becomes 12.
	m := mustNext(t, FromLines([]string{`a("12","x,y")`}).CoerceLiterals())
	require.Len(t, m.Terms, 1)
	assert.Equal(t, `a(12,"x,y")`, m.Terms[0].String())
}

func TestWithMetadata(t *testing.T) {
	lines := []Line{
		{Text: "edge(1,2)", Optimization: []int{3}},
		{Text: "edge(1,3)", Optimization: []int{1}, Optimal: Optimal(true)},
	}

	a := FromMetaLines(lines).WithMetadata()
	first := mustNext(t, a)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, []int{3}, first.Optimization)
	assert.Nil(t, first.Optimal)

	second := mustNext(t, a)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, []int{1}, second.Optimization)
	require.NotNil(t, second.Optimal)
	assert.True(t, *second.Optimal)
}

func TestMetadataHiddenWithoutView(t *testing.T) {
	a := FromMetaLines([]Line{{Text: "a", Optimization: []int{9}}})
	m := mustNext(t, a)
	assert.Nil(t, m.Optimization)
	// Still reachable on the raw set.
	assert.Equal(t, []int{9}, m.Set.Optimization)
}

func TestLegacyAtoms(t *testing.T) {
	m := mustNext(t, FromLines([]string{"edge(1,2) node(a)"}).AsLegacyAtoms())
	require.Len(t, m.Atoms, 2)
	assert.Equal(t, "edge", m.Atoms[0].Predicate())
	require.Len(t, m.Atoms[0].Arguments(), 2)
	assert.Equal(t, "node(a)", m.Atoms[1].String())
}

func TestSorted(t *testing.T) {
	m := mustNext(t, FromLines([]string{"c b a"}).Sorted())
	require.Len(t, m.Terms, 3)
	assert.Equal(t, "a", m.Terms[0].String())
	assert.Equal(t, "b", m.Terms[1].String())
	assert.Equal(t, "c", m.Terms[2].String())
}

func TestLaziness(t *testing.T) {
	a := FromLines([]string{"a(1)", "a(2)", "a(3)", "a(4)", "a(5)"})
	assert.Equal(t, 0, a.Parsed(), "nothing parsed before the first pull")

	first := mustNext(t, a)
	assert.Equal(t, 1, a.Parsed())
	assert.Equal(t, 1, first.Number)

	mustNext(t, a)
	assert.Equal(t, 2, a.Parsed(),
		"parse count tracks consumption, not availability")
}

func TestLazyEagerEquivalence(t *testing.T) {
	lines := []string{"a(1) b(1)", "a(2) b(2)", "a(3)"}

	eager, err := FromLines(lines).ByPredicate().All()
	require.NoError(t, err)

	lazy := FromLines(lines).ByPredicate()
	var pulled []*Model
	for {
		m := lazy.nextOrNil(t)
		if m == nil {
			break
		}
		pulled = append(pulled, m)
	}

	require.Len(t, pulled, len(eager))
	for i := range eager {
		assert.Equal(t, eager[i].Number, pulled[i].Number)
		assert.True(t, eager[i].Set.EqualSet(pulled[i].Set))
		assert.Equal(t, eager[i].Groups.Keys, pulled[i].Groups.Keys)
	}
}

func (a *Answers) nextOrNil(t *testing.T) *Model {
	t.Helper()
	m, err := a.Next()
	require.NoError(t, err)
	return m
}

func TestViewChainingDoesNotMutate(t *testing.T) {
	base := FromLines([]string{`a("c")`, `a("c")`})
	stripped := base.StripQuotes()

	// The base pipeline keeps its own view stack while sharing the stream.
	m1 := mustNext(t, base)
	assert.Equal(t, `a("c")`, m1.Terms[0].String())

	m2 := mustNext(t, stripped)
	assert.Equal(t, "a(c)", m2.Terms[0].String())
}

func TestPerLineErrorsDoNotAbortStream(t *testing.T) {
	a := FromLines([]string{"good(1)", `broken("`, "good(3)"}).WithMode(parser.ModeCareful)

	first, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)

	_, err = a.Next()
	require.Error(t, err)
	assert.True(t, errors.IsSyntax(err))

	third, err := a.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, third.Number)
	assert.True(t, third.Set.Contains(term.NewAtom("good", term.NewNumber(3))))

	end, err := a.Next()
	require.NoError(t, err)
	assert.Nil(t, end)
}

func TestFromText(t *testing.T) {
	a := FromText("a b\nc\n")
	first := mustNext(t, a)
	assert.Equal(t, 2, first.Set.Len())
	second := mustNext(t, a)
	assert.Equal(t, 1, second.Set.Len())
	end, err := a.Next()
	require.NoError(t, err)
	assert.Nil(t, end)
}

func TestEmptyLineIsEmptyModel(t *testing.T) {
	a := FromLines([]string{"", "a"})
	first := mustNext(t, a)
	assert.Equal(t, 0, first.Set.Len())
	second := mustNext(t, a)
	assert.Equal(t, 1, second.Set.Len())
}
