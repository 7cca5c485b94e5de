package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name     string
		term     Term
		expected string
	}{
		{
			name:     "zero-arity atom renders bare",
			term:     NewAtom("alive"),
			expected: "alive",
		},
		{
			name:     "atom with arguments",
			term:     NewAtom("edge", NewNumber(4), NewString("s…lp.")),
			expected: `edge(4,"s…lp.")`,
		},
		{
			name:     "negated atom",
			term:     NewNegatedAtom("broken", NewAtom("lamp")),
			expected: "-broken(lamp)",
		},
		{
			name:     "nested atoms",
			term:     NewAtom("p", NewAtom("q", NewAtom("r"))),
			expected: "p(q(r))",
		},
		{
			name:     "negative integer literal",
			term:     NewAtom("score", NewNumber(-12)),
			expected: "score(-12)",
		},
		{
			name:     "bare tuple without trailing comma",
			term:     NewTuple(NewNumber(2)),
			expected: "(2)",
		},
		{
			name:     "empty tuple",
			term:     NewTuple(),
			expected: "()",
		},
		{
			name: "one-element tuple with trailing comma spelling",
			term: Term{Kind: Tuple, Args: []Term{NewAtom("a")}, Trailing: true},
			expected: "(a,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.term.String())
		})
	}
}

func TestEqualIgnoresTupleSpelling(t *testing.T) {
	plain := NewTuple(NewNumber(2))
	trailing := Term{Kind: Tuple, Args: []Term{NewNumber(2)}, Trailing: true}

	assert.True(t, plain.Equal(trailing))
	assert.Equal(t, plain.Key(), trailing.Key())
	// Key normalizes one-element tuples to trailing-comma spelling.
	assert.Equal(t, "(2,)", plain.Key())
}

func TestEqualStructural(t *testing.T) {
	a := NewAtom("edge", NewNumber(1), NewNumber(2))
	b := NewAtom("edge", NewNumber(1), NewNumber(2))
	c := NewAtom("edge", NewNumber(2), NewNumber(1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "argument order is significant")
	assert.False(t, NewAtom("a").Equal(NewNegatedAtom("a")))
	assert.False(t, NewNumber(1).Equal(NewString("1")))
}

func TestArityAndLiterals(t *testing.T) {
	assert.Equal(t, 0, NewAtom("a").Arity())
	assert.Equal(t, 2, NewAtom("r", NewNumber(1), NewNumber(2)).Arity())
	assert.True(t, NewNumber(3).IsLiteral())
	assert.True(t, NewString("x").IsLiteral())
	assert.False(t, NewAtom("x").IsLiteral())
}

func TestStripQuotes(t *testing.T) {
	in := NewAtom("a", NewString("c"), NewTuple(NewString("d")))
	out := StripQuotes(in)
	assert.Equal(t, `a(c,(d))`, out.String())
	// Original untouched.
	assert.Equal(t, `a("c",("d"))`, in.String())
}

func TestCoerceLiterals(t *testing.T) {
	in := NewAtom("a", NewAtom("12"), NewString("7"), NewString("x"), NewAtom("b"))
	out := CoerceLiterals(in)
	assert.Equal(t, `a(12,7,"x",b)`, out.String())
	assert.Equal(t, Number, out.Args[0].Kind)
	assert.Equal(t, 12, out.Args[0].Int)
}
