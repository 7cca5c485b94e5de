package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelIdentity(t *testing.T) {
	assert.True(t, IsAmbiguous(ErrAmbiguous))
	assert.True(t, IsSyntax(ErrSyntax))
	assert.True(t, IsRejected(ErrRejected))

	assert.False(t, IsAmbiguous(ErrSyntax))
	assert.False(t, IsRejected(nil))
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	err := Wrap(ErrAmbiguous, "line 3")
	assert.True(t, IsAmbiguous(err))

	err = Wrapf(err, "model %d", 7)
	assert.True(t, IsAmbiguous(err))
	assert.False(t, IsSyntax(err))
}

func TestHintsPreserveSentinel(t *testing.T) {
	err := WithHint(Wrap(ErrDecoderMismatch, "predicate concept"), "check the encoding rules")
	assert.True(t, Is(err, ErrDecoderMismatch))
}
