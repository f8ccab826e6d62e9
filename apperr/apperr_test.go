package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"voxnote/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.New(apperr.DBTranscriptNotFound, "transcript %d not found", 999)
	assert.Equal(t, apperr.DBTranscriptNotFound, apperr.KindOf(err))
	assert.Equal(t, "transcript 999 not found", apperr.MessageOf(err))

	assert.Equal(t, apperr.InternalServerError, apperr.KindOf(errors.New("boom")))
}

func TestWrapPreservesSpecificKind(t *testing.T) {
	inner := apperr.New(apperr.GPTAPITimeout, "model call timed out")
	wrapped := apperr.Wrap(inner, apperr.ProcessingFailed, "analyze stage failed")

	// The more specific inner kind must survive wrapping.
	assert.Equal(t, apperr.GPTAPITimeout, apperr.KindOf(wrapped))
	assert.True(t, apperr.Is(wrapped, apperr.GPTAPITimeout))
	assert.True(t, errors.Is(wrapped, inner) || errors.As(wrapped, new(*apperr.Error)))
}

func TestWrapTagsPlainError(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	wrapped := apperr.Wrap(plain, apperr.DBConnectionFailed, "mongo unreachable")
	assert.Equal(t, apperr.DBConnectionFailed, apperr.KindOf(wrapped))
	assert.ErrorIs(t, wrapped, plain)
}
