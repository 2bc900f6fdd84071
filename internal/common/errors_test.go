package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

func TestStageError_IsKindSentinel(t *testing.T) {
	cause := errors.New("no such file")
	err := fmt.Errorf("process: %w", NewStageError(constants.StageExtract, constants.KindResourceUnavailable, "open image", cause))

	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrFieldNotFound)
	assert.Equal(t, constants.KindResourceUnavailable, KindOf(err))
	assert.Equal(t, constants.StageExtract, StageOf(err))
	assert.Equal(t, "process: extract: RESOURCE_UNAVAILABLE: open image: no such file", err.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, constants.FailureKind(""), KindOf(errors.New("x")))
	assert.Equal(t, constants.Stage(""), StageOf(nil))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ctx"))
	assert.EqualError(t, WrapError(errors.New("boom"), "ctx"), "ctx: boom")
}
