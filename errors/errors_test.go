package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  string
	}{
		{ErrorRecoverable, "recoverable"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.class.String())
	}
}

func TestWrap_Format(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Node", "PopTo", "path truncation")
	require.Error(t, err)
	assert.Equal(t, "Node.PopTo: path truncation failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Node", "Push", "append"))
	assert.NoError(t, WrapRecoverable(nil, "Tree", "PopAny", "lock check"))
	assert.NoError(t, WrapInvalid(nil, "Config", "Validate", "check"))
	assert.NoError(t, WrapFatal(nil, "Store", "Put", "write"))
}

func TestClassifiedError_Unwrap(t *testing.T) {
	err := WrapRecoverable(ErrNavigationLocked, "Tree", "PopAny", "lock check")

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, ErrorRecoverable, ce.Class)
	assert.Equal(t, "Tree", ce.Component)
	assert.True(t, stderrors.Is(err, ErrNavigationLocked))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		invalid     bool
		fatal       bool
	}{
		{"nil", nil, false, false, false},
		{"locked sentinel", ErrNavigationLocked, true, false, false},
		{"checkpoint sentinel", ErrCheckpointNotFound, true, false, false},
		{"restoration mismatch", ErrRestorationKeyMismatch, false, true, false},
		{"store closed", ErrStoreClosed, false, false, true},
		{"wrapped invalid", WrapInvalid(fmt.Errorf("bad"), "Config", "Load", "parse"), false, true, false},
		{"wrapped fatal", WrapFatal(fmt.Errorf("bad"), "Store", "Get", "read"), false, false, true},
		{"nested sentinel", fmt.Errorf("outer: %w", ErrNavigationLocked), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.recoverable, IsRecoverable(tt.err))
			assert.Equal(t, tt.invalid, IsInvalid(tt.err))
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestClassify_Defaults(t *testing.T) {
	assert.Equal(t, ErrorRecoverable, Classify(nil))
	assert.Equal(t, ErrorRecoverable, Classify(stderrors.New("mystery")))
	assert.Equal(t, ErrorInvalid, Classify(ErrInvalidConfig))
	assert.Equal(t, ErrorFatal, Classify(ErrStoreClosed))
}
