package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(KindConfig, "unknown preset %q", "foo")
	assert.Equal(t, `unknown preset "foo"`, err.Error())
	assert.Equal(t, KindConfig, err.Kind())
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(KindRuntime, nil, "loading %s", "x"))
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(KindFFI, cause, "loading core")

	assert.Contains(t, wrapped.Error(), "loading core")
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestKindOfDefaultsToUnknown(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindConfig, KindOf(New(KindConfig, "bad config")))
}

func TestExitCodeByKind(t *testing.T) {
	assert.Equal(t, 1, KindUnknown.ExitCode())
	assert.NotEqual(t, KindConfig.ExitCode(), KindRuntime.ExitCode())
}
