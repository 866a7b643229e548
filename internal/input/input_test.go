package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/value"
)

func withBatchSession(t *testing.T) {
	t.Helper()
	prev := currentSession
	SetGlobalSession(&Session{Batch: true})
	t.Cleanup(func() { SetGlobalSession(prev) })
}

func TestBoolInputBatchUsesDefault(t *testing.T) {
	withBatchSession(t)
	def := true
	b := &BoolInput{Default: &def}
	p, err := b.Prompt()
	assert.NoError(t, err)
	assert.Equal(t, value.BoolPrim(true), p)
}

func TestBoolInputBatchWithoutDefaultErrors(t *testing.T) {
	withBatchSession(t)
	b := &BoolInput{}
	_, err := b.Prompt()
	assert.ErrorIs(t, err, apperr.ErrDefaultNotSet)
}

func TestInputIntBatchUsesDefault(t *testing.T) {
	withBatchSession(t)
	def := int32(7)
	in := &Input[int32]{Default: &def}
	p, err := in.Prompt()
	assert.NoError(t, err)
	assert.Equal(t, value.IntPrim(7), p)
}

func TestSelectDBatchDefaultsToFirstAlternative(t *testing.T) {
	withBatchSession(t)
	s := &SelectD[string]{Alternatives: []string{"a", "b", "c"}}
	p, err := s.Prompt()
	assert.NoError(t, err)
	assert.Equal(t, value.StringPrim("a"), p)
}

func TestSelectDBatchHonorsDefaultIndex(t *testing.T) {
	withBatchSession(t)
	idx := uint64(2)
	s := &SelectD[string]{Alternatives: []string{"a", "b", "c"}, DefaultIndex: &idx}
	p, err := s.Prompt()
	assert.NoError(t, err)
	assert.Equal(t, value.StringPrim("b"), p)
}

func TestSelectDBatchOutOfRangeDefaultErrors(t *testing.T) {
	withBatchSession(t)
	idx := uint64(99)
	s := &SelectD[string]{Alternatives: []string{"a"}, DefaultIndex: &idx}
	_, err := s.Prompt()
	assert.Error(t, err)
}

func TestSelectDNoAlternativesErrors(t *testing.T) {
	withBatchSession(t)
	s := &SelectD[string]{}
	_, err := s.Prompt()
	assert.Error(t, err)
}

func TestParseBoolAcceptsCommonSpellings(t *testing.T) {
	v, err := parse[bool]("yes")
	assert.NoError(t, err)
	assert.True(t, v)

	v, err = parse[bool]("No")
	assert.NoError(t, err)
	assert.False(t, v)

	_, err = parse[bool]("maybe")
	assert.Error(t, err)
}
