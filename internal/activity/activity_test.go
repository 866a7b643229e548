package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/clienttype"
)

type alwaysOpen struct{}

func (alwaysOpen) HasSideStoryOpen(context.Context, clienttype.ClientType) (bool, error) {
	return true, nil
}

func TestDefaultOracleIsConservativeStub(t *testing.T) {
	open, err := Current().HasSideStoryOpen(context.Background(), clienttype.Official)
	assert.NoError(t, err)
	assert.False(t, open)
}

func TestSetOracleOverridesCurrent(t *testing.T) {
	defer SetOracle(nil)

	SetOracle(alwaysOpen{})
	open, err := Current().HasSideStoryOpen(context.Background(), clienttype.Official)
	assert.NoError(t, err)
	assert.True(t, open)
}

func TestSetOracleNilResetsToStub(t *testing.T) {
	SetOracle(alwaysOpen{})
	SetOracle(nil)
	open, _ := Current().HasSideStoryOpen(context.Background(), clienttype.Official)
	assert.False(t, open)
}
