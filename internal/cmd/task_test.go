package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/profile"
	"github.com/maa-cli/maa-go/internal/value"
)

func TestClientParamWithAndWithoutClient(t *testing.T) {
	p := clientParam(nil)
	assert.Equal(t, value.Bool(true), p["enable"])
	_, ok := p["client_type"]
	assert.False(t, ok)

	p = clientParam([]string{"YoStarEN"})
	assert.Equal(t, value.Str("YoStarEN"), p["client_type"])
}

func TestSingleTaskConfigBuildsOneTaskTaskConfig(t *testing.T) {
	f := singleTaskConfig("Fight", map[string]value.Value{"stage": value.Str("1-7")})
	cfg, err := f(profile.AsstConfig{})
	assert.NoError(t, err)
	assert.Len(t, cfg.Tasks, 1)
	assert.Equal(t, "Fight", cfg.Tasks[0].TaskType)
	assert.Equal(t, value.Str("1-7"), cfg.Tasks[0].Params.Object["stage"])
}

func TestCommonTaskFlagsDefaults(t *testing.T) {
	c := fightCmd()
	flag := c.Flags().Lookup("profile")
	assert.NotNil(t, flag)
	assert.Equal(t, "default", flag.DefValue)
}
