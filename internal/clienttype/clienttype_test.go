package clienttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoundTripsKnownNames(t *testing.T) {
	assert.Equal(t, YoStarEN, Parse("YoStarEN"))
	assert.Equal(t, Txwy, Parse("txwy"))
}

func TestParseUnknownFallsBackToOfficial(t *testing.T) {
	assert.Equal(t, Official, Parse("NotARealClient"))
}

func TestGameDayTimeZoneIsFourHoursBehindServer(t *testing.T) {
	assert.Equal(t, YoStarEN.ServerTimeZone()-4, YoStarEN.GameDayTimeZone())
	assert.Equal(t, int8(4), Official.GameDayTimeZone())
}

func TestResourceEmptyForOfficialAndDefault(t *testing.T) {
	assert.Equal(t, "", Official.Resource())
	assert.Equal(t, "", Default.Resource())
	assert.Equal(t, "bilibili", Bilibili.Resource())
}

func TestMarshalUnmarshalTextRoundTrip(t *testing.T) {
	text, err := YoStarJP.MarshalText()
	assert.NoError(t, err)

	var c ClientType
	assert.NoError(t, c.UnmarshalText(text))
	assert.Equal(t, YoStarJP, c)
}

func TestValidateRejectsOutOfRangeValue(t *testing.T) {
	var c ClientType = 99
	assert.Error(t, c.Validate())
	assert.NoError(t, Official.Validate())
}
