package condition

import (
	"context"
	"testing"
	"time"

	"github.com/maa-cli/maa-go/internal/clienttype"
	"github.com/stretchr/testify/assert"
)

func TestDayOfEra(t *testing.T) {
	d := dayOfEra(time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(738912), d)
}

func TestAlwaysIsActive(t *testing.T) {
	assert.True(t, Always.IsActive(context.Background()))
}

func TestAndIsInactiveIfAnyInactive(t *testing.T) {
	c := Condition{Kind: KindAnd, Conditions: []Condition{
		Always,
		{Kind: KindNot, Inner: &Always},
	}}
	assert.False(t, c.isActiveAt(context.Background(), time.Now()))
}

func TestOrIsActiveIfAnyTrue(t *testing.T) {
	c := Condition{Kind: KindOr, Conditions: []Condition{
		{Kind: KindNot, Inner: &Always},
		Always,
	}}
	assert.True(t, c.isActiveAt(context.Background(), time.Now()))
}

func TestWeekdayClientShiftsGameDay(t *testing.T) {
	// 2024-01-27 is a Saturday at UTC+8 midnight local, but in Official's
	// server timezone (UTC+8) minus the 4-hour game-day shift, 00:00-03:59
	// local still projects to the prior game day (Friday).
	loc := time.FixedZone("server", 8*3600)
	now := time.Date(2024, 1, 27, 1, 0, 0, 0, loc)

	c := Condition{
		Kind:     KindWeekday,
		Weekdays: []time.Weekday{time.Friday},
		Timezone: ClientOffset(clienttype.Official),
	}
	assert.True(t, c.isActiveAt(context.Background(), now))

	cSat := Condition{
		Kind:     KindWeekday,
		Weekdays: []time.Weekday{time.Saturday},
		Timezone: ClientOffset(clienttype.Official),
	}
	assert.False(t, cSat.isActiveAt(context.Background(), now))
}

func TestDayModStableAcrossEquivalentInstants(t *testing.T) {
	c := Condition{Kind: KindDayMod, Divisor: 2, Remainder: 0, Timezone: LocalOffset}
	now := time.Date(2024, 1, 28, 10, 0, 0, 0, time.UTC)
	first := c.isActiveAt(context.Background(), now)
	second := c.isActiveAt(context.Background(), now)
	assert.Equal(t, first, second)
}

func TestTimeRangeWraparound(t *testing.T) {
	start := 23 * time.Hour
	end := 1 * time.Hour
	assert.True(t, timeInRange(23*time.Hour+30*time.Minute, &start, &end))
	assert.True(t, timeInRange(30*time.Minute, &start, &end))
	assert.False(t, timeInRange(12*time.Hour, &start, &end))
}

func TestUnmarshalJSONWeekdayAndCombinedAlias(t *testing.T) {
	raw := []byte(`{
		"type": "Combined",
		"conditions": [
			{"type": "Weekday", "weekdays": ["Monday", "Tuesday"], "client": "Official"},
			{"type": "Always"}
		]
	}`)
	var c Condition
	err := c.UnmarshalJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, KindAnd, c.Kind)
	assert.Len(t, c.Conditions, 2)
	assert.Equal(t, KindWeekday, c.Conditions[0].Kind)
	assert.Equal(t, Client, c.Conditions[0].Timezone.Kind)
	assert.Equal(t, clienttype.Official, c.Conditions[0].Timezone.ClientType)
}

func TestUnmarshalJSONOnSideStory(t *testing.T) {
	raw := []byte(`{"type": "OnSideStory", "client": "YoStarEN"}`)
	var c Condition
	err := c.UnmarshalJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, KindOnSideStory, c.Kind)
	assert.Equal(t, clienttype.YoStarEN, c.Client)
}
