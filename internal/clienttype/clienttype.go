// Package clienttype defines the finite set of game client variants
// referenced by Condition, TaskConfig initialization, and the connection
// Profile.
package clienttype

import "fmt"

// ClientType enumerates the supported game client regions/builds.
type ClientType int

const (
	Official ClientType = iota
	Bilibili
	YoStarEN
	YoStarJP
	YoStarKR
	Txwy
	Default // generic fallback client with no region-specific behavior
)

var names = map[ClientType]string{
	Official: "Official",
	Bilibili: "Bilibili",
	YoStarEN: "YoStarEN",
	YoStarJP: "YoStarJP",
	YoStarKR: "YoStarKR",
	Txwy:     "txwy",
	Default:  "Default",
}

func (c ClientType) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "Official"
}

// Parse converts a client type string (as found in a task's "client_type"
// param) into a ClientType, falling back to Official for unknown strings.
func Parse(s string) ClientType {
	for ct, name := range names {
		if name == s {
			return ct
		}
	}
	return Official
}

// ServerTimeZone returns the nominal UTC offset (in hours) of the client's
// game server, used for Time/DateTime condition evaluation.
func (c ClientType) ServerTimeZone() int8 {
	switch c {
	case Official, Bilibili:
		return 8
	case YoStarEN:
		return -7
	case YoStarJP, YoStarKR:
		return 9
	case Txwy:
		return 8
	default:
		return 8
	}
}

// GameDayTimeZone returns ServerTimeZone() shifted back by 4 hours, used
// only for Weekday/DayMod evaluation so that a "game day" begins at 04:00
// server-local time instead of midnight.
func (c ClientType) GameDayTimeZone() int8 {
	return c.ServerTimeZone() - 4
}

// Resource returns the global resource name this client needs layered on
// top of the base resource directories, or "" if none. The run
// driver registers a non-empty result as the profile's global resource.
func (c ClientType) Resource() string {
	switch c {
	case Bilibili:
		return "bilibili"
	case YoStarEN:
		return "YoStarEN"
	case YoStarJP:
		return "YoStarJP"
	case YoStarKR:
		return "YoStarKR"
	case Txwy:
		return "txwy"
	default:
		return ""
	}
}

// MarshalText / UnmarshalText let ClientType participate directly in
// JSON/YAML/TOML decoding of profile and task files.
func (c ClientType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClientType) UnmarshalText(text []byte) error {
	*c = Parse(string(text))
	return nil
}

// Validate reports an error for a ClientType value outside the known set;
// used where an unrecognized client_type should be rejected rather than
// silently downgraded (unlike connection presets, which downgrade leniently).
func (c ClientType) Validate() error {
	if _, ok := names[c]; !ok {
		return fmt.Errorf("clienttype: invalid client type %d", c)
	}
	return nil
}
