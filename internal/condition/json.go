package condition

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/clienttype"
)

// wireCondition mirrors the tagged-union shape a task file encodes a
// Condition in: {"type": "Weekday", "weekdays": [...], ...}. "Combined" is
// accepted as an alias for "And" for backward compatibility with older task
// files.
type wireCondition struct {
	Type string `json:"type"`

	Weekday  []string `json:"weekdays,omitempty"`
	Timezone *wireTZ  `json:"timezone,omitempty"`

	Divisor   *uint32 `json:"divisor,omitempty"`
	Remainder *uint32 `json:"remainder,omitempty"`

	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`

	Client *string `json:"client,omitempty"`

	Conditions []wireCondition `json:"conditions,omitempty"`
	Condition  *wireCondition  `json:"condition,omitempty"`
}

// wireTZ mirrors the TimeOffset wire encoding; "client" is accepted as an
// alias for "timezone" at top level (see UnmarshalJSON).
type wireTZ struct {
	Kind   string  `json:"kind"`
	Hours  *int8   `json:"hours,omitempty"`
	Client *string `json:"client,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

func parseTimezone(w *wireTZ, clientAlias *string) (TimeOffset, error) {
	if w == nil {
		if clientAlias != nil {
			return ClientOffset(clienttype.Parse(*clientAlias)), nil
		}
		return LocalOffset, nil
	}
	switch w.Kind {
	case "", "Local":
		return LocalOffset, nil
	case "Fixed", "FixedOffset":
		if w.Hours == nil {
			return TimeOffset{}, apperr.New(apperr.KindConfig, "fixed timezone requires hours")
		}
		return FixedOffsetHours(*w.Hours), nil
	case "Client":
		if w.Client == nil {
			return TimeOffset{}, apperr.New(apperr.KindConfig, "client timezone requires a client name")
		}
		return ClientOffset(clienttype.Parse(*w.Client)), nil
	default:
		return TimeOffset{}, apperr.New(apperr.KindConfig, "unknown timezone kind %q", w.Kind)
	}
}

// UnmarshalJSON decodes a Condition from its wire representation.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var w wireCondition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out, err := fromWire(w)
	if err != nil {
		return err
	}
	*c = out
	return nil
}

func fromWire(w wireCondition) (Condition, error) {
	switch w.Type {
	case "Always", "":
		return Always, nil
	case "Weekday":
		days := make([]time.Weekday, 0, len(w.Weekday))
		for _, name := range w.Weekday {
			wd, ok := weekdayNames[name]
			if !ok {
				return Condition{}, apperr.New(apperr.KindConfig, "unknown weekday %q", name)
			}
			days = append(days, wd)
		}
		tz, err := parseTimezone(w.Timezone, w.Client)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindWeekday, Weekdays: days, Timezone: tz}, nil
	case "DayMod":
		if w.Divisor == nil {
			return Condition{}, apperr.New(apperr.KindConfig, "DayMod requires a divisor")
		}
		remainder := uint32(0)
		if w.Remainder != nil {
			remainder = *w.Remainder
		}
		tz, err := parseTimezone(w.Timezone, w.Client)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindDayMod, Divisor: *w.Divisor, Remainder: remainder, Timezone: tz}, nil
	case "Time":
		tz, err := parseTimezone(w.Timezone, w.Client)
		if err != nil {
			return Condition{}, err
		}
		start, err := parseTimeOfDay(w.Start)
		if err != nil {
			return Condition{}, err
		}
		end, err := parseTimeOfDay(w.End)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindTime, TimeStart: start, TimeEnd: end, Timezone: tz}, nil
	case "DateTime":
		tz, err := parseTimezone(w.Timezone, w.Client)
		if err != nil {
			return Condition{}, err
		}
		start, err := parseDateTime(w.Start)
		if err != nil {
			return Condition{}, err
		}
		end, err := parseDateTime(w.End)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindDateTime, DateTimeStart: start, DateTimeEnd: end, Timezone: tz}, nil
	case "OnSideStory":
		client := clienttype.Official
		if w.Client != nil {
			client = clienttype.Parse(*w.Client)
		}
		return Condition{Kind: KindOnSideStory, Client: client}, nil
	case "And", "Combined":
		subs, err := fromWireSlice(w.Conditions)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindAnd, Conditions: subs}, nil
	case "Or":
		subs, err := fromWireSlice(w.Conditions)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindOr, Conditions: subs}, nil
	case "Not":
		if w.Condition == nil {
			return Condition{}, apperr.New(apperr.KindConfig, "Not requires a nested condition")
		}
		inner, err := fromWire(*w.Condition)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Kind: KindNot, Inner: &inner}, nil
	default:
		return Condition{}, apperr.New(apperr.KindConfig, "unknown condition type %q", w.Type)
	}
}

func fromWireSlice(ws []wireCondition) ([]Condition, error) {
	out := make([]Condition, len(ws))
	for i, w := range ws {
		c, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func parseTimeOfDay(s *string) (*time.Duration, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("15:04:05", *s)
	if err != nil {
		t, err = time.Parse("15:04", *s)
		if err != nil {
			return nil, fmt.Errorf("condition: invalid time %q: %w", *s, err)
		}
	}
	d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
	return &d, nil
}

func parseDateTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", *s)
	if err != nil {
		t, err = time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, fmt.Errorf("condition: invalid datetime %q: %w", *s, err)
		}
	}
	return &t, nil
}
