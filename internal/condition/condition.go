// Package condition implements the boolean scheduling predicates used to
// decide whether a task or task variant is active right now.
package condition

import (
	"context"
	"time"

	"github.com/maa-cli/maa-go/internal/activity"
	"github.com/maa-cli/maa-go/internal/clienttype"
)

// OffsetKind tags a TimeOffset's variant.
type OffsetKind int

const (
	Local OffsetKind = iota
	FixedOffset
	Client
)

// TimeOffset resolves "now" into a particular timezone for condition
// evaluation.
type TimeOffset struct {
	Kind       OffsetKind
	FixedHours int8
	ClientType clienttype.ClientType
}

// LocalOffset is the default TimeOffset (the user's local timezone).
var LocalOffset = TimeOffset{Kind: Local}

// FixedOffsetHours builds a TimeOffset shifting by h hours from UTC.
func FixedOffsetHours(h int8) TimeOffset { return TimeOffset{Kind: FixedOffset, FixedHours: h} }

// ClientOffset builds a TimeOffset following a game client's server timezone.
func ClientOffset(c clienttype.ClientType) TimeOffset { return TimeOffset{Kind: Client, ClientType: c} }

// resolve converts an instant into the wall-clock time this offset
// represents. When gameDay is true and the offset is Client, the server
// timezone is additionally shifted back 4 hours so that a "game day" begins
// at 04:00 server-local — this only applies to the Client variant; Local
// and FixedOffset are used as given.
func (t TimeOffset) resolve(now time.Time, gameDay bool) time.Time {
	switch t.Kind {
	case FixedOffset:
		loc := time.FixedZone("fixed", int(t.FixedHours)*3600)
		return now.In(loc)
	case Client:
		hours := t.ClientType.ServerTimeZone()
		if gameDay {
			hours = t.ClientType.GameDayTimeZone()
		}
		loc := time.FixedZone("client", int(hours)*3600)
		return now.In(loc)
	default:
		return now.Local()
	}
}

// Kind tags a Condition's variant.
type Kind int

const (
	KindAlways Kind = iota
	KindWeekday
	KindDayMod
	KindTime
	KindDateTime
	KindOnSideStory
	KindAnd
	KindOr
	KindNot
)

// Condition is the recursive boolean predicate evaluated against "now".
type Condition struct {
	Kind Kind

	// Weekday
	Weekdays []time.Weekday
	Timezone TimeOffset

	// DayMod
	Divisor   uint32
	Remainder uint32

	// Time / DateTime
	TimeStart     *time.Duration // time-of-day as an offset from midnight
	TimeEnd       *time.Duration
	DateTimeStart *time.Time
	DateTimeEnd   *time.Time

	// OnSideStory
	Client clienttype.ClientType

	// And / Or
	Conditions []Condition

	// Not
	Inner *Condition
}

// Always is the trivially-active Condition.
var Always = Condition{Kind: KindAlways}

// IsActive evaluates the condition against a freshly captured instant.
// Ctx threads through to the OnSideStory oracle, which may be I/O-bound in
// a real deployment even though the bundled Stub is not.
func (c Condition) IsActive(ctx context.Context) bool {
	return c.isActiveAt(ctx, time.Now())
}

// isActiveAt evaluates against an explicitly supplied instant, shared by
// every sub-condition of a single top-level IsActive call so that boundary
// flaps (e.g. a Time check straddling midnight mid-evaluation) can't happen.
func (c Condition) isActiveAt(ctx context.Context, now time.Time) bool {
	switch c.Kind {
	case KindAlways:
		return true
	case KindWeekday:
		wd := c.Timezone.resolve(now, true).Weekday()
		for _, w := range c.Weekdays {
			if w == wd {
				return true
			}
		}
		return false
	case KindDayMod:
		d := dayOfEra(c.Timezone.resolve(now, true))
		return uint32(d)%c.Divisor == c.Remainder
	case KindTime:
		t := c.Timezone.resolve(now, false)
		tod := timeOfDay(t)
		return timeInRange(tod, c.TimeStart, c.TimeEnd)
	case KindDateTime:
		t := c.Timezone.resolve(now, false)
		return dateTimeInRange(t, c.DateTimeStart, c.DateTimeEnd)
	case KindOnSideStory:
		open, err := activity.Current().HasSideStoryOpen(ctx, c.Client)
		if err != nil {
			return false
		}
		return open
	case KindAnd:
		for _, sub := range c.Conditions {
			if !sub.isActiveAt(ctx, now) {
				return false
			}
		}
		return true
	case KindOr:
		for _, sub := range c.Conditions {
			if sub.isActiveAt(ctx, now) {
				return true
			}
		}
		return false
	case KindNot:
		if c.Inner == nil {
			return true
		}
		return !c.Inner.isActiveAt(ctx, now)
	default:
		return false
	}
}

// timeOfDay returns the duration elapsed since local midnight.
func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func timeInRange(tod time.Duration, start, end *time.Duration) bool {
	switch {
	case start != nil && end != nil:
		if *start <= *end {
			return *start <= tod && tod < *end
		}
		return *start <= tod || tod < *end
	case start != nil:
		return tod >= *start
	case end != nil:
		return tod < *end
	default:
		return true
	}
}

func dateTimeInRange(t time.Time, start, end *time.Time) bool {
	switch {
	case start != nil && end != nil:
		return !t.Before(*start) && t.Before(*end)
	case start != nil:
		return !t.Before(*start)
	case end != nil:
		return t.Before(*end)
	default:
		return true
	}
}

// DayOfEra exposes dayOfEra to callers outside the package; the `remainder`
// CLI verb reports `day_of_era(now, tz) mod divisor` directly.
func DayOfEra(t time.Time) int64 { return dayOfEra(t) }

// dayOfEra returns the proleptic-Gregorian day count with 0001-01-01 == 1.
// Go's time.Time has no built-in accessor for this, so it's computed from
// the date's civil (year, month, day) fields via daysFromCivil.
func dayOfEra(t time.Time) int64 {
	year, month, day := t.Date()
	return daysFromCivil(int64(year), int(month), day)
}

// daysFromCivil converts a proleptic Gregorian (y, m, d) date into a day
// count where 0001-01-01 == 1, using Howard Hinnant's days-from-civil
// algorithm (which natively counts from 0000-03-01) shifted to an 0001
// epoch and to chrono's 1-based numbering.
func daysFromCivil(y int64, m int, d int) int64 {
	y -= boolToInt64(m <= 2)
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	// days since 0000-03-01; chrono's num_days_from_ce counts days since
	// 0001-01-01 == 1, and 0000-03-01 is 306 days before 0001-01-01.
	daysSinceEpoch := era*146097 + doe - 306
	return daysSinceEpoch + 1
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
