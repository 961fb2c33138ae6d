// Package clock converts between the shop's fixed local time zone and the
// backend's wire date-time formats.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// Precision selects how much of a timestamp the wire format carries.
type Precision int

// Supported wire precisions.
const (
	Day Precision = iota
	Minute
	Second
)

// Wire and display formats. The backend speaks ISO dates with a literal 'T'
// separator; deposits are entered with minute precision, sales with seconds.
const (
	dayFormat     = "2006-01-02"
	minuteFormat  = "2006-01-02T15:04"
	secondFormat  = "2006-01-02T15:04:05"
	displayFormat = "2 Jan 2006 3:04 PM"
)

// DefaultOffsetMinutes is IST (UTC+5:30). The shop operates in one fixed
// zone; there is no daylight-saving logic anywhere.
const DefaultOffsetMinutes = 330

// Clock produces wall-clock time in a fixed-offset zone and formats
// timestamps for the wire and for display.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New creates a Clock with the given fixed offset from UTC in minutes.
func New(offsetMinutes int) *Clock {
	name := fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes)%60)
	return &Clock{
		loc: time.FixedZone(name, offsetMinutes*60),
		now: time.Now,
	}
}

// Default returns a Clock pinned to IST.
func Default() *Clock {
	return New(DefaultOffsetMinutes)
}

// NewFrozen returns a Clock whose Now always reports the given instant.
// Used by tests and anywhere a deterministic wall clock is needed.
func NewFrozen(offsetMinutes int, instant time.Time) *Clock {
	c := New(offsetMinutes)
	c.now = func() time.Time { return instant }
	return c
}

// Now returns the current wall-clock time in the fixed zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Format renders t in the fixed zone at the given wire precision. All
// numeric fields are zero-padded; Day omits the time of day entirely and
// Minute omits seconds.
func (c *Clock) Format(t time.Time, p Precision) string {
	t = t.In(c.loc)
	switch p {
	case Day:
		return t.Format(dayFormat)
	case Minute:
		return t.Format(minuteFormat)
	default:
		return t.Format(secondFormat)
	}
}

// ToDisplay renders t for humans: day, short month, year and a 12-hour
// clock where noon and midnight read as 12.
func (c *Clock) ToDisplay(t time.Time) string {
	return t.In(c.loc).Format(displayFormat)
}

// ParseWire parses a backend timestamp string in the fixed zone. A
// minute-precision string is completed with ":00" before parsing, matching
// what the entry forms send.
func (c *Clock) ParseWire(s string) (time.Time, error) {
	if len(s) == len(minuteFormat) {
		s += ":00"
	}
	t, err := time.ParseInLocation(secondFormat, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// BucketDate extracts the calendar-day portion of a wire timestamp: the text
// before the first 'T'. A string without a time separator is returned whole.
func BucketDate(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
