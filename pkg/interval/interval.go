package interval

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout the API.
// Dates in this layout compare correctly as plain strings.
const DateLayout = "2006-01-02"

const clockLayout = "15:04"

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// It carries no timezone; callers are expected to normalize before handing
// times to the API.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals; it panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseDate validates a calendar date and returns it normalized to DateLayout.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// Today returns the current calendar date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Interval is a calendar date with a half-open [Start, End) wall-clock range.
type Interval struct {
	Date  string
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the range is non-empty (start strictly before end).
func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

// Overlaps reports whether the two intervals share any time. Intervals on
// different dates never overlap, and touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Date == other.Date && iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether inner lies entirely within iv on the same date.
func (iv Interval) Contains(inner Interval) bool {
	return iv.Date == inner.Date &&
		iv.Start <= inner.Start && inner.Start < inner.End && inner.End <= iv.End
}

// Minutes returns the length of the interval.
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}
