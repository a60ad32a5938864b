package report

import (
	"errors"
	"time"
)

// DateLayout is the calendar-day format accepted for range bounds and used
// for daily buckets.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned for an unparsable bound or start after end.
var ErrInvalidRange = errors.New("invalid date range")

// Range is an inclusive, optionally open-ended time window. Start is the
// first millisecond of its day and End the last, both in UTC.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange parses YYYY-MM-DD bounds. Either bound may be empty.
func ParseRange(start, end string) (Range, error) {
	var r Range
	if start != "" {
		t, err := time.ParseInLocation(DateLayout, start, time.UTC)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
		r.Start = &t
	}
	if end != "" {
		t, err := time.ParseInLocation(DateLayout, end, time.UTC)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
		t = t.Add(24*time.Hour - time.Millisecond)
		r.End = &t
	}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Bounded reports whether both ends are set.
func (r Range) Bounded() bool { return r.Start != nil && r.End != nil }

// Contains reports whether t falls inside the window, bounds included.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Previous returns the window of equal length ending one millisecond before
// Start: [start-len-1ms, start-1ms]. It is only defined for bounded ranges.
func (r Range) Previous() (Range, bool) {
	if !r.Bounded() {
		return Range{}, false
	}
	length := r.End.Sub(*r.Start)
	if length < 0 {
		return Range{}, false
	}
	end := r.Start.Add(-time.Millisecond)
	start := r.Start.Add(-length - time.Millisecond)
	return Range{Start: &start, End: &end}, true
}

// Day returns the UTC calendar day of t.
func Day(t time.Time) string { return t.UTC().Format(DateLayout) }
