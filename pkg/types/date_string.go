package types

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// ErrInvalidDateString is returned when a string is not a valid ISO date.
var ErrInvalidDateString = errors.New("types: invalid date string format")

// DateString is a calendar date in ISO "YYYY-MM-DD" form. Lexicographic
// order equals chronological order, so range checks compare strings directly.
type DateString string

// NewDateString takes the calendar date of t in t's location.
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// NewDateStringFromString validates and normalizes s.
func NewDateStringFromString(s string) (DateString, error) {
	parsed, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(parsed.Format(DateFormat)), nil
}

// Validate reports whether d holds a well-formed ISO date.
func (d DateString) Validate() error {
	_, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// Time returns midnight of d in UTC.
func (d DateString) Time() time.Time {
	parsed, _ := time.Parse(DateFormat, string(d))
	return parsed
}

// AddDays returns d shifted by n calendar days.
func (d DateString) AddDays(n int) DateString {
	return NewDateString(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d DateString) Before(other DateString) bool {
	return string(d) < string(other)
}

// After reports whether d is strictly later than other.
func (d DateString) After(other DateString) bool {
	return string(d) > string(other)
}

// InRange reports whether d lies within [start, end], both inclusive.
func (d DateString) InRange(start, end DateString) bool {
	return string(d) >= string(start) && string(d) <= string(end)
}

func (d DateString) String() string {
	return string(d)
}

// EachDate calls fn for every date in [start, end] in chronological order.
// Does nothing when end precedes start.
func EachDate(start, end DateString, fn func(DateString)) {
	for d := start; !d.After(end); d = d.AddDays(1) {
		fn(d)
	}
}
