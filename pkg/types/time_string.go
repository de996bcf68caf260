package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the wire format for times of day.
const TimeFormat = "15:04"

// ErrInvalidTimeString is returned when a string is not a valid "HH:MM" time.
var ErrInvalidTimeString = errors.New("types: invalid time string format")

// TimeString is a wall-clock time of day in 24-hour "HH:MM" form, minute
// resolution. The zero value is not valid; construct via NewTimeString or
// NewTimeStringFromString.
type TimeString string

// NewTimeString truncates t to minute resolution.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString validates and normalizes s ("9:05" becomes "09:05").
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(parsed.Format(TimeFormat)), nil
}

// Validate reports whether t holds a well-formed "HH:MM" value.
func (t TimeString) Validate() error {
	_, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns minutes since midnight (0-1439). Result is undefined for
// malformed values; call Validate first on untrusted input.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore reports whether t is strictly earlier in the day than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes returns t shifted forward by m minutes. Fails if the result
// leaves the day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total := t.Minutes() + m
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes leaves the day", ErrInvalidTimeString, t, m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

func (t TimeString) String() string {
	return string(t)
}
