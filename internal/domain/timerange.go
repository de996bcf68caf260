package domain

import "github.com/nishigaki-sys/school-booking-v2/pkg/types"

// TimeRange is a half-open [Start, End) interval within one day, expressed
// in minutes since midnight. It is the sole overlap primitive: every slot
// validation reduces to Overlaps.
type TimeRange struct {
	Start int
	End   int
}

// NewTimeRange builds the interval for a start/end pair of day times.
func NewTimeRange(start, end types.TimeString) TimeRange {
	return TimeRange{Start: start.Minutes(), End: end.Minutes()}
}

// Overlaps reports whether the two half-open intervals share any instant.
// Back-to-back ranges (a ends exactly where b starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Duration returns the interval length in minutes.
func (r TimeRange) Duration() int {
	return r.End - r.Start
}
