package stats

import "time"

// DurationHours is the elapsed time between start and end in hours. The
// result can be negative when end precedes start; rejecting that is the
// caller's call, not this function's.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Seconds() / 3600
}
