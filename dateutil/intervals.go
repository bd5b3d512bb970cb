package dateutil

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Interval groups start and end.
type Interval struct {
	Start time.Time
	End   time.Time
}

// String renders an interval.
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Validate checks if the interval is valid (end after start).
func (iv Interval) Validate() error {
	if iv.End.Before(iv.Start) {
		return fmt.Errorf("invalid interval: end %v before start %v", iv.End, iv.Start)
	}
	return nil
}

type (
	// PadFunc allows to move a given time back and forth.
	PadFunc func(t time.Time) time.Time
	// IntervalFunc takes a start and end time and returns a number of
	// intervals. How intervals are generated is flexible.
	IntervalFunc func(s, e time.Time) []Interval
)

var (
	Daily   = makeIntervalFunc(padLDay, padRDay)
	Weekly  = makeIntervalFunc(padLWeek, padRWeek)
	Monthly = makeIntervalFunc(padLMonth, padRMonth)

	padLDay   = func(t time.Time) time.Time { return now.With(t).BeginningOfDay() }
	padRDay   = func(t time.Time) time.Time { return now.With(t).EndOfDay() }
	padLWeek  = func(t time.Time) time.Time { return now.With(t).BeginningOfWeek() }
	padRWeek  = func(t time.Time) time.Time { return now.With(t).EndOfWeek() }
	padLMonth = func(t time.Time) time.Time { return now.With(t).BeginningOfMonth() }
	padRMonth = func(t time.Time) time.Time { return now.With(t).EndOfMonth() }
)

// makeIntervalFunc is a helper to create daily, weekly and other
// intervals between two points in time.
func makeIntervalFunc(padLeft, padRight PadFunc) IntervalFunc {
	return func(start, end time.Time) (result []Interval) {
		if end.Before(start) || end.Equal(start) {
			return
		}
		end = end.Add(-1 * time.Second)
		var (
			l time.Time = start
			r time.Time
		)
		for {
			r = padRight(l)
			result = append(result, Interval{l, r})
			l = padLeft(r.Add(1 * time.Second))
			if l.After(end) {
				break
			}
		}
		return result
	}
}
