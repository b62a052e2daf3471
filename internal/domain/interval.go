package domain

import "time"

// Interval is a half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether Start is strictly before End.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether candidate and existing share at least one
// instant. Intervals that only touch at an endpoint do not overlap.
func Overlaps(candidate, existing Interval) bool {
	a, b := candidate, existing
	startsInside := !a.Start.Before(b.Start) && a.Start.Before(b.End)
	endsInside := a.End.After(b.Start) && !a.End.After(b.End)
	covers := !a.Start.After(b.Start) && !a.End.Before(b.End)
	return startsInside || endsInside || covers
}
