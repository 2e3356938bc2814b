package availability

import "time"

// Window is a reserved interval, inclusive at both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// CheckRentalCompatibility reports whether a session selected at date/tod still fits
// inside the rental window. An incomplete selection imposes no constraint.
func CheckRentalCompatibility(w Window, date *time.Time, tod *TimeOfDay, cfg Config) bool {
	if date == nil || tod == nil {
		return true
	}
	return w.Contains(tod.On(*date, cfg.location()))
}
