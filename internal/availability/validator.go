package availability

import "time"

// Kind classifies a date/time violation.
type Kind int

const (
	KindPastTime Kind = iota + 1
	KindOrdering
	KindMultiDay
	KindClosedDay
	KindOutsideHours
)

var kindNames = map[Kind]string{
	KindPastTime:     "past_time",
	KindOrdering:     "ordering",
	KindMultiDay:     "multi_day",
	KindClosedDay:    "closed_day",
	KindOutsideHours: "outside_hours",
}

// String returns a stable snake_case label, used in metrics and logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Violation is an advisory message shown next to a date/time picker.
type Violation struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v == nil {
		return "<nil>"
	}
	return v.Message
}

// Is matches violations by kind so errors.Is works with the sentinels below.
func (v *Violation) Is(target error) bool {
	t, ok := target.(*Violation)
	if !ok || v == nil || t == nil {
		return false
	}
	return v.Kind == t.Kind
}

var (
	ErrPastTime     = &Violation{Kind: KindPastTime, Message: "Cannot select a time in the past."}
	ErrOrdering     = &Violation{Kind: KindOrdering, Message: "Start time must be before end time."}
	ErrMultiDay     = &Violation{Kind: KindMultiDay, Message: "Multi-day rentals require direct contact with space renter."}
	ErrClosedDay    = &Violation{Kind: KindClosedDay, Message: "Space renter is closed on this day."}
	ErrOutsideHours = &Violation{Kind: KindOutsideHours, Message: "Outside opening hours"}
)

// Config carries the clock and zone used to interpret selections.
type Config struct {
	Location *time.Location
	Now      func() time.Time
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Request is one endpoint of a start/end selection.
type Request struct {
	Date         *time.Time
	Time         *TimeOfDay
	OpeningHours Week
	OtherDate    *time.Time
	OtherTime    *TimeOfDay
	IsStart      bool
}

// Validator checks date/time selections against the clock and an opening-hours table.
type Validator struct {
	cfg Config
}

// NewValidator builds a validator bound to cfg.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate returns nil when the selection is acceptable or incomplete, otherwise the
// first *Violation found. Checks run in order: past, ordering, multi-day, closed, hours.
func (v *Validator) Validate(req Request) error {
	if req.Date == nil || req.Time == nil {
		return nil
	}
	loc := v.cfg.location()
	selected := req.Time.On(*req.Date, loc)

	if selected.Before(v.cfg.now()) {
		return ErrPastTime
	}

	if req.OtherDate != nil {
		if !sameDay(*req.Date, *req.OtherDate) {
			return ErrMultiDay
		}
		if req.OtherTime != nil {
			other := req.OtherTime.On(*req.OtherDate, loc)
			start, end := selected, other
			if !req.IsStart {
				start, end = other, selected
			}
			if !start.Before(end) {
				return ErrOrdering
			}
		}
	}

	if req.OpeningHours == nil {
		return nil
	}
	slots := req.OpeningHours.SlotsFor(selected.Weekday())
	if len(slots) == 0 {
		return ErrClosedDay
	}
	if !withinAny(slots, *req.Time, req.IsStart) {
		return &Violation{
			Kind:    KindOutsideHours,
			Message: ErrOutsideHours.Message + " (" + FormatSlots(slots) + ")",
		}
	}
	return nil
}

// withinAny reports whether t fits one of the slots. A start must leave room before
// closing; an end may coincide with closing.
func withinAny(slots []TimeSlot, t TimeOfDay, isStart bool) bool {
	m := t.Minutes()
	for _, slot := range slots {
		open, closing, err := slot.bounds()
		if err != nil {
			continue
		}
		if slot.AllDay() {
			return true
		}
		if m < open {
			continue
		}
		if isStart && m < closing {
			return true
		}
		if !isStart && m <= closing {
			return true
		}
	}
	return false
}
