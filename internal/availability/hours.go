package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	allDayOpen  = "00:00"
	allDayClose = "23:59"
)

// TimeSlot is an open/close window expressed as "HH:mm" strings.
type TimeSlot struct {
	Open  string `json:"open" validate:"required"`
	Close string `json:"close" validate:"required"`
}

// AllDay reports whether the slot uses the 24-hour sentinel.
func (s TimeSlot) AllDay() bool {
	return s.Open == allDayOpen && s.Close == allDayClose
}

// bounds returns the slot as minutes since midnight. A close of 00:00 means midnight.
func (s TimeSlot) bounds() (int, int, error) {
	open, err := ParseTimeOfDay(s.Open)
	if err != nil {
		return 0, 0, err
	}
	closing, err := ParseTimeOfDay(s.Close)
	if err != nil {
		return 0, 0, err
	}
	if s.AllDay() {
		return 0, minutesPerDay, nil
	}
	end := closing.Minutes()
	if end == 0 {
		end = minutesPerDay
	}
	return open.Minutes(), end, nil
}

// OpeningHours lists the windows of one weekday (0 = Sunday). No hours means closed.
type OpeningHours struct {
	Day   int        `json:"day" validate:"min=0,max=6"`
	Hours []TimeSlot `json:"hours" validate:"dive"`
}

// Week is a weekly opening-hours table, persisted as JSON.
type Week []OpeningHours

// SlotsFor returns the windows for the weekday, nil when the day is absent.
func (w Week) SlotsFor(day time.Weekday) []TimeSlot {
	for _, entry := range w {
		if entry.Day == int(day) {
			return entry.Hours
		}
	}
	return nil
}

// Value marshals the table for a JSONB column.
func (w Week) Value() (driver.Value, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal opening hours: %w", err)
	}
	return data, nil
}

// Scan reads a JSONB column into the table.
func (w *Week) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for Week", value)
	}
	if len(data) == 0 {
		*w = nil
		return nil
	}
	if err := json.Unmarshal(data, w); err != nil {
		return fmt.Errorf("unmarshal opening hours: %w", err)
	}
	return nil
}

// ValidateTable checks syntax, day range, duplicate days and overlapping slots.
func ValidateTable(w Week) error {
	seen := make(map[int]struct{}, len(w))
	for _, entry := range w {
		if entry.Day < 0 || entry.Day > 6 {
			return fmt.Errorf("day %d out of range 0-6", entry.Day)
		}
		if _, dup := seen[entry.Day]; dup {
			return fmt.Errorf("day %d listed twice", entry.Day)
		}
		seen[entry.Day] = struct{}{}

		type span struct{ start, end int }
		spans := make([]span, 0, len(entry.Hours))
		for _, slot := range entry.Hours {
			start, end, err := slot.bounds()
			if err != nil {
				return fmt.Errorf("day %d: %w", entry.Day, err)
			}
			if start >= end {
				return fmt.Errorf("day %d: slot %s - %s closes before it opens", entry.Day, slot.Open, slot.Close)
			}
			spans = append(spans, span{start, end})
		}
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return fmt.Errorf("day %d: overlapping slots", entry.Day)
			}
		}
	}
	return nil
}
