package availability

import (
	"strings"
	"time"
)

const (
	closedLabel = "Closed"
	allDayLabel = "Open 24 hours"
	dateLayout  = "Mon, 02 Jan 2006"
	clockLayout = "15:04"
)

// FormatSlots renders a day's windows, e.g. "09:00 - 12:00, 14:00 - 18:00".
func FormatSlots(slots []TimeSlot) string {
	if len(slots) == 0 {
		return closedLabel
	}
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.AllDay() {
			return allDayLabel
		}
		parts = append(parts, slot.Open+" - "+slot.Close)
	}
	return strings.Join(parts, ", ")
}

// FormatWeek renders the table as seven "Weekday: windows" lines, Sunday first.
func FormatWeek(w Week) []string {
	lines := make([]string, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		lines = append(lines, day.String()+": "+FormatSlots(w.SlotsFor(day)))
	}
	return lines
}

// DetailInfo describes a rental window for display in cfg's zone.
func DetailInfo(w Window, cfg Config) string {
	loc := cfg.location()
	start := w.Start.In(loc)
	end := w.End.In(loc)
	if sameDay(start, end) {
		return start.Format(dateLayout) + ", " + start.Format(clockLayout) + " - " + end.Format(clockLayout)
	}
	return start.Format(dateLayout+" "+clockLayout) + " - " + end.Format(dateLayout+" "+clockLayout)
}
