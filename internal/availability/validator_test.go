package availability

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{Location: time.UTC, Now: func() time.Time { return fixedNow }}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func clock(raw string) *TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return &t
}

func mondayOnly() Week {
	return Week{{Day: 1, Hours: []TimeSlot{{Open: "09:00", Close: "18:00"}}}}
}

func TestValidateIncompleteSelection(t *testing.T) {
	v := NewValidator(testConfig())
	assert.NoError(t, v.Validate(Request{Time: clock("10:00"), OpeningHours: mondayOnly()}))
	assert.NoError(t, v.Validate(Request{Date: datePtr(2020, time.January, 1), OpeningHours: mondayOnly()}))
	assert.NoError(t, v.Validate(Request{}))
}

func TestValidatePastTimeWins(t *testing.T) {
	v := NewValidator(testConfig())
	yesterday := datePtr(2026, time.October, 13)

	err := v.Validate(Request{
		Date:         yesterday,
		Time:         clock("23:00"),
		OpeningHours: Week{},
		OtherDate:    datePtr(2026, time.October, 20),
		OtherTime:    clock("01:00"),
		IsStart:      true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPastTime))
	assert.Equal(t, "Cannot select a time in the past.", err.Error())

	err = v.Validate(Request{Date: datePtr(2026, time.October, 14), Time: clock("11:59")})
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestValidateNowIsNotPast(t *testing.T) {
	v := NewValidator(testConfig())
	err := v.Validate(Request{Date: datePtr(2026, time.October, 14), Time: clock("12:00")})
	assert.NoError(t, err)
}

func TestValidateOrdering(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)
	require.Equal(t, time.Monday, monday.Weekday())

	err := v.Validate(Request{Date: monday, Time: clock("15:00"), OtherDate: monday, OtherTime: clock("11:00"), IsStart: true, OpeningHours: mondayOnly()})
	assert.ErrorIs(t, err, ErrOrdering)
	assert.Equal(t, "Start time must be before end time.", err.Error())

	err = v.Validate(Request{Date: monday, Time: clock("11:00"), OtherDate: monday, OtherTime: clock("15:00"), IsStart: false, OpeningHours: mondayOnly()})
	assert.ErrorIs(t, err, ErrOrdering)

	err = v.Validate(Request{Date: monday, Time: clock("11:00"), OtherDate: monday, OtherTime: clock("11:00"), IsStart: true, OpeningHours: mondayOnly()})
	assert.ErrorIs(t, err, ErrOrdering)

	assert.NoError(t, v.Validate(Request{Date: monday, Time: clock("11:00"), OtherDate: monday, OtherTime: clock("15:00"), IsStart: true, OpeningHours: mondayOnly()}))
	assert.NoError(t, v.Validate(Request{Date: monday, Time: clock("15:00"), OtherDate: monday, OtherTime: clock("11:00"), IsStart: false, OpeningHours: mondayOnly()}))
}

func TestValidateOrderingSkippedWithoutOtherTime(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)
	assert.NoError(t, v.Validate(Request{Date: monday, Time: clock("17:00"), OtherDate: monday, IsStart: true, OpeningHours: mondayOnly()}))
}

func TestValidateMultiDay(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)
	tuesday := datePtr(2026, time.October, 20)

	err := v.Validate(Request{Date: monday, Time: clock("10:00"), OtherDate: tuesday, OtherTime: clock("09:00"), IsStart: true, OpeningHours: mondayOnly()})
	assert.ErrorIs(t, err, ErrMultiDay)
	assert.Equal(t, "Multi-day rentals require direct contact with space renter.", err.Error())

	err = v.Validate(Request{Date: tuesday, Time: clock("10:00"), OtherDate: monday, IsStart: false})
	assert.ErrorIs(t, err, ErrMultiDay)
}

func TestValidateClosedDay(t *testing.T) {
	v := NewValidator(testConfig())
	sunday := datePtr(2026, time.October, 18)
	require.Equal(t, time.Sunday, sunday.Weekday())

	err := v.Validate(Request{Date: sunday, Time: clock("10:00"), OpeningHours: mondayOnly(), IsStart: true})
	assert.ErrorIs(t, err, ErrClosedDay)
	assert.Equal(t, "Space renter is closed on this day.", err.Error())

	withEmptySunday := append(Week{{Day: 0, Hours: []TimeSlot{}}}, mondayOnly()...)
	err = v.Validate(Request{Date: sunday, Time: clock("10:00"), OpeningHours: withEmptySunday, IsStart: true})
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestValidateOpeningHoursBoundaries(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)

	for _, raw := range []string{"09:00", "17:59"} {
		for _, isStart := range []bool{true, false} {
			assert.NoError(t, v.Validate(Request{Date: monday, Time: clock(raw), OpeningHours: mondayOnly(), IsStart: isStart}), raw)
		}
	}
	for _, raw := range []string{"08:59", "18:01", "20:00"} {
		err := v.Validate(Request{Date: monday, Time: clock(raw), OpeningHours: mondayOnly(), IsStart: true})
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrOutsideHours)
		assert.Contains(t, err.Error(), "Outside opening hours")
		assert.Contains(t, err.Error(), "09:00 - 18:00")
	}
}

func TestValidateClosingTimeOnlyForEnd(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)

	assert.ErrorIs(t, v.Validate(Request{Date: monday, Time: clock("18:00"), OpeningHours: mondayOnly(), IsStart: true}), ErrOutsideHours)
	assert.NoError(t, v.Validate(Request{Date: monday, Time: clock("18:00"), OpeningHours: mondayOnly(), IsStart: false}))
}

func TestValidateSplitAndAllDaySlots(t *testing.T) {
	v := NewValidator(testConfig())
	monday := datePtr(2026, time.October, 19)
	tuesday := datePtr(2026, time.October, 20)
	week := Week{
		{Day: 1, Hours: []TimeSlot{{Open: "09:00", Close: "12:00"}, {Open: "14:00", Close: "00:00"}}},
		{Day: 2, Hours: []TimeSlot{{Open: "00:00", Close: "23:59"}}},
	}

	err := v.Validate(Request{Date: monday, Time: clock("13:00"), OpeningHours: week, IsStart: true})
	require.Error(t, err)
	assert.Equal(t, "Outside opening hours (09:00 - 12:00, 14:00 - 00:00)", err.Error())
	assert.NoError(t, v.Validate(Request{Date: monday, Time: clock("23:30"), OpeningHours: week, IsStart: true}))
	assert.NoError(t, v.Validate(Request{Date: tuesday, Time: clock("23:59"), OpeningHours: week, IsStart: true}))
	assert.NoError(t, v.Validate(Request{Date: tuesday, Time: clock("00:00"), OpeningHours: week, IsStart: true}))
}

func TestValidateWithoutTableSkipsHours(t *testing.T) {
	v := NewValidator(testConfig())
	sunday := datePtr(2026, time.October, 18)
	assert.NoError(t, v.Validate(Request{Date: sunday, Time: clock("03:00")}))
}

func TestValidateUsesConfiguredZone(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)
	v := NewValidator(Config{Location: zurich, Now: func() time.Time { return fixedNow }})

	// 13:30 in Zurich is 11:30 UTC, before fixedNow.
	err = v.Validate(Request{Date: datePtr(2026, time.October, 14), Time: clock("13:30")})
	assert.ErrorIs(t, err, ErrPastTime)
	assert.NoError(t, v.Validate(Request{Date: datePtr(2026, time.October, 14), Time: clock("14:30")}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "outside_hours", KindOutsideHours.String())
	assert.Equal(t, "past_time", KindPastTime.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
