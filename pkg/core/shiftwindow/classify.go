// Package shiftwindow classifies shift time windows against the hours and
// days that matter for caregiver preferences: night hours (22:00-07:00) and
// weekend days. All functions assume windows span less than 24 hours.
package shiftwindow

import "time"

const (
	nightStartHour = 22
	nightEndHour   = 7
)

// IsNightShift returns true if any part of the window falls between 22:00
// and 07:00.
//
// A window whose end time-of-day precedes its start time-of-day crosses
// midnight and is always a night shift. Otherwise it is enough to check
// whether either endpoint's hour falls within the night hours.
func IsNightShift(startsAt, endsAt time.Time) bool {
	startHour, startMinute := startsAt.Hour(), startsAt.Minute()
	endHour, endMinute := endsAt.Hour(), endsAt.Minute()

	if startHour > endHour || (startHour == endHour && startMinute > endMinute) {
		return true
	}

	startsAtNight := startHour < nightEndHour || startHour >= nightStartHour
	endsAtNight := endHour < nightEndHour || endHour >= nightStartHour

	return startsAtNight || endsAtNight
}

// IsWeekendShift returns true if the window starts or ends on a Saturday or
// Sunday.
func IsWeekendShift(startsAt, endsAt time.Time) bool {
	return isWeekendDay(startsAt.Weekday()) || isWeekendDay(endsAt.Weekday())
}

func isWeekendDay(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
