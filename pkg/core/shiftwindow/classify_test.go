package shiftwindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-04-21 is a Monday, 2025-04-19 is a Saturday
func mustTime(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsNightShift_DaytimeWindow(t *testing.T) {
	start := mustTime("2025-04-21 08:00")
	end := mustTime("2025-04-21 16:00")

	assert.False(t, IsNightShift(start, end))
}

func TestIsNightShift_CrossesMidnight(t *testing.T) {
	start := mustTime("2025-04-21 23:00")
	end := mustTime("2025-04-22 07:00")

	assert.True(t, IsNightShift(start, end))
}

func TestIsNightShift_CrossesMidnightByMinutes(t *testing.T) {
	// Same hour on both ends but end minute precedes start minute, so the
	// window wraps nearly a full day through midnight
	start := mustTime("2025-04-21 12:30")
	end := mustTime("2025-04-22 12:15")

	assert.True(t, IsNightShift(start, end))
}

func TestIsNightShift_StartsInNightHours(t *testing.T) {
	start := mustTime("2025-04-21 06:00")
	end := mustTime("2025-04-21 14:00")

	assert.True(t, IsNightShift(start, end))
}

func TestIsNightShift_EndsInNightHours(t *testing.T) {
	start := mustTime("2025-04-21 14:00")
	end := mustTime("2025-04-21 22:00")

	assert.True(t, IsNightShift(start, end))
}

func TestIsNightShift_EndsJustBeforeNight(t *testing.T) {
	start := mustTime("2025-04-21 13:00")
	end := mustTime("2025-04-21 21:59")

	assert.False(t, IsNightShift(start, end))
}

func TestIsWeekendShift_Weekday(t *testing.T) {
	start := mustTime("2025-04-21 08:00")
	end := mustTime("2025-04-21 16:00")

	assert.False(t, IsWeekendShift(start, end))
}

func TestIsWeekendShift_StartsSaturday(t *testing.T) {
	start := mustTime("2025-04-19 08:00")
	end := mustTime("2025-04-19 16:00")

	assert.True(t, IsWeekendShift(start, end))
}

func TestIsWeekendShift_EndsSunday(t *testing.T) {
	// Friday night into Saturday morning
	start := mustTime("2025-04-18 22:00")
	end := mustTime("2025-04-19 06:00")

	assert.True(t, IsWeekendShift(start, end))
}

func TestSaturdayNightIntoSunday_IsBothNightAndWeekend(t *testing.T) {
	start := mustTime("2025-04-19 23:00")
	end := mustTime("2025-04-20 01:00")

	assert.True(t, IsNightShift(start, end))
	assert.True(t, IsWeekendShift(start, end))
}
