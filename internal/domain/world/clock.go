package world

import (
	"fmt"
	"math"
)

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

const (
	MinutesPerHour = 60
	HoursPerDay    = 24

	DayStartHour = 6
	DayEndHour   = 20

	StartDay    = 1
	StartHour   = 8
	StartMinute = 0
)

// Clock is the in-game calendar. Values returned by Advance are always
// normalized: Minute < 60, Hour < 24, Day >= 1.
type Clock struct {
	Day       int  `json:"day"`
	Hour      int  `json:"hour"`
	Minute    int  `json:"minute"`
	IsDayTime bool `json:"is_day_time"`
}

func NewClock() Clock {
	return Clock{
		Day:       StartDay,
		Hour:      StartHour,
		Minute:    StartMinute,
		IsDayTime: IsDayHour(StartHour),
	}
}

func IsDayHour(hour int) bool {
	return hour >= DayStartHour && hour < DayEndHour
}

// Advance adds minutes and carries minute into hour and hour into day.
// Negative input is treated as zero; callers validate before calling. Whole
// days are split off first so large inputs cannot overflow, and Day
// saturates at math.MaxInt.
func (c Clock) Advance(minutes int) Clock {
	if minutes < 0 {
		minutes = 0
	}
	next := c
	if next.Day < StartDay {
		next.Day = StartDay
	}

	const minutesPerDay = MinutesPerHour * HoursPerDay
	days := minutes / minutesPerDay

	totalMinutes := next.Minute + minutes%minutesPerDay
	next.Minute = totalMinutes % MinutesPerHour
	totalHours := next.Hour + totalMinutes/MinutesPerHour
	next.Hour = totalHours % HoursPerDay
	days += totalHours / HoursPerDay

	if days > math.MaxInt-next.Day {
		next.Day = math.MaxInt
	} else {
		next.Day += days
	}

	next.IsDayTime = IsDayHour(next.Hour)
	return next
}

func (c Clock) Phase() Phase {
	if IsDayHour(c.Hour) {
		return PhaseDay
	}
	return PhaseNight
}

// TimeLabel renders the 12-hour wall clock, e.g. "8:05 AM".
func (c Clock) TimeLabel() string {
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, period)
}

func (c Clock) Label() string {
	return fmt.Sprintf("Day %d - %s", c.Day, c.TimeLabel())
}

// TotalMinutes counts minutes elapsed since day 1 00:00.
func (c Clock) TotalMinutes() int64 {
	return int64(c.Day-StartDay)*HoursPerDay*MinutesPerHour + int64(c.Hour)*MinutesPerHour + int64(c.Minute)
}
