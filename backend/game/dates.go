package game

import "time"

// DateOnly truncates a time to midnight UTC. All due-date and streak
// arithmetic in the engine works on calendar days, never wall-clock times.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}

// endOfISOWeek returns the Sunday that closes the ISO week containing t
// (ISO weekday: Monday=1 .. Sunday=7).
func endOfISOWeek(t time.Time) time.Time {
	dow := int(t.Weekday())
	if dow == 0 {
		dow = 7
	}
	return DateOnly(t).AddDate(0, 0, 7-dow)
}
