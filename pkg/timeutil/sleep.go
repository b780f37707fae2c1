package timeutil

import "fmt"

// NoDuration is shown when a duration cannot be computed.
const NoDuration = "-"

// SleepSpan returns the elapsed minutes from start to end. An end at or before
// the start is taken to fall on the following day, so equal times span 24h.
func SleepSpan(start, end Clock) int {
	from, to := start.Minutes(), end.Minutes()
	if to <= from {
		to += minutesPerDay
	}
	return to - from
}

// SleepDuration formats the time asleep between two canonical HH:MM values:
// "45 min", "8h" or "7h 30min". Either side failing to parse yields
// NoDuration.
func SleepDuration(start, end string) string {
	from, err := ParseClock(start)
	if err != nil {
		return NoDuration
	}
	to, err := ParseClock(end)
	if err != nil {
		return NoDuration
	}
	return FormatSpan(SleepSpan(from, to))
}

// FormatSpan renders a minute count in the journal's hours/minutes style.
func FormatSpan(minutes int) string {
	h, m := minutes/minutesPerHour, minutes%minutesPerHour
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dmin", h, m)
	}
}
