package timeutil

// CycleMinutes is the length of one sleep cycle.
const CycleMinutes = 90

// DefaultCycles are the cycle counts offered as bedtimes, longest night first.
var DefaultCycles = []int{6, 5, 4}

// Bedtime is one suggestion: go to bed At to wake after Cycles full cycles.
type Bedtime struct {
	At     Clock
	Cycles int
}

// SleepMinutes is the time asleep the suggestion allows for.
func (b Bedtime) SleepMinutes() int {
	return b.Cycles * CycleMinutes
}

// SuggestBedtimeDetails returns a suggestion per DefaultCycles entry for a wake
// time, wrapping into the previous day where needed.
func SuggestBedtimeDetails(wake Clock) []Bedtime {
	out := make([]Bedtime, 0, len(DefaultCycles))
	for _, n := range DefaultCycles {
		out = append(out, Bedtime{
			At:     ClockFromMinutes(wake.Minutes() - n*CycleMinutes),
			Cycles: n,
		})
	}
	return out
}

// SuggestBedtimes returns the canonical HH:MM bedtimes for waking at
// hour:minute after 6, 5 and 4 cycles, in that order.
func SuggestBedtimes(hour, minute int) []string {
	details := SuggestBedtimeDetails(Clock{Hour: hour, Minute: minute})
	out := make([]string, len(details))
	for i, b := range details {
		out[i] = b.At.String()
	}
	return out
}
