// Package timeutil holds the time-of-day helpers shared by the journal: clock
// parsing and validation, sleep duration formatting, bedtime suggestions and
// lookback windows.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour

	maxClockDigits = 4
)

// ErrInvalidTime is returned when text cannot be read as a time of day.
var ErrInvalidTime = errors.New("timeutil: invalid time of day")

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ClockFromMinutes folds any minute offset, negative included, onto a 24 hour
// dial.
func ClockFromMinutes(total int) Clock {
	normalized := ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	return Clock{Hour: normalized / minutesPerHour, Minute: normalized % minutesPerHour}
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*minutesPerHour + c.Minute
}

// Valid reports whether the clock is within 00:00 and 23:59.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// String renders the canonical zero-padded HH:MM form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock reads "H:M" or "HH:MM" text. Surrounding whitespace is ignored;
// anything else is ErrInvalidTime.
func ParseClock(text string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	c := Clock{Hour: h, Minute: min}
	if !c.Valid() {
		return Clock{}, fmt.Errorf("%w: %q out of range", ErrInvalidTime, text)
	}
	return c, nil
}

// SanitizeKeystroke turns raw typed input into the progressive HH:MM display
// form: digits only, at most four, with a colon once a third digit arrives.
// Typing "2130" renders "2", "21", "21:3", "21:30".
func SanitizeKeystroke(raw string) string {
	digits := extractDigits(raw)
	if len(digits) > maxClockDigits {
		digits = digits[:maxClockDigits]
	}
	if len(digits) < 3 {
		return digits
	}
	return digits[:2] + ":" + digits[2:]
}

// IsValid reports whether text may be stored as a time. Empty text is valid
// and means "not recorded".
func IsValid(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	_, ok := parseLoose(text)
	return ok
}

// Normalize converts text to canonical HH:MM. Blank input reports false (no
// time recorded). Text that is neither blank nor a recognisable time is
// returned trimmed but otherwise unchanged; use Canonicalize to reject it.
func Normalize(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if c, ok := parseLoose(trimmed); ok {
		return c.String(), true
	}
	return trimmed, true
}

// Canonicalize is the strict form of Normalize. Blank input yields nil, a
// recognisable time yields its HH:MM form, and anything else ErrInvalidTime.
func Canonicalize(text string) (*string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	c, ok := parseLoose(trimmed)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}
	s := c.String()
	return &s, nil
}

// parseLoose accepts H:M / HH:MM, or any text whose digits are exactly HHMM.
// Keystroke noise such as "2x1y3z0" reads as 21:30.
func parseLoose(text string) (Clock, bool) {
	if c, err := ParseClock(text); err == nil {
		return c, true
	}
	if clockPattern.MatchString(strings.TrimSpace(text)) {
		// Well formed but out of range; the digits would only repeat that.
		return Clock{}, false
	}
	digits := extractDigits(text)
	if len(digits) != maxClockDigits {
		return Clock{}, false
	}
	h, _ := strconv.Atoi(digits[:2])
	min, _ := strconv.Atoi(digits[2:])
	c := Clock{Hour: h, Minute: min}
	return c, c.Valid()
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
