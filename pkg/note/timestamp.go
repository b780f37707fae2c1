package note

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ParseTime reads an RFC3339 timestamp, fractional seconds allowed.
func ParseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

// Timestamp serialises as RFC3339 with nanoseconds so a round trip through
// storage preserves the exact creation instant.
type Timestamp struct {
	time.Time
}

// SameDay reports whether t and then fall on the same local calendar day.
func (t Timestamp) SameDay(then time.Time) bool {
	a, b := t.Local(), then.Local()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameMonth reports whether t and then fall in the same local month.
func (t Timestamp) SameMonth(then time.Time) bool {
	a, b := t.Local(), then.Local()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are read as Unix seconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := ParseTime(v)
		if err != nil {
			return err
		}
		t.Time = parsed
	case float64:
		sec, frac := math.Modf(v)
		t.Time = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	default:
		return fmt.Errorf("note: unsupported timestamp %s", string(b))
	}
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders v the way Timestamp stores it.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
