package timeutil

import (
	"errors"
	"testing"
)

func TestSanitizeKeystrokeProgressive(t *testing.T) {
	typed := ""
	want := []string{"2", "21", "21:3", "21:30"}
	for i, r := range "2130" {
		typed = SanitizeKeystroke(typed + string(r))
		if typed != want[i] {
			t.Fatalf("after %d keystrokes expected %q, got %q", i+1, want[i], typed)
		}
	}
}

func TestSanitizeKeystroke(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "",
		"7":          "7",
		"073":        "07:3",
		"21:30":      "21:30",
		"213045":     "21:30",
		"2x1y3z0":    "21:30",
		" 0 6 : 1 5": "06:15",
	}
	for in, want := range tests {
		got := SanitizeKeystroke(in)
		if got != want {
			t.Fatalf("SanitizeKeystroke(%q) = %q, want %q", in, got, want)
		}
		if again := SanitizeKeystroke(got); again != got {
			t.Fatalf("SanitizeKeystroke not idempotent for %q: %q then %q", in, got, again)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"9:5", true},
		{"09:05", true},
		{"23:59", true},
		{"00:00", true},
		{"2130", true},
		{"2x1y3z0", true},
		{"24:00", false},
		{"9:60", false},
		{"2400", false},
		{"213", false},
		{"tonight", false},
		{"1:2:3", false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Fatalf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		present bool
	}{
		{"", "", false},
		{"  \t", "", false},
		{"9:5", "09:05", true},
		{" 21:30 ", "21:30", true},
		{"2x1y3z0", "21:30", true},
		{"late", "late", true},
		{"25:00", "25:00", true},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if got != tt.want || ok != tt.present {
			t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.present)
		}
		if ok {
			again, _ := Normalize(got)
			if again != got {
				t.Fatalf("Normalize not idempotent for %q: %q then %q", tt.in, got, again)
			}
		}
	}
}

func TestCanonicalize(t *testing.T) {
	got, err := Canonicalize("7:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != "07:00" {
		t.Fatalf("expected 07:00, got %v", got)
	}

	got, err = Canonicalize(" ")
	if err != nil || got != nil {
		t.Fatalf("expected nil for blank input, got %v, %v", got, err)
	}

	if _, err := Canonicalize("late"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestClockFromMinutesWraps(t *testing.T) {
	tests := map[int]string{
		0:     "00:00",
		-90:   "22:30",
		1440:  "00:00",
		1439:  "23:59",
		-2000: "14:40",
	}
	for in, want := range tests {
		if got := ClockFromMinutes(in).String(); got != want {
			t.Fatalf("ClockFromMinutes(%d) = %s, want %s", in, got, want)
		}
	}
}
