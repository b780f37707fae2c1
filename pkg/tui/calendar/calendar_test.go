package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/tui/theme"
)

var now = time.Date(2026, time.March, 10, 21, 0, 0, 0, time.Local)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.Local)
}

func TestMove(t *testing.T) {
	tests := map[string]struct {
		from      time.Time
		delta     int
		wantDay   time.Time
		wantMonth time.Time
	}{
		"back a day":          {from: day(time.March, 10), delta: -1, wantDay: day(time.March, 9), wantMonth: day(time.March, 1)},
		"into previous month": {from: day(time.March, 3), delta: -7, wantDay: day(time.February, 24), wantMonth: day(time.February, 1)},
		"not past today":      {from: day(time.March, 10), delta: 1, wantDay: day(time.March, 10), wantMonth: day(time.March, 1)},
		"week up to today":    {from: day(time.March, 3), delta: 7, wantDay: day(time.March, 10), wantMonth: day(time.March, 1)},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gotDay, gotMonth := Move(tc.from, tc.delta, now)
			if !gotDay.Equal(tc.wantDay) || !gotMonth.Equal(tc.wantMonth) {
				t.Fatalf("expected %s in %s, got %s in %s", tc.wantDay, tc.wantMonth, gotDay, gotMonth)
			}
		})
	}
}

func TestShiftMonth(t *testing.T) {
	d, m := ShiftMonth(day(time.March, 31), -1, now)
	if !d.Equal(day(time.February, 28)) || !m.Equal(day(time.February, 1)) {
		t.Fatalf("expected clamp to Feb 28, got %s / %s", d, m)
	}

	d, m = ShiftMonth(day(time.February, 20), 1, now)
	if !d.Equal(day(time.March, 10)) || !m.Equal(day(time.March, 1)) {
		t.Fatalf("expected clamp to today, got %s / %s", d, m)
	}

	d, m = ShiftMonth(day(time.March, 5), 1, now)
	if !d.Equal(day(time.March, 10)) || !m.Equal(day(time.March, 1)) {
		t.Fatalf("expected to stay in the current month, got %s / %s", d, m)
	}
}

func TestSelectable(t *testing.T) {
	month := day(time.March, 1)
	if !Selectable(month, day(time.March, 10), now) {
		t.Fatalf("expected today to be selectable")
	}
	if Selectable(month, day(time.March, 11), now) {
		t.Fatalf("expected tomorrow to be refused")
	}
	if Selectable(month, day(time.February, 28), now) {
		t.Fatalf("expected days outside the month to be refused")
	}
}

func TestRender(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	grid := app.BuildMonth(now, now, nil)
	lines := strings.Split(Render(grid, day(time.March, 10), theme.Default().Calendar), "\n")
	if len(lines) != 2+6 {
		t.Fatalf("expected title, header and 6 weeks, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if strings.TrimSpace(lines[0]) != "Mar 2026" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if lines[1] != Header {
		t.Fatalf("unexpected header %q", lines[1])
	}
	if lines[2] != "23 24 25 26 27 28  1" {
		t.Fatalf("unexpected first week %q", lines[2])
	}
}
