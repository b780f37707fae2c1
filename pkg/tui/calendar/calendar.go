// Package calendar renders the month grid of the sleep diary UI.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/tui/theme"
)

// Header is the Monday-first weekday row.
const Header = "Mo Tu We Th Fr Sa Su"

// Width is the rendered width of one week.
var Width = lipgloss.Width(Header)

// Render produces a multi-line calendar for grid with selected highlighted.
func Render(grid app.MonthGrid, selected time.Time, th theme.CalendarTheme) string {
	lines := []string{
		th.Title.Render(lipgloss.PlaceHorizontal(Width, lipgloss.Center, grid.Title())),
		th.Header.Render(Header),
	}
	for _, week := range grid.Weeks() {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, renderDay(d, sameDay(d.Date, selected), th))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(d app.Day, selected bool, th theme.CalendarTheme) string {
	text := fmt.Sprintf("%2d", d.Date.Day())

	style := th.Empty
	switch {
	case !d.InMonth:
		style = th.Outside
	case d.Future:
		style = th.Future
	case d.Notes > 0:
		style = th.Entry
	}
	if d.Today {
		style = style.Inherit(th.Today)
	}
	if selected && d.InMonth {
		style = th.Selected.Inherit(style)
	}
	return style.Render(text)
}

// Selectable reports whether day can be picked: inside month and not after
// today.
func Selectable(month, day, now time.Time) bool {
	if day.Year() != month.Year() || day.Month() != month.Month() {
		return false
	}
	return !app.StartOfDay(day).After(app.StartOfDay(now))
}

// Move shifts selected by delta days, refusing to land after today. The
// returned month follows the selection across month boundaries.
func Move(selected time.Time, delta int, now time.Time) (day, month time.Time) {
	next := app.StartOfDay(selected).AddDate(0, 0, delta)
	if next.After(app.StartOfDay(now)) {
		next = app.StartOfDay(selected)
	}
	return next, FirstOfMonth(next)
}

// ShiftMonth moves to the month offset by delta and keeps the day of month
// where possible, clamped to the month length and to today.
func ShiftMonth(selected time.Time, delta int, now time.Time) (day, month time.Time) {
	month = FirstOfMonth(selected).AddDate(0, delta, 0)
	d := selected.Day()
	if last := DaysIn(month); d > last {
		d = last
	}
	day = time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, selected.Location())
	if today := app.StartOfDay(now); day.After(today) {
		day = today
		if FirstOfMonth(today).Before(month) {
			// Months after the current one have nothing to select.
			return day, FirstOfMonth(today)
		}
	}
	return day, month
}

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := FirstOfMonth(month)
	return first.AddDate(0, 1, -1).Day()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
