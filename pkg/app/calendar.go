package app

import (
	"context"
	"time"

	"tableflip.dev/sleepdiary/pkg/note"
)

const (
	// MonthTitleLayout renders a month heading such as "Mar 2026".
	MonthTitleLayout = "Jan 2006"

	weekCells = 7
	minCells  = 5 * weekCells
)

// Day is one cell of a month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Today   bool
	// Future days cannot hold notes yet.
	Future bool
	Notes  int
}

// MonthGrid is a Monday-first calendar page. It has 35 cells, or 42 when the
// month spills into a sixth week; cells outside the month hold the adjacent
// days.
type MonthGrid struct {
	Month time.Time
	Days  []Day
}

// Title returns the month heading.
func (m MonthGrid) Title() string {
	return m.Month.Format(MonthTitleLayout)
}

// Weeks splits the grid into rows of seven days.
func (m MonthGrid) Weeks() [][]Day {
	var weeks [][]Day
	for i := 0; i+weekCells <= len(m.Days); i += weekCells {
		weeks = append(weeks, m.Days[i:i+weekCells])
	}
	return weeks
}

// Month builds the grid for the month containing month, counting notes per
// day.
func (s *Service) Month(ctx context.Context, month time.Time) (MonthGrid, error) {
	if s.Notes == nil {
		return MonthGrid{}, ErrNoStore
	}
	return BuildMonth(month, s.now(), s.Notes.LoadAll()), nil
}

// BuildMonth lays out month around now's day for the given notes.
func BuildMonth(month, now time.Time, notes []note.SleepNote) MonthGrid {
	loc := now.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	today := StartOfDay(now)

	offset := MondayOffset(first.Weekday())
	days := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	cells := minCells
	if offset+days > cells {
		cells += weekCells
	}

	counts := make(map[int]int, days)
	for _, n := range notes {
		created := n.CreatedAt.In(loc)
		if created.Year() == first.Year() && created.Month() == first.Month() {
			counts[created.Day()]++
		}
	}

	grid := MonthGrid{Month: first, Days: make([]Day, 0, cells)}
	for i := 0; i < cells; i++ {
		date := first.AddDate(0, 0, i-offset)
		d := Day{
			Date:    date,
			InMonth: date.Month() == first.Month(),
			Today:   date.Equal(today),
			Future:  date.After(today),
		}
		if d.InMonth {
			d.Notes = counts[date.Day()]
		}
		grid.Days = append(grid.Days, d)
	}
	return grid
}

// MondayOffset is the number of cells before wd in a Monday-first week.
func MondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % weekCells
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
