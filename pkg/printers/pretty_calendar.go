package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sleepdiary/pkg/app"
)

const width = len("Mo Tu We Th Fr Sa Su") // an example week

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Calendar prints a Monday-first month. Days with notes are bold, today is
// underlined and days outside the month are faint.
func (pp *PrettyPrint) Calendar(grid app.MonthGrid) {
	tf := color.New(color.FgWhite, color.Italic)
	hf := color.New(color.Faint)

	m := grid.Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = hf.Fprintln(pp.out(), strings.Join(weekdays, " "))

	for _, week := range grid.Weeks() {
		for i, d := range week {
			if i > 0 {
				_, _ = fmt.Fprint(pp.out(), " ")
			}
			_, _ = dayColor(d).Fprintf(pp.out(), "%2d", d.Date.Day())
		}
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

func dayColor(d app.Day) *color.Color {
	attrs := []color.Attribute{}
	switch {
	case !d.InMonth:
		attrs = append(attrs, color.Faint)
	case d.Notes > 0:
		attrs = append(attrs, color.Bold, color.FgHiWhite)
	case d.Future:
		attrs = append(attrs, color.Faint, color.Italic)
	default:
		attrs = append(attrs, color.FgWhite)
	}
	if d.Today {
		attrs = append(attrs, color.Underline)
	}
	return color.New(attrs...)
}

// NextMonth returns the first of the month after then.
func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

// PrevMonth returns the first of the month before then.
func PrevMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()-1, 1, 0, 0, 0, 0, then.Location())
}
