// Package guide prints sleep timing guidance and the calendar legend.
package guide

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
)

// Section is one titled block of guidance.
type Section struct {
	Title string
	Text  string
	Table [][2]string
}

// Sections is the guidance shown by Guide.
var Sections = []Section{
	{
		Title: "🌙 When Is the Best Time to Fall Asleep?",
		Text: "Finding the right time to fall asleep can make a big difference in how rested and energized you feel. " +
			"While everyone’s body is a little different, there are general guidelines that work well for most people.",
	},
	{
		Title: "⭐ The Ideal Sleep Window",
		Text: "For most adults the best time to fall asleep is between 9:00 PM and 11:00 PM. " +
			"During this period your body naturally increases melatonin production, making it easier to fall asleep and enter deep, restorative sleep.",
	},
	{
		Title: "⭐ Sync With Your Wake-Up Time",
		Text:  "Count back 7–9 hours from when you need to wake up, or use `sleepdiary bedtime` to count back whole 90 minute cycles.",
		Table: [][2]string{
			{"Wake up at 7:00 AM", "Ideal bedtime: 10:00–11:00 PM"},
			{"Wake up at 6:00 AM", "Ideal bedtime: 9:30–10:30 PM"},
		},
	},
	{
		Title: "⭐ Know Your Chronotype",
		Text:  "Everyone has a natural internal clock. Finding your personal rhythm helps you sleep more efficiently.",
		Table: [][2]string{
			{"Early birds", "Best asleep by 8:00–10:00 PM"},
			{"Night owls", "Best asleep by 10:00 PM–12:00 AM"},
			{"Neutral types", "Best asleep by 9:30–11:00 PM"},
		},
	},
	{
		Title: "⭐ What’s Most Important",
		Text: "Whatever time you choose, be consistent. Going to bed and waking up at the same time every day improves sleep quality, " +
			"boosts energy levels, stabilizes mood and supports overall health.",
	},
}

// Guide prints Sections and the calendar legend.
type Guide struct {
	Width int
	Out   io.Writer
}

// Do renders the guide to stdout.
func (g *Guide) Do(ctx context.Context) error {
	out := g.Out
	if out == nil {
		out = color.Output
	}
	width := g.Width
	if width <= 0 {
		width = 80
	}
	bold := color.New(color.Bold)

	for _, s := range Sections {
		_, _ = bold.Fprintln(out, s.Title)
		_, _ = fmt.Fprintln(out, wordwrap.String(s.Text, width))
		if len(s.Table) > 0 {
			tbl := uitable.New()
			tbl.Separator = "  "
			for _, row := range s.Table {
				tbl.AddRow("  "+row[0], row[1])
			}
			_, _ = fmt.Fprintln(out, tbl)
		}
		_, _ = fmt.Fprintln(out, "")
	}

	g.Legend(ctx, out)
	return nil
}

// Legend explains how the calendar marks days.
func (g *Guide) Legend(_ context.Context, out io.Writer) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Calendar"), bold.Sprint("Meaning"))
	tbl.AddRow(color.New(color.Bold, color.FgHiWhite).Sprint("12"), "notes recorded that day")
	tbl.AddRow(color.New(color.FgWhite).Sprint("12"), "no notes")
	tbl.AddRow(color.New(color.Underline).Sprint("12"), "today")
	tbl.AddRow(color.New(color.Faint).Sprint("12"), "outside the month or still to come")
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
