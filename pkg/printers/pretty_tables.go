package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Bedtimes prints the suggestions for waking at wake.
func (pp *PrettyPrint) Bedtimes(wake timeutil.Clock, suggestions []timeutil.Bedtime) {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintf(pp.out(), "Waking at %s\n\n", wake)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Bedtime"), bold.Sprint("Cycles"), bold.Sprint("Sleep"))
	for _, b := range suggestions {
		tbl.AddRow(b.At.String(), b.Cycles, timeutil.FormatSpan(b.SleepMinutes()))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if len(suggestions) > 0 {
		first, last := suggestions[0].At, suggestions[len(suggestions)-1].At
		_, _ = fmt.Fprintf(pp.out(), "\nIdeal bedtime: %s - %s\n", first, last)
	}
}

// Report prints a sleep summary for a window labelled label.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(pp.out(), "Report · last %s (%s → %s)\n", label, since, until)

	if result.Notes == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No notes found in this window.")
		_, _ = fmt.Fprintln(pp.out())
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Title"), bold.Sprint("Times"), bold.Sprint("Slept"))
	for _, n := range result.Nights {
		tbl.AddRow(n.Note.CreatedAt.Local().Format(DateLayout), n.Note.Title, Span(n.Note), timeutil.FormatSpan(n.Minutes))
	}
	_, _ = fmt.Fprintln(pp.out())
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())

	summary := uitable.New()
	summary.Separator = "  "
	summary.AddRow("Notes:", result.Notes)
	summary.AddRow("Nights timed:", len(result.Nights))
	summary.AddRow("Average:", result.Average())
	if result.Shortest != nil {
		summary.AddRow("Shortest:", fmt.Sprintf("%s (%s)", timeutil.FormatSpan(result.Shortest.Minutes), result.Shortest.Note.CreatedAt.Local().Format(DateLayout)))
	}
	if result.Longest != nil {
		summary.AddRow("Longest:", fmt.Sprintf("%s (%s)", timeutil.FormatSpan(result.Longest.Minutes), result.Longest.Note.CreatedAt.Local().Format(DateLayout)))
	}
	_, _ = fmt.Fprintln(pp.out(), summary)
	_, _ = fmt.Fprintln(pp.out())
}

// KeyValues prints aligned label/value rows.
func (pp *PrettyPrint) KeyValues(rows [][2]string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(r[0], r[1])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
