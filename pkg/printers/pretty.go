package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/sleepdiary/pkg/note"
)

// DateLayout is how note days are shown.
const DateLayout = "02.01.2006"

const (
	defaultWidth = 80
	shortID      = 8
)

type PrettyPrint struct {
	ShowID bool
	// Width bounds wrapped text; 0 means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", shortID+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// Notes prints one line per note: day, title, times and duration.
func (pp *PrettyPrint) Notes(notes ...note.SleepNote) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " no notes yet\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)
	b := color.New(color.Bold)

	for _, n := range notes {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), Short(n.ID))
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(Short(n.ID))))
		}
		_, _ = d.Fprintf(pp.out(), "%s ", n.CreatedAt.Local().Format(DateLayout))
		_, _ = b.Fprint(pp.out(), n.Title)
		if span := Span(n); span != "" {
			_, _ = t.Fprintf(pp.out(), "  %s", span)
		}
		if dur := n.Duration(); dur != "-" {
			_, _ = d.Fprintf(pp.out(), " (%s)", dur)
		}
		_, _ = t.Fprintln(pp.out())
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Note prints the full note with its details wrapped to Width.
func (pp *PrettyPrint) Note(n note.SleepNote) {
	b := color.New(color.Bold, color.Underline)
	l := color.New(color.Faint)
	v := color.New()

	_, _ = b.Fprintln(pp.out(), n.Title)
	if pp.ShowID {
		_, _ = l.Fprintf(pp.out(), "%-15s", "Id:")
		_, _ = v.Fprintln(pp.out(), n.ID)
	}
	_, _ = l.Fprintf(pp.out(), "%-15s", "Created:")
	_, _ = v.Fprintln(pp.out(), n.CreatedAt.Local().Format(DateLayout+" 15:04"))
	if n.StartTime != nil {
		_, _ = l.Fprintf(pp.out(), "%-15s", "Bedtime start:")
		_, _ = v.Fprintln(pp.out(), *n.StartTime)
	}
	if n.EndTime != nil {
		_, _ = l.Fprintf(pp.out(), "%-15s", "Wake-up time:")
		_, _ = v.Fprintln(pp.out(), *n.EndTime)
	}
	_, _ = l.Fprintf(pp.out(), "%-15s", "Slept:")
	_, _ = v.Fprintln(pp.out(), n.Duration())

	_, _ = fmt.Fprintln(pp.out())
	body := wordwrap.String(n.Details, pp.width()-2)
	_, _ = fmt.Fprintln(pp.out(), indent.String(body, 2))
	_, _ = fmt.Fprintln(pp.out())
}

// Span renders "start - end" with "--:--" for a missing side, or "" when
// neither time was recorded.
func Span(n note.SleepNote) string {
	if n.StartTime == nil && n.EndTime == nil {
		return ""
	}
	start, end := n.Start(), n.End()
	if start == "" {
		start = "--:--"
	}
	if end == "" {
		end = "--:--"
	}
	return start + " - " + end
}

// Short trims an id to the prefix shown in lists.
func Short(id string) string {
	if len(id) <= shortID {
		return id
	}
	return id[:shortID]
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
