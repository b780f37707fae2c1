package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
	"tableflip.dev/sleepdiary/pkg/tui/calendar"
)

const dayLayout = "Monday, 02.01.2006"

// View renders the current mode.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeForm:
		body = m.theme.Panel.FocusFrame.Render(m.form.View(m.theme))
	case modeHelp:
		body = m.helpView()
	case modeBedtime:
		body = m.bedtimeView()
	default:
		body = m.browseView()
		if m.mode == modeConfirmDelete {
			body = lipgloss.JoinVertical(lipgloss.Left, body, m.confirmView())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())
}

func (m Model) browseView() string {
	calFrame, notesFrame := m.theme.Panel.FocusFrame, m.theme.Panel.Frame
	if m.focus == paneNotes {
		calFrame, notesFrame = m.theme.Panel.Frame, m.theme.Panel.FocusFrame
	}

	cal := calFrame.Render(calendar.Render(m.grid, m.selected, m.theme.Calendar))

	width := m.termWidth - lipgloss.Width(cal) - 4
	if width < 30 {
		width = 40
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cal, " ", notesFrame.Render(m.notesView(width)))
}

func (m Model) notesView(width int) string {
	th := m.theme.Panel
	lines := []string{
		th.Title.Render(m.selected.Format(dayLayout)),
		"",
	}
	if len(m.notes) == 0 {
		lines = append(lines, th.Placeholder.Render("No notes for this night. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	for i, n := range m.notes {
		line := n.Title
		if span := printers.Span(n); span != "" {
			line += "  " + th.Muted.Render(span)
		}
		if d := n.Duration(); d != timeutil.NoDuration {
			line += "  " + th.Duration.Render(d)
		}
		line = truncate.StringWithTail(line, uint(width), "…")
		if i == m.cursor && m.focus == paneNotes {
			line = th.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	if n, ok := m.current(); ok {
		lines = append(lines, "", th.Muted.Render(strings.Repeat("─", width)))
		lines = append(lines, wordwrap.String(n.Details, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) confirmView() string {
	n, ok := m.current()
	if !ok {
		return ""
	}
	th := m.theme.Modal
	return th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render("Delete note?"),
		th.Body.Render(fmt.Sprintf("%q will be removed. y delete · n keep", n.Title)),
	))
}

func (m Model) bedtimeView() string {
	th := m.theme.Panel
	lines := []string{
		th.Title.Render("Best time to sleep"),
		th.Muted.Render("Bedtimes that end on a full 90 minute sleep cycle."),
		"",
		m.wake.View(),
		"",
	}
	switch {
	case len(m.bedtimes) > 0:
		for _, b := range m.bedtimes {
			lines = append(lines, fmt.Sprintf("%s  %s", th.Duration.Render(b.At.String()),
				th.Muted.Render(fmt.Sprintf("%d cycles · %s", b.Cycles, timeutil.FormatSpan(b.SleepMinutes())))))
		}
	case m.wake.Value() != "" && !timeutil.IsValid(m.wake.Value()):
		lines = append(lines, m.theme.Form.Invalid.Render("Enter a time between 00:00 and 23:59."))
	default:
		lines = append(lines, th.Placeholder.Render("Type the time you want to wake up."))
	}
	return th.FocusFrame.Render(strings.Join(lines, "\n"))
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"h l ← →", "previous / next day"},
		{"k j ↑ ↓", "previous / next week, or move in the notes"},
		{"[ ]", "previous / next month"},
		{"t", "jump to today"},
		{"tab enter", "switch between calendar and notes"},
		{"a", "add a note"},
		{"e enter", "edit the selected note"},
		{"d", "delete the selected note"},
		{"b", "bedtime calculator"},
		{"ctrl+s", "save the form"},
		{"esc", "cancel"},
		{"q", "quit"},
	}
	th := m.theme.Panel
	lines := []string{th.Title.Render("Keys"), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-10s %s", r[0], th.Muted.Render(r[1])))
	}
	lines = append(lines, "", th.Title.Render("Calendar"), "")
	lines = append(lines,
		m.theme.Calendar.Entry.Render("12")+"  "+th.Muted.Render("night with notes"),
		m.theme.Calendar.Today.Render("12")+"  "+th.Muted.Render("today"),
		m.theme.Calendar.Future.Render("12")+"  "+th.Muted.Render("not yet"),
	)
	return th.FocusFrame.Render(strings.Join(lines, "\n"))
}

func (m Model) footerView() string {
	if m.failed {
		return m.theme.Footer.Error.Render(m.status)
	}
	if m.status == "" {
		return m.theme.Footer.Help.Render(browseHelp)
	}
	return m.theme.Footer.Status.Render(m.status)
}
