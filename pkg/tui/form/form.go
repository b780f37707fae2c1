// Package form is the note editor of the sleep diary UI.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/timeutil"
	"tableflip.dev/sleepdiary/pkg/tui/theme"
)

// Field identifies a form input in tab order.
type Field int

const (
	Title Field = iota
	Start
	End
	Details
	fieldCount
)

var labels = [fieldCount]string{
	Title:   "Title",
	Start:   "Bedtime start",
	End:     "Wake-up time",
	Details: "Note",
}

// Model holds the note being written. EditID is empty for a new note.
type Model struct {
	EditID string

	title   textinput.Model
	start   textinput.Model
	end     textinput.Model
	details textarea.Model
	focus   Field
}

// New returns an empty form focused on the title.
func New() Model {
	title := textinput.New()
	title.Placeholder = "How was the night?"
	title.CharLimit = 120
	title.Prompt = ""

	start := timeInput("22:30")
	end := timeInput("07:00")

	details := textarea.New()
	details.Placeholder = "What happened before bed, during the night, after waking..."
	details.ShowLineNumbers = false
	details.SetHeight(4)
	details.CharLimit = 2000

	m := Model{title: title, start: start, end: end, details: details}
	m.title.Focus()
	return m
}

func timeInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = len("HH:MM")
	in.Width = len("HH:MM") + 1
	return in
}

// Edit returns a form pre-filled from n.
func Edit(n note.SleepNote) Model {
	m := New()
	m.EditID = n.ID
	m.title.SetValue(n.Title)
	m.title.CursorEnd()
	m.start.SetValue(n.Start())
	m.end.SetValue(n.End())
	m.details.SetValue(n.Details)
	return m
}

// SetWidth sizes the inputs for a panel of w columns.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.title.Width = w
	m.details.SetWidth(w)
}

// Focused returns the field that receives keystrokes.
func (m Model) Focused() Field { return m.focus }

// Focus moves the cursor to f.
func (m *Model) Focus(f Field) tea.Cmd {
	m.title.Blur()
	m.start.Blur()
	m.end.Blur()
	m.details.Blur()
	m.focus = (f + fieldCount) % fieldCount
	switch m.focus {
	case Title:
		return m.title.Focus()
	case Start:
		return m.start.Focus()
	case End:
		return m.end.Focus()
	default:
		return m.details.Focus()
	}
}

// Update routes navigation keys and feeds everything else to the focused
// input. Time inputs are re-sanitized after every keystroke.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			return m, m.Focus(m.focus + 1)
		case "shift+tab":
			return m, m.Focus(m.focus - 1)
		case "up":
			if m.focus != Details {
				return m, m.Focus(m.focus - 1)
			}
		case "down", "enter":
			if m.focus != Details {
				return m, m.Focus(m.focus + 1)
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case Title:
		m.title, cmd = m.title.Update(msg)
	case Start:
		m.start, cmd = m.start.Update(msg)
		sanitize(&m.start)
	case End:
		m.end, cmd = m.end.Update(msg)
		sanitize(&m.end)
	case Details:
		m.details, cmd = m.details.Update(msg)
	}
	return m, cmd
}

func sanitize(in *textinput.Model) {
	raw := in.Value()
	clean := timeutil.SanitizeKeystroke(raw)
	if clean != raw {
		in.SetValue(clean)
		in.CursorEnd()
	}
}

// Value returns the current text of f.
func (m Model) Value(f Field) string {
	switch f {
	case Title:
		return m.title.Value()
	case Start:
		return m.start.Value()
	case End:
		return m.end.Value()
	case Details:
		return m.details.Value()
	}
	return ""
}

// Valid reports whether f holds an acceptable value. Times may be blank.
func (m Model) Valid(f Field) bool {
	switch f {
	case Title, Details:
		return strings.TrimSpace(m.Value(f)) != ""
	default:
		return timeutil.IsValid(m.Value(f))
	}
}

// CanSave reports whether every field is valid.
func (m Model) CanSave() bool {
	for f := Title; f < fieldCount; f++ {
		if !m.Valid(f) {
			return false
		}
	}
	return true
}

// Request converts the form into a save request.
func (m Model) Request() app.SaveRequest {
	return app.SaveRequest{
		EditID:  m.EditID,
		Title:   m.title.Value(),
		Details: m.details.Value(),
		Start:   m.start.Value(),
		End:     m.end.Value(),
	}
}

// View renders the form with its save button.
func (m Model) View(th theme.Theme) string {
	heading := "New note"
	if m.EditID != "" {
		heading = "Edit note"
	}

	label := func(f Field) string {
		text := labels[f]
		if f == Title || f == Details {
			text += "*"
		}
		style := th.Form.Label
		if f == m.focus {
			style = th.Form.FocusedLabel
		}
		if (f == Start || f == End) && !m.Valid(f) {
			style = th.Form.Invalid
		}
		return style.Render(text)
	}

	times := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, label(Start), m.start.View()),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, label(End), m.end.View()),
	)

	save := th.Form.SaveDisabled.Render("ctrl+s save")
	if m.CanSave() {
		save = th.Form.Save.Render("ctrl+s save")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		th.Panel.Title.Render(heading),
		"",
		label(Title),
		m.title.View(),
		"",
		times,
		"",
		label(Details),
		m.details.View(),
		"",
		save+"  "+th.Footer.Help.Render("tab next field · esc cancel"),
	)
}
