package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/store"
)

var now = time.Date(2026, time.March, 10, 21, 0, 0, 0, time.Local)

func newModel(t *testing.T, opts ...Option) (Model, *app.Service) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	at := now
	clock := func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
	svc := &app.Service{
		Notes: store.NewNotes(store.NewMemoryPreferences(), store.WithClock(clock)),
		Now:   func() time.Time { return now },
	}
	m := New(svc, append([]Option{WithClock(func() time.Time { return now })}, opts...)...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return exec(t, next.(Model), m.load()), svc
}

// exec runs cmd and feeds the result back while it is one of the model's own
// messages.
func exec(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case loadedMsg, savedMsg, deletedMsg:
		default:
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) []tea.KeyMsg {
	out := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestAddNoteThroughForm(t *testing.T) {
	m, svc := newModel(t)

	m, _ = press(m, runes("a")...)
	if m.mode != modeForm {
		t.Fatalf("expected form mode, got %d", m.mode)
	}

	m, _ = press(m, runes("Early night")...)
	m, _ = press(m, key(tea.KeyTab))
	m, _ = press(m, runes("2330")...)
	m, _ = press(m, key(tea.KeyTab))
	m, _ = press(m, runes("0700")...)
	m, _ = press(m, key(tea.KeyTab))
	m, _ = press(m, runes("read a book")...)

	m, cmd := press(m, key(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	m = exec(t, m, cmd)

	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after saving, got %d", m.mode)
	}
	all, err := svc.All(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one stored note, got %d (%v)", len(all), err)
	}
	if all[0].Start() != "23:30" || all[0].End() != "07:00" {
		t.Fatalf("unexpected times %q / %q", all[0].Start(), all[0].End())
	}
	if len(m.notes) != 1 {
		t.Fatalf("expected today's list to show the note, got %d", len(m.notes))
	}
	if !strings.Contains(m.View(), "7h 30min") {
		t.Fatalf("expected the duration in the view:\n%s", m.View())
	}
}

func TestSaveRefusedWhileTimeInvalid(t *testing.T) {
	m, svc := newModel(t)

	m, _ = press(m, runes("a")...)
	m, _ = press(m, runes("Night")...)
	m, _ = press(m, key(tea.KeyTab))
	m, _ = press(m, runes("99")...)
	m, _ = press(m, key(tea.KeyTab), key(tea.KeyTab))
	m, _ = press(m, runes("details")...)

	m, cmd := press(m, key(tea.KeyCtrlS))
	if cmd != nil {
		t.Fatalf("expected no save command")
	}
	if !m.failed || m.mode != modeForm {
		t.Fatalf("expected an error and to stay in the form, got mode %d status %q", m.mode, m.status)
	}
	if all, _ := svc.All(context.Background()); len(all) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(all))
	}
}

func TestEditAndDeleteSelectedNote(t *testing.T) {
	m, svc := newModel(t)
	ctx := context.Background()
	if _, err := svc.Save(ctx, app.SaveRequest{Title: "Night", Details: "ok", Start: "22:00"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	m = exec(t, m, m.load())

	m, _ = press(m, key(tea.KeyTab))
	if m.focus != paneNotes {
		t.Fatalf("expected notes focus")
	}

	m, _ = press(m, runes("e")...)
	if m.mode != modeForm || m.form.EditID == "" {
		t.Fatalf("expected edit form")
	}
	m, _ = press(m, runes(" in")...)
	m, cmd := press(m, key(tea.KeyCtrlS))
	m = exec(t, m, cmd)

	all, _ := svc.All(ctx)
	if len(all) != 1 || all[0].Title != "Night in" || all[0].Start() != "22:00" {
		t.Fatalf("unexpected notes after edit: %+v", all)
	}

	if m.focus != paneNotes {
		t.Fatalf("expected the notes pane to keep focus")
	}
	m, _ = press(m, runes("d")...)
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected delete confirmation, got %d", m.mode)
	}
	m, cmd = press(m, runes("y")...)
	m = exec(t, m, cmd)

	if all, _ := svc.All(ctx); len(all) != 0 {
		t.Fatalf("expected note deleted, got %d", len(all))
	}
	if len(m.notes) != 0 || m.focus != paneCalendar {
		t.Fatalf("expected empty list with calendar focus")
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, _ := newModel(t)

	m, _ = press(m, runes("l")...)
	if !m.selected.Equal(app.StartOfDay(now)) {
		t.Fatalf("expected to stay on today, got %s", m.selected)
	}

	m, _ = press(m, runes("k")...)
	if m.selected.Day() != 3 {
		t.Fatalf("expected March 3, got %s", m.selected)
	}

	m, _ = press(m, runes("[")...)
	if m.month.Month() != time.February || m.selected.Day() != 3 {
		t.Fatalf("expected Feb 3, got %s in %s", m.selected, m.month)
	}

	m, _ = press(m, runes("t")...)
	if !m.selected.Equal(app.StartOfDay(now)) || m.month.Month() != time.March {
		t.Fatalf("expected today, got %s", m.selected)
	}
}

func TestBedtimeCalculator(t *testing.T) {
	m, _ := newModel(t)

	m, _ = press(m, runes("b")...)
	m, _ = press(m, runes("0700")...)
	if m.wake.Value() != "07:00" {
		t.Fatalf("expected sanitized wake time, got %q", m.wake.Value())
	}
	if len(m.bedtimes) != 3 || m.bedtimes[0].At.String() != "22:00" {
		t.Fatalf("unexpected suggestions %+v", m.bedtimes)
	}
	if !strings.Contains(m.View(), "23:30") {
		t.Fatalf("expected suggestions in view:\n%s", m.View())
	}

	m, _ = press(m, key(tea.KeyEsc))
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %d", m.mode)
	}
}

func TestStoreChangesRefresh(t *testing.T) {
	changes := make(chan store.Event, 1)
	m, svc := newModel(t, WithChanges(changes))

	if _, err := svc.Save(context.Background(), app.SaveRequest{Title: "Elsewhere", Details: "written by another process"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	changes <- store.Event{Type: store.EventExternal}

	msg := m.waitForChange()()
	if _, ok := msg.(changedMsg); !ok {
		t.Fatalf("expected changedMsg, got %T", msg)
	}
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected a reload")
	}
	m = exec(t, next.(Model), next.(Model).load())
	if len(m.notes) != 1 || m.notes[0].Title != "Elsewhere" {
		t.Fatalf("expected refreshed notes, got %+v", m.notes)
	}
}
