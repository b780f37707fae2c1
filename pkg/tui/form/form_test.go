package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/note"
)

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestTimeFieldsSanitizeEveryKeystroke(t *testing.T) {
	m := New()
	m.Focus(Start)

	want := []string{"2", "21", "21", "21:3", "21:30", "21:30"}
	for i, r := range "21x30 " {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if got := m.Value(Start); got != want[i] {
			t.Fatalf("after %q expected %q, got %q", r, want[i], got)
		}
	}
}

func TestCanSave(t *testing.T) {
	m := New()
	if m.CanSave() {
		t.Fatalf("expected an empty form to be unsaveable")
	}

	m = typeText(m, "Restless")
	m.Focus(Details)
	m = typeText(m, "hot night")
	if !m.CanSave() {
		t.Fatalf("expected blank times to be acceptable")
	}

	m.Focus(End)
	m = typeText(m, "25")
	if m.Valid(End) || m.CanSave() {
		t.Fatalf("expected a partial time to block saving, got %q", m.Value(End))
	}
	m = typeText(m, "00")
	if m.Valid(End) {
		t.Fatalf("expected 25:00 to be invalid")
	}
}

func TestTabCyclesFields(t *testing.T) {
	m := New()
	for _, want := range []Field{Start, End, Details, Title} {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.Focused() != want {
			t.Fatalf("expected focus %d, got %d", want, m.Focused())
		}
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focused() != Details {
		t.Fatalf("expected shift+tab to wrap to details, got %d", m.Focused())
	}
}

func TestEditPrefillsRequest(t *testing.T) {
	n := note.SleepNote{ID: "abc", Title: "Night", Details: "ok", StartTime: note.TimeOf("23:00")}
	got := Edit(n).Request()
	want := app.SaveRequest{EditID: "abc", Title: "Night", Details: "ok", Start: "23:00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected request (-want +got):\n%s", diff)
	}
}
