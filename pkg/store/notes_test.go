package store

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/sleepdiary/pkg/note"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestCreateAppendsFreshNote(t *testing.T) {
	s := NewNotes(NewMemoryPreferences())
	before := s.LoadAll()
	if len(before) != 0 {
		t.Fatalf("expected empty journal, got %d notes", len(before))
	}

	first := s.Create("Early night", "Read a book", note.TimeOf("22:00"), note.TimeOf("06:30"))
	prior := s.LoadAll()
	second := s.Create("Late night", "Movie", nil, nil)
	after := s.LoadAll()

	if len(after) != len(prior)+1 {
		t.Fatalf("expected %d notes, got %d", len(prior)+1, len(after))
	}
	for _, n := range prior {
		if n.ID == second.ID {
			t.Fatalf("new id %s already present before create", second.ID)
		}
	}
	if after[0].ID != first.ID || after[1].ID != second.ID {
		t.Fatalf("expected insertion order, got %s, %s", after[0].ID, after[1].ID)
	}
}

func TestUpdateUnknownIDLeavesStorageUntouched(t *testing.T) {
	prefs := NewMemoryPreferences()
	s := NewNotes(prefs)
	s.Create("A", "a", nil, nil)
	raw, _ := prefs.Read(NotesKey)

	var events []Event
	defer s.Subscribe(func(ev Event) { events = append(events, ev) })()

	_, err := s.Update("missing", "B", "b", nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, _ := prefs.Read(NotesKey)
	if !bytes.Equal(raw, after) {
		t.Fatalf("storage changed:\nbefore %s\nafter  %s", raw, after)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	created := time.Date(2026, time.April, 1, 7, 0, 0, 42, time.UTC)
	s := NewNotes(NewMemoryPreferences(), WithClock(fixedClock(created)))
	n := s.Create("Slept", "ok", note.TimeOf("23:00"), note.TimeOf("07:00"))

	same, err := s.Update(n.ID, n.Title, n.Details, n.StartTime, n.EndTime)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff(n, same); diff != "" {
		t.Fatalf("identical update changed the note (-want +got):\n%s", diff)
	}

	changed, err := s.Update(n.ID, "Slept badly", "noise", nil, note.TimeOf("05:00"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	stored := s.LoadAll()[0]
	if stored.ID != n.ID || !stored.CreatedAt.Equal(created) {
		t.Fatalf("identity changed: %+v", stored)
	}
	if stored.Title != "Slept badly" || stored.StartTime != nil || stored.End() != "05:00" {
		t.Fatalf("content not applied: %+v", stored)
	}
	if changed.Title != stored.Title {
		t.Fatalf("returned note differs from stored: %+v vs %+v", changed, stored)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewNotes(NewMemoryPreferences())
	keep := s.Create("Keep", "k", nil, nil)
	drop := s.Create("Drop", "d", nil, nil)

	var deleted int
	defer s.Subscribe(func(ev Event) {
		if ev.Type == EventDeleted {
			deleted++
		}
	})()

	s.Delete(drop.ID)
	s.Delete(drop.ID)

	all := s.LoadAll()
	if len(all) != 1 || all[0].ID != keep.ID {
		t.Fatalf("expected only %s left, got %+v", keep.ID, all)
	}
	if deleted != 1 {
		t.Fatalf("expected one delete event, got %d", deleted)
	}
}

func TestCorruptPayloadReadsAsEmpty(t *testing.T) {
	prefs := NewMemoryPreferences()
	if err := prefs.Write(NotesKey, []byte(`{"not":"an array"`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewNotes(prefs)
	if got := s.LoadAll(); len(got) != 0 {
		t.Fatalf("expected empty journal, got %+v", got)
	}

	n := s.Create("Fresh", "start over", nil, nil)
	if got := s.LoadAll(); len(got) != 1 || got[0].ID != n.ID {
		t.Fatalf("expected journal rebuilt with the new note, got %+v", got)
	}
}

func TestFailedWriteKeepsPreviousValue(t *testing.T) {
	prefs := NewMemoryPreferences()
	s := NewNotes(prefs)
	first := s.Create("First", "1", nil, nil)

	prefs.FailWrites = errors.New("disk full")
	s.Create("Second", "2", nil, nil)
	s.Delete(first.ID)

	prefs.FailWrites = nil
	all := s.LoadAll()
	if len(all) != 1 || all[0].ID != first.ID {
		t.Fatalf("expected only the first note, got %+v", all)
	}
}

func TestSubscribeAndCancel(t *testing.T) {
	s := NewNotes(NewMemoryPreferences())
	var got []EventType
	cancel := s.Subscribe(func(ev Event) { got = append(got, ev.Type) })

	n := s.Create("A", "a", nil, nil)
	if _, err := s.Update(n.ID, "B", "b", nil, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	s.Delete(n.ID)
	cancel()
	cancel()
	s.Create("C", "c", nil, nil)

	want := []EventType{EventCreated, EventUpdated, EventDeleted}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentCreatesAllPersist(t *testing.T) {
	base := t.TempDir()
	prefs, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := NewNotes(prefs)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create("Night", "parallel", nil, nil)
		}()
	}
	wg.Wait()

	if got := len(s.LoadAll()); got != writers {
		t.Fatalf("expected %d notes, got %d", writers, got)
	}
}

func TestDiskPreferencesRoundTrip(t *testing.T) {
	base := t.TempDir()
	prefs, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	n := NewNotes(prefs).Create("Disk", "persisted", note.TimeOf("21:45"), nil)

	reopened, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	all := NewNotes(reopened).LoadAll()
	if len(all) != 1 || all[0].ID != n.ID || all[0].Start() != "21:45" || all[0].EndTime != nil {
		t.Fatalf("unexpected notes after reopen: %+v", all)
	}

	if _, err := reopened.Read("unknown"); !errors.Is(err, ErrNoValue) {
		t.Fatalf("expected ErrNoValue, got %v", err)
	}
	if err := reopened.Erase("unknown"); err != nil {
		t.Fatalf("erase of unknown key: %v", err)
	}
}
