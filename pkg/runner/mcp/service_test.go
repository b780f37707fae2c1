package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/store"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	at := time.Date(2026, time.March, 10, 7, 0, 0, 0, time.Local)
	clock := func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
	notes := store.NewNotes(store.NewMemoryPreferences(), store.WithClock(clock))
	return NewService(&app.Service{Notes: notes, Now: func() time.Time { return at }})
}

func TestServiceCreateNote(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateNote(ctx, CreateOptions{
		Title:     "Early night",
		Details:   "read a book",
		StartTime: "2330",
		EndTime:   "7:0",
	})
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if dto.StartTime == nil || *dto.StartTime != "23:30" {
		t.Fatalf("expected canonical start time, got %v", dto.StartTime)
	}
	if dto.Duration != "7h 30min" {
		t.Fatalf("expected duration 7h 30min, got %q", dto.Duration)
	}
	if dto.CreatedUnix == 0 || dto.CreatedISO == "" {
		t.Fatalf("expected creation stamps, got %+v", dto)
	}
}

func TestServiceCreateNoteRejectsInvalidTime(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateNote(context.Background(), CreateOptions{Title: "x", Details: "y", StartTime: "late"})
	if !errors.Is(err, timeutil.ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestServiceUpdateNoteKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateNote(ctx, CreateOptions{Title: "Night", Details: "ok", StartTime: "22:00", EndTime: "06:00"})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	title := "Better night"
	clear := ""
	updated, err := svc.UpdateNote(ctx, UpdateOptions{ID: created.ID[:8], Title: &title, EndTime: &clear})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, updated.ID)
	}
	if updated.Title != "Better night" || updated.Details != "ok" {
		t.Fatalf("unexpected text %q / %q", updated.Title, updated.Details)
	}
	if updated.StartTime == nil || *updated.StartTime != "22:00" {
		t.Fatalf("expected start time kept, got %v", updated.StartTime)
	}
	if updated.EndTime != nil {
		t.Fatalf("expected end time cleared, got %v", *updated.EndTime)
	}
	if updated.CreatedUnix != created.CreatedUnix {
		t.Fatalf("expected creation time kept")
	}
}

func TestServiceUnknownNote(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.NoteByID(ctx, "missing"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	title := "x"
	if _, err := svc.UpdateNote(ctx, UpdateOptions{ID: "missing", Title: &title}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	deleted, err := svc.DeleteNote(ctx, "missing")
	if err != nil || deleted {
		t.Fatalf("expected quiet no-op delete, got %v, %v", deleted, err)
	}
}

func TestServiceListNotes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, title := range []string{"First", "Second", "Coffee late"} {
		if _, err := svc.CreateNote(ctx, CreateOptions{Title: title, Details: "night"}); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	all, err := svc.ListNotes(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	var got []string
	for _, n := range all {
		got = append(got, n.Title)
	}
	if diff := cmp.Diff([]string{"Coffee late", "Second", "First"}, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	limited, err := svc.ListNotes(ctx, ListOptions{Limit: 2})
	if err != nil || len(limited) != 2 {
		t.Fatalf("expected 2 notes, got %d (%v)", len(limited), err)
	}

	found, err := svc.ListNotes(ctx, ListOptions{Query: "offe"})
	if err != nil {
		t.Fatalf("ListNotes query: %v", err)
	}
	if len(found) == 0 || found[0].Title != "Coffee late" {
		t.Fatalf("expected fuzzy match first, got %+v", found)
	}

	today, err := svc.ListNotes(ctx, ListOptions{On: "2026-03-10"})
	if err != nil || len(today) != 3 {
		t.Fatalf("expected 3 notes today, got %d (%v)", len(today), err)
	}

	if _, err := svc.ListNotes(ctx, ListOptions{On: "10.03.2026"}); err == nil {
		t.Fatalf("expected an error for a malformed day")
	}
}

func TestServiceSuggestBedtimes(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.SuggestBedtimes("07:00")
	if err != nil {
		t.Fatalf("SuggestBedtimes: %v", err)
	}
	want := []BedtimeDTO{
		{Bedtime: "22:00", Cycles: 6, Sleep: "9h"},
		{Bedtime: "23:30", Cycles: 5, Sleep: "7h 30min"},
		{Bedtime: "01:00", Cycles: 4, Sleep: "6h"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}

	if _, err := svc.SuggestBedtimes(""); err == nil {
		t.Fatalf("expected an error for a blank wake time")
	}
}

func TestServiceSleepDuration(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.SleepDuration("23:30", "07:00")
	if err != nil {
		t.Fatalf("SleepDuration: %v", err)
	}
	want := DurationDTO{StartTime: "23:30", EndTime: "07:00", Minutes: 450, Duration: "7h 30min"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected duration (-want +got):\n%s", diff)
	}

	if _, err := svc.SleepDuration("25:00", "07:00"); !errors.Is(err, timeutil.ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestTemplateArg(t *testing.T) {
	tests := map[string]struct {
		args map[string]any
		want string
	}{
		"string": {args: map[string]any{"id": "abc"}, want: "abc"},
		"list":   {args: map[string]any{"id": []string{"abc"}}, want: "abc"},
		"any":    {args: map[string]any{"id": []any{"abc"}}, want: "abc"},
		"absent": {args: map[string]any{}, want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := templateArg(tc.args, "id"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
