package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/store"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Service provides the journal operations shared by the CLI, the TUI and the
// MCP server. Every read re-derives its view from the full collection.
type Service struct {
	Notes store.Notes
	// Now defaults to time.Now.
	Now func() time.Time
}

var (
	ErrNoStore   = errors.New("app: no note store configured")
	ErrNotFound  = store.ErrNotFound
	ErrAmbiguous = errors.New("app: id prefix matches more than one note")
)

// SaveRequest carries the note form. Times are free text; blank means not
// recorded. A non-empty EditID updates that note instead of creating one.
type SaveRequest struct {
	EditID  string
	Title   string
	Details string
	Start   string
	End     string
}

// FieldError reports which form field rejected its value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("app: %s: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// Save validates req and creates or updates the note.
func (s *Service) Save(ctx context.Context, req SaveRequest) (note.SleepNote, error) {
	if s.Notes == nil {
		return note.SleepNote{}, ErrNoStore
	}
	title := strings.TrimSpace(req.Title)
	details := strings.TrimSpace(req.Details)
	if err := note.Validate(title, details); err != nil {
		return note.SleepNote{}, err
	}
	start, err := timeutil.Canonicalize(req.Start)
	if err != nil {
		return note.SleepNote{}, &FieldError{Field: "start", Err: err}
	}
	end, err := timeutil.Canonicalize(req.End)
	if err != nil {
		return note.SleepNote{}, &FieldError{Field: "end", Err: err}
	}

	if req.EditID == "" {
		return s.Notes.Create(title, details, start, end), nil
	}
	id, err := s.resolve(req.EditID)
	if err != nil {
		return note.SleepNote{}, err
	}
	return s.Notes.Update(id, title, details, start, end)
}

// Note returns the note whose id is, or uniquely starts with, id.
func (s *Service) Note(ctx context.Context, id string) (note.SleepNote, error) {
	if s.Notes == nil {
		return note.SleepNote{}, ErrNoStore
	}
	all := s.Notes.LoadAll()
	n, err := lookup(all, id)
	if err != nil {
		return note.SleepNote{}, err
	}
	return n, nil
}

// Delete removes the note matching id and reports whether one was removed.
// An unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if s.Notes == nil {
		return false, ErrNoStore
	}
	full, err := s.resolve(id)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	s.Notes.Delete(full)
	return true, nil
}

// All returns every note, newest first.
func (s *Service) All(ctx context.Context) ([]note.SleepNote, error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	return newestFirst(s.Notes.LoadAll()), nil
}

// NotesOn returns the notes created on day's local calendar day, newest
// first.
func (s *Service) NotesOn(ctx context.Context, day time.Time) ([]note.SleepNote, error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	var out []note.SleepNote
	for _, n := range s.Notes.LoadAll() {
		if n.CreatedAt.SameDay(day) {
			out = append(out, n)
		}
	}
	return newestFirst(out), nil
}

// Since returns the notes created within a lookback window such as "1w" or
// "3 nights", counted from the start of that day.
func (s *Service) Since(ctx context.Context, window string) ([]note.SleepNote, error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	d, _, err := timeutil.ParseWindow(window)
	if err != nil {
		return nil, err
	}
	from := timeutil.WindowStart(s.now(), d)
	var out []note.SleepNote
	for _, n := range s.Notes.LoadAll() {
		if !n.CreatedAt.Before(from) {
			out = append(out, n)
		}
	}
	return newestFirst(out), nil
}

// Subscribe forwards to the store's change observer.
func (s *Service) Subscribe(fn func(store.Event)) (func(), error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	return s.Notes.Subscribe(fn), nil
}

type watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Watch streams changes made to the journal by other processes.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	w, ok := s.Notes.(watcher)
	if !ok {
		return nil, errors.New("app: note store cannot be watched")
	}
	return w.Watch(ctx)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) resolve(id string) (string, error) {
	n, err := lookup(s.Notes.LoadAll(), id)
	if err != nil {
		return "", err
	}
	return n.ID, nil
}

func lookup(all []note.SleepNote, id string) (note.SleepNote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return note.SleepNote{}, ErrNotFound
	}
	var (
		found note.SleepNote
		hits  int
	)
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
		if strings.HasPrefix(n.ID, id) {
			found = n
			hits++
		}
	}
	switch hits {
	case 0:
		return note.SleepNote{}, ErrNotFound
	case 1:
		return found, nil
	default:
		return note.SleepNote{}, fmt.Errorf("%w: %q", ErrAmbiguous, id)
	}
}

func newestFirst(notes []note.SleepNote) []note.SleepNote {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt.Time)
	})
	return notes
}
