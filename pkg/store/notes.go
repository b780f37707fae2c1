package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/note"
)

// NotesKey is the preference key holding the whole note collection.
const NotesKey = "SleepNotes"

// ErrNotFound is returned by Update when no note has the given id.
var ErrNotFound = errors.New("store: note not found")

// Notes is the durable note collection. Every mutation rewrites the whole
// collection under NotesKey.
type Notes interface {
	// LoadAll returns every note in insertion order. Missing or unreadable
	// data reads as an empty journal.
	LoadAll() []note.SleepNote
	Create(title, details string, start, end *string) note.SleepNote
	Update(id, title, details string, start, end *string) (note.SleepNote, error)
	// Delete removes the note if present; an unknown id is not an error.
	Delete(id string)
	// Subscribe registers fn to run after every change. The returned func
	// removes the subscription.
	Subscribe(fn func(Event)) (cancel func())
}

// NoteStore implements Notes over a Preferences backend.
type NoteStore struct {
	prefs  Preferences
	logger *zap.SugaredLogger
	now    func() time.Time

	// mu serialises the load-modify-store cycle.
	mu sync.Mutex

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// Option configures a NoteStore.
type Option func(*NoteStore)

// WithLogger routes soft failures to logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *NoteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the creation clock.
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewNotes returns a note store persisting to prefs.
func NewNotes(prefs Preferences, opts ...Option) *NoteStore {
	s := &NoteStore{
		prefs:  prefs,
		logger: zap.NewNop().Sugar(),
		now:    time.Now,
		subs:   make(map[int]func(Event)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *NoteStore) LoadAll() []note.SleepNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *NoteStore) Create(title, details string, start, end *string) note.SleepNote {
	s.mu.Lock()
	all := s.load()
	n := note.New(title, details, start, end, s.now())
	all = append(all, n)
	s.store(all)
	s.mu.Unlock()

	s.publish(Event{Type: EventCreated, NoteID: n.ID})
	return n
}

func (s *NoteStore) Update(id, title, details string, start, end *string) (note.SleepNote, error) {
	s.mu.Lock()
	all := s.load()
	idx := indexOf(all, id)
	if idx < 0 {
		s.mu.Unlock()
		return note.SleepNote{}, ErrNotFound
	}
	updated := all[idx].Revise(title, details, start, end)
	all[idx] = updated
	s.store(all)
	s.mu.Unlock()

	s.publish(Event{Type: EventUpdated, NoteID: id})
	return updated, nil
}

func (s *NoteStore) Delete(id string) {
	s.mu.Lock()
	all := s.load()
	idx := indexOf(all, id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	all = append(all[:idx], all[idx+1:]...)
	s.store(all)
	s.mu.Unlock()

	s.publish(Event{Type: EventDeleted, NoteID: id})
}

func (s *NoteStore) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Watch reports changes written by other processes when the backend supports
// it.
func (s *NoteStore) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.prefs.(KeyWatcher)
	if !ok {
		return nil, errors.New("store: preferences backend cannot be watched")
	}
	return w.WatchKey(ctx, NotesKey)
}

// load reads the collection, treating absent or corrupt data as empty.
func (s *NoteStore) load() []note.SleepNote {
	all, err := s.decode()
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			s.logger.Warnw("discarding unreadable note collection", "key", NotesKey, "error", err)
		}
		return []note.SleepNote{}
	}
	return all
}

func (s *NoteStore) decode() ([]note.SleepNote, error) {
	data, err := s.prefs.Read(NotesKey)
	if err != nil {
		return nil, err
	}
	var all []note.SleepNote
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = []note.SleepNote{}
	}
	return all, nil
}

// store writes the collection. A failed encode or write leaves the previous
// value in place.
func (s *NoteStore) store(all []note.SleepNote) {
	if err := s.encode(all); err != nil {
		s.logger.Errorw("note collection not saved", "key", NotesKey, "notes", len(all), "error", err)
	}
}

func (s *NoteStore) encode(all []note.SleepNote) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.prefs.Write(NotesKey, data)
}

func (s *NoteStore) publish(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func indexOf(all []note.SleepNote, id string) int {
	for i, n := range all {
		if n.ID == id {
			return i
		}
	}
	return -1
}

var _ Notes = (*NoteStore)(nil)
