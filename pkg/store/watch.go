package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a note change notification.
type EventType int

const (
	// EventCreated follows NoteStore.Create.
	EventCreated EventType = iota
	// EventUpdated follows a successful NoteStore.Update.
	EventUpdated
	// EventDeleted follows NoteStore.Delete when a note was removed.
	EventDeleted
	// EventExternal signals that another process rewrote the collection;
	// callers should reload everything.
	EventExternal
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	case EventExternal:
		return "external"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event tells subscribers to refresh. NoteID is empty for EventExternal.
type Event struct {
	Type   EventType
	NoteID string
}

// KeyWatcher is implemented by preference backends that can report changes
// made by other processes.
type KeyWatcher interface {
	WatchKey(ctx context.Context, key string) (<-chan Event, error)
}

// WatchKey streams an EventExternal whenever the file behind key changes on
// disk, until ctx is cancelled. Bursts are coalesced into one event. Callers
// should drain the channel; events are dropped rather than blocking the
// watcher.
func (p *DiskPreferences) WatchKey(ctx context.Context, key string) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: preferences base path unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() { _ = watcher.Close() })
	}

	// diskv renames a temp file over the key, so watch the directory rather
	// than the file itself.
	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	target := filepath.Clean(filepath.Join(p.basePath, key))
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// An unclassified failure still warrants a reload.
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so a view reloads once
// per burst of file-system activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = true
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush sends under the lock so nothing reaches the channel after Stop; send
// must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending && !t.stopped {
		send(Event{Type: EventExternal})
	}
	t.pending = false
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
