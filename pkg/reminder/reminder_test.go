package reminder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"tableflip.dev/sleepdiary/pkg/store"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

func TestNextFire(t *testing.T) {
	tests := map[string]struct {
		now  time.Time
		want time.Time
	}{
		"later today": {
			now:  time.Date(2026, time.March, 10, 21, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC),
		},
		"exactly now rolls over": {
			now:  time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 11, 22, 0, 0, 0, time.UTC),
		},
		"month end": {
			now:  time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 1, 22, 0, 0, 0, time.UTC),
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NextFire(tc.now, 22, 0); !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLocalScheduleReplacesByID(t *testing.T) {
	l := NewLocal(store.NewMemoryPreferences())
	l.ScheduleDaily(22, 0, Title, Body, "")
	l.ScheduleDaily(21, 30, Title, Body, DefaultID)
	l.ScheduleDaily(25, 0, Title, Body, "broken")

	want := []Schedule{{ID: DefaultID, Hour: 21, Minute: 30, Title: Title, Body: Body}}
	if diff := cmp.Diff(want, l.Schedules()); diff != "" {
		t.Fatalf("schedules mismatch (-want +got):\n%s", diff)
	}

	l.CancelAll()
	if got := l.Schedules(); len(got) != 0 {
		t.Fatalf("expected no schedules after CancelAll, got %+v", got)
	}
}

func TestLocalAuthorizationIsRemembered(t *testing.T) {
	prefs := store.NewMemoryPreferences()
	asked := 0
	l := NewLocal(prefs, WithAuthorizer(AuthorizerFunc(func() (bool, error) {
		asked++
		return true, nil
	})))

	var status []bool
	l.CurrentAuthorizationStatus(func(ok bool) { status = append(status, ok) })
	l.RequestAuthorization(func(ok bool) { status = append(status, ok) })
	l.RequestAuthorization(func(ok bool) { status = append(status, ok) })

	// A fresh scheduler over the same preferences sees the grant.
	NewLocal(prefs).CurrentAuthorizationStatus(func(ok bool) { status = append(status, ok) })

	if diff := cmp.Diff([]bool{false, true, true, true}, status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if asked != 1 {
		t.Fatalf("expected one prompt, got %d", asked)
	}
}

func TestLocalAuthorizerFailureDenies(t *testing.T) {
	l := NewLocal(store.NewMemoryPreferences(), WithAuthorizer(AuthorizerFunc(func() (bool, error) {
		return false, errors.New("no terminal")
	})))
	granted := true
	l.RequestAuthorization(func(ok bool) { granted = ok })
	if granted {
		t.Fatal("expected a failed prompt to deny")
	}
	if err := l.Test(); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits chan time.Duration
	fire  chan time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.waits <- d
	return f.fire
}

func TestLocalRunDeliversAtScheduledTime(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{
		now:   time.Date(2026, time.March, 10, 21, 0, 0, 0, time.UTC),
		waits: make(chan time.Duration),
		fire:  make(chan time.Time),
	}
	delivered := make(chan string, 4)
	l := NewLocal(store.NewMemoryPreferences(),
		WithAuthorizer(AuthorizerFunc(func() (bool, error) { return true, nil })),
		WithNotifier(NotifierFunc(func(title, body string) error {
			delivered <- title + "|" + body
			return nil
		})),
		WithClock(clock.Now, clock.After),
	)
	l.RequestAuthorization(func(bool) {})
	l.ScheduleDaily(22, 0, Title, Body, DefaultID)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	if d := <-clock.waits; d != time.Hour {
		t.Fatalf("expected to wait 1h, waited %s", d)
	}
	clock.Set(time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC))
	clock.fire <- clock.Now()

	select {
	case got := <-delivered:
		if got != Title+"|"+Body {
			t.Fatalf("unexpected reminder %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("reminder not delivered")
	}

	if d := <-clock.waits; d != 24*time.Hour {
		t.Fatalf("expected to wait a day, waited %s", d)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestLocalRunWithNothingScheduled(t *testing.T) {
	l := NewLocal(store.NewMemoryPreferences())
	if err := l.Run(context.Background()); !errors.Is(err, ErrNothingScheduled) {
		t.Fatalf("expected ErrNothingScheduled, got %v", err)
	}
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &TerminalNotifier{
		Out:  &buf,
		Bell: true,
		Now:  func() time.Time { return time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC) },
	}
	if err := n.Notify(Title, Body); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"\a", "22:00", Title, Body} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

// recordingScheduler is a Scheduler that remembers what it was asked to do.
type recordingScheduler struct {
	grant     bool
	asked     int
	cancelled int
	scheduled []Schedule
}

func (r *recordingScheduler) RequestAuthorization(onResult func(bool)) {
	r.asked++
	onResult(r.grant)
}

func (r *recordingScheduler) ScheduleDaily(hour, minute int, title, body, id string) {
	r.scheduled = append(r.scheduled, Schedule{ID: id, Hour: hour, Minute: minute, Title: title, Body: body})
}

func (r *recordingScheduler) CancelAll() { r.cancelled++ }

func (r *recordingScheduler) CurrentAuthorizationStatus(onResult func(bool)) { onResult(r.grant) }

func TestRemindersDefaults(t *testing.T) {
	r := NewReminders(&recordingScheduler{}, store.NewMemoryPreferences())
	if got := r.Settings(); got != (Settings{Hour: 22}) {
		t.Fatalf("unexpected defaults %+v", got)
	}
	r = NewReminders(&recordingScheduler{}, store.NewMemoryPreferences(), WithDefault(21, 45))
	if got := r.Settings().String(); got != "21:45" {
		t.Fatalf("expected 21:45, got %s", got)
	}
}

func TestRemindersSaveAsksFirstTime(t *testing.T) {
	s := &recordingScheduler{grant: true}
	r := NewReminders(s, store.NewMemoryPreferences())

	got, err := r.Save(context.Background(), timeutil.Clock{Hour: 22, Minute: 30})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !got.Enabled || got.String() != "22:30" {
		t.Fatalf("unexpected settings %+v", got)
	}
	if s.asked != 1 || s.cancelled != 0 {
		t.Fatalf("expected one authorization and no cancel, got %d/%d", s.asked, s.cancelled)
	}
	want := []Schedule{{ID: DefaultID, Hour: 22, Minute: 30, Title: Title, Body: Body}}
	if diff := cmp.Diff(want, s.scheduled); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
	if r.Settings() != got {
		t.Fatalf("settings not persisted: %+v", r.Settings())
	}
}

func TestRemindersSaveReschedules(t *testing.T) {
	s := &recordingScheduler{grant: true}
	r := NewReminders(s, store.NewMemoryPreferences())
	ctx := context.Background()
	if _, err := r.Save(ctx, timeutil.Clock{Hour: 22}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if r.CanSave("22:00") {
		t.Fatal("expected the active time to be unsaveable")
	}
	if !r.CanSave("23:15") {
		t.Fatal("expected a new time to be saveable")
	}
	if r.CanSave("23:") {
		t.Fatal("expected unparsed text to be unsaveable")
	}

	if _, err := r.Save(ctx, timeutil.Clock{Hour: 22}); !errors.Is(err, ErrUnchanged) {
		t.Fatalf("expected ErrUnchanged, got %v", err)
	}
	if _, err := r.Save(ctx, timeutil.Clock{Hour: 23, Minute: 15}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.asked != 1 || s.cancelled != 1 || len(s.scheduled) != 2 {
		t.Fatalf("unexpected scheduler calls: asked=%d cancelled=%d scheduled=%d", s.asked, s.cancelled, len(s.scheduled))
	}
}

func TestRemindersSaveDenied(t *testing.T) {
	s := &recordingScheduler{grant: false}
	r := NewReminders(s, store.NewMemoryPreferences())

	got, err := r.Save(context.Background(), timeutil.Clock{Hour: 21})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if got.Enabled || len(s.scheduled) != 0 {
		t.Fatalf("expected nothing scheduled, got %+v / %+v", got, s.scheduled)
	}
	if r.Settings().String() != "21:00" {
		t.Fatalf("expected chosen time kept, got %s", r.Settings())
	}
	// While off, any valid time may be saved, including the stored one.
	if !r.CanSave("21:00") {
		t.Fatal("expected saving to be allowed while reminders are off")
	}
}

func TestRemindersDisable(t *testing.T) {
	s := &recordingScheduler{grant: true}
	r := NewReminders(s, store.NewMemoryPreferences())
	if _, err := r.Save(context.Background(), timeutil.Clock{Hour: 22}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := r.Disable()
	if err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if got.Enabled || s.cancelled != 1 {
		t.Fatalf("expected disabled and cancelled, got %+v cancelled=%d", got, s.cancelled)
	}
	if ok, _ := r.Authorized(context.Background()); !ok {
		t.Fatal("expected authorization to be reported")
	}
}

func TestRemindersWithLocalScheduler(t *testing.T) {
	prefs := store.NewMemoryPreferences()
	l := NewLocal(prefs, WithAuthorizer(AuthorizerFunc(func() (bool, error) { return true, nil })))
	r := NewReminders(l, prefs)

	if _, err := r.Save(context.Background(), timeutil.Clock{Hour: 22, Minute: 15}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := []Schedule{{ID: DefaultID, Hour: 22, Minute: 15, Title: Title, Body: Body}}
	if diff := cmp.Diff(want, l.Schedules()); diff != "" {
		t.Fatalf("schedule mismatch (-want +got):\n%s", diff)
	}
}
