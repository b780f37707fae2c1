package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/store"
)

// ScheduleKey is the preference key holding the scheduler state.
const ScheduleKey = "SleepReminderSchedule"

// Authorizer asks the user whether reminders may be shown.
type Authorizer interface {
	Authorize() (bool, error)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func() (bool, error)

func (f AuthorizerFunc) Authorize() (bool, error) { return f() }

// Notifier shows a reminder to the user.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, body string) error

func (f NotifierFunc) Notify(title, body string) error { return f(title, body) }

type state struct {
	Authorized bool                `json:"authorized"`
	Schedules  map[string]Schedule `json:"schedules"`
}

// Local is a Scheduler backed by the preference store. Callbacks run before
// the call returns.
type Local struct {
	prefs      store.Preferences
	authorizer Authorizer
	notifier   Notifier
	logger     *zap.SugaredLogger
	now        func() time.Time
	after      func(time.Duration) <-chan time.Time

	mu sync.Mutex
}

// LocalOption configures a Local scheduler.
type LocalOption func(*Local)

// WithAuthorizer sets who is asked by RequestAuthorization. Without one every
// request is denied.
func WithAuthorizer(a Authorizer) LocalOption {
	return func(l *Local) { l.authorizer = a }
}

// WithNotifier sets how Run delivers reminders.
func WithNotifier(n Notifier) LocalOption {
	return func(l *Local) { l.notifier = n }
}

// WithLogger routes scheduler diagnostics to logger.
func WithLogger(logger *zap.SugaredLogger) LocalOption {
	return func(l *Local) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock replaces the wall clock and timer used by Run.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) LocalOption {
	return func(l *Local) {
		if now != nil {
			l.now = now
		}
		if after != nil {
			l.after = after
		}
	}
}

// NewLocal returns a scheduler persisting to prefs.
func NewLocal(prefs store.Preferences, opts ...LocalOption) *Local {
	l := &Local{
		prefs:  prefs,
		logger: zap.NewNop().Sugar(),
		now:    time.Now,
		after:  time.After,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Local) RequestAuthorization(onResult func(bool)) {
	l.mu.Lock()
	st := l.load()
	l.mu.Unlock()
	if st.Authorized {
		onResult(true)
		return
	}

	granted := false
	if l.authorizer != nil {
		var err error
		granted, err = l.authorizer.Authorize()
		if err != nil {
			l.logger.Warnw("authorization prompt failed", "error", err)
			granted = false
		}
	}

	l.mu.Lock()
	st = l.load()
	st.Authorized = granted
	l.store(st)
	l.mu.Unlock()

	onResult(granted)
}

func (l *Local) ScheduleDaily(hour, minute int, title, body, id string) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		l.logger.Warnw("ignoring reminder with invalid time", "hour", hour, "minute", minute)
		return
	}
	if id == "" {
		id = DefaultID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.load()
	st.Schedules[id] = Schedule{ID: id, Hour: hour, Minute: minute, Title: title, Body: body}
	l.store(st)
	l.logger.Debugw("reminder scheduled", "id", id, "hour", hour, "minute", minute)
}

func (l *Local) CancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.load()
	st.Schedules = map[string]Schedule{}
	l.store(st)
}

func (l *Local) CurrentAuthorizationStatus(onResult func(bool)) {
	l.mu.Lock()
	st := l.load()
	l.mu.Unlock()
	onResult(st.Authorized)
}

// Revoke forgets a previous authorization.
func (l *Local) Revoke() {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.load()
	st.Authorized = false
	l.store(st)
}

// Schedules lists the registered reminders ordered by id.
func (l *Local) Schedules() []Schedule {
	l.mu.Lock()
	st := l.load()
	l.mu.Unlock()
	out := make([]Schedule, 0, len(st.Schedules))
	for _, s := range st.Schedules {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Test delivers the one-off test reminder immediately when authorized.
func (l *Local) Test() error {
	if !l.authorized() {
		return ErrNotAuthorized
	}
	return l.deliver(Schedule{ID: TestID, Title: TestTitle, Body: TestBody})
}

// Run delivers reminders as they come due until ctx is done. Schedule
// changes made by other processes are picked up when the backend can be
// watched.
func (l *Local) Run(ctx context.Context) error {
	var changes <-chan store.Event
	if w, ok := l.prefs.(store.KeyWatcher); ok {
		ch, err := w.WatchKey(ctx, ScheduleKey)
		if err != nil {
			l.logger.Warnw("schedule changes will not be noticed", "error", err)
		} else {
			changes = ch
		}
	}

	for {
		now := l.now()
		due, at := l.nextDue(now)
		if len(due) == 0 {
			return ErrNothingScheduled
		}
		l.logger.Debugw("waiting for next reminder", "at", at.Format(time.RFC3339), "count", len(due))

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				changes = nil
			}
			continue
		case <-l.after(at.Sub(now)):
		}

		if !l.authorized() {
			l.logger.Infow("skipping reminder, notifications not authorized")
			continue
		}
		for _, s := range due {
			if err := l.deliver(s); err != nil {
				l.logger.Errorw("reminder not delivered", "id", s.ID, "error", err)
			}
		}
	}
}

func (l *Local) nextDue(now time.Time) ([]Schedule, time.Time) {
	var (
		due []Schedule
		at  time.Time
	)
	for _, s := range l.Schedules() {
		next := s.Next(now)
		switch {
		case len(due) == 0 || next.Before(at):
			due, at = []Schedule{s}, next
		case next.Equal(at):
			due = append(due, s)
		}
	}
	return due, at
}

func (l *Local) deliver(s Schedule) error {
	if l.notifier == nil {
		return errors.New("reminder: no notifier configured")
	}
	l.logger.Infow("delivering reminder", "id", s.ID)
	return l.notifier.Notify(s.Title, s.Body)
}

func (l *Local) authorized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load().Authorized
}

// load reads the scheduler state; absent or unreadable state means nothing
// authorized and nothing scheduled.
func (l *Local) load() state {
	st := state{}
	data, err := l.prefs.Read(ScheduleKey)
	if err == nil {
		err = json.Unmarshal(data, &st)
	}
	if err != nil && !errors.Is(err, store.ErrNoValue) {
		l.logger.Warnw("discarding unreadable reminder state", "key", ScheduleKey, "error", err)
		st = state{}
	}
	if st.Schedules == nil {
		st.Schedules = map[string]Schedule{}
	}
	return st
}

func (l *Local) store(st state) {
	data, err := json.Marshal(st)
	if err == nil {
		err = l.prefs.Write(ScheduleKey, data)
	}
	if err != nil {
		l.logger.Errorw("reminder state not saved", "key", ScheduleKey, "error", err)
	}
}

var _ Scheduler = (*Local)(nil)
