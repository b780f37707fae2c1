package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/store"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// SettingsKey is the preference key holding the reminder settings.
const SettingsKey = "SleepReminderSettings"

// Settings is what the user chose for the daily reminder.
type Settings struct {
	Enabled bool `json:"notificationsEnabled"`
	Hour    int  `json:"sleepReminderHour"`
	Minute  int  `json:"sleepReminderMinute"`
}

// Clock returns the reminder time.
func (s Settings) Clock() timeutil.Clock {
	return timeutil.Clock{Hour: s.Hour, Minute: s.Minute}
}

func (s Settings) String() string {
	return s.Clock().String()
}

// Reminders applies reminder settings to a Scheduler.
type Reminders struct {
	scheduler Scheduler
	prefs     store.Preferences
	defaults  Settings
	logger    *zap.SugaredLogger
}

// Option configures Reminders.
type Option func(*Reminders)

// WithDefault sets the time offered before the user saves one.
func WithDefault(hour, minute int) Option {
	return func(r *Reminders) {
		if (timeutil.Clock{Hour: hour, Minute: minute}).Valid() {
			r.defaults.Hour, r.defaults.Minute = hour, minute
		}
	}
}

// WithSettingsLogger routes diagnostics to logger.
func WithSettingsLogger(logger *zap.SugaredLogger) Option {
	return func(r *Reminders) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReminders returns reminder settings stored in prefs and applied to s.
func NewReminders(s Scheduler, prefs store.Preferences, opts ...Option) *Reminders {
	r := &Reminders{
		scheduler: s,
		prefs:     prefs,
		defaults:  Settings{Hour: DefaultHour, Minute: DefaultMinute},
		logger:    zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Settings returns the saved settings, or the defaults with reminders off.
func (r *Reminders) Settings() Settings {
	data, err := r.prefs.Read(SettingsKey)
	if err != nil {
		if !errors.Is(err, store.ErrNoValue) {
			r.logger.Warnw("reading reminder settings", "error", err)
		}
		return r.defaults
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil || !s.Clock().Valid() {
		r.logger.Warnw("discarding unreadable reminder settings", "error", err)
		return r.defaults
	}
	return s
}

// CanSave reports whether text names a time worth saving: it must parse and,
// while reminders are on, differ from the active time.
func (r *Reminders) CanSave(text string) bool {
	at, err := timeutil.ParseClock(text)
	if err != nil {
		return false
	}
	cur := r.Settings()
	return !cur.Enabled || at != cur.Clock()
}

// Save stores at as the reminder time and schedules it. When reminders are
// off the user is asked first; a refusal leaves them off and returns
// ErrNotAuthorized. Saving the active time returns ErrUnchanged.
func (r *Reminders) Save(ctx context.Context, at timeutil.Clock) (Settings, error) {
	if !at.Valid() {
		return Settings{}, fmt.Errorf("reminder: %w", timeutil.ErrInvalidTime)
	}
	cur := r.Settings()
	if cur.Enabled && at == cur.Clock() {
		return cur, ErrUnchanged
	}

	next := cur
	next.Hour, next.Minute = at.Hour, at.Minute
	if err := r.write(next); err != nil {
		return cur, err
	}

	if next.Enabled {
		r.scheduler.CancelAll()
		r.schedule(next)
		return next, nil
	}

	granted, err := r.authorize(ctx)
	if err != nil {
		return next, err
	}
	if !granted {
		return next, ErrNotAuthorized
	}
	next.Enabled = true
	if err := r.write(next); err != nil {
		return next, err
	}
	r.schedule(next)
	return next, nil
}

// Disable turns reminders off and cancels what is scheduled.
func (r *Reminders) Disable() (Settings, error) {
	next := r.Settings()
	next.Enabled = false
	r.scheduler.CancelAll()
	return next, r.write(next)
}

// Authorized reports the scheduler's current authorization status.
func (r *Reminders) Authorized(ctx context.Context) (bool, error) {
	result := make(chan bool, 1)
	r.scheduler.CurrentAuthorizationStatus(func(ok bool) { result <- ok })
	select {
	case ok := <-result:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (r *Reminders) authorize(ctx context.Context) (bool, error) {
	result := make(chan bool, 1)
	r.scheduler.RequestAuthorization(func(granted bool) { result <- granted })
	select {
	case granted := <-result:
		return granted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (r *Reminders) schedule(s Settings) {
	r.scheduler.ScheduleDaily(s.Hour, s.Minute, Title, Body, DefaultID)
}

func (r *Reminders) write(s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("reminder: encode settings: %w", err)
	}
	if err := r.prefs.Write(SettingsKey, data); err != nil {
		return fmt.Errorf("reminder: save settings: %w", err)
	}
	return nil
}
