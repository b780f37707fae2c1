// Package reminder schedules the daily "time to log your sleep" reminder.
//
// The Scheduler contract mirrors a platform notification centre: calls are
// fire-and-forget and results arrive through a single callback. Local is the
// implementation used on the command line; it keeps its state in the same
// preference store as the journal and delivers through a Notifier while Run
// is active.
package reminder

import (
	"errors"
	"time"
)

const (
	// DefaultID identifies the daily reminder.
	DefaultID = "sleep_diary_daily"
	// TestID identifies the one-off reminder sent by Test.
	TestID = "sleep_diary_test"

	// Title and Body are the daily reminder text.
	Title = "Sleep Reminder 🌙"
	Body  = "It’s time to get ready for sleep and log your day"

	// TestTitle and TestBody are the one-off reminder text.
	TestTitle = "Sleep Diary"
	TestBody  = "Don’t forget to fill in your sleep diary 🌙"

	DefaultHour   = 22
	DefaultMinute = 0
)

var (
	// ErrUnchanged is returned when saving the reminder time that is already
	// active.
	ErrUnchanged = errors.New("reminder: reminder already set for that time")
	// ErrNotAuthorized is returned when the user declines notifications.
	ErrNotAuthorized = errors.New("reminder: notifications not authorized")
	// ErrNothingScheduled is returned by Run when there is nothing to deliver.
	ErrNothingScheduled = errors.New("reminder: nothing scheduled")
)

// Scheduler delivers repeating daily reminders.
type Scheduler interface {
	// RequestAuthorization asks the user for permission and reports the
	// outcome once.
	RequestAuthorization(onResult func(granted bool))
	// ScheduleDaily replaces any reminder registered under id. An empty id
	// means DefaultID.
	ScheduleDaily(hour, minute int, title, body, id string)
	// CancelAll removes every pending reminder.
	CancelAll()
	// CurrentAuthorizationStatus reports whether reminders may be delivered.
	CurrentAuthorizationStatus(onResult func(authorized bool))
}

// Schedule is one registered daily reminder.
type Schedule struct {
	ID     string `json:"id"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Next returns the first delivery strictly after now.
func (s Schedule) Next(now time.Time) time.Time {
	return NextFire(now, s.Hour, s.Minute)
}

// NextFire returns the first hour:minute strictly after now, in now's
// location.
func NextFire(now time.Time, hour, minute int) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return fire
}
