// Package remind holds the runners behind the reminder commands.
package remind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/reminder"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Set saves the daily reminder time, asking for permission the first time.
type Set struct {
	At        string
	Reminders *reminder.Reminders
}

func (n *Set) Do(ctx context.Context) error {
	if n.Reminders == nil {
		return errors.New("can not set reminder, no scheduler")
	}
	canonical, err := timeutil.Canonicalize(n.At)
	if err != nil {
		return err
	}
	if canonical == nil {
		return fmt.Errorf("%w: a reminder time is required", timeutil.ErrInvalidTime)
	}
	at, err := timeutil.ParseClock(*canonical)
	if err != nil {
		return err
	}

	s, err := n.Reminders.Save(ctx, at)
	switch {
	case errors.Is(err, reminder.ErrUnchanged):
		_, _ = color.New(color.Faint).Fprintf(color.Output, "Reminder already set for %s\n", s)
		return nil
	case err != nil:
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Reminder set for %s every day\n", color.New(color.Bold).Sprint(s))
	return nil
}

// Off turns the daily reminder off.
type Off struct {
	Reminders *reminder.Reminders
}

func (n *Off) Do(ctx context.Context) error {
	if n.Reminders == nil {
		return errors.New("can not turn reminder off, no scheduler")
	}
	if _, err := n.Reminders.Disable(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, "Reminder off")
	return nil
}

// Status prints the reminder settings and the next delivery.
type Status struct {
	Reminders *reminder.Reminders
	Scheduler *reminder.Local
	Now       func() time.Time
	JSON      bool
}

type status struct {
	Enabled    bool                `json:"enabled"`
	Time       string              `json:"time"`
	Authorized bool                `json:"authorized"`
	Next       *time.Time          `json:"next,omitempty"`
	Schedules  []reminder.Schedule `json:"schedules"`
}

func (n *Status) Do(ctx context.Context) error {
	if n.Reminders == nil || n.Scheduler == nil {
		return errors.New("can not show reminder, no scheduler")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	settings := n.Reminders.Settings()
	authorized, err := n.Reminders.Authorized(ctx)
	if err != nil {
		return err
	}
	st := status{
		Enabled:    settings.Enabled,
		Time:       settings.String(),
		Authorized: authorized,
		Schedules:  n.Scheduler.Schedules(),
	}
	for _, s := range st.Schedules {
		next := s.Next(now())
		if st.Next == nil || next.Before(*st.Next) {
			st.Next = &next
		}
	}

	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(st)
	}
	rows := [][2]string{
		{"Enabled:", yesNo(st.Enabled)},
		{"Time:", st.Time},
		{"Authorized:", yesNo(st.Authorized)},
	}
	if st.Next != nil {
		rows = append(rows, [2]string{"Next:", st.Next.Format("Mon " + printers.DateLayout + " 15:04")})
	}
	pp.KeyValues(rows)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Run delivers reminders in the foreground until ctx is cancelled.
type Run struct {
	Scheduler *reminder.Local
}

func (n *Run) Do(ctx context.Context) error {
	if n.Scheduler == nil {
		return errors.New("can not run reminders, no scheduler")
	}
	_, _ = color.New(color.Faint).Fprintln(color.Output, "Waiting for reminders, press Ctrl-C to stop.")
	return n.Scheduler.Run(ctx)
}

// Test delivers a reminder now.
type Test struct {
	Scheduler *reminder.Local
}

func (n *Test) Do(ctx context.Context) error {
	if n.Scheduler == nil {
		return errors.New("can not test reminders, no scheduler")
	}
	return n.Scheduler.Test()
}
