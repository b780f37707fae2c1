// Package note defines the sleep note, the journal's only persisted record.
package note

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/sleepdiary/pkg/timeutil"
)

var (
	// ErrTitleRequired is returned when a title is blank after trimming.
	ErrTitleRequired = errors.New("note: title is required")
	// ErrDetailsRequired is returned when details are blank after trimming.
	ErrDetailsRequired = errors.New("note: details are required")
)

// SleepNote is one journal record. StartTime and EndTime are canonical HH:MM
// values or nil when not recorded.
type SleepNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Details   string    `json:"details"`
	CreatedAt Timestamp `json:"createdAt"`
	StartTime *string   `json:"startTime"`
	EndTime   *string   `json:"endTime"`
}

// New builds a note with a fresh id stamped at now.
func New(title, details string, start, end *string, now time.Time) SleepNote {
	return SleepNote{
		ID:        uuid.NewString(),
		Title:     title,
		Details:   details,
		CreatedAt: Timestamp{Time: now},
		StartTime: copyTime(start),
		EndTime:   copyTime(end),
	}
}

// Revise returns n with new content. The id and creation time are kept.
func (n SleepNote) Revise(title, details string, start, end *string) SleepNote {
	n.Title = title
	n.Details = details
	n.StartTime = copyTime(start)
	n.EndTime = copyTime(end)
	return n
}

// Start returns the bedtime or "" when not recorded.
func (n SleepNote) Start() string {
	if n.StartTime == nil {
		return ""
	}
	return *n.StartTime
}

// End returns the wake time or "" when not recorded.
func (n SleepNote) End() string {
	if n.EndTime == nil {
		return ""
	}
	return *n.EndTime
}

// Duration is the formatted time asleep, or timeutil.NoDuration when either
// time is missing.
func (n SleepNote) Duration() string {
	if n.StartTime == nil || n.EndTime == nil {
		return timeutil.NoDuration
	}
	return timeutil.SleepDuration(*n.StartTime, *n.EndTime)
}

// Validate checks the required text fields.
func Validate(title, details string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(details) == "" {
		return ErrDetailsRequired
	}
	return nil
}

// TimeOf is a convenience for building optional times in literals and tests.
func TimeOf(s string) *string {
	return &s
}

func copyTime(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
