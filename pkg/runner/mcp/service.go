// Package mcp provides the Model Context Protocol server integration for the
// sleep diary.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Service adapts the journal service to transport-friendly values shared by
// the MCP tools and resources.
type Service struct {
	App *app.Service
}

// ErrNoteNotFound is returned when a note cannot be located.
var ErrNoteNotFound = errors.New("note not found")

const dayLayout = "2006-01-02"

// NoteDTO is a transport-friendly projection of a note.
type NoteDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Details     string  `json:"details"`
	CreatedISO  string  `json:"createdAt"`
	CreatedUnix int64   `json:"createdUnix"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Duration    string  `json:"duration"`
}

// ListOptions narrows ListNotes. On wins over Since; Query ranks by fuzzy
// match instead of recency.
type ListOptions struct {
	On    string
	Since string
	Query string
	Limit int
}

// CreateOptions captures a new note.
type CreateOptions struct {
	Title     string
	Details   string
	StartTime string
	EndTime   string
}

// UpdateOptions captures a note edit; nil fields keep their value.
type UpdateOptions struct {
	ID        string
	Title     *string
	Details   *string
	StartTime *string
	EndTime   *string
}

// BedtimeDTO is one bedtime suggestion.
type BedtimeDTO struct {
	Bedtime string `json:"bedtime"`
	Cycles  int    `json:"cycles"`
	Sleep   string `json:"sleep"`
}

// DurationDTO is a computed night length.
type DurationDTO struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Minutes   int    `json:"minutes"`
	Duration  string `json:"duration"`
}

// NewService wraps the journal service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListNotes returns notes newest first, or by relevance when searching.
func (s *Service) ListNotes(ctx context.Context, opts ListOptions) ([]NoteDTO, error) {
	if s.App == nil {
		return nil, errors.New("note service is not configured")
	}

	var (
		notes []note.SleepNote
		err   error
	)
	switch {
	case strings.TrimSpace(opts.Query) != "":
		notes, err = s.App.Search(ctx, opts.Query)
	case strings.TrimSpace(opts.On) != "":
		day, perr := time.ParseInLocation(dayLayout, strings.TrimSpace(opts.On), time.Local)
		if perr != nil {
			return nil, fmt.Errorf("invalid day %q, expected YYYY-MM-DD", opts.On)
		}
		notes, err = s.App.NotesOn(ctx, day)
	case strings.TrimSpace(opts.Since) != "":
		notes, err = s.App.Since(ctx, opts.Since)
	default:
		notes, err = s.App.All(ctx)
	}
	if err != nil {
		return nil, err
	}

	if opts.Limit > 0 && len(notes) > opts.Limit {
		notes = notes[:opts.Limit]
	}
	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toDTO(n))
	}
	return out, nil
}

// NoteByID returns one note by id or unique id prefix.
func (s *Service) NoteByID(ctx context.Context, id string) (NoteDTO, error) {
	if s.App == nil {
		return NoteDTO{}, errors.New("note service is not configured")
	}
	n, err := s.App.Note(ctx, id)
	if err != nil {
		return NoteDTO{}, notFound(err, id)
	}
	return toDTO(n), nil
}

// CreateNote stores a new note.
func (s *Service) CreateNote(ctx context.Context, opts CreateOptions) (NoteDTO, error) {
	if s.App == nil {
		return NoteDTO{}, errors.New("note service is not configured")
	}
	n, err := s.App.Save(ctx, app.SaveRequest{
		Title:   opts.Title,
		Details: opts.Details,
		Start:   opts.StartTime,
		End:     opts.EndTime,
	})
	if err != nil {
		return NoteDTO{}, err
	}
	return toDTO(n), nil
}

// UpdateNote edits an existing note.
func (s *Service) UpdateNote(ctx context.Context, opts UpdateOptions) (NoteDTO, error) {
	if s.App == nil {
		return NoteDTO{}, errors.New("note service is not configured")
	}
	cur, err := s.App.Note(ctx, opts.ID)
	if err != nil {
		return NoteDTO{}, notFound(err, opts.ID)
	}
	n, err := s.App.Save(ctx, app.SaveRequest{
		EditID:  cur.ID,
		Title:   pick(opts.Title, cur.Title),
		Details: pick(opts.Details, cur.Details),
		Start:   pick(opts.StartTime, cur.Start()),
		End:     pick(opts.EndTime, cur.End()),
	})
	if err != nil {
		return NoteDTO{}, notFound(err, opts.ID)
	}
	return toDTO(n), nil
}

// DeleteNote removes a note and reports whether it existed.
func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	if s.App == nil {
		return false, errors.New("note service is not configured")
	}
	return s.App.Delete(ctx, id)
}

// SuggestBedtimes returns bedtimes for waking at wake.
func (s *Service) SuggestBedtimes(wake string) ([]BedtimeDTO, error) {
	c, err := parseRequired(wake)
	if err != nil {
		return nil, fmt.Errorf("wake: %w", err)
	}
	details := timeutil.SuggestBedtimeDetails(c)
	out := make([]BedtimeDTO, 0, len(details))
	for _, b := range details {
		out = append(out, BedtimeDTO{
			Bedtime: b.At.String(),
			Cycles:  b.Cycles,
			Sleep:   timeutil.FormatSpan(b.SleepMinutes()),
		})
	}
	return out, nil
}

// SleepDuration computes the night length between two times.
func (s *Service) SleepDuration(start, end string) (DurationDTO, error) {
	from, err := parseRequired(start)
	if err != nil {
		return DurationDTO{}, fmt.Errorf("start: %w", err)
	}
	to, err := parseRequired(end)
	if err != nil {
		return DurationDTO{}, fmt.Errorf("end: %w", err)
	}
	minutes := timeutil.SleepSpan(from, to)
	return DurationDTO{
		StartTime: from.String(),
		EndTime:   to.String(),
		Minutes:   minutes,
		Duration:  timeutil.FormatSpan(minutes),
	}, nil
}

func parseRequired(text string) (timeutil.Clock, error) {
	canonical, err := timeutil.Canonicalize(text)
	if err != nil {
		return timeutil.Clock{}, err
	}
	if canonical == nil {
		return timeutil.Clock{}, fmt.Errorf("%w: value required", timeutil.ErrInvalidTime)
	}
	return timeutil.ParseClock(*canonical)
}

func notFound(err error, id string) error {
	if errors.Is(err, app.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return err
}

func pick(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func toDTO(n note.SleepNote) NoteDTO {
	return NoteDTO{
		ID:          n.ID,
		Title:       n.Title,
		Details:     n.Details,
		CreatedISO:  note.FormatTime(n.CreatedAt.Time),
		CreatedUnix: n.CreatedAt.Unix(),
		StartTime:   n.StartTime,
		EndTime:     n.EndTime,
		Duration:    n.Duration(),
	}
}
