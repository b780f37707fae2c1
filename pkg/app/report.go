package app

import (
	"context"
	"time"

	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// ReportNight is a note with both times recorded.
type ReportNight struct {
	Note    note.SleepNote
	Minutes int
}

// ReportResult summarises the sleep recorded between Since and Until.
type ReportResult struct {
	Since time.Time
	Until time.Time
	// Notes counts every note in the window; Nights only those with both
	// times recorded, oldest first.
	Notes    int
	Nights   []ReportNight
	Shortest *ReportNight
	Longest  *ReportNight
}

// AverageMinutes is the mean sleep over Nights, or 0 when there are none.
func (r ReportResult) AverageMinutes() int {
	if len(r.Nights) == 0 {
		return 0
	}
	total := 0
	for _, n := range r.Nights {
		total += n.Minutes
	}
	return total / len(r.Nights)
}

// Average formats AverageMinutes like a single night's duration.
func (r ReportResult) Average() string {
	if len(r.Nights) == 0 {
		return timeutil.NoDuration
	}
	return timeutil.FormatSpan(r.AverageMinutes())
}

// Report summarises the notes created between the provided bounds.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if s.Notes == nil {
		return ReportResult{}, ErrNoStore
	}
	if since.After(until) {
		since, until = until, since
	}

	result := ReportResult{Since: since, Until: until}
	for _, n := range s.Notes.LoadAll() {
		if n.CreatedAt.Before(since) || n.CreatedAt.After(until) {
			continue
		}
		result.Notes++
		minutes, ok := nightMinutes(n)
		if !ok {
			continue
		}
		result.Nights = append(result.Nights, ReportNight{Note: n, Minutes: minutes})
	}

	for i := range result.Nights {
		night := &result.Nights[i]
		if result.Shortest == nil || night.Minutes < result.Shortest.Minutes {
			result.Shortest = night
		}
		if result.Longest == nil || night.Minutes > result.Longest.Minutes {
			result.Longest = night
		}
	}
	return result, nil
}

func nightMinutes(n note.SleepNote) (int, bool) {
	if n.StartTime == nil || n.EndTime == nil {
		return 0, false
	}
	start, err := timeutil.ParseClock(*n.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := timeutil.ParseClock(*n.EndTime)
	if err != nil {
		return 0, false
	}
	return timeutil.SleepSpan(start, end), true
}
