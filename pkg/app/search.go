package app

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"tableflip.dev/sleepdiary/pkg/note"
)

type noteSource []note.SleepNote

func (s noteSource) String(i int) string {
	return s[i].Title + " " + s[i].Details
}

func (s noteSource) Len() int { return len(s) }

// Search fuzzy-matches query against note titles and details, best match
// first. A blank query returns every note, newest first.
func (s *Service) Search(ctx context.Context, query string) ([]note.SleepNote, error) {
	if s.Notes == nil {
		return nil, ErrNoStore
	}
	all := newestFirst(s.Notes.LoadAll())
	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}
	matches := fuzzy.FindFrom(query, noteSource(all))
	out := make([]note.SleepNote, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out, nil
}
