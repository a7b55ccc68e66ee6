package core

import (
	"context"
	"fmt"
	"sync"
)

// Report summarizes one tagging pass.
type Report struct {
	// Examined is the number of notes that had both fields present.
	Examined int
	// Matched is the number of notes satisfying the mode (including notes
	// that already carried the tag).
	Matched int
	// Tagged is the number of notes that actually received the tag.
	Tagged int
	// Skipped is the number of notes missing either field.
	Skipped int
}

// Summary renders the user-facing result message.
func (r Report) Summary(tag string) string {
	msg := fmt.Sprintf("Tagged %d notes with %q.", r.Tagged, tag)
	if r.Skipped > 0 {
		msg += fmt.Sprintf("\nSkipped %d notes without the specified fields.", r.Skipped)
	}
	return msg
}

// Service handles the business logic for matching and tagging notes.
type Service struct {
	col Collection

	mu   sync.RWMutex
	last *Report
}

// NewService creates a new Service on top of a Collection.
func NewService(col Collection) *Service {
	return &Service{col: col}
}

// ApplyTag performs the single pass over the filtered collection: read both
// fields of every note, skip notes missing either field, evaluate the mode,
// and append the tag to matching notes. The pass is idempotent because tags
// form a set; notes that already carry the tag are counted as matched but
// never rewritten.
func (s *Service) ApplyTag(ctx context.Context, spec MatchSpec) (Report, error) {
	matched, report, err := s.pass(ctx, spec)
	if err != nil {
		return report, err
	}

	var toTag []NoteID
	for _, n := range matched {
		if !n.HasTag(spec.Tag) {
			toTag = append(toTag, n.ID)
		}
	}
	if len(toTag) > 0 {
		if err := s.col.AddTag(ctx, toTag, spec.Tag); err != nil {
			return report, fmt.Errorf("failed to tag notes: %w", err)
		}
	}

	s.mu.Lock()
	s.last = &report
	s.mu.Unlock()

	return report, nil
}

// Preview performs the same pass without writing anything and returns the
// matching notes.
func (s *Service) Preview(ctx context.Context, spec MatchSpec) ([]Note, Report, error) {
	return s.pass(ctx, spec)
}

// pass evaluates the spec over the filtered collection without writes.
func (s *Service) pass(ctx context.Context, spec MatchSpec) ([]Note, Report, error) {
	ev, err := NewEvaluator(spec)
	if err != nil {
		return nil, Report{}, err
	}

	notes, err := s.fetch(ctx, spec.Filter)
	if err != nil {
		return nil, Report{}, err
	}

	var report Report
	var matched []Note
	for _, n := range notes {
		a, okA := n.Field(spec.FieldA)
		b, okB := n.Field(spec.FieldB)
		if !okA || !okB {
			report.Skipped++
			continue
		}
		report.Examined++

		ok, err := ev.Compare(a, b)
		if err != nil {
			return nil, report, err
		}
		if !ok {
			continue
		}
		report.Matched++
		if !n.HasTag(spec.Tag) {
			report.Tagged++
		}
		matched = append(matched, n)
	}
	return matched, report, nil
}

func (s *Service) fetch(ctx context.Context, filter string) ([]Note, error) {
	ids, err := s.col.FindNotes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	notes, err := s.col.Fetch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}

// Sync synchronizes the host collection if the adapter supports it.
func (s *Service) Sync(ctx context.Context) error {
	sy, ok := s.col.(Syncable)
	if !ok {
		return ErrSyncUnsupported
	}
	return sy.Sync(ctx)
}

// Watch observes changes in the collection if the adapter supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.col.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}
