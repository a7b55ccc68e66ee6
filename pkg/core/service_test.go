package core_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/aretw0/fieldmatch/pkg/core"
)

// MockCollection implements core.Collection in memory.
// It deliberately does NOT implement core.Syncable or core.Watchable to test
// the capability checks.
type MockCollection struct {
	notes   map[core.NoteID]*core.Note
	addTags int // number of AddTag calls
}

func NewMockCollection(notes ...core.Note) *MockCollection {
	m := &MockCollection{notes: make(map[core.NoteID]*core.Note)}
	for i := range notes {
		n := notes[i]
		m.notes[n.ID] = &n
	}
	return m
}

func (m *MockCollection) FindNotes(ctx context.Context, filter string) ([]core.NoteID, error) {
	var ids []core.NoteID
	for id, n := range m.notes {
		if filter != "" && !strings.HasPrefix(string(n.ID), filter) {
			continue
		}
		ids = append(ids, id)
	}
	// Sort for deterministic tests
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MockCollection) Fetch(ctx context.Context, ids []core.NoteID) ([]core.Note, error) {
	var notes []core.Note
	for _, id := range ids {
		n, ok := m.notes[id]
		if !ok {
			return nil, core.ErrNotFound
		}
		notes = append(notes, *n)
	}
	return notes, nil
}

func (m *MockCollection) AddTag(ctx context.Context, ids []core.NoteID, tag string) error {
	m.addTags++
	for _, id := range ids {
		n, ok := m.notes[id]
		if !ok {
			return core.ErrNotFound
		}
		n.AddTag(tag)
	}
	return nil
}

func (m *MockCollection) Initialize(ctx context.Context) error { return nil }

func testNotes() []core.Note {
	return []core.Note{
		{ID: "1", Fields: core.Fields{"Front": "dog", "Back": "dog"}},
		{ID: "2", Fields: core.Fields{"Front": "cat", "Back": "kat"}},
		{ID: "3", Fields: core.Fields{"Front": "bird"}}, // missing Back
		{ID: "4", Fields: core.Fields{"Front": "", "Back": ""}},
		{ID: "5", Fields: core.Fields{"Front": "fish", "Back": "fish"}, Tags: []string{"same"}},
	}
}

func TestService_ApplyTag_Equal(t *testing.T) {
	col := NewMockCollection(testNotes()...)
	service := core.NewService(col)
	ctx := context.TODO()

	spec := core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeEqual, Tag: "same",
		TrimSpace: true,
	}

	report, err := service.ApplyTag(ctx, spec)
	if err != nil {
		t.Fatalf("ApplyTag failed: %v", err)
	}

	// Note 1 matches and gets tagged. Note 4 is equal but empty, so no tag.
	// Note 3 is skipped. Note 5 matches but already has the tag.
	if report.Tagged != 1 {
		t.Errorf("expected 1 tagged, got %d", report.Tagged)
	}
	if report.Matched != 2 {
		t.Errorf("expected 2 matched, got %d", report.Matched)
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", report.Skipped)
	}
	if !col.notes["1"].HasTag("same") {
		t.Error("expected note 1 to be tagged")
	}
	if col.notes["2"].HasTag("same") {
		t.Error("did not expect note 2 to be tagged")
	}
	if col.notes["3"].HasTag("same") || col.notes["4"].HasTag("same") {
		t.Error("skipped/empty notes must never be tagged")
	}
}

func TestService_ApplyTag_Unequal(t *testing.T) {
	col := NewMockCollection(testNotes()...)
	service := core.NewService(col)

	spec := core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeUnequal, Tag: "diff",
		TrimSpace: true,
	}

	report, err := service.ApplyTag(context.TODO(), spec)
	if err != nil {
		t.Fatalf("ApplyTag failed: %v", err)
	}

	// Only note 2 differs; notes 1, 4, 5 are equal and note 3 is skipped.
	if report.Tagged != 1 {
		t.Errorf("expected 1 tagged, got %d", report.Tagged)
	}
	if !col.notes["2"].HasTag("diff") {
		t.Error("expected note 2 to be tagged")
	}
}

func TestService_ApplyTag_Idempotent(t *testing.T) {
	col := NewMockCollection(testNotes()...)
	service := core.NewService(col)
	ctx := context.TODO()

	spec := core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeEqual, Tag: "same",
		TrimSpace: true,
	}

	first, err := service.ApplyTag(ctx, spec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := service.ApplyTag(ctx, spec)
	if err != nil {
		t.Fatal(err)
	}

	if first.Tagged != 1 || second.Tagged != 0 {
		t.Errorf("expected 1 then 0 tagged, got %d then %d", first.Tagged, second.Tagged)
	}
	if second.Matched != first.Matched {
		t.Errorf("matched count changed between runs: %d vs %d", first.Matched, second.Matched)
	}
	if got := len(col.notes["1"].Tags); got != 1 {
		t.Errorf("expected exactly one tag on note 1, got %d", got)
	}
}

func TestService_Preview_NoWrites(t *testing.T) {
	col := NewMockCollection(testNotes()...)
	service := core.NewService(col)

	spec := core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeEqual, Tag: "same",
		TrimSpace: true,
	}

	matched, report, err := service.Preview(context.TODO(), spec)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("expected 2 matched notes, got %d", len(matched))
	}
	if report.Tagged != 1 {
		t.Errorf("expected 1 taggable note, got %d", report.Tagged)
	}
	if col.addTags != 0 {
		t.Error("Preview must not write")
	}
	if col.notes["1"].HasTag("same") {
		t.Error("Preview must not tag notes")
	}
}

func TestService_Sync_Unsupported(t *testing.T) {
	service := core.NewService(NewMockCollection())
	if err := service.Sync(context.TODO()); !errors.Is(err, core.ErrSyncUnsupported) {
		t.Errorf("expected ErrSyncUnsupported, got %v", err)
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(NewMockCollection())
	if _, err := service.Watch(context.TODO()); !errors.Is(err, core.ErrWatchUnsupported) {
		t.Errorf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestReport_Summary(t *testing.T) {
	r := core.Report{Tagged: 3}
	if got := r.Summary("dup"); got != `Tagged 3 notes with "dup".` {
		t.Errorf("unexpected summary: %s", got)
	}
	r.Skipped = 2
	want := "Tagged 3 notes with \"dup\".\nSkipped 2 notes without the specified fields."
	if got := r.Summary("dup"); got != want {
		t.Errorf("unexpected summary: %s", got)
	}
}
