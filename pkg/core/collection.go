package core

import "context"

// Collection defines the contract for reading and tagging notes in a host
// collection. Adhering to this interface keeps the core independent of how
// the notes are actually stored (AnkiConnect HTTP API, Markdown vault, ...).
type Collection interface {
	// FindNotes resolves a filter string into the ids of matching notes.
	// An empty filter matches every note in the collection.
	FindNotes(ctx context.Context, filter string) ([]NoteID, error)

	// Fetch loads the notes for the given ids.
	Fetch(ctx context.Context, ids []NoteID) ([]Note, error)

	// AddTag appends the tag to every listed note and persists the change.
	// Notes that already carry the tag must be left untouched.
	AddTag(ctx context.Context, ids []NoteID, tag string) error

	// Initialize ensures the underlying host is reachable and usable
	// (e.g. directory exists, API answers, versions are compatible).
	Initialize(ctx context.Context) error
}

// Syncable defines an interface for collections that can synchronize with a
// remote (e.g. AnkiWeb via the host's own sync).
type Syncable interface {
	Sync(ctx context.Context) error
}

// EventType represents the type of change observed in a watched collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a watched collection.
type Event struct {
	Type EventType
	ID   NoteID
}

// String implements fmt.Stringer (and the lifecycle Event contract).
func (e Event) String() string {
	return string(e.Type) + " " + string(e.ID)
}

// Watchable defines an interface for collections that can report changes.
// The returned channel is closed when the context is cancelled.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
