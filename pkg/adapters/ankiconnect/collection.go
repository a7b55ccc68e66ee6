package ankiconnect

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aretw0/fieldmatch/pkg/core"
)

// fetchChunk bounds how many notes a single notesInfo call asks for.
// Large collections otherwise produce responses in the tens of megabytes.
const fetchChunk = 250

// Collection adapts the AnkiConnect client to the core.Collection port.
// Filters are passed through verbatim: the host parses its own search
// syntax server-side.
type Collection struct {
	client *Client
	logger *slog.Logger
}

// NewCollection wraps an AnkiConnect client as a note collection.
func NewCollection(client *Client, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{client: client, logger: logger}
}

// Initialize verifies that AnkiConnect is reachable and speaks a compatible
// protocol version.
func (c *Collection) Initialize(ctx context.Context) error {
	v, err := c.client.Version(ctx)
	if err != nil {
		return fmt.Errorf("ankiconnect is not reachable (is Anki running?): %w", err)
	}
	if v < apiVersion {
		return fmt.Errorf("ankiconnect version %d is too old, need at least %d", v, apiVersion)
	}
	c.logger.Debug("ankiconnect ready", "version", v)
	return nil
}

// FindNotes resolves the filter through the host's search.
func (c *Collection) FindNotes(ctx context.Context, filter string) ([]core.NoteID, error) {
	raw, err := c.client.FindNotes(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]core.NoteID, len(raw))
	for i, id := range raw {
		ids[i] = core.NoteID(strconv.FormatInt(id, 10))
	}
	return ids, nil
}

// Fetch loads notes in chunks of fetchChunk ids.
func (c *Collection) Fetch(ctx context.Context, ids []core.NoteID) ([]core.Note, error) {
	raw, err := parseIDs(ids)
	if err != nil {
		return nil, err
	}

	notes := make([]core.Note, 0, len(raw))
	for start := 0; start < len(raw); start += fetchChunk {
		end := min(start+fetchChunk, len(raw))

		infos, err := c.client.NotesInfo(ctx, raw[start:end])
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			notes = append(notes, toNote(info))
		}
	}
	return notes, nil
}

// AddTag appends the tag via a single addTags call.
func (c *Collection) AddTag(ctx context.Context, ids []core.NoteID, tag string) error {
	raw, err := parseIDs(ids)
	if err != nil {
		return err
	}
	return c.client.AddTags(ctx, raw, tag)
}

// Sync implements core.Syncable via the host's own AnkiWeb sync.
func (c *Collection) Sync(ctx context.Context) error {
	return c.client.Sync(ctx)
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "ankiconnect"
}

func toNote(info NoteInfo) core.Note {
	fields := make(core.Fields, len(info.Fields))
	for name, fv := range info.Fields {
		fields[name] = fv.Value
	}
	return core.Note{
		ID:     core.NoteID(strconv.FormatInt(info.NoteID, 10)),
		Fields: fields,
		Tags:   info.Tags,
	}
}

func parseIDs(ids []core.NoteID) ([]int64, error) {
	raw := make([]int64, len(ids))
	for i, id := range ids {
		v, err := strconv.ParseInt(string(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q: %w", id, err)
		}
		raw[i] = v
	}
	return raw, nil
}

var _ core.Collection = (*Collection)(nil)
var _ core.Syncable = (*Collection)(nil)
