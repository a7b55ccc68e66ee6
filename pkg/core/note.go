package core

// NoteID identifies a note within its collection.
// AnkiConnect uses numeric ids and the vault adapter uses path-derived ids,
// so the domain keeps it opaque.
type NoteID string

// Fields maps a note's field names to their raw text values.
type Fields map[string]string

// Note is the central entity of the domain.
// It represents a flashcard record owned by the host collection: named text
// fields plus a set of tags. The adapter that produced it is responsible for
// persisting any change.
type Note struct {
	ID     NoteID
	Fields Fields
	Tags   []string
}

// Field returns the value of the named field and whether it exists.
func (n Note) Field(name string) (string, bool) {
	v, ok := n.Fields[name]
	return v, ok
}

// HasTag reports whether the note already carries the tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends the tag unless it is already present.
// Tags behave as a set; adding twice is a no-op.
func (n *Note) AddTag(tag string) bool {
	if n.HasTag(tag) {
		return false
	}
	n.Tags = append(n.Tags, tag)
	return true
}
