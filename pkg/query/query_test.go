package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fieldmatch/pkg/core"
	"github.com/aretw0/fieldmatch/pkg/query"
)

func note(id string, fields core.Fields, tags ...string) core.Note {
	return core.Note{ID: core.NoteID(id), Fields: fields, Tags: tags}
}

func TestParse_Empty(t *testing.T) {
	q, err := query.Parse("")
	require.NoError(t, err)
	assert.Empty(t, q.Terms())
	assert.True(t, q.Match(note("any", core.Fields{"Front": "x"})))
}

func TestParse_Terms(t *testing.T) {
	q, err := query.Parse(`tag:leech deck:vocab Front:water -tag:done word`)
	require.NoError(t, err)
	require.Len(t, q.Terms(), 5)

	terms := q.Terms()
	assert.Equal(t, "tag", terms[0].Key)
	assert.Equal(t, "leech", terms[0].Value)
	assert.True(t, terms[3].Negated)
	assert.Equal(t, "", terms[4].Key)
	assert.Equal(t, "word", terms[4].Value)
}

func TestParse_Quotes(t *testing.T) {
	q, err := query.Parse(`"deck:My Deck" Front:"two words"`)
	require.NoError(t, err)
	require.Len(t, q.Terms(), 2)
	assert.Equal(t, "deck", q.Terms()[0].Key)
	assert.Equal(t, "My Deck", q.Terms()[0].Value)
	assert.Equal(t, "two words", q.Terms()[1].Value)
}

func TestParse_Errors(t *testing.T) {
	_, err := query.Parse(`"unbalanced`)
	assert.Error(t, err)

	_, err = query.Parse(`tag:x -`)
	assert.Error(t, err)
}

func TestMatch_BareWord(t *testing.T) {
	q, err := query.Parse("water")
	require.NoError(t, err)

	assert.True(t, q.Match(note("1", core.Fields{"Front": "Waterfall", "Back": "x"})))
	assert.False(t, q.Match(note("2", core.Fields{"Front": "fire"})))
}

func TestMatch_Tag(t *testing.T) {
	q, err := query.Parse("tag:leech")
	require.NoError(t, err)

	assert.True(t, q.Match(note("1", nil, "leech", "verb")))
	assert.False(t, q.Match(note("2", nil, "verb")))

	wild, err := query.Parse("tag:le*")
	require.NoError(t, err)
	assert.True(t, wild.Match(note("1", nil, "leech")))
}

func TestMatch_Deck(t *testing.T) {
	q, err := query.Parse("deck:vocab")
	require.NoError(t, err)

	assert.True(t, q.Match(note("vocab/water", nil)))
	assert.True(t, q.Match(note("vocab/animals/dog", nil)), "subdecks belong to the parent deck")
	assert.False(t, q.Match(note("grammar/te-form", nil)))
	assert.False(t, q.Match(note("water", nil)), "root notes have no deck")
}

func TestMatch_Field(t *testing.T) {
	q, err := query.Parse("Front:water")
	require.NoError(t, err)

	assert.True(t, q.Match(note("1", core.Fields{"Front": "Water"})), "field values compare case-insensitively")
	assert.False(t, q.Match(note("2", core.Fields{"Front": "waterfall"})), "field terms are exact, not substring")

	empty, err := query.Parse("Front:")
	require.NoError(t, err)
	assert.True(t, empty.Match(note("3", core.Fields{"Front": ""})))
	assert.True(t, empty.Match(note("4", core.Fields{"Back": "x"})), "missing field counts as empty")
	assert.False(t, empty.Match(note("5", core.Fields{"Front": "x"})))
}

func TestMatch_Negation(t *testing.T) {
	q, err := query.Parse("deck:vocab -tag:done")
	require.NoError(t, err)

	assert.True(t, q.Match(note("vocab/a", nil, "leech")))
	assert.False(t, q.Match(note("vocab/b", nil, "done")))
}
