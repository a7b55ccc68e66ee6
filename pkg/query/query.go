// Package query implements the filter-string subset understood by the vault
// adapter. The grammar follows the host application's search syntax closely
// enough that the same filter works against both backends:
//
//	tag:leech deck:vocab Front:water -tag:done "multi word"
//
// Terms are AND-ed together. A term is either a bare word (substring match
// against any field value), or key:value where key is one of the reserved
// scopes (tag, deck) or a field name. Values may be double-quoted, may quote
// the whole term, and may contain * wildcards. A leading '-' negates a term.
package query

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/fieldmatch/pkg/core"
)

// Term is a single parsed search term.
type Term struct {
	Key     string // "" for bare words; "tag" and "deck" are reserved
	Value   string
	Negated bool
}

// Query is a parsed filter string.
type Query struct {
	terms []Term
}

// Terms returns the parsed terms, mostly for diagnostics.
func (q *Query) Terms() []Term { return q.terms }

// Parse tokenizes a filter string. An empty filter yields a query that
// matches every note.
func Parse(filter string) (*Query, error) {
	tokens, err := tokenize(filter)
	if err != nil {
		return nil, err
	}

	q := &Query{}
	for _, tok := range tokens {
		term := Term{}
		if strings.HasPrefix(tok, "-") {
			term.Negated = true
			tok = tok[1:]
		}
		if tok == "" {
			return nil, fmt.Errorf("dangling '-' in filter")
		}
		// "deck:My Deck" quotes the whole term; strip the outer quotes
		// before looking for the scope separator.
		tok = unquote(tok)
		if i := strings.Index(tok, ":"); i >= 0 {
			term.Key = tok[:i]
			term.Value = unquote(tok[i+1:])
		} else {
			term.Value = unquote(tok)
		}
		q.terms = append(q.terms, term)
	}
	return q, nil
}

// Match reports whether a note satisfies every term. The deck of a note is
// derived from its id (the directory part of the vault path).
func (q *Query) Match(n core.Note) bool {
	for _, t := range q.terms {
		if t.matches(n) == t.Negated {
			return false
		}
	}
	return true
}

func (t Term) matches(n core.Note) bool {
	switch t.Key {
	case "":
		needle := strings.ToLower(t.Value)
		for _, v := range n.Fields {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	case "tag":
		for _, tag := range n.Tags {
			if matchValue(t.Value, tag) {
				return true
			}
		}
		return false
	case "deck":
		return matchDeck(t.Value, string(n.ID))
	default:
		v, ok := n.Fields[t.Key]
		if !ok {
			// key:<empty> also matches notes lacking the field, mirroring
			// the host's "Front:" search.
			return t.Value == ""
		}
		return matchValue(t.Value, v)
	}
}

// matchDeck checks the directory part of a note id against the wanted deck.
// Subdecks belong to their parents: deck "a/b" also answers to "a".
func matchDeck(want, id string) bool {
	deck := path.Dir(id)
	if deck == "." {
		deck = ""
	}
	for {
		if matchValue(want, deck) {
			return true
		}
		if deck == "" {
			return false
		}
		parent := path.Dir(deck)
		if parent == "." {
			parent = ""
		}
		if parent == deck {
			return false
		}
		deck = parent
	}
}

// matchValue compares case-insensitively; '*' in the pattern is a wildcard.
func matchValue(pattern, value string) bool {
	pattern = strings.ToLower(pattern)
	value = strings.ToLower(value)
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == value
	}
	ok, err := doublestar.Match(pattern, value)
	if err != nil {
		// Malformed glob degrades to literal comparison.
		return pattern == value
	}
	return ok
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// tokenize splits on whitespace while honoring double quotes, which may
// enclose a whole term or just the value part.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unbalanced quote in filter")
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
