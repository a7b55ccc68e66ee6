// Package vault implements the Collection port over a directory of Markdown
// notes with YAML frontmatter. Fields are the frontmatter scalars, tags are
// the frontmatter tags list, and decks fall out of the directory layout.
package vault

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/fieldmatch/pkg/core"
	"github.com/aretw0/fieldmatch/pkg/query"
)

// DefaultPattern matches every Markdown note under the vault root.
const DefaultPattern = "**/*.md"

// Config holds the configuration for the vault collection.
type Config struct {
	Path      string
	Pattern   string // doublestar glob for note discovery; DefaultPattern if empty
	MustExist bool
	Logger    *slog.Logger
}

// Collection implements core.Collection over the filesystem.
type Collection struct {
	Path   string
	config Config
	logger *slog.Logger
}

// NewCollection creates a new filesystem-backed note collection.
func NewCollection(config Config) *Collection {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{
		Path:   config.Path,
		config: config,
		logger: logger,
	}
}

// Initialize performs the necessary setup for the collection.
func (c *Collection) Initialize(ctx context.Context) error {
	if c.config.MustExist {
		info, err := os.Stat(c.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", c.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", c.Path)
		}
		return nil
	}
	if err := os.MkdirAll(c.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// FindNotes scans the vault and applies the parsed filter to every note.
// An empty filter matches everything.
func (c *Collection) FindNotes(ctx context.Context, filter string) ([]core.NoteID, error) {
	q, err := query.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
	}

	ids, err := c.scan()
	if err != nil {
		return nil, err
	}

	var matched []core.NoteID
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := c.read(id)
		if err != nil {
			// A single unreadable note should not break the whole pass.
			c.logger.Warn("skipping unreadable note", "id", id, "error", err)
			continue
		}
		if q.Match(n) {
			matched = append(matched, id)
		}
	}
	return matched, nil
}

// Fetch loads the notes for the given ids.
func (c *Collection) Fetch(ctx context.Context, ids []core.NoteID) ([]core.Note, error) {
	notes := make([]core.Note, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := c.read(id)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// AddTag appends the tag to the frontmatter of every listed note and writes
// the file back atomically. Notes already carrying the tag are untouched.
func (c *Collection) AddTag(ctx context.Context, ids []core.NoteID, tag string) error {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := c.open(id)
		if err != nil {
			return err
		}
		if !f.addTag(tag) {
			continue
		}

		data, err := f.serialize()
		if err != nil {
			return fmt.Errorf("failed to serialize note %s: %w", id, err)
		}
		if err := writeFileAtomic(c.filename(id), data, 0644); err != nil {
			return fmt.Errorf("failed to write note %s: %w", id, err)
		}
		c.logger.Debug("tagged note", "id", id, "tag", tag)
	}
	return nil
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "vault"
}

// scan returns the ids of every note file under the root, sorted for
// deterministic passes.
func (c *Collection) scan() ([]core.NoteID, error) {
	paths, err := doublestar.Glob(os.DirFS(c.Path), c.config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}

	ids := make([]core.NoteID, 0, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		if strings.HasPrefix(base, TempFilePrefix) || strings.HasPrefix(base, ".") {
			continue
		}
		ids = append(ids, pathToID(p))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (c *Collection) read(id core.NoteID) (core.Note, error) {
	f, err := c.open(id)
	if err != nil {
		return core.Note{}, err
	}
	return core.Note{
		ID:     id,
		Fields: f.fields(),
		Tags:   f.tags(),
	}, nil
}

func (c *Collection) open(id core.NoteID) (*file, error) {
	h, err := os.Open(c.filename(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return nil, err
	}
	defer h.Close()

	f, err := parseFile(h)
	if err != nil {
		return nil, fmt.Errorf("failed to parse note %s: %w", id, err)
	}
	return f, nil
}

func (c *Collection) filename(id core.NoteID) string {
	return filepath.Join(c.Path, filepath.FromSlash(string(id))+".md")
}

// pathToID converts a vault-relative file path to a note id
// (slash-separated, extension stripped).
func pathToID(p string) core.NoteID {
	p = filepath.ToSlash(p)
	p = strings.TrimSuffix(p, ".md")
	return core.NoteID(p)
}

// matchesPattern reports whether a vault-relative path is a note file.
func (c *Collection) matchesPattern(rel string) bool {
	ok, err := doublestar.Match(c.config.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

var _ core.Collection = (*Collection)(nil)
