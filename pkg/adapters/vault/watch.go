package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/fieldmatch/pkg/core"
)

// debounceWindow coalesces the burst of fsnotify events an editor save
// produces into a single collection event.
const debounceWindow = 200 * time.Millisecond

// Watch implements core.Watchable. It observes the vault recursively and
// emits one event per changed note, debounced per id. The channel closes
// when the context is cancelled.
func (c *Collection) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := c.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	out := make(chan core.Event)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer watcher.Close()

		// Pending events are flushed once their debounce window elapses.
		// Keeping delivery in this goroutine avoids racing the channel
		// close on shutdown.
		pending := make(map[core.NoteID]pendingEvent)
		ticker := time.NewTicker(debounceWindow / 4)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev, ok := c.translate(watcher, event); ok {
					pending[ev.ID] = pendingEvent{event: ev, due: time.Now().Add(debounceWindow)}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				c.logger.Warn("watcher error", "error", err)

			case now := <-ticker.C:
				for id, p := range pending {
					if now.Before(p.due) {
						continue
					}
					delete(pending, id)
					select {
					case out <- p.event:
					case <-ctx.Done():
						return nil
					}
				}
			}
		}
	})

	return out, nil
}

type pendingEvent struct {
	event core.Event
	due   time.Time
}

// translate maps a filesystem event to a collection event, filtering out
// non-note files. It also registers newly created directories.
func (c *Collection) translate(watcher *fsnotify.Watcher, event fsnotify.Event) (core.Event, bool) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = watcher.Add(event.Name)
			return core.Event{}, false
		}
	}

	rel, err := filepath.Rel(c.Path, event.Name)
	if err != nil {
		return core.Event{}, false
	}
	base := filepath.Base(rel)
	if strings.HasPrefix(base, TempFilePrefix) || strings.HasPrefix(base, ".") {
		return core.Event{}, false
	}
	if !c.matchesPattern(rel) {
		return core.Event{}, false
	}

	var typ core.EventType
	switch {
	case event.Has(fsnotify.Create):
		typ = core.EventCreate
	case event.Has(fsnotify.Write):
		typ = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		typ = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{Type: typ, ID: pathToID(rel)}, true
}

// recursiveAdd registers the root and every subdirectory with the watcher.
func (c *Collection) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(c.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != c.Path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

var _ core.Watchable = (*Collection)(nil)
