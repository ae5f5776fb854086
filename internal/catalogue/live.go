package catalogue

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
)

// Ensure Live implements the interface.
var _ driven.PatternCatalogue = (*Live)(nil)

// ReloadEvent reports one reload attempt of a pattern file.
type ReloadEvent struct {
	Path string

	// Patterns is the size of the active catalogue after the attempt.
	Patterns int

	// Err is set when the file failed to load; the previous catalogue stays active.
	Err error
}

// Live is a catalogue backed by a pattern file that can be reloaded while
// the process runs. Each Patterns call sees one complete catalogue.
type Live struct {
	path    string
	current atomic.Pointer[Catalogue]

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
}

// NewLive loads path and returns a reloadable catalogue.
func NewLive(path string) (*Live, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: pattern file path is required", domain.ErrInvalidInput)
	}
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	l := &Live{path: path}
	l.current.Store(c)
	return l, nil
}

// Path returns the pattern file path.
func (l *Live) Path() string {
	return l.path
}

// Current returns the active catalogue.
func (l *Live) Current() *Catalogue {
	return l.current.Load()
}

// Patterns returns every pattern of the active catalogue.
func (l *Live) Patterns() []domain.NarrativePattern {
	return l.Current().Patterns()
}

// Get returns a pattern of the active catalogue.
func (l *Live) Get(id string) (*domain.NarrativePattern, bool) {
	return l.Current().Get(id)
}

// Len returns the size of the active catalogue.
func (l *Live) Len() int {
	return l.Current().Len()
}

// Reload reads the file again. On failure the active catalogue is kept.
func (l *Live) Reload() error {
	c, err := LoadFile(l.path)
	if err != nil {
		return err
	}
	l.current.Store(c)
	return nil
}

// Watch reloads the catalogue whenever the file is written or replaced and
// reports each attempt. The channel closes when ctx ends or Close is called.
func (l *Live) Watch(ctx context.Context) (<-chan ReloadEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, errors.New("catalogue: watcher closed")
	}
	if l.cancel != nil {
		return nil, errors.New("catalogue: already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalogue: create watcher: %w", err)
	}
	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("catalogue: watch %s: %w", l.path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	events := make(chan ReloadEvent, 1)
	go l.loop(ctx, watcher, events)
	return events, nil
}

// Close stops watching.
func (l *Live) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	return nil
}

func (l *Live) loop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- ReloadEvent) {
	defer close(out)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !l.affects(event) {
				continue
			}
			ev := ReloadEvent{Path: l.path, Err: l.Reload()}
			ev.Patterns = l.Len()
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case out <- ReloadEvent{Path: l.path, Patterns: l.Len(), Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// affects reports whether event creates or rewrites the pattern file.
// Removals are ignored so a half-finished save never empties the catalogue.
func (l *Live) affects(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(l.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
