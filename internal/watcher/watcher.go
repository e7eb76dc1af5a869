// Package watcher reports debounced batches of file changes under the docs
// content directory, which the server turns into a reload broadcast.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay groups the burst of events an editor emits on save.
const DefaultDelay = 150 * time.Millisecond

// FileWatcher watches directory trees and hands debounced changes to
// handlers.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	logger    logging.Logger

	mutex    sync.RWMutex
	filters  []FileFilter
	handlers []ChangeHandler

	stopOnce sync.Once
}

// ChangeEvent is one changed path.
type ChangeEvent struct {
	Type EventType
	Path string
}

// EventType is the kind of change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter reports whether a path is of interest.
type FileFilter func(path string) bool

// ChangeHandler receives one debounced batch.
type ChangeHandler func(ctx context.Context, events []ChangeEvent) error

// New creates a watcher. A delay of zero uses DefaultDelay.
func New(delay time.Duration, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &FileWatcher{
		watcher:   w,
		debouncer: NewDebouncer(delay),
		logger:    logger.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a filter; a path must pass all of them.
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches root and every directory below it, skipping hidden
// ones. Directories created later are picked up as they appear.
func (fw *FileWatcher) AddRecursive(root string) error {
	clean := filepath.Clean(root)
	return filepath.WalkDir(clean, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != clean && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.watcher.Add(path)
	})
}

// Start runs the watch loop until ctx is done or Stop is called.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.watchLoop(ctx)
	go fw.processBatches(ctx)
}

// Stop releases the underlying watcher.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		fw.debouncer.Stop()
		err = fw.watcher.Close()
	})
	return err
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(ctx, event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "File watcher error")
		}
	}
}

func (fw *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.AddRecursive(event.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				fw.logger.Warn(ctx, err, "Failed to watch new directory", "path", event.Name)
			}
			return
		}
	}

	if !fw.accepts(event.Name) {
		return
	}
	fw.debouncer.Add(ChangeEvent{Type: eventType(event.Op), Path: event.Name})
}

func (fw *FileWatcher) accepts(path string) bool {
	fw.mutex.RLock()
	defer fw.mutex.RUnlock()

	for _, filter := range fw.filters {
		if !filter(path) {
			return false
		}
	}
	return true
}

func eventType(op fsnotify.Op) EventType {
	switch {
	case op.Has(fsnotify.Create):
		return EventTypeCreated
	case op.Has(fsnotify.Remove):
		return EventTypeDeleted
	case op.Has(fsnotify.Rename):
		return EventTypeRenamed
	default:
		return EventTypeModified
	}
}

func (fw *FileWatcher) processBatches(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-fw.debouncer.Output():
			fw.dispatch(ctx, events)
		}
	}
}

func (fw *FileWatcher) dispatch(ctx context.Context, events []ChangeEvent) {
	fw.mutex.RLock()
	handlers := append([]ChangeHandler(nil), fw.handlers...)
	fw.mutex.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, events); err != nil {
			fw.logger.Warn(ctx, err, "File watcher handler failed", "events", len(events))
		}
	}
}

// Debouncer collects events until none arrive for its delay, then emits
// them as one batch with at most one event per path.
type Debouncer struct {
	delay  time.Duration
	output chan []ChangeEvent

	mutex   sync.Mutex
	timer   *time.Timer
	pending map[string]ChangeEvent
	stopped bool
}

// NewDebouncer creates a debouncer.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		output:  make(chan []ChangeEvent, 8),
		pending: make(map[string]ChangeEvent),
	}
}

// Output delivers batches sorted by path.
func (d *Debouncer) Output() <-chan []ChangeEvent {
	return d.output
}

// Add records an event, restarting the quiet period. The latest event for a
// path wins.
func (d *Debouncer) Add(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.pending[event.Path] = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

// Stop drops pending events and cancels the timer.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	clear(d.pending)
}

func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 || d.stopped {
		return
	}

	events := make([]ChangeEvent, 0, len(d.pending))
	for _, event := range d.pending {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	clear(d.pending)

	select {
	case d.output <- events:
	default:
		// a queued batch already signals a change
	}
}

// MarkdownFilter accepts markdown files.
func MarkdownFilter(path string) bool {
	return filepath.Ext(path) == ".md"
}

// NoHiddenFilter rejects dotfiles and editor swap files.
func NoHiddenFilter(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}
