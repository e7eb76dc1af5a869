package layout

import (
	"context"
	"maps"
	"sync"

	"github.com/conneroisu/panelkit/internal/logging"
)

// Listener is notified after a panel's stored state changed.
type Listener func(id string, open bool)

// Store is the panel open/closed map. Absent ids read as closed. Every change
// is applied in memory first and then handed to the Persister as the full
// map; persistence errors are logged and never surface to the caller.
type Store struct {
	mu        sync.RWMutex
	states    map[string]bool
	persister Persister
	logger    logging.Logger

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// NewStore creates a store seeded with initial. A nil persister disables
// persistence.
func NewStore(initial map[string]bool, persister Persister, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	states := make(map[string]bool, len(initial))
	maps.Copy(states, initial)
	return &Store{
		states:    states,
		persister: persister,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// IsOpen returns the stored state for id.
func (s *Store) IsOpen(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[id]
}

// Snapshot returns a copy of the full map.
func (s *Store) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.states))
	maps.Copy(out, s.states)
	return out
}

// Toggle flips id and returns the new state.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	open, _ := s.update(ctx, id, func(current bool) bool { return !current })
	return open
}

// Open sets id to open. Opening an open panel does nothing.
func (s *Store) Open(ctx context.Context, id string) {
	s.update(ctx, id, func(bool) bool { return true })
}

// Close sets id to closed. Closing a closed panel does nothing.
func (s *Store) Close(ctx context.Context, id string) {
	s.update(ctx, id, func(bool) bool { return false })
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// update computes the next map under the lock, then persists and notifies
// with no lock held. next is called exactly once.
func (s *Store) update(ctx context.Context, id string, next func(current bool) bool) (bool, bool) {
	s.mu.Lock()
	current := s.states[id]
	value := next(current)
	if value == current {
		s.mu.Unlock()
		return value, false
	}
	updated := make(map[string]bool, len(s.states)+1)
	maps.Copy(updated, s.states)
	updated[id] = value
	s.states = updated
	snapshot := maps.Clone(updated)
	s.mu.Unlock()

	s.persist(ctx, id, snapshot)
	s.notify(id, value)
	return value, true
}

func (s *Store) persist(ctx context.Context, id string, snapshot map[string]bool) {
	if s.persister == nil {
		return
	}
	if err := s.persister.PersistPanels(ctx, snapshot); err != nil {
		s.logger.Warn(ctx, err, "Failed to persist panel state", "panel", id)
	}
}

func (s *Store) notify(id string, open bool) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(id, open)
	}
}
