package layout

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// recordingPersister captures every write.
type recordingPersister struct {
	mu     sync.Mutex
	panels []map[string]bool
	groups []groupWrite
	err    error
}

type groupWrite struct {
	key   string
	sizes GroupSizes
}

func (p *recordingPersister) PersistPanels(_ context.Context, panels map[string]bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panels = append(p.panels, maps.Clone(panels))
	return p.err
}

func (p *recordingPersister) PersistGroup(_ context.Context, key string, sizes GroupSizes) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.groups = append(p.groups, groupWrite{key: key, sizes: sizes.Clone()})
	return p.err
}

func (p *recordingPersister) panelWrites() []map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]map[string]bool(nil), p.panels...)
}

func (p *recordingPersister) groupWrites() []groupWrite {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]groupWrite(nil), p.groups...)
}

var errStorageUnavailable = errors.New("storage unavailable")

// fakeWidget counts imperative calls.
type fakeWidget struct {
	collapsed bool
	size      float64
	expands   int
	collapses int
	resizes   []float64
}

func (w *fakeWidget) Expand() {
	w.expands++
	w.collapsed = false
}

func (w *fakeWidget) Collapse() {
	w.collapses++
	w.collapsed = true
}

func (w *fakeWidget) IsCollapsed() bool { return w.collapsed }

func (w *fakeWidget) Resize(size float64) {
	w.resizes = append(w.resizes, size)
	w.size = size
}

func providerContext(states map[string]bool, persister Persister, opts ...ProviderOption) (context.Context, *Provider) {
	p := NewProvider(states, persister, opts...)
	return WithProvider(context.Background(), p), p
}
