package layout

import (
	"context"
	"fmt"
	"sync"

	"github.com/conneroisu/panelkit/internal/logging"
)

// Provider scopes one panel state map together with the persisted group
// sizes. Controllers and actions find it through the context.
type Provider struct {
	store     *Store
	persister Persister
	logger    logging.Logger
	dev       bool

	mu      sync.RWMutex
	layouts map[string]GroupSizes
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLayouts seeds the persisted group sizes, normally Record.Groups.
func WithLayouts(layouts map[string]GroupSizes) ProviderOption {
	return func(p *Provider) {
		for key, sizes := range layouts {
			p.layouts[key] = sizes.Clone()
		}
	}
}

// WithLogger sets the logger used for persistence failures and group
// warnings.
func WithLogger(logger logging.Logger) ProviderOption {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDevelopment enables development-only warnings.
func WithDevelopment(dev bool) ProviderOption {
	return func(p *Provider) {
		p.dev = dev
	}
}

// NewProvider creates a provider whose store starts from states. A nil
// persister keeps all changes in memory.
func NewProvider(states map[string]bool, persister Persister, opts ...ProviderOption) *Provider {
	p := &Provider{
		persister: persister,
		logger:    logging.Nop(),
		layouts:   make(map[string]GroupSizes),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.store = NewStore(states, persister, p.logger.WithComponent("panel_store"))
	return p
}

// Store returns the panel state store.
func (p *Provider) Store() *Store { return p.store }

// IsOpen returns the stored state for id.
func (p *Provider) IsOpen(id string) bool { return p.store.IsOpen(id) }

// Toggle flips id.
func (p *Provider) Toggle(ctx context.Context, id string) bool { return p.store.Toggle(ctx, id) }

// Open opens id.
func (p *Provider) Open(ctx context.Context, id string) { p.store.Open(ctx, id) }

// Close closes id.
func (p *Provider) Close(ctx context.Context, id string) { p.store.Close(ctx, id) }

// Panels returns a copy of the panel state map.
func (p *Provider) Panels() map[string]bool { return p.store.Snapshot() }

// Logger returns the provider's logger.
func (p *Provider) Logger() logging.Logger { return p.logger }

// Development reports whether development-only warnings are enabled.
func (p *Provider) Development() bool { return p.dev }

// Layout returns the committed sizes for the group key, or fallback as a
// positional vector when none were committed.
func (p *Provider) Layout(key string, fallback []float64) GroupSizes {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if sizes, ok := p.layouts[key]; ok && len(sizes.Sizes) > 0 {
		return sizes.Clone()
	}
	return GroupSizes{Sizes: append([]float64(nil), fallback...)}
}

// Settle records a committed size vector for the group key and persists it.
func (p *Provider) Settle(ctx context.Context, key string, sizes GroupSizes) {
	committed := sizes.Clone()

	p.mu.Lock()
	p.layouts[key] = committed
	p.mu.Unlock()

	if p.persister == nil {
		return
	}
	if err := p.persister.PersistGroup(ctx, key, committed); err != nil {
		p.logger.Warn(ctx, err, "Failed to persist group layout", "group", key)
	}
}

type providerKey struct{}

// WithProvider returns a context carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider carried by ctx.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// MustFromContext returns the provider carried by ctx and panics when there
// is none. Reaching for panel state outside a provider is a programming
// error.
func MustFromContext(ctx context.Context, caller string) *Provider {
	p, ok := FromContext(ctx)
	if !ok {
		panic(fmt.Sprintf("layout: %s must be used within a Provider", caller))
	}
	return p
}
