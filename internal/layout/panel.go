package layout

import (
	"context"
	"fmt"
	"sync"
)

// Widget is the imperative handle of a resizable splitter pane.
type Widget interface {
	Expand()
	Collapse()
	IsCollapsed() bool
	Resize(size float64)
}

// State is a panel's visible state.
type State int

const (
	StateClosed State = iota
	StateOpen
	// StateResizing is entered on drag start and left on drag end. While in
	// it, reconciliation and transitions are suspended.
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateResizing:
		return "resizing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TransitionClass is applied to panels whose size changes animate.
const TransitionClass = "transition-all duration-300 ease-in-out"

// Panel keeps one named panel's widget in step with the store. The store is
// authoritative except while the user drags, when the widget's live size
// wins until the drag ends.
type Panel struct {
	ctx      context.Context
	provider *Provider
	region   Region

	mu          sync.Mutex
	widget      Widget
	resizing    bool
	unsubscribe func()
}

// NewPanel creates the controller for region. It panics when ctx carries no
// Provider or region is not a panel with an id.
func NewPanel(ctx context.Context, region Region) *Panel {
	provider := MustFromContext(ctx, "Panel")
	if region.Kind != KindPanel || region.ID == "" {
		panic(fmt.Sprintf("layout: Panel requires a panel region with an id, got %s %q", region.Kind, region.ID))
	}
	return &Panel{
		ctx:      ctx,
		provider: provider,
		region:   region,
	}
}

// ID returns the panel id.
func (p *Panel) ID() string { return p.region.ID }

// Region returns the panel's declaration.
func (p *Panel) Region() Region { return p.region }

// IsOpen returns the stored state.
func (p *Panel) IsOpen() bool { return p.provider.IsOpen(p.region.ID) }

// Bind attaches the widget, subscribes to the store and reconciles once.
// Binding a new widget replaces the previous one.
func (p *Panel) Bind(w Widget) {
	p.mu.Lock()
	p.widget = w
	if p.unsubscribe == nil {
		p.unsubscribe = p.provider.Store().Subscribe(func(id string, _ bool) {
			if id == p.region.ID {
				p.Reconcile()
			}
		})
	}
	p.mu.Unlock()

	p.Reconcile()
}

// Close detaches the widget and stops listening to the store.
func (p *Panel) Close() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.widget = nil
	p.resizing = false
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Reconcile expands or collapses the widget when it disagrees with the
// store. It does nothing while resizing or without a widget.
func (p *Panel) Reconcile() {
	p.mu.Lock()
	w, resizing := p.widget, p.resizing
	p.mu.Unlock()
	if w == nil || resizing {
		return
	}

	open := p.IsOpen()
	collapsed := w.IsCollapsed()
	switch {
	case open && collapsed:
		w.Expand()
	case !open && !collapsed:
		w.Collapse()
	}
}

// DragStart enters the resizing state.
func (p *Panel) DragStart() { p.SetDragging(true) }

// DragEnd leaves the resizing state and reconciles with the store.
func (p *Panel) DragEnd() { p.SetDragging(false) }

// SetDragging sets the resizing flag. Leaving the resizing state reconciles.
func (p *Panel) SetDragging(dragging bool) {
	p.mu.Lock()
	was := p.resizing
	p.resizing = dragging
	p.mu.Unlock()

	if was && !dragging {
		p.Reconcile()
	}
}

// OnResize receives the widget's live size. While resizing, a panel that
// does not collapse on resize is held at its minimum size.
func (p *Panel) OnResize(size float64) {
	p.mu.Lock()
	w, resizing := p.widget, p.resizing
	p.mu.Unlock()

	if w == nil || !resizing || p.region.CollapseOnResize {
		return
	}
	if size < p.region.MinSize {
		w.Resize(p.region.MinSize)
	}
}

// OnCollapse receives the widget's collapse event. A panel that collapses on
// resize records the close in the store.
func (p *Panel) OnCollapse() {
	if p.region.CollapseOnResize && p.IsOpen() {
		p.provider.Close(p.ctx, p.region.ID)
	}
}

// OnExpand receives the widget's expand event. A panel that collapses on
// resize records the open in the store.
func (p *Panel) OnExpand() {
	if p.region.CollapseOnResize && !p.IsOpen() {
		p.provider.Open(p.ctx, p.region.ID)
	}
}

// State returns the panel's visible state.
func (p *Panel) State() State {
	p.mu.Lock()
	resizing := p.resizing
	p.mu.Unlock()

	switch {
	case resizing:
		return StateResizing
	case p.IsOpen():
		return StateOpen
	default:
		return StateClosed
	}
}

// TransitionEnabled reports whether size changes should animate.
func (p *Panel) TransitionEnabled() bool {
	if p.region.DisableTransition {
		return false
	}
	return p.State() != StateResizing
}
