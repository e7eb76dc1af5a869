// Package splitter models a one-axis resizable split: an ordered row of
// panes whose percentage sizes always sum to the same total. Panes can be
// resized by dragging the handle between two neighbours or imperatively,
// and collapsible panes snap shut when dragged past half their minimum.
//
// A Layout is not safe for concurrent use. Callbacks run synchronously and
// may call back into the layout.
package splitter

import "math"

// epsilon absorbs float noise when comparing sizes.
const epsilon = 1e-9

// Constraints bound one pane.
type Constraints struct {
	Min         float64
	Default     float64
	Max         float64
	Collapsible bool
}

func (c Constraints) normalized() Constraints {
	if c.Max <= 0 || c.Max > 100 {
		c.Max = 100
	}
	if c.Min < 0 {
		c.Min = 0
	}
	if c.Min > c.Max {
		c.Min = c.Max
	}
	if c.Default < c.Min {
		c.Default = c.Min
	}
	if c.Default > c.Max {
		c.Default = c.Max
	}
	return c
}

// PaneOption configures a pane.
type PaneOption func(*Pane)

// OnResize registers a callback receiving the live size after every change.
func OnResize(fn func(size float64)) PaneOption {
	return func(p *Pane) { p.onResize = fn }
}

// OnCollapse registers a callback run when the pane collapses.
func OnCollapse(fn func()) PaneOption {
	return func(p *Pane) { p.onCollapse = fn }
}

// OnExpand registers a callback run when a collapsed pane expands.
func OnExpand(fn func()) PaneOption {
	return func(p *Pane) { p.onExpand = fn }
}

// Layout is an ordered row of panes.
type Layout struct {
	panes    []*Pane
	onLayout func(sizes []float64)

	dragHandle int
	dragStart  []float64
}

// New creates an empty layout. onLayout, when set, receives the committed
// size vector at the end of a drag and after every imperative change made
// outside a drag.
func New(onLayout func(sizes []float64)) *Layout {
	return &Layout{onLayout: onLayout, dragHandle: -1}
}

// Add appends a pane sized at its default.
func (l *Layout) Add(c Constraints, opts ...PaneOption) *Pane {
	c = c.normalized()
	p := &Pane{
		layout:       l,
		index:        len(l.panes),
		constraints:  c,
		size:         c.Default,
		lastExpanded: c.Default,
	}
	for _, opt := range opts {
		opt(p)
	}
	l.panes = append(l.panes, p)
	return p
}

// Panes returns the panes in order.
func (l *Layout) Panes() []*Pane {
	return append([]*Pane(nil), l.panes...)
}

// Sizes returns the current size vector.
func (l *Layout) Sizes() []float64 {
	sizes := make([]float64, len(l.panes))
	for i, p := range l.panes {
		sizes[i] = p.size
	}
	return sizes
}

// SetSizes replaces the size vector without running callbacks. Missing
// entries keep the pane's current size. A collapsible pane set to zero is
// collapsed.
func (l *Layout) SetSizes(sizes []float64) {
	for i, p := range l.panes {
		if i >= len(sizes) {
			break
		}
		size := math.Max(0, math.Min(sizes[i], p.constraints.Max))
		if size > epsilon {
			p.lastExpanded = size
		}
		p.size = size
	}
}

// Dragging reports whether a handle drag is in progress.
func (l *Layout) Dragging() bool { return l.dragHandle >= 0 }

// BeginDrag starts dragging the handle between pane handle and pane
// handle+1. It reports false for an invalid handle.
func (l *Layout) BeginDrag(handle int) bool {
	if handle < 0 || handle+1 >= len(l.panes) {
		return false
	}
	l.dragHandle = handle
	l.dragStart = l.Sizes()
	return true
}

// Drag moves the active handle to offset percentage points from where the
// drag began. Positive offsets grow the leading pane.
func (l *Layout) Drag(offset float64) {
	if !l.Dragging() {
		return
	}
	lead, trail := l.panes[l.dragHandle], l.panes[l.dragHandle+1]
	total := l.dragStart[lead.index] + l.dragStart[trail.index]

	shrinking, growing := trail, lead
	target := l.dragStart[trail.index] - offset
	if offset < 0 {
		shrinking, growing = lead, trail
		target = l.dragStart[lead.index] + offset
	}

	size := shrinking.constrainShrink(target)
	other := total - size
	gc := growing.constraints
	if gc.Collapsible && l.dragStart[growing.index] <= epsilon {
		// A collapsed pane opens only once dragged past half its minimum.
		switch {
		case other < gc.Min/2:
			size = total
		case other < gc.Min:
			size = total - gc.Min
		}
	}
	if other := total - size; other > gc.Max {
		size = total - gc.Max
	}

	// Both sizes land before any callback runs, so a callback that resizes
	// the pane sees a layout that still sums to the same total.
	shrunk := shrinking.assign(size)
	grown := growing.assign(total - size)
	shrunk.notify()
	grown.notify()
}

// EndDrag finishes the drag and commits the layout.
func (l *Layout) EndDrag() {
	if !l.Dragging() {
		return
	}
	l.dragHandle = -1
	l.dragStart = nil
	l.commit()
}

func (l *Layout) commit() {
	if l.onLayout != nil {
		l.onLayout(l.Sizes())
	}
}

// absorb moves -delta onto the panes other than index, nearest first, and
// returns how much of delta could be placed.
func (l *Layout) absorb(index int, delta float64) float64 {
	remaining := delta
	for _, k := range l.neighbours(index) {
		if math.Abs(remaining) < epsilon {
			break
		}
		p := l.panes[k]
		if p.IsCollapsed() {
			continue
		}
		var room float64
		if remaining > 0 {
			room = math.Min(remaining, p.size-p.constraints.Min)
		} else {
			room = math.Max(remaining, p.size-p.constraints.Max)
		}
		if math.Abs(room) < epsilon || (remaining > 0) != (room > 0) {
			continue
		}
		p.set(p.size - room)
		remaining -= room
	}
	return delta - remaining
}

// neighbours orders the other panes by distance from index, following pane
// first.
func (l *Layout) neighbours(index int) []int {
	order := make([]int, 0, len(l.panes)-1)
	for d := 1; d < len(l.panes); d++ {
		if next := index + d; next < len(l.panes) {
			order = append(order, next)
		}
		if prev := index - d; prev >= 0 {
			order = append(order, prev)
		}
	}
	return order
}

// Pane is one resizable region. It satisfies the widget contract the panel
// controller drives: Expand, Collapse, IsCollapsed and Resize.
type Pane struct {
	layout       *Layout
	index        int
	constraints  Constraints
	size         float64
	lastExpanded float64

	onResize   func(float64)
	onCollapse func()
	onExpand   func()
}

// Index returns the pane's position in its layout.
func (p *Pane) Index() int { return p.index }

// Size returns the live size.
func (p *Pane) Size() float64 { return p.size }

// Constraints returns the pane's bounds.
func (p *Pane) Constraints() Constraints { return p.constraints }

// IsCollapsed reports whether a collapsible pane is at zero.
func (p *Pane) IsCollapsed() bool {
	return p.constraints.Collapsible && p.size <= epsilon
}

// Collapse shrinks a collapsible pane to zero, giving its space to its
// neighbours. The size before collapsing is restored by Expand.
func (p *Pane) Collapse() {
	if !p.constraints.Collapsible || p.IsCollapsed() {
		return
	}
	p.lastExpanded = p.size
	p.Resize(0)
}

// Expand restores a collapsed pane to the size it had before collapsing, or
// its default when it never had one.
func (p *Pane) Expand() {
	if !p.IsCollapsed() {
		return
	}
	target := p.lastExpanded
	if target < p.constraints.Min || target <= epsilon {
		target = p.constraints.Default
	}
	p.Resize(target)
}

// Resize sets the pane to size, taking the difference from its neighbours.
// Sizes below the minimum clamp to it, except zero on a collapsible pane.
func (p *Pane) Resize(size float64) {
	switch {
	case size <= epsilon && p.constraints.Collapsible:
		size = 0
	case size < p.constraints.Min:
		size = p.constraints.Min
	case size > p.constraints.Max:
		size = p.constraints.Max
	}

	delta := size - p.size
	if math.Abs(delta) < epsilon {
		return
	}
	placed := p.layout.absorb(p.index, delta)
	p.set(p.size + placed)

	if !p.layout.Dragging() {
		p.layout.commit()
	}
}

// constrainShrink applies the floor rules to a shrinking target size.
func (p *Pane) constrainShrink(target float64) float64 {
	c := p.constraints
	switch {
	case c.Collapsible && target < c.Min/2:
		return 0
	case target < c.Min:
		return c.Min
	}
	return target
}

func (p *Pane) set(size float64) {
	p.assign(size).notify()
}

// change is one applied size change whose callbacks have not run yet.
type change struct {
	pane         *Pane
	size         float64
	wasCollapsed bool
	collapsed    bool
}

func (p *Pane) assign(size float64) *change {
	if math.Abs(size) < epsilon {
		size = 0
	}
	if math.Abs(size-p.size) < epsilon {
		return nil
	}
	c := &change{pane: p, size: size, wasCollapsed: p.IsCollapsed()}
	if !c.wasCollapsed && size <= epsilon {
		p.lastExpanded = p.size
	}
	p.size = size
	c.collapsed = p.IsCollapsed()
	return c
}

// notify runs collapse or expand before resize, so a resize callback that
// reopens the pane is observed after the collapse it undoes.
func (c *change) notify() {
	if c == nil {
		return
	}
	p := c.pane
	switch {
	case c.collapsed && !c.wasCollapsed && p.onCollapse != nil:
		p.onCollapse()
	case !c.collapsed && c.wasCollapsed && p.onExpand != nil:
		p.onExpand()
	}
	if p.onResize != nil {
		p.onResize(c.size)
	}
}
